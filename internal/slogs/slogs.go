// Package slogs holds the structured logging keys used across the bot.
package slogs

const (
	// Core entity keys
	ID   = "id"
	Name = "name"
	Path = "path"
	URL  = "url"

	// Chat keys
	EventID  = "event_id"
	GroupID  = "group_id"
	SenderID = "sender_id"
	BotID    = "bot_id"
	ImageID  = "image_id"

	// Search keys
	Threshold      = "threshold"
	Hits           = "hits"
	Cached         = "cached"
	ShortRemaining = "short_remaining"
	LongRemaining  = "long_remaining"
	KeyFingerprint = "key_fingerprint"

	// Status and operation keys
	Status   = "status"
	Error    = "error"
	Count    = "count"
	Duration = "duration"
	Method   = "method"
	Remote   = "remote"
	Bytes    = "bytes"

	// Lifecycle keys
	Component = "component"
	Version   = "version"
)
