package types

import "strconv"

// GroupID identifies a chat group on the gateway.
type GroupID int64

// String returns the decimal form of the group id.
func (g GroupID) String() string { return strconv.FormatInt(int64(g), 10) }

// UserID identifies a chat account, including the bot's own account.
type UserID int64

// String returns the decimal form of the user id.
func (u UserID) String() string { return strconv.FormatInt(int64(u), 10) }

// EventID identifies a message event. Quote replies reference it.
type EventID string

// String returns the string form of the event id.
func (id EventID) String() string { return string(id) }

// ImageID is the gateway-side identifier of an uploaded image.
type ImageID string

// String returns the string form of the image id.
func (id ImageID) String() string { return string(id) }

// Origin tells where a search request came from.
type Origin string

const (
	OriginGroup Origin = "group"
	OriginCLI   Origin = "cli"
)
