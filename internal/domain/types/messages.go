package types

import (
	"strconv"
	"strings"
)

// SegmentKind names the kind of a message chain element.
type SegmentKind string

const (
	SegmentPlain SegmentKind = "plain"
	SegmentImage SegmentKind = "image"
	SegmentQuote SegmentKind = "quote"
	SegmentAt    SegmentKind = "at"
)

// ImagePlaceholder is how an image renders in a chain's content string.
const ImagePlaceholder = "[图片]"

// Segment is one element of a message chain. Only the fields of its kind are set.
type Segment struct {
	Kind     SegmentKind `json:"type"`
	Text     string      `json:"text,omitempty"`
	ImageID  ImageID     `json:"image_id,omitempty"`
	URL      string      `json:"url,omitempty"`
	SourceID EventID     `json:"source_id,omitempty"`
	Target   UserID      `json:"target,omitempty"`
}

// Plain builds a text segment.
func Plain(text string) Segment { return Segment{Kind: SegmentPlain, Text: text} }

// Image builds an image segment.
func Image(id ImageID, url string) Segment {
	return Segment{Kind: SegmentImage, ImageID: id, URL: url}
}

// Quote builds a quote-reply segment pointing at the event src.
func Quote(src EventID) Segment { return Segment{Kind: SegmentQuote, SourceID: src} }

// At builds a mention segment.
func At(target UserID) Segment { return Segment{Kind: SegmentAt, Target: target} }

// MessageChain is the ordered content of a chat message.
type MessageChain []Segment

// ContentString renders the chain the way users see it in text form:
// images become ImagePlaceholder, mentions become "@<id>" and quotes vanish.
func (c MessageChain) ContentString() string {
	var sb strings.Builder
	for _, s := range c {
		switch s.Kind {
		case SegmentPlain:
			sb.WriteString(s.Text)
		case SegmentImage:
			sb.WriteString(ImagePlaceholder)
		case SegmentAt:
			sb.WriteString("@")
			sb.WriteString(strconv.FormatInt(int64(s.Target), 10))
		}
	}
	return sb.String()
}

// FirstImage returns the first image segment of the chain.
func (c MessageChain) FirstImage() (Segment, bool) {
	for _, s := range c {
		if s.Kind == SegmentImage {
			return s, true
		}
	}
	return Segment{}, false
}

// GroupMessageEvent is a message posted in a group, as queued by the gateway.
type GroupMessageEvent struct {
	ID       EventID      `json:"id"`
	BotID    UserID       `json:"bot_id"`
	GroupID  GroupID      `json:"group_id"`
	SenderID UserID       `json:"sender_id"`
	Message  MessageChain `json:"message"`
	Time     int64        `json:"time"`
}
