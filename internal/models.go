package internal

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// NoContentNote annotates a session whose id was requested but for which no
// usable record could be found in the store.
const NoContentNote = "no content found"

// RawRecord is a single key/value row read from a store. The value may be
// plain JSON text or a base64-encoded blob; Decode sorts that out.
type RawRecord struct {
	Key   string
	Value []byte
}

// CodeFragment is a code block attached to a message.
type CodeFragment struct {
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Code     string `json:"code" yaml:"code"`
}

// Message is the canonical message unit produced by the schema resolver.
// Timestamp is milliseconds since epoch; 0 means unknown and renders as an
// empty time rather than the epoch date.
type Message struct {
	Role          Role           `json:"role" yaml:"role"`
	Text          string         `json:"text" yaml:"text"`
	Timestamp     int64          `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	CodeFragments []CodeFragment `json:"codeFragments,omitempty" yaml:"codeFragments,omitempty"`
}

// Session is one reconstructed conversation thread with its provenance label.
type Session struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Source   string    `json:"source" yaml:"source"`
	Note     string    `json:"note,omitempty" yaml:"note,omitempty"`
	Messages []Message `json:"messages" yaml:"messages"`
}

// FirstTimestamp returns the timestamp of the first message, or 0 when the
// session is empty or its first message carries no time.
func (s *Session) FirstTimestamp() int64 {
	if len(s.Messages) == 0 {
		return 0
	}
	return s.Messages[0].Timestamp
}

// StartTime returns the first message time as a time.Time, zero when unknown.
func (s *Session) StartTime() time.Time {
	ts := s.FirstTimestamp()
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(0, ts*int64(time.Millisecond))
}

const parseFailurePrefix = "[failed to decode record "

// ParseFailureMessage builds the diagnostic placeholder emitted when a record
// cannot be decoded, so the gap stays visible in output instead of being
// silently dropped.
func ParseFailureMessage(key string, err error) Message {
	return Message{
		Role: RoleAssistant,
		Text: fmt.Sprintf("%s%s: %v]", parseFailurePrefix, key, err),
	}
}

// IsParseFailure reports whether a message is a decode-failure placeholder.
func (m Message) IsParseFailure() bool {
	return strings.HasPrefix(m.Text, parseFailurePrefix)
}

// DisplayTitle bounds a title for use in listings of many sessions. A single
// known target keeps its full title. Truncation counts runes, not bytes, so
// multibyte titles are never cut mid-character.
func DisplayTitle(title string, max int) string {
	if max <= 0 {
		return title
	}
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
