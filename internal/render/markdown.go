// Package render turns assembled sessions into Markdown text lines. It does
// no parsing and has no failure modes; the truncation cap and the separator
// convention are what make the output reproducible.
package render

import (
	"fmt"
	"time"

	"github.com/jmallory/cursor-export/internal"
)

// MaxBodyChars caps a single rendered message body. Resolution keeps the
// full string; only rendering truncates.
const MaxBodyChars = 50000

// TruncationIndicator is appended to a capped body.
const TruncationIndicator = "… [truncated]"

// timeLayout is the fixed local-time format used for all rendered times.
const timeLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders a millisecond timestamp in local time, or an empty
// string for 0, which means unknown rather than the epoch.
func FormatTimestamp(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.Unix(0, ms*int64(time.Millisecond)).Format(timeLayout)
}

// Render formats sessions into ordered Markdown lines, one session after
// another in the order given.
func Render(sessions []*internal.Session) []string {
	var lines []string
	for _, s := range sessions {
		lines = append(lines, Session(s)...)
	}
	return lines
}

// Session formats a single session: heading, messages, separators.
func Session(s *internal.Session) []string {
	heading := fmt.Sprintf("## [%s] %s", s.Source, s.Title)
	if start := FormatTimestamp(s.FirstTimestamp()); start != "" {
		heading += " — " + start
	}

	lines := []string{heading, ""}
	if s.Title != s.ID {
		lines = append(lines, fmt.Sprintf("*Session: %s*", s.ID), "")
	}

	if len(s.Messages) == 0 {
		note := s.Note
		if note == "" {
			note = internal.NoContentNote
		}
		lines = append(lines, fmt.Sprintf("*(%s)*", note), "")
		return lines
	}

	for _, msg := range s.Messages {
		lines = append(lines, Message(msg)...)
		lines = append(lines, "---", "")
	}
	return lines
}

// Message formats one message: role/time header, capped body, code fences.
func Message(msg internal.Message) []string {
	role := "Assistant"
	if msg.Role == internal.RoleUser {
		role = "User"
	}

	lines := []string{fmt.Sprintf("### %s (%s)", role, FormatTimestamp(msg.Timestamp)), ""}

	if msg.Text != "" {
		lines = append(lines, TruncateBody(msg.Text), "")
	}

	for _, frag := range msg.CodeFragments {
		lines = append(lines, fmt.Sprintf("```%s", frag.Language), frag.Code, "```", "")
	}
	return lines
}

// TruncateBody caps a body at MaxBodyChars characters and marks the cut.
func TruncateBody(body string) string {
	if len(body) <= MaxBodyChars {
		return body
	}
	runes := []rune(body)
	if len(runes) <= MaxBodyChars {
		return body
	}
	return string(runes[:MaxBodyChars]) + TruncationIndicator
}
