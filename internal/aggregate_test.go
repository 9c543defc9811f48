package internal

import (
	"testing"
)

func session(id, source string, firstTS int64, texts ...string) *Session {
	s := &Session{ID: id, Title: id, Source: source}
	for i, text := range texts {
		ts := int64(0)
		if i == 0 {
			ts = firstTS
		}
		s.Messages = append(s.Messages, Message{Role: RoleUser, Text: text, Timestamp: ts})
	}
	return s
}

func TestAggregate_SortsByFirstMessageTime(t *testing.T) {
	in := []*Session{
		session("b", "Global", 2000, "later"),
		session("a", "Global", 1000, "earlier"),
		session("c", "Global", 0, "unknown"),
	}

	out := Aggregate(in, nil)
	if len(out) != 3 {
		t.Fatalf("got %d sessions, want 3", len(out))
	}
	// 0 sorts first.
	if out[0].ID != "c" || out[1].ID != "a" || out[2].ID != "b" {
		t.Errorf("order = %s,%s,%s, want c,a,b", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestAggregate_StableOnEqualTimestamps(t *testing.T) {
	in := []*Session{
		session("first-in", "Global", 1000, "x"),
		session("second-in", "ws", 1000, "y"),
	}

	out := Aggregate(in, nil)
	if out[0].ID != "first-in" || out[1].ID != "second-in" {
		t.Errorf("equal timestamps must retain input order, got %s,%s", out[0].ID, out[1].ID)
	}
}

func TestAggregate_FilterBySource(t *testing.T) {
	in := []*Session{
		session("g", "Global", 1000, "a"),
		session("w", "nexflow", 2000, "b"),
		session("o", "other-ws", 3000, "c"),
	}

	keep := func(source string) bool { return source == "Global" || source == "nexflow" }
	out := Aggregate(in, keep)
	if len(out) != 2 {
		t.Fatalf("got %d sessions, want 2", len(out))
	}
	for _, s := range out {
		if s.Source == "other-ws" {
			t.Errorf("filtered source leaked through: %s", s.ID)
		}
	}
}

func TestAggregate_EmptyFilterFallsBackToAll(t *testing.T) {
	in := []*Session{
		session("a", "ws-1", 1000, "x"),
		session("b", "ws-2", 2000, "y"),
	}

	out := Aggregate(in, func(string) bool { return false })
	if len(out) != 2 {
		t.Errorf("empty filter result must fall back to unfiltered input, got %d sessions", len(out))
	}
}

func TestAggregate_DeduplicatesByContent(t *testing.T) {
	a := session("same", "Global", 1000, "hello")
	b := session("same", "nexflow", 1000, "hello") // same conversation, other store
	c := session("same", "Global", 1000, "different")

	out := Aggregate([]*Session{a, b, c}, nil)
	if len(out) != 2 {
		t.Fatalf("got %d sessions, want 2 (duplicate content dropped)", len(out))
	}
	if out[0].Source != "Global" {
		t.Errorf("first occurrence must win, got source %q", out[0].Source)
	}
}
