package export

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jmallory/cursor-export/internal"
)

func sampleSessions() []*internal.Session {
	return []*internal.Session{
		{
			ID:     "abc-123",
			Title:  "Build pipeline question",
			Source: "Global",
			Messages: []internal.Message{
				{Role: internal.RoleUser, Text: "how do I cache deps?", Timestamp: 1700000000000},
				{
					Role:      internal.RoleAssistant,
					Text:      "Use a lockfile hash as the cache key.",
					Timestamp: 1700000001000,
					CodeFragments: []internal.CodeFragment{
						{Language: "yaml", Code: "key: deps-${{ hashFiles('go.sum') }}"},
					},
				},
			},
		},
		{
			ID:     "empty-1",
			Title:  "empty-1",
			Source: "Global",
			Note:   internal.NoContentNote,
		},
	}
}

func TestNewExporter(t *testing.T) {
	cases := []struct {
		format string
		ext    string
	}{
		{"md", "md"},
		{"markdown", "md"},
		{"json", "json"},
		{"jsonl", "jsonl"},
		{"yaml", "yaml"},
	}
	for _, tc := range cases {
		exp, err := NewExporter(tc.format)
		if err != nil {
			t.Fatalf("NewExporter(%q): %v", tc.format, err)
		}
		if exp.Extension() != tc.ext {
			t.Errorf("NewExporter(%q).Extension() = %q, want %q", tc.format, exp.Extension(), tc.ext)
		}
	}

	if _, err := NewExporter("xml"); err == nil {
		t.Error("NewExporter(\"xml\") should fail")
	}
}

func TestMarkdownExporter(t *testing.T) {
	var buf strings.Builder
	exp := &MarkdownExporter{Header: "Cursor chat history export"}
	if err := exp.Export(sampleSessions(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "# Cursor chat history export\n") {
		t.Errorf("output should start with the header, got %q", out[:min(len(out), 60)])
	}
	for _, want := range []string{
		"Build pipeline question",
		"how do I cache deps?",
		"```yaml",
		internal.NoContentNote,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMarkdownExporterNoHeader(t *testing.T) {
	var buf strings.Builder
	exp := &MarkdownExporter{}
	if err := exp.Export(sampleSessions(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.HasPrefix(buf.String(), "# ") {
		t.Error("no document title expected without a header")
	}
}

func TestJSONExporter(t *testing.T) {
	var buf strings.Builder
	if err := (&JSONExporter{}).Export(sampleSessions(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var decoded []*internal.Session
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d sessions, want 2", len(decoded))
	}
	if decoded[0].ID != "abc-123" || len(decoded[0].Messages) != 2 {
		t.Errorf("first session round-trip mismatch: %+v", decoded[0])
	}
}

func TestJSONLExporter(t *testing.T) {
	var buf strings.Builder
	if err := (&JSONLExporter{}).Export(sampleSessions(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}

	scanner := bufio.NewScanner(strings.NewReader(buf.String()))
	var lines []map[string]any
	for scanner.Scan() {
		var obj map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &obj); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		lines = append(lines, obj)
	}

	// Only the two messages of the first session; the empty session
	// contributes nothing.
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0]["session"] != "abc-123" || lines[0]["role"] != "user" {
		t.Errorf("unexpected first line: %v", lines[0])
	}
	if _, ok := lines[0]["codeFragments"]; ok {
		t.Error("first message has no code fragments, key should be absent")
	}
	if _, ok := lines[1]["codeFragments"]; !ok {
		t.Error("second message should carry its code fragments")
	}
}

func TestYAMLExporter(t *testing.T) {
	var buf strings.Builder
	if err := (&YAMLExporter{}).Export(sampleSessions(), &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"abc-123", "Build pipeline question", "user"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
