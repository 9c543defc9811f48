package internal

import (
	"encoding/json"
	"strings"
)

// Field alias tables, evaluated in order: first present wins. Supporting a
// new schema generation means appending an alias here, not adding a branch.
var (
	textAliases = []fieldPath{
		{"text"},
		{"content"},
		{"rawText"},
		{"message", "text"},
	}

	timestampAliases = []fieldPath{
		{"timingInfo", "clientStartTime"},
		{"timestamp"},
	}

	titleAliases = []fieldPath{
		{"name"},
		{"title"},
	}
)

// fieldPath addresses a field inside a decoded record, one map level per
// element.
type fieldPath []string

// ResolveMessage extracts a canonical Message from a decoded record. It is
// total on any mapping: a record lacking every known alias for a field gets
// that field's default (empty text, assistant role, zero timestamp).
func ResolveMessage(rec map[string]any) Message {
	return Message{
		Role:          resolveRole(rec),
		Text:          resolveText(rec),
		Timestamp:     resolveTimestamp(rec),
		CodeFragments: resolveCodeFragments(rec),
	}
}

// resolveRole maps the numeric type code (1 = user, anything else =
// assistant) or, when absent, a string role field compared case-insensitively
// against "user".
func resolveRole(rec map[string]any) Role {
	if code, ok := numberField(rec, "type"); ok {
		if code == 1 {
			return RoleUser
		}
		return RoleAssistant
	}
	if role, ok := rec["role"].(string); ok {
		if strings.EqualFold(role, "user") {
			return RoleUser
		}
	}
	return RoleAssistant
}

func resolveText(rec map[string]any) string {
	for _, path := range textAliases {
		v, ok := lookup(rec, path)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return strings.TrimSpace(t)
			}
		case map[string]any:
			// Some generations nest the body one level deeper.
			if s, ok := t["text"].(string); ok && s != "" {
				return strings.TrimSpace(s)
			}
			return ""
		}
	}
	return ""
}

func resolveTimestamp(rec map[string]any) int64 {
	for _, path := range timestampAliases {
		v, ok := lookup(rec, path)
		if !ok {
			continue
		}
		if ts, ok := asInt64(v); ok && ts > 0 {
			return ts
		}
	}
	return 0
}

func resolveCodeFragments(rec map[string]any) []CodeFragment {
	blocks, ok := rec["codeBlocks"].([]any)
	if !ok {
		return nil
	}
	var fragments []CodeFragment
	for _, b := range blocks {
		block, ok := b.(map[string]any)
		if !ok {
			continue
		}
		code, _ := block["code"].(string)
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		lang, _ := block["language"].(string)
		fragments = append(fragments, CodeFragment{Language: lang, Code: code})
	}
	return fragments
}

// ResolveTitle picks a session title from a record: name, else title, else
// the fallback (normally the session id).
func ResolveTitle(rec map[string]any, fallback string) string {
	for _, path := range titleAliases {
		if v, ok := lookup(rec, path); ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

// lookup walks a fieldPath through nested mappings.
func lookup(rec map[string]any, path fieldPath) (any, bool) {
	var cur any = rec
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func numberField(rec map[string]any, key string) (int64, bool) {
	v, ok := rec[key]
	if !ok {
		return 0, false
	}
	return asInt64(v)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
