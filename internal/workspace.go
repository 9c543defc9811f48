package internal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ComposerRef is a composer id and title known to a workspace, before the
// conversation itself has been assembled.
type ComposerRef struct {
	ID    string
	Title string
}

// workspaceLabel derives a human-readable label for a workspace directory
// from its workspace.json folder entry, falling back to the directory hash.
func workspaceLabel(dir, hash string) string {
	data, err := os.ReadFile(filepath.Join(dir, "workspace.json"))
	if err != nil {
		return hash
	}
	var meta struct {
		Folder string `json:"folder"`
	}
	if err := json.Unmarshal(data, &meta); err != nil || meta.Folder == "" {
		return hash
	}
	// folder is a URI like file:///d%3A/NEXFLOW; the last path segment is
	// the project name.
	folder := strings.TrimRight(meta.Folder, "/")
	if i := strings.LastIndex(folder, "/"); i >= 0 {
		folder = folder[i+1:]
	}
	if folder == "" {
		return hash
	}
	return folder
}

// ListComposers reads the workspace-level composer registry stored in
// ItemTable under composer.composerData. Its allComposers field has been both
// a list and an id-keyed map across schema generations.
func ListComposers(store RecordStore) ([]ComposerRef, error) {
	type itemReader interface {
		ReadItem(key string) (*RawRecord, error)
	}
	reader, ok := store.(itemReader)
	if !ok {
		return nil, nil
	}

	raw, err := reader.ReadItem("composer.composerData")
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	rec, err := DecodeRecord(*raw)
	if err != nil {
		Log.Debug().Err(err).Str("store", store.Label()).Msg("composer registry undecodable")
		return nil, nil
	}

	var entries []any
	switch all := rec["allComposers"].(type) {
	case []any:
		entries = all
	case map[string]any:
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entries = append(entries, all[k])
		}
	default:
		return nil, nil
	}

	var refs []ComposerRef
	for _, entry := range entries {
		comp, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id := stringField(comp, "id", "composerId")
		if id == "" {
			continue
		}
		title := ResolveTitle(comp, id)
		refs = append(refs, ComposerRef{ID: id, Title: title})
	}
	return refs, nil
}

func stringField(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
