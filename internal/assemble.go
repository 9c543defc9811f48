package internal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Key layout in cursorDiskKV. composerData holds one record per session;
// bubbleId fans a session out into one record per message.
const (
	ComposerKeyPrefix = "composerData:"
	BubbleKeyPrefix   = "bubbleId:"
)

// Aliases under which a composer record may embed its ordered message list.
var conversationAliases = []string{"conversation", "bubbles", "messages"}

// RecordStore is the read-only capability the assembler consumes. A concrete
// store is opened and closed by the caller; the assembler never mutates it.
type RecordStore interface {
	// Label is the human-readable provenance of this store ("Global" or a
	// workspace name).
	Label() string
	// QueryExact returns the record stored under key, or nil when absent.
	QueryExact(key string) (*RawRecord, error)
	// QueryPrefix returns every record whose key starts with prefix, in no
	// guaranteed order; the assembler re-sorts by key itself.
	QueryPrefix(prefix string) ([]RawRecord, error)
	// ScanItems returns ItemTable rows whose key matches any LIKE pattern.
	ScanItems(patterns ...string) ([]RawRecord, error)
}

// Assembler reconstructs conversation sessions from one store.
type Assembler struct {
	store RecordStore
}

func NewAssembler(store RecordStore) *Assembler {
	return &Assembler{store: store}
}

// Assemble reconstructs the session with the given id. It always returns a
// session object: the inline strategy first, the per-message fan-out second,
// and an empty session annotated "no content found" when neither strategy
// finds anything, so downstream code stays total. The title comes from the
// composer record whenever one decodes, so a named session keeps its name
// even when its messages live in fan-out records.
func (a *Assembler) Assemble(sessionID string) *Session {
	title := sessionID
	if rec := a.composerRecord(sessionID); rec != nil {
		title = ResolveTitle(rec, sessionID)
		if msgs, ok := inlineMessages(rec); ok {
			return &Session{
				ID:       sessionID,
				Title:    title,
				Source:   a.store.Label(),
				Messages: msgs,
			}
		}
	}
	if s := a.assembleFanOut(sessionID, title); s != nil {
		return s
	}
	return &Session{
		ID:     sessionID,
		Title:  title,
		Source: a.store.Label(),
		Note:   NoContentNote,
	}
}

// composerRecord fetches and decodes the composerData record for a session,
// or nil when the record is absent or undecodable.
func (a *Assembler) composerRecord(sessionID string) map[string]any {
	raw, err := a.store.QueryExact(ComposerKeyPrefix + sessionID)
	if err != nil {
		Log.Warn().Err(err).Str("session", sessionID).Msg("exact lookup failed")
		return nil
	}
	if raw == nil {
		return nil
	}
	rec, err := DecodeRecord(*raw)
	if err != nil {
		Log.Debug().Err(err).Str("key", raw.Key).Msg("composer record undecodable, trying fan-out")
		return nil
	}
	return rec
}

// inlineMessages extracts an embedded message list from a decoded composer
// record, preserving list order. ok is false when no alias holds a non-empty
// list.
func inlineMessages(rec map[string]any) ([]Message, bool) {
	for _, alias := range conversationAliases {
		list, ok := rec[alias].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		msgs := make([]Message, 0, len(list))
		for i, el := range list {
			m, ok := el.(map[string]any)
			if !ok {
				msgs = append(msgs, ParseFailureMessage(fmt.Sprintf("%s[%d]", alias, i), errNotAMapping))
				continue
			}
			msgs = append(msgs, ResolveMessage(m))
		}
		return msgs, true
	}
	return nil, false
}

// assembleFanOut tries the scattered per-message strategy: every record keyed
// bubbleId:<sessionID>:<suffix>. Keys are ordered lexicographically, which is
// the authoritative ordering; per-message records carry no sequence number.
// That assumption only holds when suffixes are zero-padded, so when every
// record decoded cleanly and carries a timestamp, a stable re-sort by
// timestamp corrects unpadded suffixes without disturbing ties.
func (a *Assembler) assembleFanOut(sessionID, title string) *Session {
	prefix := BubbleKeyPrefix + sessionID + ":"
	rows, err := a.store.QueryPrefix(prefix)
	if err != nil {
		Log.Warn().Err(err).Str("session", sessionID).Msg("prefix scan failed")
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	msgs := make([]Message, 0, len(rows))
	timestamped := true
	for _, row := range rows {
		rec, err := DecodeRecord(row)
		if err != nil {
			msgs = append(msgs, ParseFailureMessage(row.Key, err))
			timestamped = false
			continue
		}
		m := ResolveMessage(rec)
		if m.Timestamp == 0 {
			timestamped = false
		}
		msgs = append(msgs, m)
	}

	if timestamped {
		sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp < msgs[j].Timestamp })
	}

	return &Session{
		ID:       sessionID,
		Title:    title,
		Source:   a.store.Label(),
		Messages: msgs,
	}
}

// CollectAll discovers and assembles every session the store holds: all
// composerData records, plus chat-shaped entries scattered in ItemTable under
// historical keys.
func (a *Assembler) CollectAll() []*Session {
	var sessions []*Session

	rows, err := a.store.QueryPrefix(ComposerKeyPrefix)
	if err != nil {
		Log.Warn().Err(err).Str("store", a.store.Label()).Msg("composer scan failed")
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	for _, row := range rows {
		id := strings.TrimPrefix(row.Key, ComposerKeyPrefix)
		rec, err := DecodeRecord(row)
		if err != nil {
			Log.Debug().Err(err).Str("key", row.Key).Msg("skipping undecodable composer record")
			continue
		}
		if msgs, ok := inlineMessages(rec); ok {
			sessions = append(sessions, &Session{
				ID:       id,
				Title:    ResolveTitle(rec, id),
				Source:   a.store.Label(),
				Messages: msgs,
			})
			continue
		}
		if s := a.assembleFanOut(id, ResolveTitle(rec, id)); s != nil {
			sessions = append(sessions, s)
		}
	}

	seen := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		seen[s.ID] = true
	}

	// Older generations parked whole conversations in ItemTable under
	// chat/composer/aichat keys.
	items, err := a.store.ScanItems("%chat%", "%composer%", "%aichat%")
	if err != nil {
		Log.Debug().Err(err).Str("store", a.store.Label()).Msg("item table scan failed")
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	for _, item := range items {
		if seen[item.Key] {
			continue
		}
		rec, err := DecodeRecord(item)
		if err != nil {
			continue
		}
		msgs, ok := inlineMessages(rec)
		if !ok {
			continue
		}
		seen[item.Key] = true
		sessions = append(sessions, &Session{
			ID:       item.Key,
			Title:    ResolveTitle(rec, item.Key),
			Source:   a.store.Label(),
			Messages: msgs,
		})
	}

	// Workspace stores keep a composer registry whose entries may point at
	// sessions with no local records; only assembled content is collected
	// here, empty ids stay visible through the list surface.
	refs, err := ListComposers(a.store)
	if err != nil {
		Log.Debug().Err(err).Str("store", a.store.Label()).Msg("composer registry read failed")
	}
	for _, ref := range refs {
		if seen[ref.ID] {
			continue
		}
		s := a.Assemble(ref.ID)
		if len(s.Messages) == 0 {
			continue
		}
		if s.Title == s.ID && ref.Title != "" {
			s.Title = ref.Title
		}
		seen[ref.ID] = true
		sessions = append(sessions, s)
	}

	return sessions
}

var errNotAMapping = errors.New("list element is not a mapping")
