package internal

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"
)

// Aggregate merges sessions recovered from multiple storage locations into
// one export order. The keep predicate filters by provenance label; when it
// rejects everything, the unfiltered input is used instead, since
// over-inclusion beats a silently empty export. Surviving sessions are
// deduplicated by content and stably sorted by first-message time (0 first),
// so equal or missing timestamps retain input order.
func Aggregate(sessions []*Session, keep func(source string) bool) []*Session {
	filtered := sessions
	if keep != nil {
		filtered = make([]*Session, 0, len(sessions))
		for _, s := range sessions {
			if keep(s.Source) {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) == 0 {
			filtered = sessions
		}
	}

	unique := dedupeSessions(filtered)

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].FirstTimestamp() < unique[j].FirstTimestamp()
	})
	return unique
}

// dedupeSessions drops sessions whose message content is identical to one
// already seen, keeping the first occurrence. The same conversation can
// surface from both the global store and a workspace store.
func dedupeSessions(sessions []*Session) []*Session {
	seen := make(map[string]bool, len(sessions))
	unique := make([]*Session, 0, len(sessions))
	for _, s := range sessions {
		hash := hashSessionContent(s)
		if seen[hash] {
			continue
		}
		seen[hash] = true
		unique = append(unique, s)
	}
	return unique
}

func hashSessionContent(s *Session) string {
	h := sha256.New()
	h.Write([]byte(s.ID))
	for _, msg := range s.Messages {
		h.Write([]byte{0})
		h.Write([]byte(msg.Role))
		h.Write([]byte(msg.Text))
		var ts [8]byte
		binary.LittleEndian.PutUint64(ts[:], uint64(msg.Timestamp))
		h.Write(ts[:])
		for _, frag := range msg.CodeFragments {
			h.Write([]byte(frag.Language))
			h.Write([]byte(frag.Code))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
