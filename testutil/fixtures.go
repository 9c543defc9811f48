package testutil

import (
	"database/sql"
	"testing"
)

// CreateTestDB creates an in-memory database seeded with one inline
// conversation, one fanned-out conversation, and a legacy ItemTable entry.
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	// Inline strategy: the composer record embeds its message list.
	InsertKV(t, db, "composerData:inline-1",
		`{"name":"Inline Demo","conversation":[`+
			`{"type":1,"text":"hi","timingInfo":{"clientStartTime":1000}},`+
			`{"text":"hello back"}]}`)

	// Fan-out strategy: a bare composer record plus per-message records.
	InsertKV(t, db, "composerData:fanout-1", `{"name":"Fanout Demo"}`)
	InsertKV(t, db, "bubbleId:fanout-1:001",
		`{"type":1,"text":"first","timingInfo":{"clientStartTime":2000}}`)
	InsertKV(t, db, "bubbleId:fanout-1:002",
		`{"type":2,"text":"second","timingInfo":{"clientStartTime":3000}}`)

	// Legacy ItemTable conversation.
	InsertItem(t, db, "workbench.panel.aichat.view.aichat.chatdata",
		`{"title":"Legacy Chat","conversation":[{"type":1,"text":"old message","timestamp":500}]}`)

	return db
}
