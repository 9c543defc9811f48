package internal

import (
	"testing"

	"github.com/jmallory/cursor-export/testutil"
)

func TestStore_QueryExact(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	store := NewStore("Global", db)

	rec, err := store.QueryExact("composerData:inline-1")
	if err != nil {
		t.Fatalf("QueryExact() error = %v", err)
	}
	if rec == nil {
		t.Fatal("QueryExact() returned nil for an existing key")
	}
	if rec.Key != "composerData:inline-1" {
		t.Errorf("key = %q", rec.Key)
	}

	missing, err := store.QueryExact("composerData:nope")
	if err != nil {
		t.Fatalf("QueryExact(missing) error = %v", err)
	}
	if missing != nil {
		t.Errorf("QueryExact(missing) = %+v, want nil", missing)
	}
}

func TestStore_QueryPrefix(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	store := NewStore("Global", db)

	rows, err := store.QueryPrefix("bubbleId:fanout-1:")
	if err != nil {
		t.Fatalf("QueryPrefix() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d rows, want 2", len(rows))
	}
}

func TestStore_QueryPrefix_EscapesLikeMetacharacters(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	testutil.InsertKV(t, db, "bubbleId:a_b:001", `{"text":"wanted"}`)
	testutil.InsertKV(t, db, "bubbleId:aXb:001", `{"text":"unwanted"}`)

	store := NewStore("Global", db)
	rows, err := store.QueryPrefix("bubbleId:a_b:")
	if err != nil {
		t.Fatalf("QueryPrefix() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1: underscore must match literally", len(rows))
	}
	if rows[0].Key != "bubbleId:a_b:001" {
		t.Errorf("key = %q", rows[0].Key)
	}
}

func TestStore_MissingKVTableIsEmptyNotError(t *testing.T) {
	db := testutil.CreateLegacyDB(t)
	defer db.Close()
	store := NewStore("old-ws", db)

	rec, err := store.QueryExact("composerData:x")
	if err != nil {
		t.Fatalf("QueryExact() on legacy db error = %v", err)
	}
	if rec != nil {
		t.Errorf("QueryExact() = %+v, want nil", rec)
	}

	rows, err := store.QueryPrefix("bubbleId:")
	if err != nil {
		t.Fatalf("QueryPrefix() on legacy db error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestStore_HasSession(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	store := NewStore("Global", db)

	for _, id := range []string{"inline-1", "fanout-1"} {
		ok, err := store.HasSession(id)
		if err != nil {
			t.Fatalf("HasSession(%s) error = %v", id, err)
		}
		if !ok {
			t.Errorf("HasSession(%s) = false, want true", id)
		}
	}

	ok, err := store.HasSession("ghost")
	if err != nil {
		t.Fatalf("HasSession(ghost) error = %v", err)
	}
	if ok {
		t.Error("HasSession(ghost) = true, want false")
	}
}

func TestStore_ScanItems(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	store := NewStore("Global", db)

	items, err := store.ScanItems("%aichat%")
	if err != nil {
		t.Fatalf("ScanItems() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Key != "workbench.panel.aichat.view.aichat.chatdata" {
		t.Errorf("key = %q", items[0].Key)
	}
}

func TestStore_ReadItem(t *testing.T) {
	db := testutil.CreateInMemoryDB(t)
	defer db.Close()
	testutil.InsertItem(t, db, "composer.composerData", `{"allComposers":[]}`)

	store := NewStore("ws", db)
	rec, err := store.ReadItem("composer.composerData")
	if err != nil {
		t.Fatalf("ReadItem() error = %v", err)
	}
	if rec == nil {
		t.Fatal("ReadItem() returned nil for an existing key")
	}

	missing, err := store.ReadItem("not.there")
	if err != nil {
		t.Fatalf("ReadItem(missing) error = %v", err)
	}
	if missing != nil {
		t.Errorf("ReadItem(missing) = %+v, want nil", missing)
	}
}

func TestStore_TablesAndSampleKeys(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	store := NewStore("Global", db)

	tables, err := store.Tables()
	if err != nil {
		t.Fatalf("Tables() error = %v", err)
	}
	found := map[string]bool{}
	for _, name := range tables {
		found[name] = true
	}
	if !found["cursorDiskKV"] || !found["ItemTable"] {
		t.Errorf("Tables() = %v, want cursorDiskKV and ItemTable", tables)
	}

	keys, err := store.SampleKeys("cursorDiskKV", 2)
	if err != nil {
		t.Fatalf("SampleKeys() error = %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("got %d keys, want 2", len(keys))
	}
}

func TestAssembler_AgainstSQLiteStore(t *testing.T) {
	db := testutil.CreateTestDB(t)
	defer db.Close()
	store := NewStore("Global", db)

	s := NewAssembler(store).Assemble("inline-1")
	if s.Title != "Inline Demo" || len(s.Messages) != 2 {
		t.Errorf("inline session = %+v", s)
	}

	s = NewAssembler(store).Assemble("fanout-1")
	if len(s.Messages) != 2 {
		t.Fatalf("fan-out session has %d messages, want 2", len(s.Messages))
	}
	if s.Messages[0].Text != "first" || s.Messages[1].Text != "second" {
		t.Errorf("fan-out order = %q, %q", s.Messages[0].Text, s.Messages[1].Text)
	}
}

func TestOpenStores_SkipsUnusableLocations(t *testing.T) {
	_, err := OpenStores([]StorageLocation{
		{Label: "broken", Path: "/nonexistent/path/state.vscdb"},
	})
	if err != ErrNoUsableLocations {
		t.Errorf("OpenStores() error = %v, want ErrNoUsableLocations", err)
	}
}
