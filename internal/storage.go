package internal

import (
	"database/sql"
	"fmt"
	"strings"
)

// StorageLocation names one state.vscdb on disk before it is opened.
type StorageLocation struct {
	Label string // "Global" or a workspace name
	Path  string // path to the state.vscdb file
}

// Store is an opened storage location. It implements RecordStore and is the
// only handle the pipeline touches; it is read-only for its whole life.
type Store struct {
	label string
	db    *sql.DB
}

// NewStore wraps an opened database with its provenance label.
func NewStore(label string, db *sql.DB) *Store {
	return &Store{label: label, db: db}
}

// OpenStore opens a storage location read-only.
func OpenStore(loc StorageLocation) (*Store, error) {
	db, err := OpenDatabase(loc.Path)
	if err != nil {
		return nil, &StorageError{Path: loc.Path, Op: "open", Err: err}
	}
	return &Store{label: loc.Label, db: db}, nil
}

// Label returns the provenance label of this store.
func (s *Store) Label() string { return s.label }

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// QueryExact returns the cursorDiskKV record stored under key, or nil when
// the key (or the whole table) is absent.
func (s *Store) QueryExact(key string) (*RawRecord, error) {
	ok, err := tableExists(s.db, "cursorDiskKV")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var value []byte
	err = s.db.QueryRow("SELECT value FROM cursorDiskKV WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Path: s.label, Op: "query", Err: err}
	}
	if value == nil {
		return nil, nil
	}
	return &RawRecord{Key: key, Value: value}, nil
}

// QueryPrefix returns every cursorDiskKV record whose key starts with prefix.
// No ordering is guaranteed; the assembler sorts by key itself.
func (s *Store) QueryPrefix(prefix string) ([]RawRecord, error) {
	ok, err := tableExists(s.db, "cursorDiskKV")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	records, err := queryKeyValue(s.db,
		"SELECT key, value FROM cursorDiskKV WHERE key LIKE ? ESCAPE '\\' AND value IS NOT NULL",
		escapeLike(prefix)+"%")
	if err != nil {
		return nil, &StorageError{Path: s.label, Op: "query", Err: err}
	}
	return records, nil
}

// HasSession reports whether the store holds any trace of the session id,
// either a composer record or at least one fan-out record.
func (s *Store) HasSession(sessionID string) (bool, error) {
	rec, err := s.QueryExact(ComposerKeyPrefix + sessionID)
	if err != nil {
		return false, err
	}
	if rec != nil {
		return true, nil
	}
	rows, err := s.QueryPrefix(BubbleKeyPrefix + sessionID + ":")
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// ScanItems returns ItemTable rows whose key matches any of the LIKE
// patterns. Missing table means no rows.
func (s *Store) ScanItems(patterns ...string) ([]RawRecord, error) {
	ok, err := tableExists(s.db, "ItemTable")
	if err != nil {
		return nil, err
	}
	if !ok || len(patterns) == 0 {
		return nil, nil
	}

	conds := make([]string, len(patterns))
	args := make([]any, len(patterns))
	for i, p := range patterns {
		conds[i] = "key LIKE ?"
		args[i] = p
	}
	query := "SELECT key, value FROM ItemTable WHERE (" + strings.Join(conds, " OR ") + ") AND value IS NOT NULL"

	records, err := queryKeyValue(s.db, query, args...)
	if err != nil {
		return nil, &StorageError{Path: s.label, Op: "query", Err: err}
	}
	return records, nil
}

// ReadItem returns the ItemTable row stored under exactly key, or nil.
func (s *Store) ReadItem(key string) (*RawRecord, error) {
	ok, err := tableExists(s.db, "ItemTable")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var value []byte
	err = s.db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Path: s.label, Op: "query", Err: err}
	}
	if value == nil {
		return nil, nil
	}
	return &RawRecord{Key: key, Value: value}, nil
}

// Tables lists the store's table names, for inspection.
func (s *Store) Tables() ([]string, error) {
	return listTables(s.db)
}

// SampleKeys returns up to limit keys from the named table, in key order.
func (s *Store) SampleKeys(table string, limit int) ([]string, error) {
	ok, err := tableExists(s.db, table)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	// Table names cannot be bound parameters; the name comes from Tables().
	rows, err := s.db.Query(fmt.Sprintf("SELECT key FROM %q ORDER BY key LIMIT ?", table), limit)
	if err != nil {
		return nil, &StorageError{Path: s.label, Op: "query", Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// OpenStores opens every location that can be opened, logging and skipping
// the rest. ErrNoUsableLocations is returned only when none opened, the one
// condition that ends a run.
func OpenStores(locations []StorageLocation) ([]*Store, error) {
	var stores []*Store
	for _, loc := range locations {
		store, err := OpenStore(loc)
		if err != nil {
			Log.Warn().Err(err).Str("label", loc.Label).Str("path", loc.Path).Msg("skipping unusable storage location")
			continue
		}
		stores = append(stores, store)
	}
	if len(stores) == 0 {
		return nil, ErrNoUsableLocations
	}
	return stores, nil
}

// CloseStores closes every store, logging close failures.
func CloseStores(stores []*Store) {
	for _, s := range stores {
		if err := s.Close(); err != nil {
			Log.Warn().Err(err).Str("label", s.Label()).Msg("failed to close store")
		}
	}
}

// escapeLike escapes LIKE metacharacters so a prefix is matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
