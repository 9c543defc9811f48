package internal

import (
	"errors"
	"fmt"
)

// ErrNoUsableLocations is returned when not a single storage location could
// be opened. It is the only condition that terminates a run outright.
var ErrNoUsableLocations = errors.New("no usable storage location found")

// DecodeError means a raw value could be interpreted by neither decoding
// path. It is local to one record; callers skip the record, never abort.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("decode %s: value is neither JSON nor base64-encoded JSON: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("decode: value is neither JSON nor base64-encoded JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StorageError reports a failure to open or query a whole storage location.
// The location is skipped and processing continues with the rest.
type StorageError struct {
	Path string
	Op   string // "open", "query"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
