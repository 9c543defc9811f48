package internal

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Decode interprets a stored value as a JSON object. Values are written by
// several generations of the application: most are plain JSON text, some are
// the same JSON base64-encoded. Decoding is all-or-nothing: the result is a
// full mapping or a *DecodeError, never a partial structure.
func Decode(value []byte) (map[string]any, error) {
	rec, err := decodeJSON(value)
	if err == nil {
		return rec, nil
	}

	// Fallback: treat the value as base64-encoded JSON text.
	decoded, b64Err := base64.StdEncoding.DecodeString(string(value))
	if b64Err == nil {
		if rec, err2 := decodeJSON(decoded); err2 == nil {
			return rec, nil
		}
	}

	// Carry the original parse error; it names the real shape of the value.
	return nil, &DecodeError{Err: err}
}

// DecodeRecord is Decode with the record key attached to the error.
func DecodeRecord(rec RawRecord) (map[string]any, error) {
	m, err := Decode(rec.Value)
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.Key = rec.Key
			return nil, de
		}
		return nil, &DecodeError{Key: rec.Key, Err: err}
	}
	return m, nil
}

func decodeJSON(data []byte) (map[string]any, error) {
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	// "null" unmarshals into a nil map without error.
	if rec == nil {
		return nil, errors.New("value is JSON null, not a mapping")
	}
	return rec, nil
}
