package export

import (
	"encoding/json"
	"io"

	"github.com/jmallory/cursor-export/internal"
)

// JSONExporter writes sessions as one pretty-printed JSON array.
type JSONExporter struct{}

func (e *JSONExporter) Export(sessions []*internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sessions)
}

func (e *JSONExporter) Extension() string {
	return "json"
}
