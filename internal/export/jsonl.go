package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmallory/cursor-export/internal"
)

// JSONLExporter writes one JSON object per message, tagged with its session.
type JSONLExporter struct{}

func (e *JSONLExporter) Export(sessions []*internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, session := range sessions {
		for _, msg := range session.Messages {
			obj := map[string]any{
				"session": session.ID,
				"source":  session.Source,
				"role":    msg.Role,
				"text":    msg.Text,
			}
			if msg.Timestamp != 0 {
				obj["timestamp"] = msg.Timestamp
			}
			if len(msg.CodeFragments) > 0 {
				obj["codeFragments"] = msg.CodeFragments
			}
			if err := enc.Encode(obj); err != nil {
				return fmt.Errorf("failed to encode message: %w", err)
			}
		}
	}

	return nil
}

func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
