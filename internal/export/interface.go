package export

import (
	"fmt"
	"io"

	"github.com/jmallory/cursor-export/internal"
)

// Exporter writes an ordered set of sessions as one artifact.
type Exporter interface {
	Export(sessions []*internal.Session, w io.Writer) error
	Extension() string
}

// NewExporter creates an exporter for the given format name.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: md, json, jsonl, yaml)", format)
	}
}
