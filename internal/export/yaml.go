package export

import (
	"io"

	"github.com/jmallory/cursor-export/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes sessions as one YAML document.
type YAMLExporter struct{}

func (e *YAMLExporter) Export(sessions []*internal.Session, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(sessions)
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
