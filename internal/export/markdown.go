package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmallory/cursor-export/internal"
	"github.com/jmallory/cursor-export/internal/render"
)

// MarkdownExporter writes sessions as one Markdown document.
type MarkdownExporter struct {
	// Header, when set, is emitted as a document title line before the
	// sessions.
	Header string
}

// Export writes the rendered session lines, joined with newlines.
func (e *MarkdownExporter) Export(sessions []*internal.Session, w io.Writer) error {
	var lines []string
	if e.Header != "" {
		lines = append(lines, "# "+e.Header, "")
	}
	lines = append(lines, render.Render(sessions)...)

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("failed to write markdown: %w", err)
	}
	return nil
}

// Extension returns the file extension for this format.
func (e *MarkdownExporter) Extension() string {
	return "md"
}
