package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmallory/cursor-export/internal"
	"github.com/jmallory/cursor-export/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	workspace string
	sessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recovered sessions to a file",
	Long: `Collect conversations from every storage location, merge and order
them, and write a single export artifact.

With --workspace, only sessions from the global store and the named workspace
are kept; if that filter matches nothing, everything is exported instead.
With --session-id, a single session is targeted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openAllStores()
		if err != nil {
			return err
		}
		defer internal.CloseStores(stores)

		sessions := collectSessions(stores, sessionID)

		var keep func(source string) bool
		if workspace != "" {
			keep = func(source string) bool {
				return source == internal.GlobalLabel || source == workspace
			}
		}
		sessions = internal.Aggregate(sessions, keep)

		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}
		if md, ok := exporter.(*export.MarkdownExporter); ok {
			md.Header = "Cursor chat history export"
		}

		outDir := outputDir
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := fmt.Sprintf("chat_history_%s.%s", time.Now().Format("20060102_150405"), exporter.Extension())
		path := filepath.Join(outDir, filename)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}

		if err := exporter.Export(sessions, file); err != nil {
			_ = file.Close()
			return fmt.Errorf("failed to export sessions: %w", err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}

		internal.Log.Info().Int("sessions", len(sessions)).Str("path", path).Msg("export complete")
		fmt.Printf("Exported %d session(s) to %s\n", len(sessions), path)
		return nil
	},
}

// collectSessions gathers sessions from every store: everything each store
// holds, or a single id when one was requested. A requested id that no store
// can satisfy still yields one "no content found" session so the request is
// visible in the output.
func collectSessions(stores []*internal.Store, targetID string) []*internal.Session {
	var sessions []*internal.Session

	if targetID == "" {
		for _, store := range stores {
			found := internal.NewAssembler(store).CollectAll()
			internal.Log.Info().Str("store", store.Label()).Int("sessions", len(found)).Msg("collected sessions")
			sessions = append(sessions, found...)
		}
		return sessions
	}

	var empty *internal.Session
	for _, store := range stores {
		s := internal.NewAssembler(store).Assemble(targetID)
		if len(s.Messages) > 0 {
			sessions = append(sessions, s)
		} else if empty == nil {
			empty = s
		}
	}
	if len(sessions) == 0 && empty != nil {
		sessions = append(sessions, empty)
	}
	return sessions
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "md", "Export format (md, json, jsonl, yaml)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (default from CURSOR_EXPORT_OUT)")
	exportCmd.Flags().StringVar(&workspace, "workspace", "", "Keep only the global store and this workspace label")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific session by ID")
}
