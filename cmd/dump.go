package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmallory/cursor-export/internal"
	"github.com/spf13/cobra"
)

var dumpOut string

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <session-id>",
	Short: "Dump the raw decoded record of one session",
	Long: `Write the fully decoded JSON structure of a session's composer record
to a file, for archival or for debugging an unrecognized schema.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		stores, err := openAllStores()
		if err != nil {
			return err
		}
		defer internal.CloseStores(stores)

		rec, source, err := findRawComposer(stores, id)
		if err != nil {
			return err
		}

		outDir := dumpOut
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		path := filepath.Join(outDir, fmt.Sprintf("session_%s_raw.json", id))
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write dump: %w", err)
		}

		fmt.Printf("Dumped session %s (from %s) to %s\n", id, source, path)
		return nil
	},
}

// findRawComposer locates and decodes the composer record for id in the
// first store that holds one.
func findRawComposer(stores []*internal.Store, id string) (map[string]any, string, error) {
	for _, store := range stores {
		raw, err := store.QueryExact(internal.ComposerKeyPrefix + id)
		if err != nil {
			internal.Log.Warn().Err(err).Str("store", store.Label()).Msg("lookup failed")
			continue
		}
		if raw == nil {
			continue
		}
		rec, err := internal.DecodeRecord(*raw)
		if err != nil {
			return nil, "", err
		}
		return rec, store.Label(), nil
	}
	return nil, "", fmt.Errorf("no composer record found for session %s", id)
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVarP(&dumpOut, "out", "o", "", "Output directory (default from CURSOR_EXPORT_OUT)")
}
