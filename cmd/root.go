package cmd

import (
	"fmt"
	"os"

	"github.com/jmallory/cursor-export/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	storagePath string
	cfg         internal.Config

	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cursor-export",
	Short: "Recover and export Cursor IDE chat history",
	Long: `Recover chat conversations from Cursor's state.vscdb databases and
export them as Markdown, JSON, JSONL or YAML.

Conversations are collected from the global store and every workspace store,
normalized across the historical storage schemas (inline conversation lists,
per-message bubble records, legacy ItemTable entries, base64-encoded values)
and ordered by time.

Quick Start:
  cursor-export list                    # List recoverable sessions
  cursor-export show <session-id>       # View one session in the terminal
  cursor-export export --format md      # Write a combined Markdown export`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetVerbose(verbose)
		var err error
		cfg, err = internal.LoadConfig()
		if err != nil {
			return err
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom Cursor User directory")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// storageRoot resolves the Cursor User directory: flag, then environment,
// then platform autodetection.
func storageRoot() (string, error) {
	if storagePath != "" {
		return storagePath, nil
	}
	if cfg.StorageRoot != "" {
		return cfg.StorageRoot, nil
	}
	return internal.DetectStorageRoot()
}

// openAllStores discovers and opens every usable storage location.
func openAllStores() ([]*internal.Store, error) {
	root, err := storageRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to locate storage: %w", err)
	}
	locations := internal.DiscoverLocations(root)
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w under %s", internal.ErrNoUsableLocations, root)
	}
	return internal.OpenStores(locations)
}
