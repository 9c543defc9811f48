package cmd

import (
	"fmt"

	"github.com/jmallory/cursor-export/internal"
	"github.com/spf13/cobra"
)

var inspectKeyLimit int

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect the raw storage databases",
	Long: `Print the tables and a sample of keys for every storage location,
for figuring out which schema generation a database uses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stores, err := openAllStores()
		if err != nil {
			return err
		}
		defer internal.CloseStores(stores)

		for _, store := range stores {
			fmt.Printf("=== %s ===\n", store.Label())

			tables, err := store.Tables()
			if err != nil {
				internal.Log.Warn().Err(err).Str("store", store.Label()).Msg("failed to list tables")
				continue
			}
			fmt.Printf("  tables: %v\n", tables)

			for _, table := range []string{"cursorDiskKV", "ItemTable"} {
				keys, err := store.SampleKeys(table, inspectKeyLimit)
				if err != nil {
					internal.Log.Warn().Err(err).Str("table", table).Msg("failed to sample keys")
					continue
				}
				if keys == nil {
					continue
				}
				fmt.Printf("  %s keys (sample of %d):\n", table, len(keys))
				for _, key := range keys {
					fmt.Printf("    %s\n", key)
				}
			}

			// Chat-shaped ItemTable entries, with value sizes.
			items, err := store.ScanItems("%chat%", "%composer%", "%conversation%")
			if err == nil {
				for _, item := range items {
					fmt.Printf("  ItemTable: %s (value length %d)\n", item.Key, len(item.Value))
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVar(&inspectKeyLimit, "limit", 50, "Maximum keys to sample per table")
}
