package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// GlobalLabel is the provenance label of the global storage location.
const GlobalLabel = "Global"

// DetectStorageRoot locates the Cursor User directory for the current
// operating system.
func DetectStorageRoot() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library/Application Support/Cursor/User"), nil
	case "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".config/Cursor/User"), nil
	case "windows":
		appdata := os.Getenv("APPDATA")
		if appdata == "" {
			return "", fmt.Errorf("APPDATA is not set")
		}
		return filepath.Join(appdata, "Cursor", "User"), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// DiscoverLocations enumerates every state.vscdb under the storage root: the
// global store first, then one per workspace, labeled by workspace name. Only
// locations whose database file exists are returned; opening is the caller's
// job.
func DiscoverLocations(root string) []StorageLocation {
	var locations []StorageLocation

	globalDB := filepath.Join(root, "globalStorage", "state.vscdb")
	if _, err := os.Stat(globalDB); err == nil {
		locations = append(locations, StorageLocation{Label: GlobalLabel, Path: globalDB})
	} else {
		Log.Debug().Str("path", globalDB).Msg("global storage database not found")
	}

	workspaceStorage := filepath.Join(root, "workspaceStorage")
	entries, err := os.ReadDir(workspaceStorage)
	if err != nil {
		return locations
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		hash := entry.Name()
		dbPath := filepath.Join(workspaceStorage, hash, "state.vscdb")
		if _, err := os.Stat(dbPath); err != nil {
			continue
		}
		label := workspaceLabel(filepath.Join(workspaceStorage, hash), hash)
		locations = append(locations, StorageLocation{Label: label, Path: dbPath})
	}

	return locations
}
