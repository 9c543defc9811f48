package internal

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries the few knobs that can be set from the environment.
// Command-line flags take precedence over these.
type Config struct {
	// StorageRoot overrides the detected Cursor User directory.
	StorageRoot string `env:"CURSOR_EXPORT_STORAGE"`
	// OutputDir is where export artifacts land.
	OutputDir string `env:"CURSOR_EXPORT_OUT" envDefault:"./chat_history_export"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
