package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// OutputConfig describes where a command writes files.
type OutputConfig struct {
	// OutputDir is the --output flag value; empty means use ConfigKey.
	OutputDir string
	// ConfigKey is the viper key holding the configured directory.
	ConfigKey string
	// Default is used when neither the flag nor the config is set.
	Default string
}

// SetupOutputDir resolves the output directory from flag, config and
// default, in that order, and creates it. The resolved path is stored back
// in cfg.OutputDir.
func SetupOutputDir(cfg *OutputConfig) error {
	outputDir := cfg.OutputDir
	if outputDir == "" && cfg.ConfigKey != "" {
		outputDir = viper.GetString(cfg.ConfigKey)
	}
	if outputDir == "" {
		outputDir = cfg.Default
	}
	if outputDir == "" {
		return fmt.Errorf("no output directory configured")
	}

	cfg.OutputDir = filepath.Clean(outputDir)
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
