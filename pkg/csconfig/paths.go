package csconfig

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath picks the configuration file used when none is given
// on the command line: jellyctl.yaml beside the executable when present,
// otherwise the per-user configuration directory.
func DefaultConfigPath() (string, error) {
	if exe, err := os.Executable(); err == nil {
		portable := filepath.Join(filepath.Dir(exe), DefaultConfigFile)
		if _, err := os.Stat(portable); err == nil {
			return portable, nil
		}
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot find a configuration directory: %w", err)
	}

	return filepath.Join(dir, "jellyctl", DefaultConfigFile), nil
}

// ResolveConfigPath returns flagValue when set, DefaultConfigPath otherwise.
func ResolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	return DefaultConfigPath()
}
