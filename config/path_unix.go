//go:build !windows && !js && !wasip1

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetConfigPath returns the full path to the settings file, following the
// XDG base directory layout. The config directory is created if needed.
func GetConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" || !filepath.IsAbs(configHome) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	appConfigDir := filepath.Join(configHome, AppName)
	if err := os.MkdirAll(appConfigDir, 0750); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", appConfigDir, err)
	}

	return filepath.Join(appConfigDir, SettingsFile), nil
}
