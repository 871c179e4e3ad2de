//go:build windows

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// GetConfigPath returns %AppData%\M4\settings.toml, creating the directory.
func GetConfigPath() (string, error) {
	appData := os.Getenv("AppData")
	if appData == "" {
		return "", errors.New("could not get AppData environment variable")
	}

	appConfigDir := filepath.Join(appData, AppName)
	if err := os.MkdirAll(appConfigDir, 0750); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", appConfigDir, err)
	}

	return filepath.Join(appConfigDir, SettingsFile), nil
}
