//go:build js || wasip1

package config

// GetConfigPath returns a relative settings file; there is no user config dir here.
func GetConfigPath() (string, error) {
	return SettingsFile, nil
}
