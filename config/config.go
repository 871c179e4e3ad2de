package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// AppName is used for the config directory
const AppName = "M4"

// SettingsFile is the name of the settings file inside the config directory.
const SettingsFile = "settings.toml"

// Settings holds the persisted application settings.
type Settings struct {
	GameDir string `toml:"game_dir"`
}

// LoadErrorKind tells a missing settings file apart from one that is unusable.
type LoadErrorKind int

const (
	// FileNotFound means the settings file does not exist yet (first run).
	FileNotFound LoadErrorKind = iota
	// CantOpenFile means the file exists but could not be opened or read.
	CantOpenFile
	// MalformedFile means the file was read but is not valid settings TOML.
	MalformedFile
)

func (k LoadErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "File not found"
	case CantOpenFile:
		return "Cannot open file"
	case MalformedFile:
		return "Malformed file"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is checks against a *LoadError.
var (
	ErrFileNotFound  = errors.New("settings file not found")
	ErrCantOpenFile  = errors.New("cannot open settings file")
	ErrMalformedFile = errors.New("malformed settings file")
)

// LoadError is returned by Load. Err carries the underlying cause, if any.
type LoadError struct {
	Kind LoadErrorKind
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to load settings %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("failed to load settings %s: %s", e.Path, e.Kind)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrFileNotFound:
		return e.Kind == FileNotFound
	case ErrCantOpenFile:
		return e.Kind == CantOpenFile
	case ErrMalformedFile:
		return e.Kind == MalformedFile
	}
	return false
}

// Load reads the settings file at path.
// A file that cannot be stat'ed is reported as FileNotFound so the caller can
// start first-time setup.
func Load(path string) (Settings, error) {
	var settings Settings

	// Anything Stat can't see counts as missing, not only ENOENT
	if _, err := os.Stat(path); err != nil {
		loadErr := &LoadError{Kind: FileNotFound, Path: path}
		if !errors.Is(err, os.ErrNotExist) {
			loadErr.Err = err
		}
		return settings, loadErr
	}

	file, err := os.Open(path)
	if err != nil {
		return settings, &LoadError{Kind: CantOpenFile, Path: path, Err: err}
	}
	defer file.Close()

	// Directories open fine on unix but fail here, which is still "can't open"
	data, err := io.ReadAll(file)
	if err != nil {
		return settings, &LoadError{Kind: CantOpenFile, Path: path, Err: err}
	}

	if _, err := toml.Decode(string(data), &settings); err != nil {
		return Settings{}, &LoadError{Kind: MalformedFile, Path: path, Err: err}
	}

	return settings, nil
}

// Save writes settings to path, replacing any existing file.
// It creates the parent directory if it doesn't exist.
func Save(path string, settings Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", dir, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create settings file %s: %w", path, err)
	}

	if err := toml.NewEncoder(file).Encode(settings); err != nil {
		file.Close()
		return fmt.Errorf("could not encode settings to file %s: %w", path, err)
	}

	// Close errors matter here, a failed flush means a truncated file
	if err := file.Close(); err != nil {
		return fmt.Errorf("could not write settings file %s: %w", path, err)
	}

	return nil
}
