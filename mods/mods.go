// Package mods reads and edits DivaModLoader mod folders.
package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-version"
)

// ConfigFile is the per-mod config and also the loader's own config in the game dir.
const ConfigFile = "config.toml"

// DefaultModsDir is used when the loader config does not name one.
const DefaultModsDir = "mods"

// ModConfig mirrors a mod's config.toml.
type ModConfig struct {
	Enabled     bool     `toml:"enabled"`
	Include     []string `toml:"include,omitempty"`
	DLL         []string `toml:"dll,omitempty"`
	Name        string   `toml:"name,omitempty"`
	Description string   `toml:"description,omitempty"`
	Version     string   `toml:"version,omitempty"`
	Date        string   `toml:"date,omitempty"`
	Author      string   `toml:"author,omitempty"`
}

// Mod is a mod folder found on disk.
type Mod struct {
	Dir    string // Absolute path of the mod folder
	Config ModConfig
}

// Title returns the configured name, falling back to the folder name.
func (m Mod) Title() string {
	if m.Config.Name != "" {
		return m.Config.Name
	}
	return filepath.Base(m.Dir)
}

// DisplayVersion normalises semver-ish versions ("1.2" -> "v1.2.0").
func (m Mod) DisplayVersion() string {
	if m.Config.Version == "" {
		return ""
	}
	v, err := version.NewVersion(m.Config.Version)
	if err != nil {
		return m.Config.Version
	}
	return "v" + v.String()
}

type loaderConfig struct {
	Mods string `toml:"mods"`
}

// ModsDir returns the mods folder configured in the loader's config.toml.
func ModsDir(gameDir string) string {
	var cfg loaderConfig
	if _, err := toml.DecodeFile(filepath.Join(gameDir, ConfigFile), &cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Debug("unreadable loader config, using default mods dir", "err", err)
		}
	}

	dir := cfg.Mods
	if dir == "" {
		dir = DefaultModsDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(gameDir, dir)
	}
	return dir
}

// Load reads the config.toml in a mod folder.
func Load(modDir string) (Mod, error) {
	var cfg ModConfig
	path := filepath.Join(modDir, ConfigFile)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Mod{}, fmt.Errorf("could not decode mod config %s: %w", path, err)
	}
	return Mod{Dir: modDir, Config: cfg}, nil
}

// Scan lists the mods in the game's mods folder, sorted by title.
// A missing mods folder is not an error.
func Scan(gameDir string) ([]Mod, error) {
	modsDir := ModsDir(gameDir)
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read mods directory %s: %w", modsDir, err)
	}

	var found []Mod
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		modDir := filepath.Join(modsDir, entry.Name())
		if _, err := os.Stat(filepath.Join(modDir, ConfigFile)); err != nil {
			continue
		}
		mod, err := Load(modDir)
		if err != nil {
			log.Warn("skipping mod", "dir", modDir, "err", err)
			continue
		}
		found = append(found, mod)
	}

	sort.Slice(found, func(i, j int) bool {
		return strings.ToLower(found[i].Title()) < strings.ToLower(found[j].Title())
	})
	return found, nil
}

// SetEnabled flips the mod's enabled flag and writes its config back.
func SetEnabled(mod *Mod, enabled bool) error {
	updated := mod.Config
	updated.Enabled = enabled

	path := filepath.Join(mod.Dir, ConfigFile)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create mod config %s: %w", path, err)
	}
	if err := toml.NewEncoder(file).Encode(updated); err != nil {
		file.Close()
		return fmt.Errorf("could not encode mod config %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("could not write mod config %s: %w", path, err)
	}

	mod.Config = updated
	return nil
}
