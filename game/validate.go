// Package game knows how to recognise a Project DIVA Mega Mix+ install.
package game

import (
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// GameExecutable must sit directly inside a valid install directory.
	GameExecutable = "DivaMegaMix.exe"
	// LoaderLibrary is dropped next to the executable by DivaModLoader.
	LoaderLibrary = "dinput8.dll"
	// SteamAppID is the Steam store id of Mega Mix+.
	SteamAppID = "1761390"
	// SteamFolderName is the folder Steam installs the game into under steamapps/common.
	SteamFolderName = "Hatsune Miku Project DIVA Mega Mix Plus"
)

// Checker runs the install-directory predicates against a filesystem.
type Checker struct {
	fs afero.Fs
}

// NewChecker returns a Checker backed by fs.
func NewChecker(fs afero.Fs) *Checker {
	return &Checker{fs: fs}
}

var osChecker = NewChecker(afero.NewOsFs())

// IsValidInstallDir reports whether path exists and contains the game executable.
// Filesystem errors count as "does not exist".
func IsValidInstallDir(path string) bool {
	return osChecker.IsValidInstallDir(path)
}

// HasModLoaderInstalled reports whether path is a valid install with the mod loader present.
func HasModLoaderInstalled(path string) bool {
	return osChecker.HasModLoaderInstalled(path)
}

func (c *Checker) IsValidInstallDir(path string) bool {
	if path == "" || !c.exists(path) {
		return false
	}
	return c.exists(filepath.Join(path, GameExecutable))
}

func (c *Checker) HasModLoaderInstalled(path string) bool {
	if !c.IsValidInstallDir(path) {
		return false
	}
	return c.exists(filepath.Join(path, LoaderLibrary))
}

func (c *Checker) exists(path string) bool {
	_, err := c.fs.Stat(path)
	return err == nil
}
