package game

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/charmbracelet/log"
)

// SteamRoots returns the Steam installation directories worth probing on this OS.
func SteamRoots() []string {
	homeDir, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		roots := []string{`C:\Program Files (x86)\Steam`, `C:\Program Files\Steam`}
		if pf := os.Getenv("ProgramFiles(x86)"); pf != "" {
			roots = append([]string{filepath.Join(pf, "Steam")}, roots...)
		}
		return roots
	case "darwin":
		return []string{filepath.Join(homeDir, "Library", "Application Support", "Steam")}
	default:
		roots := []string{
			filepath.Join(homeDir, ".steam", "steam"),
			filepath.Join(homeDir, ".local", "share", "Steam"),
			filepath.Join(homeDir, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
			filepath.Join(homeDir, "snap", "steam", "common", ".local", "share", "Steam"),
		}
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			roots = append(roots, filepath.Join(dataHome, "Steam"))
		}
		return roots
	}
}

// DetectInstallDir looks for Mega Mix+ in the known Steam libraries.
func DetectInstallDir() (string, bool) {
	return osChecker.Detect(SteamRoots())
}

// Detect returns the first valid install directory found under the given Steam roots,
// including any extra libraries they list.
func (c *Checker) Detect(steamRoots []string) (string, bool) {
	seen := make(map[string]bool)
	for _, root := range steamRoots {
		libraries := append([]string{root}, c.libraryFolders(root)...)
		for _, lib := range libraries {
			candidate := filepath.Join(lib, "steamapps", "common", SteamFolderName)
			if seen[candidate] {
				continue
			}
			seen[candidate] = true
			if c.IsValidInstallDir(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

// libraryFolders lists the extra Steam libraries named in root's
// steamapps/libraryfolders.vdf, in the order Steam numbers them.
func (c *Checker) libraryFolders(root string) []string {
	file, err := c.fs.Open(filepath.Join(root, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		return nil
	}
	defer file.Close()

	doc, err := vdf.NewParser(file).Parse()
	if err != nil {
		log.Debug("unreadable libraryfolders.vdf", "root", root, "err", err)
		return nil
	}

	var libraries map[string]interface{}
	for key, value := range doc {
		// Older clients wrote "LibraryFolders"
		if strings.EqualFold(key, "libraryfolders") {
			libraries, _ = value.(map[string]interface{})
			break
		}
	}

	var keys []string
	for key := range libraries {
		if _, err := strconv.Atoi(key); err == nil {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	var folders []string
	for _, key := range keys {
		var path string
		switch entry := libraries[key].(type) {
		case string:
			// Pre-2021 layout: "1" "D:\\SteamLibrary"
			path = entry
		case map[string]interface{}:
			path, _ = entry["path"].(string)
		}
		if path == "" {
			continue
		}
		// vdf escapes backslashes in windows paths
		folders = append(folders, strings.ReplaceAll(path, `\\`, `\`))
	}
	return folders
}
