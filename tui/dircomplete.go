package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// DirCompletions returns the directories that complete the given input path.
func DirCompletions(input string) ([]string, error) {
	if input == "" {
		input = "." + string(filepath.Separator)
	}
	// Expand ~ to home dir
	if strings.HasPrefix(input, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			input = filepath.Join(home, input[1:]) + trailingSep(input)
		}
	}

	// "dir/" lists the children of dir, "dir/pre" those of dir starting with pre
	base, prefix := filepath.Dir(input), filepath.Base(input)
	if strings.HasSuffix(input, string(filepath.Separator)) || strings.HasSuffix(input, "/") {
		base, prefix = filepath.Clean(input), ""
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	var matches []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		// Hidden directories only when asked for
		if strings.HasPrefix(entry.Name(), ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		matches = append(matches, filepath.Join(base, entry.Name()))
	}
	sort.Strings(matches)
	return matches, nil
}

// completeDir applies tab completion to input. A single match gets a trailing
// separator; several matches complete to their longest common prefix.
func completeDir(input string) (string, []string) {
	matches, err := DirCompletions(input)
	if err != nil || len(matches) == 0 {
		return input, nil
	}
	if len(matches) == 1 {
		return matches[0] + string(filepath.Separator), nil
	}
	prefix := commonPrefix(matches)
	if len(prefix) < len(input) {
		return input, matches
	}
	return prefix, matches
}

func commonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		for !strings.HasPrefix(v, prefix) {
			// Drop a whole rune so the prefix stays valid UTF-8
			_, size := utf8.DecodeLastRuneInString(prefix)
			prefix = prefix[:len(prefix)-size]
		}
	}
	return prefix
}

func trailingSep(s string) string {
	if strings.HasSuffix(s, "/") || strings.HasSuffix(s, string(filepath.Separator)) {
		return string(filepath.Separator)
	}
	return ""
}
