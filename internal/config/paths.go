package config

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizeFilename expands a leading ~, makes the path absolute and cleans it.
func NormalizeFilename(name string) string {
	result := expandHome(name)
	if abs, err := filepath.Abs(result); err == nil {
		result = abs
	}
	return filepath.Clean(result)
}

// Locate returns the normalized filename if it exists as given. Otherwise each
// search path is tried in order and the first existing candidate wins. When
// nothing matches the name is returned unchanged.
func Locate(filename string, searchPaths []string) string {
	if _, err := os.Stat(expandHome(filename)); err == nil {
		return NormalizeFilename(filename)
	}
	if filepath.IsAbs(filename) {
		return filename
	}
	for _, dir := range searchPaths {
		candidate := NormalizeFilename(filepath.Join(expandHome(dir), filename))
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filename
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
