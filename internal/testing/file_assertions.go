package testing

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FileAssertions checks the state of a generated output tree.
type FileAssertions struct {
	t       *testing.T
	baseDir string
}

// NewFileAssertions creates a new file assertions helper rooted at baseDir.
func NewFileAssertions(t *testing.T, baseDir string) *FileAssertions {
	return &FileAssertions{t: t, baseDir: baseDir}
}

// AssertFileExists validates that a file exists.
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err != nil {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist.
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := filepath.Join(fa.baseDir, relativePath)
	if _, err := os.Stat(fullPath); err == nil {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains every expected fragment.
func (fa *FileAssertions) AssertFileContains(relativePath string, fragments ...string) *FileAssertions {
	fa.t.Helper()
	content := fa.Content(relativePath)
	for _, f := range fragments {
		if !strings.Contains(content, f) {
			fa.t.Errorf("Expected %s to contain %q\nActual content:\n%s", relativePath, f, content)
		}
	}
	return fa
}

// AssertOrder validates that the fragments appear in the file in the given order.
func (fa *FileAssertions) AssertOrder(relativePath string, fragments ...string) *FileAssertions {
	fa.t.Helper()
	content := fa.Content(relativePath)
	last := -1
	for _, f := range fragments {
		idx := strings.Index(content, f)
		if idx < 0 {
			fa.t.Errorf("Expected %s to contain %q", relativePath, f)
			return fa
		}
		if idx < last {
			fa.t.Errorf("Expected %q to follow the previous fragment in %s", f, relativePath)
		}
		last = idx
	}
	return fa
}

// Content reads a file below the base directory.
func (fa *FileAssertions) Content(relativePath string) string {
	fa.t.Helper()
	content, err := os.ReadFile(filepath.Join(fa.baseDir, relativePath))
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", relativePath, err)
	}
	return string(content)
}

// Files lists every regular file below the base directory, slash separated
// and relative to it.
func (fa *FileAssertions) Files() []string {
	fa.t.Helper()
	var files []string
	err := filepath.WalkDir(fa.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, _ := filepath.Rel(fa.baseDir, path)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		fa.t.Fatalf("Failed to walk %s: %v", fa.baseDir, err)
	}
	return files
}
