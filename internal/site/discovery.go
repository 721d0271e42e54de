package site

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	"git.home.luguber.info/inful/hakkan/internal/logfields"
)

// ContentExt is the file extension of content files. Matching is case sensitive.
const ContentExt = ".md"

// PostFile is the discovery predicate. Given the names of the files (not
// subdirectories) in one directory, it returns the single content file when
// there is exactly one. Directories with no content file, or more than one,
// hold no post. Files with other extensions do not count.
func PostFile(fileNames []string) (string, bool) {
	found := ""
	for _, name := range fileNames {
		if !strings.HasSuffix(name, ContentExt) {
			continue
		}
		if found != "" {
			return "", false
		}
		found = name
	}
	return found, found != ""
}

// Discover walks root and returns the content file of every directory that
// PostFile accepts. Results are absolute, cleaned and in lexical walk order.
func Discover(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, derrors.FileSystemError("content directory not found").
			WithCause(fmt.Errorf("%w: %s", ErrContentRootNotFound, absRoot)).
			WithContext("path", absRoot).
			Build()
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
		if name, ok := PostFile(names); ok {
			file := filepath.Join(path, name)
			slog.Debug("Discovered post", logfields.File(file))
			files = append(files, file)
		}
		return nil
	})
	if err != nil {
		return nil, derrors.FileSystemError("failed to walk content directory").
			WithCause(fmt.Errorf("%w: %s: %w", ErrWalkFailed, absRoot, err)).
			WithContext("path", absRoot).
			Build()
	}
	return files, nil
}
