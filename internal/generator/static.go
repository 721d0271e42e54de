package generator

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/hakkan/internal/foundation/errors"
	"git.home.luguber.info/inful/hakkan/internal/logfields"
)

// CopyStatic mirrors every file below src into dst, keeping relative paths.
// Existing files are overwritten. It returns the number of files copied.
// A missing src copies nothing.
func CopyStatic(src, dst string) (int, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, relPath)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, err := os.Lstat(target); err == nil {
			slog.Warn("Static file replaces existing output file", logfields.File(path), logfields.Path(target))
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to copy static files").
			WithContext("path", src).
			Build()
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- paths come from the configured static dir
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
