package utils

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
)

// CopyTree mirrors every file under src into dst, keeping the directory
// layout, contents and permission bits. The first failure stops the copy.
// It returns the number of files copied.
func CopyTree(src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		return 0, errors.Wrapf(err, "error reading assets directory %s", src)
	}
	if !info.IsDir() {
		return 0, errors.Errorf("assets path %s is not a directory", src)
	}

	copied := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.WithStack(err)
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return errors.WithStack(os.MkdirAll(target, os.ModePerm))
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, errors.Wrapf(err, "error copying %s to %s", src, dst)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	input, err := os.Open(src)
	if err != nil {
		return errors.WithStack(err)
	}
	defer input.Close()

	info, err := input.Stat()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := atomic.WriteFile(dst, input); err != nil {
		return errors.Wrapf(err, "error writing %s", dst)
	}
	return errors.WithStack(os.Chmod(dst, info.Mode().Perm()))
}
