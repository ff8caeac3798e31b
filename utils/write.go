package utils

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
)

// WriteFile writes data to path, creating parent directories. The file is
// replaced atomically so a reader never sees a half-written page.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "error writing %s", path)
	}
	// atomic leaves new files at 0600.
	return errors.WithStack(os.Chmod(path, 0o644))
}
