package checker

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
)

// writeFileAtomic replaces path with data through a temp file in the same
// directory, keeping the original permission bits.
func writeFileAtomic(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to stat markdown file").
			WithContext("path", path).
			Build()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create temp file").
			WithContext("path", path).
			Build()
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write temp file").
			WithContext("path", tmpPath).
			Build()
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to sync temp file").
			WithContext("path", tmpPath).
			Build()
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to close temp file").
			WithContext("path", tmpPath).
			Build()
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to set file mode").
			WithContext("path", tmpPath).
			Build()
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to replace markdown file").
			WithContext("path", path).
			Build()
	}
	return nil
}
