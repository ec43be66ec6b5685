package checker

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/apilinks/internal/foundation/errors"
)

// Discover lists the files under dir whose base name matches pattern, in
// lexical order. Subdirectories are only searched when recursive is set.
func Discover(dir, pattern string, recursive bool) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid input pattern").
			WithContext("pattern", pattern).
			Build()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "input directory not accessible").
			WithContext("path", dir).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.FileSystemError("input path is not a directory").
			WithContext("path", dir).
			Build()
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to list input directory").
			WithContext("path", dir).
			Build()
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether path would be picked up by Discover for the same
// dir, pattern and recursive settings.
func Matches(dir, pattern string, recursive bool, path string) bool {
	if ok, _ := filepath.Match(pattern, filepath.Base(path)); !ok {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return recursive || filepath.Dir(rel) == "."
}
