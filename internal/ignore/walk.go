package ignore

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
)

// ListFiles walks root and returns the slash-separated relative paths of all
// files not ignored by m, sorted. Ignored directories are not descended into,
// and the .git directory is always skipped.
func ListFiles(root string, m *Matcher) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || m.Match(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !m.Match(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files in %s: %w", root, err)
	}

	slices.Sort(files)
	return files, nil
}
