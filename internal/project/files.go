package project

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// Matches reports whether rel (slash-separated, relative to the root) matches
// one of the include patterns. A pattern without '/' is matched against the
// base name at any depth.
func Matches(rel string, include []string) bool {
	rel = filepath.ToSlash(rel)
	base := rel[strings.LastIndexByte(rel, '/')+1:]
	for _, pattern := range include {
		target := rel
		if !strings.Contains(pattern, "/") {
			target = base
		}
		if ok, _ := filepath.Match(pattern, target); ok {
			return true
		}
	}
	return false
}

// CollectFiles returns the sorted files below root matched by include.
// Hidden directories are skipped.
func CollectFiles(root string, include []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if Matches(rel, include) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}
