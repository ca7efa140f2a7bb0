package utils

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// CollectFiles returns every file under root whose name matches one of the
// given extensions, skipping any subtree whose directory name is in
// excludeDirs. Directory names are compared exactly, at any depth;
// extensions are compared as case-insensitive filename suffixes.
//
// filepath.WalkDir visits entries in lexical order, so the returned list is
// stable for an unchanged tree.
func CollectFiles(root string, extensions, excludeDirs []string) ([]string, error) {
	excluded := make(map[string]bool, len(excludeDirs))
	for _, dir := range excludeDirs {
		if dir = strings.TrimSpace(dir); dir != "" {
			excluded[dir] = true
		}
	}

	suffixes := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if ext = strings.TrimSpace(ext); ext != "" {
			suffixes = append(suffixes, strings.ToLower(ext))
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if hasMatchingSuffix(d.Name(), suffixes) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	return files, nil
}

func hasMatchingSuffix(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// SplitList parses a comma-separated flag value into its non-empty,
// space-trimmed items.
func SplitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
