// Package rpath resolves directive file arguments (include/image/raw
// file: fields) to readable paths, expanding a leading ~ the way the
// rest of the stack resolves home-relative paths.
package rpath

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// SearchPaths is an ordered list of directories tried, in addition to
// the path as given and as resolved relative to baseDir.
type SearchPaths struct {
	BaseDir string
	Extra   []string
}

// DefaultFindFile returns an rst.FindFileFunc (shaped func(string) string,
// kept untyped here to avoid an import cycle with pkg/rst) that expands
// ~, then tries the name as given, relative to BaseDir, and relative to
// each entry of Extra, returning the first path that exists.
func DefaultFindFile(sp SearchPaths) func(name string) string {
	return func(name string) string {
		if name == "" {
			return ""
		}
		expanded, err := homedir.Expand(name)
		if err != nil {
			expanded = name
		}
		if expanded != name {
			if exists(expanded) {
				return expanded
			}
		}
		if exists(name) {
			return name
		}
		if sp.BaseDir != "" {
			candidate := filepath.Join(sp.BaseDir, name)
			if exists(candidate) {
				return candidate
			}
		}
		for _, dir := range sp.Extra {
			candidate := filepath.Join(dir, name)
			if exists(candidate) {
				return candidate
			}
		}
		return ""
	}
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
