package source

import (
	"path/filepath"
	"strings"
)

// RelativePath returns target relative to baseDir. Targets outside baseDir
// come back as cleaned absolute paths.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cleanPath(absTarget), nil
	}
	return cleanPath(rel), nil
}

func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
