package lsp

import (
	"path/filepath"
	"strings"

	"go.lsp.dev/uri"
)

const fileScheme = "file://"

// canonicalURI normalises file URIs so the same file opened through
// differently escaped URIs maps to one document. Other schemes are kept
// verbatim.
func canonicalURI(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, fileScheme) {
		return raw
	}
	path := uriToPath(raw)
	if path == "" {
		return raw
	}
	return pathToURI(path)
}

func uriToPath(raw string) string {
	if !strings.HasPrefix(raw, fileScheme) {
		return ""
	}
	u, err := uri.Parse(raw)
	if err != nil {
		return ""
	}
	return filepath.Clean(u.Filename())
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return string(uri.File(path))
}
