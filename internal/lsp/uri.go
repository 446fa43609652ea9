package lsp

import (
	"net/url"
	"path/filepath"
)

// uriToPath converts a file:// URI to a local path; other schemes yield "".
// A bare path is accepted as is.
func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	switch parsed.Scheme {
	case "":
		return filepath.FromSlash(uri)
	case "file":
		return filepath.FromSlash(parsed.Path)
	}
	return ""
}

// documentName is the filename diagnostics of a document are reported under.
func documentName(uri string) string {
	if path := uriToPath(uri); path != "" {
		return filepath.Base(path)
	}
	return uri
}
