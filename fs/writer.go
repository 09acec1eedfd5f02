// Package fs writes extraction results to a directory tree mirroring the
// scraped URLs.
package fs

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitescrape"
)

// URLToPath converts a page URL to a relative file path under its host.
// Example: https://example.com/shop/widget → example.com/shop/widget.json
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitescrape.WrapError(sitescrape.EINVALID, err, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return "", sitescrape.Errorf(sitescrape.EINVALID, "URL %q has no host", rawURL)
	}
	host := strings.ReplaceAll(u.Host, ":", "_")

	// Clean against a rooted path so ".." cannot climb above the host.
	p := path.Clean("/" + u.Path)
	if p == "/" {
		return host + "/index.json", nil
	}
	p = strings.TrimPrefix(p, "/")

	if strings.HasSuffix(u.Path, "/") {
		return host + "/" + p + "/index.json", nil
	}
	return host + "/" + p + ".json", nil
}

// Writer writes result files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteResult stores data at the path derived from rawURL and returns the
// full path written.
func (w *Writer) WriteResult(rawURL string, data []byte) (string, error) {
	relPath, err := URLToPath(rawURL)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
