// Package fs provides file-based storage for captured documents.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagekeep"
)

// URLToPath converts a page URL to a relative file path under its host.
// Example: https://example.com/blog/post → example.com/blog/post.txt
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", pagekeep.Errorf(pagekeep.EINVALID, "invalid URL %q", rawURL)
	}
	host := u.Hostname()
	if host == "" {
		return "", pagekeep.Errorf(pagekeep.EINVALID, "URL has no host: %q", rawURL)
	}

	p := u.Path

	// Handle root or trailing slash → index.txt
	if p == "" || p == "/" {
		return path.Join(host, "index.txt"), nil
	}

	// Clean against a rooted path so ".." cannot leave the host directory
	trailing := strings.HasSuffix(p, "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return path.Join(host, "index.txt"), nil
	}

	// Trailing slash becomes index.txt in that directory
	if trailing {
		return path.Join(host, p, "index.txt"), nil
	}

	// Otherwise append .txt
	return path.Join(host, p+".txt"), nil
}

// FormatDocument formats a captured document with YAML frontmatter.
func FormatDocument(doc *pagekeep.CapturedDocument) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(doc.Title)
	b.WriteString("\ncaptured: ")
	b.WriteString(doc.Date.UTC().Format(pagekeep.DateLayout))
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}

// Ensure Writer implements pagekeep.ContentWriter at compile time.
var _ pagekeep.ContentWriter = (*Writer)(nil)

// Writer writes captured documents as text files to a directory, in place
// of submitting them to the content server.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// StoreContent writes doc to disk. A later capture of the same URL
// overwrites the file. The ack message is the path written.
func (w *Writer) StoreContent(ctx context.Context, doc *pagekeep.CapturedDocument) (*pagekeep.Ack, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	relPath, err := URLToPath(doc.URL)
	if err != nil {
		return nil, err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	content := FormatDocument(doc)
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return nil, err
	}
	return &pagekeep.Ack{Status: "success", Message: fullPath}, nil
}
