// Package fs exports document detail records as Markdown files.
package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/normdoc"
	"gopkg.in/yaml.v3"
)

// URLToPath converts a document URL to a relative file path.
// Example: https://meganorm.ru/mega_doc/fire/prikaz/p-806.html → mega_doc/fire/prikaz/p-806.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	p := u.Path

	// Handle root or trailing slash → index.md
	if p == "" || p == "/" {
		return "index.md", nil
	}

	// Trailing slash becomes index.md in that directory
	if strings.HasSuffix(p, "/") {
		return strings.TrimPrefix(path.Clean(p), "/") + "/index.md", nil
	}

	p = strings.TrimPrefix(path.Clean(p), "/")
	if ext := path.Ext(p); ext == ".html" || ext == ".htm" {
		p = strings.TrimSuffix(p, ext)
	}
	return p + ".md", nil
}

// FormatDocument formats a document with YAML frontmatter. The body is the
// Markdown rendering when present and the plain text otherwise. Empty
// metadata fields are left out of the frontmatter.
func FormatDocument(doc *normdoc.DocumentDetail) (string, error) {
	front := &yaml.Node{Kind: yaml.MappingNode}
	field(front, "source", doc.SourceURL)
	field(front, "title", doc.Title)
	field(front, "date", doc.Metadata.Date)
	field(front, "number", doc.Metadata.Number)
	field(front, "status", string(doc.Metadata.Status))
	field(front, "organization", doc.Metadata.Organization)
	field(front, "hash", doc.ContentHash)
	if !doc.FetchedAt.IsZero() {
		field(front, "fetched", doc.FetchedAt.Format("2006-01-02"))
	}

	var b strings.Builder
	b.WriteString("---\n")
	if len(front.Content) > 0 {
		enc := yaml.NewEncoder(&b)
		if err := enc.Encode(front); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
	}
	b.WriteString("---\n\n")

	if doc.ContentMarkdown != "" {
		b.WriteString(doc.ContentMarkdown)
	} else {
		b.WriteString(doc.ContentText)
	}
	b.WriteString("\n")
	return b.String(), nil
}

// field appends a double-quoted frontmatter entry, skipping empty values.
func field(m *yaml.Node, key, value string) {
	if value == "" {
		return
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: yaml.DoubleQuotedStyle},
	)
}

// Ensure Writer implements normdoc.DocumentWriter at compile time.
var _ normdoc.DocumentWriter = (*Writer)(nil)

// Writer writes documents as markdown files to a directory, mirroring the
// site's URL layout.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Path returns the file path CreateDocument writes doc to.
func (w *Writer) Path(doc *normdoc.DocumentDetail) (string, error) {
	relPath, err := URLToPath(doc.SourceURL)
	if err != nil {
		return "", err
	}
	return filepath.Join(w.baseDir, filepath.FromSlash(relPath)), nil
}

// CreateDocument writes a document to disk as a markdown file.
func (w *Writer) CreateDocument(ctx context.Context, doc *normdoc.DocumentDetail) error {
	if doc == nil || doc.SourceURL == "" {
		return normdoc.Errorf(normdoc.EINVALID, "document source URL required")
	}

	fullPath, err := w.Path(doc)
	if err != nil {
		return normdoc.Errorf(normdoc.EINVALID, "invalid document source URL: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
