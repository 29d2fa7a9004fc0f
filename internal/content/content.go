// Package content serves the portfolio documents that the shell browses.
//
// Content is a two level tree: files at the root (about.md, contact.md) and
// one level of collections (projects/, articles/). Markdown files may start
// with a YAML frontmatter block.
package content

import (
	"context"
	"errors"
	"path"
	"strings"
)

var (
	// ErrNotFound is returned when a path names no file or collection.
	ErrNotFound = errors.New("not found")
	// ErrIsDir is returned when a file lookup names a collection.
	ErrIsDir = errors.New("is a directory")
)

// Meta is the frontmatter of a document.
type Meta struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Author      string   `yaml:"author"`
	Category    string   `yaml:"category"`
	Difficulty  string   `yaml:"difficulty"`
}

// Item is one document.
type Item struct {
	// ID is the slash separated path relative to the content root,
	// e.g. "projects/folio.md".
	ID   string
	Meta Meta
	Body string
}

// Name returns the file name of the item.
func (i Item) Name() string {
	return path.Base(i.ID)
}

// Dir returns the collection of the item, or "" for root files.
func (i Item) Dir() string {
	d := path.Dir(i.ID)
	if d == "." {
		return ""
	}
	return d
}

// IsMarkdown reports whether the item should be rendered as markdown.
func (i Item) IsMarkdown() bool {
	ext := strings.ToLower(path.Ext(i.ID))
	return ext == ".md" || ext == ".markdown"
}

// Store is the content collaborator consumed by shell commands.
type Store interface {
	// Lookup resolves p (relative to the content root) to a document.
	// A missing ".md" extension is tolerated.
	Lookup(ctx context.Context, p string) (*Item, error)
	// List returns the documents of a collection, newest first.
	List(ctx context.Context, collection string) ([]Item, error)
	// Collections returns the collection names, sorted.
	Collections() []string
	// Files returns the file names directly inside dir ("" for the root), sorted.
	Files(dir string) []string
	// Recent returns up to n documents across all collections, newest
	// first. n <= 0 returns every document.
	Recent(ctx context.Context, n int) ([]Item, error)
}

// Clean normalises a user supplied path: "~/", "/" and "./" prefixes and
// trailing slashes are dropped.
func Clean(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimPrefix(p, "~")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}
