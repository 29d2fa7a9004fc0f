package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"charm.land/log/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *FSStore {
	t.Helper()
	fsys := fstest.MapFS{
		"about.md": {Data: []byte("---\ntitle: About Me\ndate: 2024-07-02\n---\n\n# About\n")},
		"notes.md": {Data: []byte("# no frontmatter\n")},
		"projects/old.md": {Data: []byte(
			"---\ntitle: Old\ndate: 2023-01-01\ndescription: first\n---\nold body\n")},
		"projects/new.md": {Data: []byte(
			"---\ntitle: New\ndate: 2024-05-01\ndescription: second\ntags: [go, tui]\n---\nnew body\n")},
		"projects/main.go":  {Data: []byte("package main\n")},
		"articles/bad.md":   {Data: []byte("---\ntitle: [unclosed\n---\nbody\n")},
		".hidden/secret.md": {Data: []byte("nope")},
	}
	s := NewFSStore(fsys)
	require.NoError(t, s.Load())
	return s
}

// =============================================================================
// Frontmatter
// =============================================================================

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		title   string
		date    string
		tags    []string
		body    string
		wantErr bool
	}{
		{
			name:  "full frontmatter",
			input: "---\ntitle: Hello\ndate: 2024-01-15\ntags: [\"a\", \"b\"]\n---\n\nBody text\n",
			title: "Hello",
			date:  "2024-01-15",
			tags:  []string{"a", "b"},
			body:  "Body text",
		},
		{
			name:  "no frontmatter",
			input: "# Heading\n",
			body:  "# Heading\n",
		},
		{
			name:  "horizontal rule is not a fence",
			input: "--- not yaml\n",
			body:  "--- not yaml\n",
		},
		{
			name:  "crlf line endings",
			input: "---\r\ntitle: Win\r\n---\r\nbody",
			title: "Win",
			body:  "body",
		},
		{
			name:    "unterminated",
			input:   "---\ntitle: x\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			input:   "---\ntitle: [x\n---\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := ParseDocument([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, meta.Title)
			assert.Equal(t, tt.date, meta.Date)
			assert.Equal(t, tt.tags, meta.Tags)
			assert.Equal(t, tt.body, body)
		})
	}
}

// =============================================================================
// Store
// =============================================================================

func TestLookup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	item, err := s.Lookup(ctx, "about.md")
	require.NoError(t, err)
	assert.Equal(t, "About Me", item.Meta.Title)
	assert.Equal(t, "# About", item.Body)

	item, err = s.Lookup(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "about.md", item.ID)

	item, err = s.Lookup(ctx, "~/projects/new")
	require.NoError(t, err)
	assert.Equal(t, "projects/new.md", item.ID)
	assert.Equal(t, "projects", item.Dir())

	item, err = s.Lookup(ctx, "/projects/main.go")
	require.NoError(t, err)
	assert.False(t, item.IsMarkdown())
	assert.Equal(t, "main", item.Meta.Title)
}

func TestLookupFallsBackToFileName(t *testing.T) {
	s := testStore(t)

	item, err := s.Lookup(context.Background(), "notes.md")
	require.NoError(t, err)
	assert.Equal(t, "notes", item.Meta.Title)
}

func TestLookupErrors(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Lookup(ctx, "missing.md")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Lookup(ctx, "projects")
	assert.ErrorIs(t, err, ErrIsDir)

	_, err = s.Lookup(ctx, ".hidden/secret.md")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Lookup(ctx, "articles/bad.md")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "articles/bad.md")
	assert.Contains(t, s.Errors(), "articles/bad.md")
}

func TestLookupHonoursContext(t *testing.T) {
	s := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Lookup(ctx, "about.md")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListSortsNewestFirst(t *testing.T) {
	s := testStore(t)

	items, err := s.List(context.Background(), "projects")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "New", items[0].Meta.Title)
	assert.Equal(t, "Old", items[1].Meta.Title)

	_, err = s.List(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecent(t *testing.T) {
	s := testStore(t)

	items, err := s.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "New", items[0].Meta.Title)

	all, err := s.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Greater(t, len(all), 1, "zero means no limit")
	assert.Equal(t, items[0].ID, all[0].ID)
}

func TestCollectionsAndFiles(t *testing.T) {
	s := testStore(t)

	assert.Equal(t, []string{"articles", "projects"}, s.Collections())
	assert.Equal(t, []string{"about.md", "notes.md"}, s.Files(""))
	assert.Equal(t, []string{"main.go", "new.md", "old.md"}, s.Files("projects/"))
	assert.Empty(t, s.Files("nope"))
}

func TestSortByDateUndatedLast(t *testing.T) {
	items := []Item{
		{Meta: Meta{Title: "b"}},
		{Meta: Meta{Title: "x", Date: "2024-01-01"}},
		{Meta: Meta{Title: "a"}},
		{Meta: Meta{Title: "y", Date: "2024-02-01"}},
	}
	SortByDate(items)

	var titles []string
	for _, it := range items {
		titles = append(titles, it.Meta.Title)
	}
	assert.Equal(t, []string{"y", "x", "a", "b"}, titles)
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"~":             "",
		"/":             "",
		"~/projects":    "projects",
		"projects/":     "projects",
		"./about.md":    "about.md",
		"projects/../x": "x",
		"../../etc":     "etc",
	}
	for in, want := range tests {
		assert.Equal(t, want, Clean(in), "Clean(%q)", in)
	}
}

func TestDefaultsLoad(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	assert.Empty(t, s.Errors())
	assert.Equal(t, []string{"articles", "projects"}, s.Collections())

	item, err := s.Lookup(context.Background(), "about")
	require.NoError(t, err)
	assert.Equal(t, "About Me", item.Meta.Title)
}

// =============================================================================
// Watch
// =============================================================================

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.md"), []byte("---\ntitle: One\n---\n"), 0o644))

	s, err := Open(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := Watch(ctx, s, dir, log.New(os.Stderr))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "contact.md"), []byte("---\ntitle: Two\n---\n"), 0o644))

	select {
	case ev := <-events:
		require.NoError(t, ev.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}

	item, err := s.Lookup(context.Background(), "contact")
	require.NoError(t, err)
	assert.Equal(t, "Two", item.Meta.Title)
}
