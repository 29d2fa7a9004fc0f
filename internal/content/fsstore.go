package content

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// DateLayout is the layout of the frontmatter date field.
const DateLayout = "2006-01-02"

// FSStore is a Store backed by an fs.FS. The tree is indexed by Load and
// re-indexed by Reload; lookups never touch the filesystem.
type FSStore struct {
	fsys fs.FS

	mu    sync.RWMutex
	items map[string]*Item
	errs  map[string]error
	dirs  map[string][]string // dir -> file names
}

// NewFSStore returns an empty store over fsys. Call Load before use.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{
		fsys:  fsys,
		items: make(map[string]*Item),
		errs:  make(map[string]error),
		dirs:  map[string][]string{"": nil},
	}
}

// Load indexes the tree. Documents with broken frontmatter are kept in the
// index as errors so that Lookup can report them; only filesystem failures
// make Load fail.
func (s *FSStore) Load() error {
	items := make(map[string]*Item)
	errs := make(map[string]error)
	dirs := map[string][]string{"": nil}

	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		depth := strings.Count(p, "/")
		if d.IsDir() {
			if depth > 0 {
				// only one level of collections
				return fs.SkipDir
			}
			if _, ok := dirs[p]; !ok {
				dirs[p] = nil
			}
			return nil
		}

		dir := path.Dir(p)
		if dir == "." {
			dir = ""
		}
		dirs[dir] = append(dirs[dir], d.Name())

		data, err := fs.ReadFile(s.fsys, p)
		if err != nil {
			return err
		}

		item := &Item{ID: p}
		if item.IsMarkdown() {
			meta, body, perr := ParseDocument(data)
			if perr != nil {
				errs[p] = fmt.Errorf("%s: %w", p, perr)
				return nil
			}
			item.Meta = meta
			item.Body = body
		} else {
			item.Body = string(data)
		}
		fillDefaults(p, &item.Meta)
		items[p] = item
		return nil
	})
	if err != nil {
		return fmt.Errorf("index content: %w", err)
	}

	for dir := range dirs {
		sort.Strings(dirs[dir])
	}

	s.mu.Lock()
	s.items, s.errs, s.dirs = items, errs, dirs
	s.mu.Unlock()
	return nil
}

// Reload re-indexes the tree.
func (s *FSStore) Reload() error {
	return s.Load()
}

// Lookup implements Store.
func (s *FSStore) Lookup(ctx context.Context, p string) (*Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := Clean(p)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.dirs[id]; ok {
		return nil, ErrIsDir
	}
	for _, candidate := range []string{id, id + ".md"} {
		if err, ok := s.errs[candidate]; ok {
			return nil, err
		}
		if item, ok := s.items[candidate]; ok {
			cp := *item
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// List implements Store.
func (s *FSStore) List(ctx context.Context, collection string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := Clean(collection)

	s.mu.RLock()
	names, ok := s.dirs[dir]
	if !ok || dir == "" {
		s.mu.RUnlock()
		return nil, ErrNotFound
	}
	out := make([]Item, 0, len(names))
	for _, name := range names {
		if item, ok := s.items[path.Join(dir, name)]; ok && item.IsMarkdown() {
			out = append(out, *item)
		}
	}
	s.mu.RUnlock()

	SortByDate(out)
	return out, nil
}

// Recent implements Store.
func (s *FSStore) Recent(ctx context.Context, n int) ([]Item, error) {
	var all []Item
	for _, c := range s.Collections() {
		items, err := s.List(ctx, c)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	SortByDate(all)
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// Collections implements Store.
func (s *FSStore) Collections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.dirs))
	for dir := range s.dirs {
		if dir != "" {
			out = append(out, dir)
		}
	}
	sort.Strings(out)
	return out
}

// Files implements Store.
func (s *FSStore) Files(dir string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := s.dirs[Clean(dir)]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Errors returns the documents that failed to parse, keyed by path.
func (s *FSStore) Errors() map[string]error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]error, len(s.errs))
	for k, v := range s.errs {
		out[k] = v
	}
	return out
}

// SortByDate orders items newest first. Undated items sort last, ties by title.
func SortByDate(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, ei := time.Parse(DateLayout, items[i].Meta.Date)
		tj, ej := time.Parse(DateLayout, items[j].Meta.Date)
		switch {
		case ei != nil && ej != nil:
			return items[i].Meta.Title < items[j].Meta.Title
		case ei != nil:
			return false
		case ej != nil:
			return true
		case !ti.Equal(tj):
			return ti.After(tj)
		}
		return items[i].Meta.Title < items[j].Meta.Title
	})
}
