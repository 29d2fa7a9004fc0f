package content

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed defaults
var defaults embed.FS

// Defaults returns the content shipped with the binary.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// Open returns a loaded store for dir, or for the embedded defaults when dir
// is empty.
func Open(dir string) (*FSStore, error) {
	fsys := Defaults()
	if dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
		fsys = os.DirFS(dir)
	}
	s := NewFSStore(fsys)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}
