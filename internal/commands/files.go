package commands

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/shell"
	"github.com/Gaurav-Gosain/folio/internal/wm"
)

const (
	fileIcon = "📄 "
	dirIcon  = "📁 "
)

// resolve turns a path typed at the prompt into a content path. Paths
// starting with "~" or "/" are absolute; everything else is relative to the
// shell's working directory.
func resolve(sh *shell.Shell, p string) string {
	if strings.HasPrefix(p, "~") || strings.HasPrefix(p, "/") {
		return content.Clean(p)
	}
	return content.Clean(path.Join("/", sh.Cwd(), p))
}

func (b *builtins) ls(_ context.Context, sh *shell.Shell, _ []string) ([]string, error) {
	icons := b.Config.Appearance.Icons

	var out []string
	for _, name := range b.Store.Files(sh.Cwd()) {
		if icons {
			name = fileIcon + name
		}
		out = append(out, name)
	}
	if sh.Cwd() == "" {
		for _, dir := range b.Store.Collections() {
			if icons {
				dir = dirIcon + dir
			}
			out = append(out, dir+"/")
		}
	}
	return out, nil
}

func (b *builtins) cd(_ context.Context, sh *shell.Shell, args []string) ([]string, error) {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	switch target {
	case "", "~", "/", "~/":
		sh.SetCwd("")
	default:
		dir := resolve(sh, target)
		if dir != "" && !b.isCollection(dir) {
			return nil, fmt.Errorf("cd: %s: No such directory", target)
		}
		sh.SetCwd(dir)
	}
	return []string{"Changed directory to: " + sh.Path()}, nil
}

func (b *builtins) isCollection(dir string) bool {
	for _, c := range b.Store.Collections() {
		if c == dir {
			return true
		}
	}
	return false
}

func (b *builtins) pwd(_ context.Context, sh *shell.Shell, _ []string) ([]string, error) {
	return []string{sh.Path()}, nil
}

func (b *builtins) cat(ctx context.Context, sh *shell.Shell, args []string) ([]string, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, errors.New("cat: missing operand")
	}
	name := args[0]

	item, err := b.Store.Lookup(ctx, resolve(sh, name))
	switch {
	case errors.Is(err, content.ErrNotFound):
		return nil, fmt.Errorf("cat: %s: No such file or directory", name)
	case errors.Is(err, content.ErrIsDir):
		return nil, fmt.Errorf("cat: %s: Is a directory", name)
	case err != nil:
		return nil, err
	}

	b.openItem(item)
	return nil, nil
}

// openItem shows a document: markdown in a markdown window titled after its
// frontmatter, anything else as highlighted source.
func (b *builtins) openItem(item *content.Item) wm.ID {
	if item.IsMarkdown() {
		return b.Desktop.OpenWindow(item.Meta.Title, wm.Markdown(item.Body))
	}
	lines := Highlight(item.Name(), item.Body, b.Config.Appearance.SyntaxStyle)
	return b.Desktop.OpenWindow(item.Name(), wm.Text(lines...))
}

func (b *builtins) openFile(id string) shell.RunFunc {
	return func(ctx context.Context, _ *shell.Shell, _ []string) ([]string, error) {
		item, err := b.Store.Lookup(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		b.openItem(item)
		return nil, nil
	}
}

func (b *builtins) completeDirs(sh *shell.Shell) []string {
	if sh.Cwd() != "" {
		return []string{".."}
	}
	return b.Store.Collections()
}

func (b *builtins) completeFiles(sh *shell.Shell) []string {
	return b.Store.Files(sh.Cwd())
}
