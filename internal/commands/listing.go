package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/shell"
)

func formatItem(item content.Item) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(item.Meta.Title)
	if item.Meta.Date != "" {
		fmt.Fprintf(&b, " (%s)", item.Meta.Date)
	}
	if item.Meta.Description != "" {
		b.WriteString(" - ")
		b.WriteString(item.Meta.Description)
	}
	return b.String()
}

func (b *builtins) collection(name, heading string) shell.RunFunc {
	return func(ctx context.Context, _ *shell.Shell, _ []string) ([]string, error) {
		items, err := b.Store.List(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		out := []string{heading, ""}
		for _, item := range items {
			out = append(out, formatItem(item))
		}
		return append(out,
			"",
			fmt.Sprintf("Total: %d %s", len(items), name),
			"",
			fmt.Sprintf("Use \"cd %s\" to navigate to the %s directory", name, name),
			"Use \"cat <name>\" to open one in a window",
		), nil
	}
}

func (b *builtins) recent(ctx context.Context, _ *shell.Shell, _ []string) ([]string, error) {
	all, err := b.Store.Recent(ctx, b.Config.Content.MaxRecentItems)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	if len(all) == 0 {
		return []string{"Nothing published yet."}, nil
	}

	out := []string{"Recently published:", ""}
	for _, item := range all {
		out = append(out, formatItem(item)+"  ["+item.ID+"]")
	}
	return out, nil
}
