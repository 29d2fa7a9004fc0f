package config

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationIssue is a single problem found in a config.
type ValidationIssue struct {
	Field   string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Validate checks cfg for unknown actions, key conflicts and geometry that
// cannot be satisfied. An empty result means the config is usable as is.
func Validate(cfg *UserConfig) []ValidationIssue {
	var issues []ValidationIssue

	switch cfg.Terminal.Tokenizer {
	case TokenizerLiteral, TokenizerShell:
	default:
		issues = append(issues, ValidationIssue{
			Field:   "terminal.tokenizer",
			Message: fmt.Sprintf("unknown tokenizer %q (want %q or %q)", cfg.Terminal.Tokenizer, TokenizerLiteral, TokenizerShell),
		})
	}

	if _, ok := BorderStyles[cfg.Appearance.BorderStyle]; !ok {
		issues = append(issues, ValidationIssue{
			Field:   "appearance.border_style",
			Message: fmt.Sprintf("unknown border style %q", cfg.Appearance.BorderStyle),
		})
	}

	w := cfg.Windows
	if w.TextWidth < w.MinWidth || w.MarkdownWidth < w.MinWidth {
		issues = append(issues, ValidationIssue{Field: "windows", Message: "default widths are below min_width"})
	}
	if w.TextHeight < w.MinHeight || w.MarkdownHeight < w.MinHeight {
		issues = append(issues, ValidationIssue{Field: "windows", Message: "default heights are below min_height"})
	}

	for _, section := range cfg.Keybindings.Sections() {
		seen := make(map[string]string)
		actions := make([]string, 0, len(section.Bindings))
		for action := range section.Bindings {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		for _, action := range actions {
			field := "keybindings." + section.Name + "." + action
			if _, ok := ActionDescriptions[action]; !ok {
				issues = append(issues, ValidationIssue{Field: field, Message: "unknown action"})
			}
			for _, k := range section.Bindings[action] {
				nk := NormalizeKey(k)
				if nk == "" {
					issues = append(issues, ValidationIssue{Field: field, Message: "empty key"})
					continue
				}
				if other, ok := seen[nk]; ok && other != action {
					issues = append(issues, ValidationIssue{
						Field:   field,
						Message: fmt.Sprintf("key %q is also bound to %s", nk, other),
					})
					continue
				}
				seen[nk] = action
			}
		}
	}

	for _, chord := range cfg.Keybindings.Switcher["switch_next"] {
		if Modifier(NormalizeKey(chord)) == "" {
			issues = append(issues, ValidationIssue{
				Field:   "keybindings.switcher.switch_next",
				Message: fmt.Sprintf("%q has no modifier to hold", chord),
			})
		}
	}

	return issues
}

// FormatIssues joins issues into one message per line.
func FormatIssues(issues []ValidationIssue) string {
	lines := make([]string, len(issues))
	for i, issue := range issues {
		lines[i] = issue.String()
	}
	return strings.Join(lines, "\n")
}
