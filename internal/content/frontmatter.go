package content

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

var fence = []byte("---")

// ParseDocument splits data into frontmatter and body. Documents without a
// leading "---" block get an empty Meta and the whole input as body.
func ParseDocument(data []byte) (Meta, string, error) {
	var meta Meta

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !bytes.HasPrefix(data, fence) {
		return meta, string(data), nil
	}

	rest := data[len(fence):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		// "---" followed by text on the same line is a horizontal rule, not a fence.
		return meta, string(data), nil
	}
	rest = rest[nl+1:]

	end := -1
	for off := 0; off < len(rest); {
		line := rest[off:]
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		if bytes.Equal(bytes.TrimRight(line, " \t\r"), fence) {
			end = off
			break
		}
		off += len(line) + 1
	}
	if end < 0 {
		return meta, "", fmt.Errorf("unterminated frontmatter")
	}

	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return meta, "", fmt.Errorf("parse frontmatter: %w", err)
	}

	body := rest[end:]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return meta, strings.TrimSpace(string(body)), nil
}

// fillDefaults gives documents without a title one derived from the file name.
func fillDefaults(id string, meta *Meta) {
	if meta.Title != "" {
		return
	}
	name := path.Base(id)
	meta.Title = strings.TrimSuffix(name, path.Ext(name))
}
