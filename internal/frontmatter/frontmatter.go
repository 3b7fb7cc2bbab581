// Package frontmatter extracts the YAML front matter block from a Markdown
// document and serializes it back with key order intact. Only the title
// value is ever rewritten; everything else round-trips untouched.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Matter is the parsed front matter of one document.
type Matter struct {
	root yaml.Node
}

// Extract splits src into front matter and body. When src does not start
// with a front matter fence the body is returned unchanged and the Matter
// is nil.
func Extract(src []byte) (*Matter, []byte, error) {
	first, rest, ok := cutLine(src)
	if !ok || strings.TrimRight(string(first), "\r") != "---" {
		return nil, src, nil
	}

	var content []byte
	body := rest
	closed := false
	for len(body) > 0 {
		line, next, _ := cutLine(body)
		trimmed := strings.TrimRight(string(line), "\r")
		if trimmed == "---" || trimmed == "..." {
			body = next
			closed = true
			break
		}
		content = append(content, line...)
		content = append(content, '\n')
		body = next
	}
	if !closed {
		// An opening fence with no closing fence is a thematic break or a
		// setext heading, not front matter.
		return nil, src, nil
	}

	var m Matter
	if err := yaml.Unmarshal(content, &m.root); err != nil {
		return nil, nil, fmt.Errorf("invalid front matter: %w", err)
	}
	return &m, body, nil
}

// Title returns the front matter title value, if present.
func (m *Matter) Title() (string, bool) {
	mp := m.mapping()
	if mp == nil {
		return "", false
	}
	for i := 0; i+1 < len(mp.Content); i += 2 {
		if mp.Content[i].Value == "title" && mp.Content[i+1].Kind == yaml.ScalarNode {
			return mp.Content[i+1].Value, true
		}
	}
	return "", false
}

// SetTitle replaces the title value in place. A document without a title
// key is left unchanged.
func (m *Matter) SetTitle(title string) {
	mp := m.mapping()
	if mp == nil {
		return
	}
	for i := 0; i+1 < len(mp.Content); i += 2 {
		if mp.Content[i].Value == "title" && mp.Content[i+1].Kind == yaml.ScalarNode {
			mp.Content[i+1].Value = title
			mp.Content[i+1].Tag = "!!str"
			mp.Content[i+1].Style = 0
			return
		}
	}
}

// Render serializes the front matter back, fences included. An empty
// front matter renders to nothing.
func (m *Matter) Render() ([]byte, error) {
	if m.mapping() == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&m.root); err != nil {
		return nil, fmt.Errorf("serializing front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("serializing front matter: %w", err)
	}
	buf.WriteString("---\n")
	return buf.Bytes(), nil
}

func (m *Matter) mapping() *yaml.Node {
	if m == nil || m.root.Kind != yaml.DocumentNode || len(m.root.Content) == 0 {
		return nil
	}
	if m.root.Content[0].Kind != yaml.MappingNode {
		return nil
	}
	return m.root.Content[0]
}

// cutLine splits b at the first newline. ok is false when b is empty.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	if len(b) == 0 {
		return nil, nil, false
	}
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return b[:i], b[i+1:], true
	}
	return b, nil, true
}
