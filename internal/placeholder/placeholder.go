// Package placeholder shields inline code spans from the translation
// service by swapping their contents for synthetic tokens before a block
// is rendered and restoring them afterwards.
//
// Tokens look like x007y: short, lower-case, no punctuation, so they are
// unlikely to be word-broken, case-mangled, or read as Markdown syntax by
// either the service or the re-parser.
package placeholder

import (
	"fmt"

	"github.com/valpere/peremd/internal/markdown"
)

// Map records the original code-span content behind each token. It is
// scoped to a single block translation; after a successful restore it must
// be empty.
type Map map[string]string

// Protect walks the inline tree and replaces every code span's content
// with a fresh token, in encounter order. The original text moves into the
// returned map; the tree is mutated directly. Code span content itself is
// never traversed.
func Protect(inlines []*markdown.Inline) Map {
	m := Map{}
	protect(inlines, m)
	return m
}

func protect(inlines []*markdown.Inline, m Map) {
	for _, in := range inlines {
		if in.Kind == markdown.InlineCode {
			token := fmt.Sprintf("x%03dy", len(m))
			m[token] = in.Text
			in.Text = token
			continue
		}
		protect(in.Children, m)
	}
}

// Restore walks the inline tree and swaps tokens back for their original
// content, removing each consumed entry from m. Entries left in m after
// Restore were not found in the tree.
func Restore(inlines []*markdown.Inline, m Map) {
	for _, in := range inlines {
		if in.Kind == markdown.InlineCode {
			if original, ok := m[in.Text]; ok {
				delete(m, in.Text)
				in.Text = original
			}
			continue
		}
		Restore(in.Children, m)
	}
}
