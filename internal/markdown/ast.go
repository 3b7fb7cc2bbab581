// Package markdown defines the document tree the translator operates on,
// a parser producing it from Markdown text, and a renderer serializing it
// back at a configurable maximum line width.
//
// The tree is a closed set of block and inline kinds: every construct the
// parser can produce has a case here, so walkers can switch exhaustively
// instead of type-asserting against a library AST. Ownership is strictly
// hierarchical; replacing a child slot rebuilds that subtree.
package markdown

// BlockKind enumerates every block-level construct in the model.
type BlockKind int

const (
	BlockDocument BlockKind = iota
	BlockParagraph
	BlockHeading
	BlockCode
	BlockQuote
	BlockList
	BlockListItem
	BlockThematicBreak
	BlockHTML
	BlockTable
	BlockTableRow
	BlockTableCell
)

// InlineKind enumerates every span-level construct in the model.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineCode
	InlineEmph
	InlineStrong
	InlineStrike
	InlineLink
	InlineImage
	InlineHTML
	InlineSoftBreak
	InlineHardBreak
)

// Align is a table cell alignment.
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Block is one node of the document tree. Leaf kinds (paragraph, heading,
// table cell) carry Inlines; container kinds carry Children; code and HTML
// blocks carry their raw Literal.
type Block struct {
	Kind BlockKind

	// Heading
	Level     int
	HeadingID string

	// Code and HTML blocks
	Fenced  bool
	Info    string
	Literal string

	// List
	Ordered bool
	Start   int
	Tight   bool

	// Table row/cell
	Header bool
	Align  Align

	Inlines  []*Inline
	Children []*Block
}

// Inline is one span-level node. Text carries the literal content for
// text, code and raw HTML spans; Children carry nested spans for
// emphasis, links and image alt text.
type Inline struct {
	Kind        InlineKind
	Text        string
	Destination string
	Title       string
	Children    []*Inline
}
