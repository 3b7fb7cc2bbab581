package markdown

import (
	"fmt"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// extensions is the fixed feature set the parser runs with. Attributes and
// autolinking stay off: `{alt='…'}` trailers and bare URLs must come
// through as plain text so the walker sees them the way authors wrote them.
const extensions = parser.NoIntraEmphasis |
	parser.Tables |
	parser.FencedCode |
	parser.Strikethrough |
	parser.SpaceHeadings |
	parser.HeadingIDs |
	parser.BackslashLineBreak

// Parse builds a Document tree from Markdown source. The returned root
// block always has kind BlockDocument.
func Parse(src []byte) (*Block, error) {
	// A parser instance is single-use; build a fresh one per document.
	p := parser.NewWithExtensions(extensions)
	return convertBlock(p.Parse(src))
}

func convertBlock(n ast.Node) (*Block, error) {
	switch t := n.(type) {
	case *ast.Document:
		children, err := convertChildren(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Block{Kind: BlockDocument, Children: children}, nil

	case *ast.Paragraph:
		inlines, err := convertInlines(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Block{Kind: BlockParagraph, Inlines: inlines}, nil

	case *ast.Heading:
		inlines, err := convertInlines(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Block{Kind: BlockHeading, Level: t.Level, HeadingID: t.HeadingID, Inlines: inlines}, nil

	case *ast.CodeBlock:
		return &Block{Kind: BlockCode, Fenced: t.IsFenced, Info: string(t.Info), Literal: string(t.Literal)}, nil

	case *ast.BlockQuote:
		children, err := convertChildren(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Block{Kind: BlockQuote, Children: children}, nil

	case *ast.List:
		children, err := convertChildren(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Block{
			Kind:     BlockList,
			Ordered:  t.ListFlags&ast.ListTypeOrdered != 0,
			Start:    t.Start,
			Tight:    t.Tight,
			Children: children,
		}, nil

	case *ast.ListItem:
		children, err := convertChildren(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Block{Kind: BlockListItem, Children: children}, nil

	case *ast.HorizontalRule:
		return &Block{Kind: BlockThematicBreak}, nil

	case *ast.HTMLBlock:
		return &Block{Kind: BlockHTML, Literal: string(t.Literal)}, nil

	case *ast.Table:
		return convertTable(t)

	default:
		return nil, fmt.Errorf("unsupported block node %T", n)
	}
}

// convertChildren converts the block children of a container. Inline nodes
// appearing directly under a container (tight list items) are grouped into
// a synthetic paragraph so the tree stays uniform.
func convertChildren(nodes []ast.Node) ([]*Block, error) {
	var blocks []*Block
	var pending []*Inline

	flush := func() {
		if len(pending) > 0 {
			blocks = append(blocks, &Block{Kind: BlockParagraph, Inlines: pending})
			pending = nil
		}
	}

	for _, n := range nodes {
		if isInlineNode(n) {
			in, err := convertInline(n)
			if err != nil {
				return nil, err
			}
			pending = append(pending, in)
			continue
		}
		flush()
		b, err := convertBlock(n)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	flush()
	return blocks, nil
}

func convertTable(t *ast.Table) (*Block, error) {
	table := &Block{Kind: BlockTable}
	for _, section := range t.GetChildren() {
		header := false
		switch section.(type) {
		case *ast.TableHeader:
			header = true
		case *ast.TableBody, *ast.TableFooter:
		default:
			return nil, fmt.Errorf("unsupported table section %T", section)
		}
		for _, rowNode := range section.GetChildren() {
			row := &Block{Kind: BlockTableRow, Header: header}
			for _, cellNode := range rowNode.GetChildren() {
				cell, ok := cellNode.(*ast.TableCell)
				if !ok {
					return nil, fmt.Errorf("unsupported table cell %T", cellNode)
				}
				inlines, err := convertInlines(cell.GetChildren())
				if err != nil {
					return nil, err
				}
				row.Children = append(row.Children, &Block{
					Kind:    BlockTableCell,
					Header:  header,
					Align:   cellAlign(cell.Align),
					Inlines: inlines,
				})
			}
			table.Children = append(table.Children, row)
		}
	}
	return table, nil
}

func cellAlign(a ast.CellAlignFlags) Align {
	switch a {
	case ast.TableAlignmentLeft:
		return AlignLeft
	case ast.TableAlignmentCenter:
		return AlignCenter
	case ast.TableAlignmentRight:
		return AlignRight
	}
	return AlignNone
}

func isInlineNode(n ast.Node) bool {
	switch n.(type) {
	case *ast.Text, *ast.Code, *ast.Emph, *ast.Strong, *ast.Del,
		*ast.Link, *ast.Image, *ast.HTMLSpan, *ast.Softbreak, *ast.Hardbreak:
		return true
	}
	return false
}

func convertInlines(nodes []ast.Node) ([]*Inline, error) {
	inlines := make([]*Inline, 0, len(nodes))
	for _, n := range nodes {
		in, err := convertInline(n)
		if err != nil {
			return nil, err
		}
		inlines = append(inlines, in)
	}
	return inlines, nil
}

func convertInline(n ast.Node) (*Inline, error) {
	switch t := n.(type) {
	case *ast.Text:
		return &Inline{Kind: InlineText, Text: string(t.Literal)}, nil
	case *ast.Code:
		return &Inline{Kind: InlineCode, Text: string(t.Literal)}, nil
	case *ast.Emph:
		children, err := convertInlines(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Inline{Kind: InlineEmph, Children: children}, nil
	case *ast.Strong:
		children, err := convertInlines(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Inline{Kind: InlineStrong, Children: children}, nil
	case *ast.Del:
		children, err := convertInlines(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Inline{Kind: InlineStrike, Children: children}, nil
	case *ast.Link:
		children, err := convertInlines(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Inline{
			Kind:        InlineLink,
			Destination: string(t.Destination),
			Title:       string(t.Title),
			Children:    children,
		}, nil
	case *ast.Image:
		children, err := convertInlines(t.GetChildren())
		if err != nil {
			return nil, err
		}
		return &Inline{
			Kind:        InlineImage,
			Destination: string(t.Destination),
			Title:       string(t.Title),
			Children:    children,
		}, nil
	case *ast.HTMLSpan:
		return &Inline{Kind: InlineHTML, Text: string(t.Literal)}, nil
	case *ast.Softbreak:
		return &Inline{Kind: InlineSoftBreak}, nil
	case *ast.Hardbreak:
		return &Inline{Kind: InlineHardBreak}, nil
	default:
		return nil, fmt.Errorf("unsupported inline node %T", n)
	}
}
