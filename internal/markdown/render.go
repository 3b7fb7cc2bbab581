package markdown

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Render serializes a document tree back to Markdown, wrapping paragraph
// text at width runes. Pass a very large width during internal processing
// so a translation unit never spans multiple lines.
func Render(doc *Block, width int) string {
	parts := make([]string, 0, len(doc.Children))
	for _, child := range doc.Children {
		parts = append(parts, RenderBlock(child, width))
	}
	out := strings.Join(parts, "\n\n")
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// RenderBlock serializes a single block (without trailing newline for
// single-line kinds).
func RenderBlock(b *Block, width int) string {
	switch b.Kind {
	case BlockDocument:
		return Render(b, width)
	case BlockParagraph:
		return wrap(flow(b.Inlines), width)
	case BlockHeading:
		return renderHeading(b)
	case BlockCode:
		return renderCode(b)
	case BlockQuote:
		return renderQuote(b, width)
	case BlockList:
		return renderList(b, width)
	case BlockListItem:
		// Rendered by the owning list; standalone fallback.
		return renderBlocks(b.Children, width)
	case BlockThematicBreak:
		return "---"
	case BlockHTML:
		return strings.TrimRight(b.Literal, "\n")
	case BlockTable:
		return renderTable(b)
	case BlockTableRow, BlockTableCell:
		// Rendered by the owning table; standalone fallback.
		return flow(b.Inlines)
	}
	return ""
}

func renderHeading(b *Block) string {
	line := strings.Repeat("#", b.Level) + " " + flow(b.Inlines)
	if b.HeadingID != "" {
		line += fmt.Sprintf(" {#%s}", b.HeadingID)
	}
	return line
}

func renderCode(b *Block) string {
	lit := b.Literal
	if lit != "" && !strings.HasSuffix(lit, "\n") {
		lit += "\n"
	}
	if !b.Fenced {
		var sb strings.Builder
		for _, line := range strings.Split(strings.TrimRight(lit, "\n"), "\n") {
			if line == "" {
				sb.WriteString("\n")
				continue
			}
			sb.WriteString("    " + line + "\n")
		}
		return strings.TrimRight(sb.String(), "\n")
	}
	fence := strings.Repeat("`", max(3, longestRun(lit, '`')+1))
	return fence + b.Info + "\n" + lit + fence
}

func renderQuote(b *Block, width int) string {
	inner := renderBlocks(b.Children, width-2)
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

func renderList(b *Block, width int) string {
	items := make([]string, 0, len(b.Children))
	start := b.Start
	if start == 0 {
		start = 1
	}
	for idx, item := range b.Children {
		mark := "- "
		if b.Ordered {
			mark = fmt.Sprintf("%d. ", start+idx)
		}
		indent := strings.Repeat(" ", len(mark))
		body := renderBlocks(item.Children, width-len(mark))
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			switch {
			case i == 0:
				lines[i] = mark + line
			case line != "":
				lines[i] = indent + line
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}
	sep := "\n"
	if !b.Tight {
		sep = "\n\n"
	}
	return strings.Join(items, sep)
}

func renderBlocks(blocks []*Block, width int) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, RenderBlock(b, width))
	}
	return strings.Join(parts, "\n\n")
}

func renderTable(b *Block) string {
	// Cell text and column widths first, then aligned emission.
	type row struct {
		header bool
		cells  []string
		aligns []Align
	}
	rows := make([]row, 0, len(b.Children))
	var widths []int
	for _, r := range b.Children {
		cur := row{header: r.Header}
		for i, c := range r.Children {
			text := flow(c.Inlines)
			cur.cells = append(cur.cells, text)
			cur.aligns = append(cur.aligns, c.Align)
			if w := utf8.RuneCountInString(text); i >= len(widths) {
				widths = append(widths, max(w, 3))
			} else if w > widths[i] {
				widths[i] = w
			}
		}
		rows = append(rows, cur)
	}

	var sb strings.Builder
	wroteSeparator := false
	for _, r := range rows {
		sb.WriteString("|")
		for i, cell := range r.cells {
			sb.WriteString(" " + pad(cell, widths[i]) + " |")
		}
		sb.WriteString("\n")
		if r.header && !wroteSeparator {
			sb.WriteString("|")
			for i := range r.cells {
				sb.WriteString(separatorCell(widths[i], r.aligns[i]) + "|")
			}
			sb.WriteString("\n")
			wroteSeparator = true
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func separatorCell(width int, a Align) string {
	dashes := strings.Repeat("-", max(width, 3))
	switch a {
	case AlignLeft:
		return ":" + dashes + " "
	case AlignCenter:
		return ":" + dashes + ":"
	case AlignRight:
		return " " + dashes + ":"
	}
	return " " + dashes + " "
}

func pad(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// flow renders inline content to a single logical line. Whitespace runs in
// plain text collapse to single spaces (paragraphs are re-flowed by wrap);
// code spans keep their content verbatim apart from newline normalization.
func flow(inlines []*Inline) string {
	var sb strings.Builder
	writeInlines(&sb, inlines)
	return sb.String()
}

func writeInlines(sb *strings.Builder, inlines []*Inline) {
	for _, in := range inlines {
		switch in.Kind {
		case InlineText:
			sb.WriteString(collapseWhitespace(in.Text))
		case InlineCode:
			sb.WriteString(codeSpan(in.Text))
		case InlineEmph:
			sb.WriteString("*")
			writeInlines(sb, in.Children)
			sb.WriteString("*")
		case InlineStrong:
			sb.WriteString("**")
			writeInlines(sb, in.Children)
			sb.WriteString("**")
		case InlineStrike:
			sb.WriteString("~~")
			writeInlines(sb, in.Children)
			sb.WriteString("~~")
		case InlineLink:
			sb.WriteString("[")
			writeInlines(sb, in.Children)
			sb.WriteString("](" + in.Destination + title(in.Title) + ")")
		case InlineImage:
			sb.WriteString("![")
			writeInlines(sb, in.Children)
			sb.WriteString("](" + in.Destination + title(in.Title) + ")")
		case InlineHTML:
			sb.WriteString(in.Text)
		case InlineSoftBreak:
			sb.WriteString(" ")
		case InlineHardBreak:
			sb.WriteString("\\\n")
		}
	}
}

func title(t string) string {
	if t == "" {
		return ""
	}
	return fmt.Sprintf(" %q", t)
}

// codeSpan delimits s with one more backtick than its longest internal run
// and pads with spaces when the content starts or ends with a backtick.
func codeSpan(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	delim := strings.Repeat("`", longestRun(s, '`')+1)
	pad := ""
	if s == "" || strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		pad = " "
	}
	return delim + pad + s + pad + delim
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !inSpace {
				sb.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// wrap re-flows s at width runes, breaking only at spaces that sit outside
// code spans. Lines already split by hard breaks are wrapped independently.
func wrap(s string, width int) string {
	lines := strings.Split(s, "\n")
	var out []string
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func wrapLine(s string, width int) []string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	inCode := codeMask(s)

	var lines []string
	lineStart := 0 // byte offset of current line start
	lastBreak := -1
	count := 0
	for i, r := range s {
		if r == ' ' && !inCode[i] {
			lastBreak = i
		}
		count++
		if count > width && lastBreak > lineStart {
			lines = append(lines, s[lineStart:lastBreak])
			lineStart = lastBreak + 1
			count = utf8.RuneCountInString(s[lineStart : i+utf8.RuneLen(r)])
			lastBreak = -1
		}
	}
	if lineStart < len(s) {
		lines = append(lines, s[lineStart:])
	}
	return lines
}

// codeMask marks each byte of s that lies inside a code span (delimiters
// included) so wrapping never splits protected content.
func codeMask(s string) []bool {
	mask := make([]bool, len(s))
	i := 0
	for i < len(s) {
		if s[i] != '`' {
			i++
			continue
		}
		// Opening run of n backticks; the span closes at the next run of
		// exactly n.
		n := 0
		for i+n < len(s) && s[i+n] == '`' {
			n++
		}
		end := -1
		j := i + n
		for j < len(s) {
			if s[j] != '`' {
				j++
				continue
			}
			m := 0
			for j+m < len(s) && s[j+m] == '`' {
				m++
			}
			if m == n {
				end = j + m
				break
			}
			j += m
		}
		if end == -1 {
			i += n
			continue
		}
		for k := i; k < end; k++ {
			mask[k] = true
		}
		i = end
	}
	return mask
}
