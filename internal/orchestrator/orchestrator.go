// Package orchestrator drives the translation of one Markdown document:
// it splits the document into translation units, pushes each through the
// protect/wrap/translate/repair/unwrap pipeline, and reassembles the tree
// into output Markdown with front matter intact.
package orchestrator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/valpere/peremd/internal/frontmatter"
	"github.com/valpere/peremd/internal/lang"
	"github.com/valpere/peremd/internal/markdown"
	"github.com/valpere/peremd/internal/marker"
	"github.com/valpere/peremd/internal/placeholder"
	"github.com/valpere/peremd/internal/quota"
	"github.com/valpere/peremd/internal/translator"
	"github.com/valpere/peremd/internal/validator"
)

const (
	// directivePrefix marks container directives (fenced divs). Their
	// delimiter lines carry class names and attributes, never prose.
	directivePrefix = ":::"

	// Quarto-style alt text trailers attached behind an image.
	altOpen  = "{alt='"
	altClose = "'}"

	// internalWidth keeps a rendered unit on one logical line through the
	// round trip; outputWidth is the wrap applied to the final document.
	internalWidth = 10000
	outputWidth   = 88
)

// Config carries the per-run settings of an Orchestrator.
type Config struct {
	Pair     lang.Pair
	Glossary map[string]string

	// EstimateOnly runs the full pipeline against the unit's own text
	// instead of calling the service, so costs are accounted without
	// spending quota.
	EstimateOnly bool

	// VerifyLanguage spot-checks each translated unit against the target
	// language and warns on confident mismatches.
	VerifyLanguage bool

	InternalWidth int
	OutputWidth   int

	// Warnings receives non-fatal diagnostics; defaults to stderr.
	Warnings io.Writer
}

// Orchestrator translates documents through a single service, strictly
// one unit at a time.
type Orchestrator struct {
	service translator.Service
	acct    *quota.Accountant
	cfg     Config
	check   *validator.Validator

	// contextSnippet is the head of the current document's body, sent
	// alongside every unit as translation context.
	contextSnippet string
}

// New returns an Orchestrator for one run. The language check detector is
// only built when VerifyLanguage is set; it is expensive.
func New(service translator.Service, acct *quota.Accountant, cfg Config) *Orchestrator {
	if cfg.InternalWidth == 0 {
		cfg.InternalWidth = internalWidth
	}
	if cfg.OutputWidth == 0 {
		cfg.OutputWidth = outputWidth
	}
	if cfg.Warnings == nil {
		cfg.Warnings = os.Stderr
	}
	o := &Orchestrator{service: service, acct: acct, cfg: cfg}
	if cfg.VerifyLanguage {
		o.check = validator.New(cfg.Pair.Source, cfg.Pair.Target)
	}
	return o
}

// TranslateDocument translates src and returns the reassembled document.
// Front matter round-trips with only the title translated; paragraphs and
// headings are translated, everything else passes through structurally
// unchanged.
func (o *Orchestrator) TranslateDocument(ctx context.Context, src []byte) ([]byte, error) {
	fm, body, err := frontmatter.Extract(src)
	if err != nil {
		return nil, err
	}

	o.contextSnippet = headRunes(string(body), translator.MaxRequestChars)

	doc, err := markdown.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if fm != nil && len(doc.Children) > 0 && doc.Children[0].Kind == markdown.BlockThematicBreak {
		// Leftover fence artifact from an unusual front matter layout.
		doc.Children = doc.Children[1:]
	}

	if err := o.walk(ctx, doc); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if fm != nil {
		if err := o.translateTitle(ctx, fm); err != nil {
			return nil, err
		}
		head, err := fm.Render()
		if err != nil {
			return nil, err
		}
		out.Write(head)
		out.WriteString("\n")
	}
	out.WriteString(markdown.Render(doc, o.cfg.OutputWidth))
	return out.Bytes(), nil
}

// walk rebuilds the tree top-down: paragraphs and headings are replaced
// by their translations, containers are descended into, everything else
// stays untouched. Tables and code stay verbatim.
func (o *Orchestrator) walk(ctx context.Context, b *markdown.Block) error {
	for i, child := range b.Children {
		switch child.Kind {
		case markdown.BlockParagraph, markdown.BlockHeading:
			if isDirective(child) {
				continue
			}
			translated, err := o.translateBlock(ctx, child)
			if err != nil {
				return err
			}
			b.Children[i] = translated
		case markdown.BlockQuote, markdown.BlockList, markdown.BlockListItem:
			if err := o.walk(ctx, child); err != nil {
				return err
			}
		}
	}
	return nil
}

// translateBlock runs one unit through the full pipeline and returns the
// block parsed back from the translation.
func (o *Orchestrator) translateBlock(ctx context.Context, b *markdown.Block) (*markdown.Block, error) {
	altStripped := stripAltBrackets(b)
	ph := placeholder.Protect(b.Inlines)

	rendered := markdown.RenderBlock(b, o.cfg.InternalWidth)
	wrapped := marker.Wrap(rendered)

	cost := utf8.RuneCountInString(wrapped)
	if err := o.acct.Precheck(cost); err != nil {
		return nil, err
	}
	o.acct.Account(cost)

	translated := wrapped
	if !o.cfg.EstimateOnly {
		var err error
		translated, err = o.service.Translate(ctx, translator.Request{
			Text:     wrapped,
			Pair:     o.cfg.Pair,
			Glossary: o.glossary(),
			Context:  o.contextSnippet,
		})
		if err != nil {
			return nil, fmt.Errorf("translating %q: %w", rendered, err)
		}
	}

	repaired, warnings, err := validator.RepairFragment(translated, ph)
	for _, w := range warnings {
		o.warnf("%s", w)
	}
	if err != nil {
		return nil, fmt.Errorf("unusable translation of %q (got %q): %w", rendered, translated, err)
	}

	unwrapped, res := marker.Unwrap(repaired)
	if res.StartMissing && res.EndMissing {
		return nil, fmt.Errorf("boundary markers entirely absent from translation of %q (got %q)", rendered, translated)
	}
	if !res.Clean() {
		o.warnf("boundary marker partially lost in translation of %q", rendered)
	}

	if o.check != nil && !o.cfg.EstimateOnly {
		if ok, verr := o.check.IsValid(unwrapped, o.cfg.Pair.Target); !ok {
			o.warnf("translation of %q may be in the wrong language: %v", rendered, verr)
		}
	}

	reparsed, err := markdown.Parse([]byte(unwrapped))
	if err != nil {
		return nil, fmt.Errorf("reparsing translation of %q (got %q): %w", rendered, unwrapped, err)
	}
	node := firstUnit(reparsed)
	if node == nil {
		return nil, fmt.Errorf("translation of %q did not parse back to a text block (got %q)", rendered, unwrapped)
	}

	placeholder.Restore(node.Inlines, ph)
	if len(ph) > 0 {
		return nil, fmt.Errorf("%d code placeholders unrecoverable in translation of %q (got %q)", len(ph), rendered, unwrapped)
	}

	if altStripped {
		if err := reattachAltBrackets(node); err != nil {
			return nil, fmt.Errorf("translation of %q: %w", rendered, err)
		}
	}
	return node, nil
}

// translateTitle translates the front matter title in place. Costs are
// accounted like any unit; markers and glossary are skipped, a plain
// string survives the service fine.
func (o *Orchestrator) translateTitle(ctx context.Context, fm *frontmatter.Matter) error {
	title, ok := fm.Title()
	if !ok || strings.TrimSpace(title) == "" {
		return nil
	}
	cost := utf8.RuneCountInString(title)
	if err := o.acct.Precheck(cost); err != nil {
		return err
	}
	o.acct.Account(cost)
	if o.cfg.EstimateOnly {
		return nil
	}
	translated, err := o.service.Translate(ctx, translator.Request{
		Text:    title,
		Pair:    o.cfg.Pair,
		Context: o.contextSnippet,
	})
	if err != nil {
		return fmt.Errorf("translating title %q: %w", title, err)
	}
	fm.SetTitle(strings.TrimSpace(translated))
	return nil
}

// glossary merges the configured glossary with the identity entries that
// protect the boundary markers. No glossary at all means no glossary call
// overhead, so the protected entries ride along only when one is in use.
func (o *Orchestrator) glossary() map[string]string {
	if len(o.cfg.Glossary) == 0 {
		return nil
	}
	merged := make(map[string]string, len(o.cfg.Glossary)+2)
	for k, v := range o.cfg.Glossary {
		merged[k] = v
	}
	for k, v := range marker.ProtectedEntries() {
		merged[k] = v
	}
	return merged
}

// isDirective reports whether a block is a container directive delimiter
// line, which must pass through untranslated.
func isDirective(b *markdown.Block) bool {
	if b.Kind != markdown.BlockParagraph || len(b.Inlines) == 0 {
		return false
	}
	first := b.Inlines[0]
	return first.Kind == markdown.InlineText &&
		strings.HasPrefix(strings.TrimLeft(first.Text, " "), directivePrefix)
}

// stripAltBrackets removes the {alt='...'} trailer wrapping around the
// text behind a leading image, so the service sees the alt prose bare.
// Returns true when a trailer was stripped.
func stripAltBrackets(b *markdown.Block) bool {
	if b.Kind != markdown.BlockParagraph || len(b.Inlines) < 2 {
		return false
	}
	if b.Inlines[0].Kind != markdown.InlineImage {
		return false
	}
	second := b.Inlines[1]
	last := b.Inlines[len(b.Inlines)-1]
	if second.Kind != markdown.InlineText || !strings.HasPrefix(second.Text, altOpen) {
		return false
	}
	if last.Kind != markdown.InlineText || !strings.HasSuffix(last.Text, altClose) {
		return false
	}
	second.Text = strings.TrimPrefix(second.Text, altOpen)
	last.Text = strings.TrimSuffix(last.Text, altClose)
	return true
}

// reattachAltBrackets restores the trailer stripped by stripAltBrackets
// onto the translated block.
func reattachAltBrackets(b *markdown.Block) error {
	if len(b.Inlines) < 2 ||
		b.Inlines[0].Kind != markdown.InlineImage ||
		b.Inlines[1].Kind != markdown.InlineText ||
		b.Inlines[len(b.Inlines)-1].Kind != markdown.InlineText {
		return fmt.Errorf("alt text structure lost in translation")
	}
	b.Inlines[1].Text = altOpen + b.Inlines[1].Text
	last := b.Inlines[len(b.Inlines)-1]
	last.Text = last.Text + altClose
	return nil
}

// firstUnit returns the first paragraph or heading child of a reparsed
// fragment.
func firstUnit(doc *markdown.Block) *markdown.Block {
	for _, child := range doc.Children {
		if child.Kind == markdown.BlockParagraph || child.Kind == markdown.BlockHeading {
			return child
		}
	}
	return nil
}

func headRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

func (o *Orchestrator) warnf(format string, args ...any) {
	fmt.Fprintf(o.cfg.Warnings, "Warning: "+format+"\n", args...)
}
