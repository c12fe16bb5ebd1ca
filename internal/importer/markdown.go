package importer

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/docdraft/internal/document"
)

// MarkdownImporter converts Markdown files using goldmark. Headings, lists,
// quotes and code fences map onto the corresponding block types; emphasis
// and code spans become inline style ranges.
type MarkdownImporter struct{}

func (p *MarkdownImporter) Import(r io.Reader, filename string) ([]document.Block, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var blocks []document.Block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		blocks = append(blocks, mdBlocks(n, src, 0)...)
	}
	return blocks, nil
}

func mdBlocks(n ast.Node, src []byte, depth int) []document.Block {
	switch node := n.(type) {
	case *ast.Heading:
		txt, styles := mdInline(node, src)
		if txt == "" {
			return nil
		}
		return []document.Block{{
			Key:    document.NewKey(),
			Type:   document.HeaderType(node.Level),
			Text:   txt,
			Styles: styles,
		}}

	case *ast.Paragraph, *ast.TextBlock:
		txt, styles := mdInline(n, src)
		if txt == "" {
			return nil
		}
		return []document.Block{{
			Key:    document.NewKey(),
			Type:   document.Unstyled,
			Text:   txt,
			Styles: styles,
		}}

	case *ast.Blockquote:
		// One blockquote block per quoted paragraph.
		var out []document.Block
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			for _, b := range mdBlocks(c, src, depth) {
				b.Type = document.Blockquote
				out = append(out, b)
			}
		}
		return out

	case *ast.FencedCodeBlock:
		return codeBlockFrom(n, src)
	case *ast.CodeBlock:
		return codeBlockFrom(n, src)

	case *ast.List:
		typ := document.UnorderedListItem
		if node.IsOrdered() {
			typ = document.OrderedListItem
		}
		var out []document.Block
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				if sub, ok := c.(*ast.List); ok {
					out = append(out, mdBlocks(sub, src, depth+1)...)
					continue
				}
				txt, styles := mdInline(c, src)
				if txt == "" {
					continue
				}
				out = append(out, document.Block{
					Key:    document.NewKey(),
					Type:   typ,
					Text:   txt,
					Depth:  depth,
					Styles: styles,
				})
			}
		}
		return out

	case *ast.ThematicBreak:
		return nil

	default:
		if txt := rawLines(n, src); txt != "" {
			return []document.Block{{Key: document.NewKey(), Type: document.Unstyled, Text: txt}}
		}
		return nil
	}
}

func codeBlockFrom(n ast.Node, src []byte) []document.Block {
	txt := strings.TrimRight(rawLines(n, src), "\n")
	if txt == "" {
		return nil
	}
	return []document.Block{{Key: document.NewKey(), Type: document.CodeBlock, Text: txt}}
}

// rawLines joins a block node's source lines verbatim.
func rawLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	return strings.TrimSpace(buf.String())
}

// mdInlineWalker flattens inline nodes to plain text while recording style
// ranges at rune offsets.
type mdInlineWalker struct {
	src    []byte
	sb     strings.Builder
	off    int
	styles []document.StyleRange
}

func mdInline(n ast.Node, src []byte) (string, []document.StyleRange) {
	w := &mdInlineWalker{src: src}
	w.children(n)
	return strings.TrimSpace(w.sb.String()), clampRanges(w.styles, utf8.RuneCountInString(strings.TrimSpace(w.sb.String())))
}

func (w *mdInlineWalker) children(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.walk(c)
	}
}

func (w *mdInlineWalker) walk(n ast.Node) {
	switch node := n.(type) {
	case *ast.Text:
		w.write(string(node.Value(w.src)))
		if node.SoftLineBreak() || node.HardLineBreak() {
			w.write(" ")
		}
	case *ast.String:
		w.write(string(node.Value))
	case *ast.Emphasis:
		start := w.off
		w.children(n)
		if node.Level >= 2 {
			w.mark(document.Bold, start)
		} else {
			w.mark(document.Italic, start)
		}
	case *ast.CodeSpan:
		start := w.off
		w.children(n)
		w.mark(document.Code, start)
	default:
		w.children(n)
	}
}

func (w *mdInlineWalker) write(s string) {
	// Leading whitespace is dropped while the buffer is empty so style
	// offsets line up with the trimmed text.
	if w.sb.Len() == 0 {
		s = strings.TrimLeft(s, " \t\n")
	}
	w.sb.WriteString(s)
	w.off += utf8.RuneCountInString(s)
}

func (w *mdInlineWalker) mark(style document.InlineStyle, start int) {
	if w.off > start {
		w.styles = append(w.styles, document.StyleRange{Style: style, Start: start, End: w.off})
	}
}

// clampRanges drops or truncates ranges that spill past the trimmed text.
func clampRanges(styles []document.StyleRange, n int) []document.StyleRange {
	var out []document.StyleRange
	for _, r := range styles {
		if r.Start >= n {
			continue
		}
		if r.End > n {
			r.End = n
		}
		out = append(out, r)
	}
	return out
}
