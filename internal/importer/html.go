package importer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/dgallion1/docdraft/internal/document"
)

// HTMLImporter handles HTML files. Input is sanitized down to the block
// and inline elements the document model can represent before parsing.
type HTMLImporter struct{}

var htmlPolicy = bluemonday.NewPolicy().AllowElements(
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "blockquote", "ul", "ol", "li", "pre", "code",
	"b", "strong", "i", "em", "u", "br", "div", "span",
)

func (p *HTMLImporter) Import(r io.Reader, filename string) ([]document.Block, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	clean := htmlPolicy.SanitizeBytes(raw)

	root, err := html.Parse(bytes.NewReader(clean))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	body := htmlBody(root)
	if body == nil {
		body = root
	}

	var blocks []document.Block
	htmlWalk(body, 0, &blocks)
	return blocks, nil
}

func htmlWalk(n *html.Node, depth int, blocks *[]document.Block) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if txt := strings.TrimSpace(c.Data); txt != "" {
				*blocks = append(*blocks, document.Block{
					Key: document.NewKey(), Type: document.Unstyled, Text: txt,
				})
			}
			continue
		}
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(c.Data[1] - '0')
			appendInlineBlock(blocks, c, document.HeaderType(level), 0)
		case "p":
			appendInlineBlock(blocks, c, document.Unstyled, 0)
		case "blockquote":
			quoted := len(*blocks)
			htmlWalk(c, depth, blocks)
			for i := quoted; i < len(*blocks); i++ {
				(*blocks)[i].Type = document.Blockquote
			}
		case "pre":
			if txt := strings.Trim(htmlText(c), "\n"); txt != "" {
				*blocks = append(*blocks, document.Block{
					Key: document.NewKey(), Type: document.CodeBlock, Text: txt,
				})
			}
		case "ul":
			htmlList(c, document.UnorderedListItem, depth, blocks)
		case "ol":
			htmlList(c, document.OrderedListItem, depth, blocks)
		default:
			// div, span and anything else act as transparent containers.
			htmlWalk(c, depth, blocks)
		}
	}
}

func htmlList(n *html.Node, typ document.BlockType, depth int, blocks *[]document.Block) {
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		appendInlineBlock(blocks, li, typ, depth)
		// Nested lists inside the item continue one level deeper.
		for c := li.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
				t := document.UnorderedListItem
				if c.Data == "ol" {
					t = document.OrderedListItem
				}
				htmlList(c, t, depth+1, blocks)
			}
		}
	}
}

func appendInlineBlock(blocks *[]document.Block, n *html.Node, typ document.BlockType, depth int) {
	txt, styles := htmlInline(n)
	if txt == "" {
		return
	}
	*blocks = append(*blocks, document.Block{
		Key:    document.NewKey(),
		Type:   typ,
		Text:   txt,
		Depth:  depth,
		Styles: styles,
	})
}

// htmlInlineWalker flattens an element's inline content, recording style
// ranges for b/strong, i/em, u and code spans. Nested block elements
// (lists inside list items) are skipped; they are walked separately.
type htmlInlineWalker struct {
	sb     strings.Builder
	off    int
	styles []document.StyleRange
}

func htmlInline(n *html.Node) (string, []document.StyleRange) {
	w := &htmlInlineWalker{}
	w.children(n)
	txt := strings.TrimRight(w.sb.String(), " \t\n")
	return txt, clampRanges(w.styles, utf8.RuneCountInString(txt))
}

func (w *htmlInlineWalker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *htmlInlineWalker) walk(n *html.Node) {
	if n.Type == html.TextNode {
		w.write(n.Data)
		return
	}
	if n.Type != html.ElementNode {
		return
	}
	switch n.Data {
	case "b", "strong":
		w.span(n, document.Bold)
	case "i", "em":
		w.span(n, document.Italic)
	case "u":
		w.span(n, document.Underline)
	case "code":
		w.span(n, document.Code)
	case "br":
		w.write(" ")
	case "ul", "ol", "blockquote", "pre":
		// Block children handled by the outer walk.
	default:
		w.children(n)
	}
}

func (w *htmlInlineWalker) span(n *html.Node, style document.InlineStyle) {
	start := w.off
	w.children(n)
	if w.off > start {
		w.styles = append(w.styles, document.StyleRange{Style: style, Start: start, End: w.off})
	}
}

func (w *htmlInlineWalker) write(s string) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return
	}
	if w.sb.Len() > 0 {
		s = " " + s
	}
	w.sb.WriteString(s)
	w.off += utf8.RuneCountInString(s)
}

// htmlText returns raw text content, preserving line structure (used for
// code blocks).
func htmlText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func htmlBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := htmlBody(c); b != nil {
			return b
		}
	}
	return nil
}
