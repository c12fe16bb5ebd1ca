// Package markup serializes a document into HTML-like fragments for the
// export pipeline, one fragment per block. Inline style ranges are not
// emitted: the export contract predates them and renders plain block text
// only, so reproducing them here would silently change exported artifacts.
package markup

import (
	"strings"

	"github.com/dgallion1/docdraft/internal/document"
)

// Fragment is one block's serialized form.
type Fragment string

// Markup-significant characters in block text are escaped; everything else
// passes through verbatim.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Serialize converts each block independently into exactly one fragment.
// The mapping is total: unrecognized or alignment types fall back to <p>,
// so serialization never fails.
func Serialize(doc document.Document) []Fragment {
	frags := make([]Fragment, len(doc.Blocks))
	for i, b := range doc.Blocks {
		frags[i] = serializeBlock(b)
	}
	return frags
}

// Render concatenates the fragments in block order with no separators.
func Render(doc document.Document) string {
	var sb strings.Builder
	for _, b := range doc.Blocks {
		sb.WriteString(string(serializeBlock(b)))
	}
	return sb.String()
}

func serializeBlock(b document.Block) Fragment {
	text := escaper.Replace(b.Text)
	switch b.Type {
	case document.HeaderOne:
		return Fragment("<h1>" + text + "</h1>")
	case document.HeaderTwo:
		return Fragment("<h2>" + text + "</h2>")
	case document.HeaderThree:
		return Fragment("<h3>" + text + "</h3>")
	case document.HeaderFour:
		return Fragment("<h4>" + text + "</h4>")
	case document.HeaderFive:
		return Fragment("<h5>" + text + "</h5>")
	case document.HeaderSix:
		return Fragment("<h6>" + text + "</h6>")
	case document.Blockquote:
		return Fragment("<blockquote>" + text + "</blockquote>")
	case document.UnorderedListItem:
		return Fragment("<ul><li>" + text + "</li></ul>")
	case document.OrderedListItem:
		return Fragment("<ol><li>" + text + "</li></ol>")
	case document.CodeBlock:
		return Fragment("<pre><code>" + text + "</code></pre>")
	default:
		return Fragment("<p>" + text + "</p>")
	}
}
