// Package render provides the default in-process rendering engine behind
// the export pipeline: serialized block markup in, a paginated PDF out.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/net/html"

	"github.com/dgallion1/docdraft/internal/export"
)

// PDFEngine implements export.Engine on a vector PDF backend. RasterScale
// from the options is ignored: there is no rasterization step.
type PDFEngine struct{}

func NewPDFEngine() *PDFEngine {
	return &PDFEngine{}
}

// Heading sizes relative to the base font, following CSS defaults.
var headingScale = [7]float64{0, 2.0, 1.5, 1.17, 1.0, 0.83, 0.67}

func (e *PDFEngine) Render(ctx context.Context, markup string, opts export.Options) ([]byte, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	orient := "P"
	if opts.Orientation == "landscape" {
		orient = "L"
	}
	pdf := fpdf.New(orient, "in", pageFormat(opts.PageSize), "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	top, left, bottom, right := opts.Margins[0], opts.Margins[1], opts.Margins[2], opts.Margins[3]
	pdf.SetMargins(left, top, right)
	pdf.SetAutoPageBreak(true, bottom)
	pdf.SetTitle(strings.TrimSuffix(opts.Filename, ".pdf"), true)
	pdf.AddPage()

	w := &pdfWriter{
		pdf:    pdf,
		tr:     tr,
		family: coreFamily(opts.FontFamily),
		base:   opts.FontSizePt,
		left:   left,
	}

	body := findBody(root)
	if body == nil {
		body = root
	}

	// Each ordered-list block serializes as its own <ol>; consecutive
	// ones continue a single numbering run.
	ordinal := 0
	for n := body.FirstChild; n != nil; n = n.NextSibling {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n.Type != html.ElementNode {
			continue
		}
		if n.Data == "ol" {
			ordinal++
		} else {
			ordinal = 0
		}
		w.writeBlock(n, ordinal)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfWriter struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	family string
	base   float64
	left   float64
}

func (w *pdfWriter) writeBlock(n *html.Node, ordinal int) {
	text := textContent(n)
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		size := w.base * headingScale[level]
		w.pdf.SetFont(w.family, "B", size)
		w.pdf.Ln(w.lineHeight(size) * 0.4)
		w.pdf.MultiCell(0, w.lineHeight(size), w.tr(text), "", "L", false)
	case "blockquote":
		w.pdf.SetFont(w.family, "I", w.base)
		y0 := w.pdf.GetY()
		w.pdf.SetLeftMargin(w.left + 0.25)
		w.pdf.MultiCell(0, w.lineHeight(w.base), w.tr(text), "", "L", false)
		w.pdf.SetLeftMargin(w.left)
		w.pdf.SetDrawColor(120, 120, 120)
		w.pdf.SetLineWidth(0.015)
		w.pdf.Line(w.left+0.12, y0, w.left+0.12, w.pdf.GetY())
	case "ul":
		w.pdf.SetFont(w.family, "", w.base)
		w.pdf.SetLeftMargin(w.left + 0.25)
		w.pdf.MultiCell(0, w.lineHeight(w.base), w.tr("•  "+text), "", "L", false)
		w.pdf.SetLeftMargin(w.left)
	case "ol":
		w.pdf.SetFont(w.family, "", w.base)
		w.pdf.SetLeftMargin(w.left + 0.25)
		w.pdf.MultiCell(0, w.lineHeight(w.base), w.tr(fmt.Sprintf("%d.  %s", ordinal, text)), "", "L", false)
		w.pdf.SetLeftMargin(w.left)
	case "pre":
		w.pdf.SetFont("Courier", "", w.base-1)
		w.pdf.SetFillColor(245, 245, 245)
		w.pdf.MultiCell(0, w.lineHeight(w.base), w.tr(text), "", "L", true)
	default:
		w.pdf.SetFont(w.family, "", w.base)
		w.pdf.MultiCell(0, w.lineHeight(w.base), w.tr(text), "", "L", false)
	}
	w.pdf.Ln(w.lineHeight(w.base) * 0.3)
}

// lineHeight converts a point size into an inch line height.
func (w *pdfWriter) lineHeight(sizePt float64) float64 {
	return sizePt / 72 * 1.45
}

// coreFamily maps a requested font family onto the PDF core fonts.
func coreFamily(family string) string {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "courier"), strings.Contains(f, "mono"):
		return "Courier"
	case strings.Contains(f, "times"), strings.Contains(f, "serif") && !strings.Contains(f, "sans"):
		return "Times"
	default:
		return "Helvetica"
	}
}

func pageFormat(size string) string {
	switch strings.ToLower(size) {
	case "a3":
		return "A3"
	case "a4":
		return "A4"
	case "a5":
		return "A5"
	case "legal":
		return "Legal"
	case "tabloid":
		return "Tabloid"
	default:
		return "Letter"
	}
}

func textContent(n *html.Node) string {
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
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
