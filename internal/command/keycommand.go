package command

import (
	"github.com/dgallion1/docdraft/internal/document"
)

// Named editing commands dispatched by the host widget's key bindings.
const (
	KeyBold       = "bold"
	KeyItalic     = "italic"
	KeyUnderline  = "underline"
	KeyCode       = "code"
	KeySplitBlock = "split-block"
	KeyBackspace  = "backspace"
	KeyDelete     = "delete"
	KeyIndent     = "indent"
	KeyOutdent    = "outdent"
)

// HandleKeyCommand dispatches a named editing command. handled reports
// whether the command produced a mutation; when false the widget applies
// its own default behavior and the returned pair equals the input.
func HandleKeyCommand(doc document.Document, sel document.Selection, cmd string) (document.Document, document.Selection, bool) {
	switch cmd {
	case KeyBold:
		out, s := ToggleInlineStyle(doc, sel, document.Bold)
		return out, s, true
	case KeyItalic:
		out, s := ToggleInlineStyle(doc, sel, document.Italic)
		return out, s, true
	case KeyUnderline:
		out, s := ToggleInlineStyle(doc, sel, document.Underline)
		return out, s, true
	case KeyCode:
		out, s := ToggleInlineStyle(doc, sel, document.Code)
		return out, s, true
	case KeySplitBlock:
		return SplitBlock(doc, sel)
	case KeyBackspace:
		return mergeWithPrevious(doc, sel)
	case KeyDelete:
		return mergeWithNext(doc, sel)
	case KeyIndent:
		out, s := AdjustDepth(doc, sel, 1)
		return out, s, true
	case KeyOutdent:
		out, s := AdjustDepth(doc, sel, -1)
		return out, s, true
	}
	return doc, sel, false
}

// SplitBlock splits the block at the selection start into two. The second
// half gets a fresh key and inherits type and depth; style ranges are
// partitioned at the split point. The selection collapses to the start of
// the new block.
func SplitBlock(doc document.Document, sel document.Selection) (document.Document, document.Selection, bool) {
	startIdx, startOff, _, _, ok := sel.Normalize(doc)
	if !ok {
		return doc, sel, false
	}

	out := doc.Clone()
	b := out.Blocks[startIdx]
	runes := []rune(b.Text)
	if startOff < 0 {
		startOff = 0
	}
	if startOff > len(runes) {
		startOff = len(runes)
	}

	head := b
	head.Text = string(runes[:startOff])
	head.Styles = clipStyles(b.Styles, 0, startOff, 0)

	tail := document.Block{
		Key:    document.NewKey(),
		Type:   b.Type,
		Depth:  b.Depth,
		Text:   string(runes[startOff:]),
		Styles: clipStyles(b.Styles, startOff, len(runes), -startOff),
	}

	blocks := make([]document.Block, 0, len(out.Blocks)+1)
	blocks = append(blocks, out.Blocks[:startIdx]...)
	blocks = append(blocks, head, tail)
	blocks = append(blocks, out.Blocks[startIdx+1:]...)
	out.Blocks = blocks

	return out, document.CollapsedAt(tail.Key, 0), true
}

// mergeWithPrevious handles backspace: only a cursor at offset 0 of a
// non-first block merges that block into its predecessor. Everything else
// is left to the widget's default character deletion.
func mergeWithPrevious(doc document.Document, sel document.Selection) (document.Document, document.Selection, bool) {
	if !sel.Collapsed() {
		return doc, sel, false
	}
	idx := doc.IndexOf(sel.AnchorKey)
	if idx <= 0 || sel.AnchorOffset != 0 {
		return doc, sel, false
	}
	out, caret := mergeBlocks(doc, idx-1, idx)
	return out, caret, true
}

// mergeWithNext handles forward delete: only a cursor at the end of a
// non-last block merges the following block into it.
func mergeWithNext(doc document.Document, sel document.Selection) (document.Document, document.Selection, bool) {
	if !sel.Collapsed() {
		return doc, sel, false
	}
	idx := doc.IndexOf(sel.AnchorKey)
	if idx < 0 || idx >= len(doc.Blocks)-1 {
		return doc, sel, false
	}
	if sel.AnchorOffset != doc.Blocks[idx].TextLen() {
		return doc, sel, false
	}
	out, caret := mergeBlocks(doc, idx, idx+1)
	return out, caret, true
}

// mergeBlocks appends block at into block into, re-anchoring the absorbed
// block's style ranges, and collapses the caret at the join point. The
// surviving block keeps its own key, type and depth.
func mergeBlocks(doc document.Document, into, at int) (document.Document, document.Selection) {
	out := doc.Clone()
	dst := &out.Blocks[into]
	src := out.Blocks[at]

	joinOff := dst.TextLen()
	dst.Text += src.Text
	for _, r := range src.Styles {
		dst.Styles = addStyleRange(dst.Styles, r.Style, r.Start+joinOff, r.End+joinOff)
	}

	out.Blocks = append(out.Blocks[:at], out.Blocks[at+1:]...)
	return out, document.CollapsedAt(dst.Key, joinOff)
}

// clipStyles keeps the portion of each range overlapping [lo, hi) and
// shifts it by delta.
func clipStyles(styles []document.StyleRange, lo, hi, delta int) []document.StyleRange {
	var out []document.StyleRange
	for _, r := range styles {
		s, e := r.Start, r.End
		if s < lo {
			s = lo
		}
		if e > hi {
			e = hi
		}
		if s >= e {
			continue
		}
		out = append(out, document.StyleRange{Style: r.Style, Start: s + delta, End: e + delta})
	}
	return out
}
