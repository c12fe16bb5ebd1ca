// Package command implements the formatting command set as pure functions
// over (Document, Selection) pairs. Inputs are never mutated; every
// operation returns a fresh document. A selection that references block
// keys absent from the document makes the command a no-op.
package command

import (
	"sort"

	"github.com/dgallion1/docdraft/internal/document"
)

// MaxListDepth is the deepest list nesting the depth commands allow.
// Matches the host widget's tab handling.
const MaxListDepth = 4

// ToggleBlockType flips the block type of every block touched by the
// selection. If all of them already have typ, they reset to unstyled;
// a mixed selection is treated as not uniform, so the toggle applies typ
// rather than clearing. Alignment values share the same type slot, so
// toggling an align-* type replaces any structural type (and vice versa).
func ToggleBlockType(doc document.Document, sel document.Selection, typ document.BlockType) (document.Document, document.Selection) {
	startIdx, _, endIdx, _, ok := sel.Normalize(doc)
	if !ok {
		return doc, sel
	}

	uniform := true
	for i := startIdx; i <= endIdx; i++ {
		if doc.Blocks[i].Type != typ {
			uniform = false
			break
		}
	}

	target := typ
	if uniform {
		target = document.Unstyled
	}

	out := doc.Clone()
	for i := startIdx; i <= endIdx; i++ {
		out.Blocks[i].Type = target
	}
	return out, sel
}

// ToggleAlignment toggles one of the align-* block types. Alignment is
// stored in the block type slot, so this shares ToggleBlockType's on/off
// semantics exactly.
func ToggleAlignment(doc document.Document, sel document.Selection, alignment document.BlockType) (document.Document, document.Selection) {
	return ToggleBlockType(doc, sel, alignment)
}

// ToggleInlineStyle adds style to the full selected range, or removes it
// when every selected character already carries it. A collapsed selection
// is a no-op: pending-style tracking for the next typed character is the
// host widget's job.
func ToggleInlineStyle(doc document.Document, sel document.Selection, style document.InlineStyle) (document.Document, document.Selection) {
	startIdx, startOff, endIdx, endOff, ok := sel.Normalize(doc)
	if !ok || sel.Collapsed() {
		return doc, sel
	}

	// The selection uniformly carries the style only if each touched
	// block's selected span is fully covered.
	covered := true
	for i := startIdx; i <= endIdx; i++ {
		lo, hi := spanWithin(doc.Blocks[i], i, startIdx, startOff, endIdx, endOff)
		if lo >= hi {
			continue
		}
		if !rangeCovered(doc.Blocks[i].Styles, style, lo, hi) {
			covered = false
			break
		}
	}

	out := doc.Clone()
	for i := startIdx; i <= endIdx; i++ {
		b := &out.Blocks[i]
		lo, hi := spanWithin(*b, i, startIdx, startOff, endIdx, endOff)
		if lo >= hi {
			continue
		}
		if covered {
			b.Styles = removeStyleRange(b.Styles, style, lo, hi)
		} else {
			b.Styles = addStyleRange(b.Styles, style, lo, hi)
		}
	}
	return out, sel
}

// spanWithin clips the selection to one block's rune range.
func spanWithin(b document.Block, idx, startIdx, startOff, endIdx, endOff int) (lo, hi int) {
	lo, hi = 0, b.TextLen()
	if idx == startIdx && startOff > lo {
		lo = startOff
	}
	if idx == endIdx && endOff < hi {
		hi = endOff
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// rangeCovered reports whether [lo, hi) is entirely inside the union of
// the ranges carrying style.
func rangeCovered(styles []document.StyleRange, style document.InlineStyle, lo, hi int) bool {
	merged := mergedRanges(styles, style)
	for _, r := range merged {
		if r.Start <= lo && hi <= r.End {
			return true
		}
	}
	return false
}

// addStyleRange inserts [lo, hi) for style, coalescing it with any
// overlapping or adjacent ranges of the same style. Ranges of other styles
// keep their original order.
func addStyleRange(styles []document.StyleRange, style document.InlineStyle, lo, hi int) []document.StyleRange {
	out := othersOnly(styles, style)
	all := make([]document.StyleRange, 0, len(styles)+1)
	all = append(all, styles...)
	all = append(all, document.StyleRange{Style: style, Start: lo, End: hi})
	return append(out, mergedRanges(all, style)...)
}

// removeStyleRange strips style from [lo, hi), splitting ranges that
// straddle the boundary.
func removeStyleRange(styles []document.StyleRange, style document.InlineStyle, lo, hi int) []document.StyleRange {
	out := othersOnly(styles, style)
	for _, r := range mergedRanges(styles, style) {
		if r.End <= lo || r.Start >= hi {
			out = append(out, r)
			continue
		}
		if r.Start < lo {
			out = append(out, document.StyleRange{Style: style, Start: r.Start, End: lo})
		}
		if r.End > hi {
			out = append(out, document.StyleRange{Style: style, Start: hi, End: r.End})
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// othersOnly returns the ranges not carrying style, preserving order.
func othersOnly(styles []document.StyleRange, style document.InlineStyle) []document.StyleRange {
	var out []document.StyleRange
	for _, r := range styles {
		if r.Style != style {
			out = append(out, r)
		}
	}
	return out
}

// mergedRanges returns the ranges of one style as a sorted, coalesced set.
func mergedRanges(styles []document.StyleRange, style document.InlineStyle) []document.StyleRange {
	var rs []document.StyleRange
	for _, r := range styles {
		if r.Style == style && r.Start < r.End {
			rs = append(rs, r)
		}
	}
	if len(rs) == 0 {
		return nil
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Start < rs[j].Start })
	merged := rs[:1]
	for _, r := range rs[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
		} else {
			merged = append(merged, r)
		}
	}
	return merged
}

// AdjustDepth shifts the list nesting depth of every list-item block in
// the selection by delta, clamped to [0, MaxListDepth]. Non-list blocks
// are untouched. Tab and Shift-Tab map here unconditionally so the widget
// never inserts a literal tab character.
func AdjustDepth(doc document.Document, sel document.Selection, delta int) (document.Document, document.Selection) {
	startIdx, _, endIdx, _, ok := sel.Normalize(doc)
	if !ok {
		return doc, sel
	}
	out := doc.Clone()
	for i := startIdx; i <= endIdx; i++ {
		b := &out.Blocks[i]
		if !b.Type.IsListItem() {
			continue
		}
		d := b.Depth + delta
		if d < 0 {
			d = 0
		}
		if d > MaxListDepth {
			d = MaxListDepth
		}
		b.Depth = d
	}
	return out, sel
}
