package command

import (
	"reflect"
	"testing"

	"github.com/dgallion1/docdraft/internal/document"
)

func twoBlockDoc() document.Document {
	return document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.HeaderOne, Text: "Title"},
		{Key: "b", Type: document.Unstyled, Text: "Body text"},
	}}
}

func spanSelection(doc document.Document) document.Selection {
	first := doc.Blocks[0]
	last := doc.Blocks[len(doc.Blocks)-1]
	return document.Selection{
		AnchorKey: first.Key, AnchorOffset: 0,
		FocusKey: last.Key, FocusOffset: last.TextLen(),
	}
}

func TestToggleBlockType_MixedSelectionApplies(t *testing.T) {
	doc := twoBlockDoc()
	sel := spanSelection(doc)

	out, _ := ToggleBlockType(doc, sel, document.HeaderOne)
	for i, b := range out.Blocks {
		if b.Type != document.HeaderOne {
			t.Errorf("block %d: expected %q, got %q", i, document.HeaderOne, b.Type)
		}
	}
}

func TestToggleBlockType_UniformSelectionClears(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Blockquote, Text: "one"},
		{Key: "b", Type: document.Blockquote, Text: "two"},
	}}
	sel := spanSelection(doc)

	out, _ := ToggleBlockType(doc, sel, document.Blockquote)
	for i, b := range out.Blocks {
		if b.Type != document.Unstyled {
			t.Errorf("block %d: expected %q, got %q", i, document.Unstyled, b.Type)
		}
	}
}

func TestToggleBlockType_OnOffFlip(t *testing.T) {
	doc := twoBlockDoc()
	sel := spanSelection(doc)

	once, _ := ToggleBlockType(doc, sel, document.CodeBlock)
	twice, _ := ToggleBlockType(once, sel, document.CodeBlock)
	thrice, _ := ToggleBlockType(twice, sel, document.CodeBlock)

	// After the first application all blocks are code blocks; the second
	// clears them; the third applies again. A true flip, not a counter.
	for i, b := range twice.Blocks {
		if b.Type != document.Unstyled {
			t.Errorf("after off-toggle, block %d: expected unstyled, got %q", i, b.Type)
		}
	}
	if !reflect.DeepEqual(once.Blocks, thrice.Blocks) {
		t.Error("expected third toggle to reproduce the first toggle's output")
	}
}

func TestToggleBlockType_DoesNotMutateInput(t *testing.T) {
	doc := twoBlockDoc()
	sel := spanSelection(doc)
	ToggleBlockType(doc, sel, document.CodeBlock)
	if doc.Blocks[0].Type != document.HeaderOne {
		t.Errorf("input document mutated: first block is now %q", doc.Blocks[0].Type)
	}
}

func TestToggleBlockType_UnknownKeyIsNoop(t *testing.T) {
	doc := twoBlockDoc()
	sel := document.Selection{AnchorKey: "ghost", FocusKey: "b", FocusOffset: 2}
	out, outSel := ToggleBlockType(doc, sel, document.CodeBlock)
	if !reflect.DeepEqual(out, doc) || outSel != sel {
		t.Error("expected no-op for selection referencing an unknown block key")
	}
}

func TestToggleAlignment_SharesTypeSlot(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Blockquote, Text: "quoted"},
	}}
	sel := document.Selection{AnchorKey: "a", AnchorOffset: 0, FocusKey: "a", FocusOffset: 3}

	out, _ := ToggleAlignment(doc, sel, document.AlignCenter)
	if got := out.Blocks[0].Type; got != document.AlignCenter {
		t.Fatalf("expected %q, got %q", document.AlignCenter, got)
	}
	// The structural type is gone: alignment replaced it.
	out, _ = ToggleAlignment(out, sel, document.AlignCenter)
	if got := out.Blocks[0].Type; got != document.Unstyled {
		t.Errorf("expected off-toggle to reset to unstyled, got %q", got)
	}
}

func TestToggleInlineStyle_AddThenRemoveRoundTrips(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Unstyled, Text: "hello world",
			Styles: []document.StyleRange{{Style: document.Italic, Start: 0, End: 5}}},
	}}
	sel := document.Selection{AnchorKey: "a", AnchorOffset: 2, FocusKey: "a", FocusOffset: 8}

	once, _ := ToggleInlineStyle(doc, sel, document.Bold)
	if !rangeCovered(once.Blocks[0].Styles, document.Bold, 2, 8) {
		t.Fatalf("expected [2,8) to carry BOLD, got %+v", once.Blocks[0].Styles)
	}
	twice, _ := ToggleInlineStyle(once, sel, document.Bold)
	if !reflect.DeepEqual(twice, doc) {
		t.Errorf("expected double toggle to restore the original document\noriginal: %+v\ngot:      %+v", doc, twice)
	}
}

func TestToggleInlineStyle_PartialCoverageExtends(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Unstyled, Text: "hello world",
			Styles: []document.StyleRange{{Style: document.Bold, Start: 0, End: 4}}},
	}}
	sel := document.Selection{AnchorKey: "a", AnchorOffset: 2, FocusKey: "a", FocusOffset: 9}

	// [2,9) is only partially bold, so the toggle extends rather than clears.
	out, _ := ToggleInlineStyle(doc, sel, document.Bold)
	want := []document.StyleRange{{Style: document.Bold, Start: 0, End: 9}}
	if !reflect.DeepEqual(out.Blocks[0].Styles, want) {
		t.Errorf("expected merged range %+v, got %+v", want, out.Blocks[0].Styles)
	}
}

func TestToggleInlineStyle_RemovalSplitsRange(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Unstyled, Text: "hello world",
			Styles: []document.StyleRange{{Style: document.Bold, Start: 0, End: 11}}},
	}}
	sel := document.Selection{AnchorKey: "a", AnchorOffset: 3, FocusKey: "a", FocusOffset: 7}

	out, _ := ToggleInlineStyle(doc, sel, document.Bold)
	want := []document.StyleRange{
		{Style: document.Bold, Start: 0, End: 3},
		{Style: document.Bold, Start: 7, End: 11},
	}
	if !reflect.DeepEqual(out.Blocks[0].Styles, want) {
		t.Errorf("expected split ranges %+v, got %+v", want, out.Blocks[0].Styles)
	}
}

func TestToggleInlineStyle_AcrossBlocks(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Unstyled, Text: "first"},
		{Key: "b", Type: document.Unstyled, Text: "second"},
	}}
	sel := document.Selection{AnchorKey: "a", AnchorOffset: 2, FocusKey: "b", FocusOffset: 3}

	out, _ := ToggleInlineStyle(doc, sel, document.Underline)
	if !rangeCovered(out.Blocks[0].Styles, document.Underline, 2, 5) {
		t.Errorf("first block: expected underline on tail, got %+v", out.Blocks[0].Styles)
	}
	if !rangeCovered(out.Blocks[1].Styles, document.Underline, 0, 3) {
		t.Errorf("second block: expected underline on head, got %+v", out.Blocks[1].Styles)
	}

	// Both spans are now fully covered, so the toggle removes.
	back, _ := ToggleInlineStyle(out, sel, document.Underline)
	if !reflect.DeepEqual(back, doc) {
		t.Errorf("expected cross-block toggle to round-trip, got %+v", back.Blocks)
	}
}

func TestToggleInlineStyle_CollapsedIsNoop(t *testing.T) {
	doc := twoBlockDoc()
	sel := document.CollapsedAt("b", 3)
	out, outSel := ToggleInlineStyle(doc, sel, document.Bold)
	if !reflect.DeepEqual(out, doc) || outSel != sel {
		t.Error("expected collapsed selection to be a no-op")
	}
}

func TestToggleInlineStyle_OtherStylesUntouched(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Unstyled, Text: "styled text",
			Styles: []document.StyleRange{{Style: document.Code, Start: 1, End: 4}}},
	}}
	sel := document.Selection{AnchorKey: "a", AnchorOffset: 0, FocusKey: "a", FocusOffset: 6}

	out, _ := ToggleInlineStyle(doc, sel, document.Bold)
	if !rangeCovered(out.Blocks[0].Styles, document.Code, 1, 4) {
		t.Errorf("expected CODE range to survive a BOLD toggle, got %+v", out.Blocks[0].Styles)
	}
}

func TestAdjustDepth_ClampsAndSkipsNonLists(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.UnorderedListItem, Text: "item", Depth: MaxListDepth},
		{Key: "b", Type: document.Unstyled, Text: "plain"},
		{Key: "c", Type: document.OrderedListItem, Text: "numbered", Depth: 0},
	}}
	sel := spanSelection(doc)

	out, _ := AdjustDepth(doc, sel, 1)
	if got := out.Blocks[0].Depth; got != MaxListDepth {
		t.Errorf("expected depth clamped at %d, got %d", MaxListDepth, got)
	}
	if got := out.Blocks[1].Depth; got != 0 {
		t.Errorf("expected non-list block depth unchanged, got %d", got)
	}
	if got := out.Blocks[2].Depth; got != 1 {
		t.Errorf("expected list depth 1, got %d", got)
	}

	out, _ = AdjustDepth(out, sel, -1)
	if got := out.Blocks[2].Depth; got != 0 {
		t.Errorf("expected outdent back to 0, got %d", got)
	}
	out, _ = AdjustDepth(out, sel, -1)
	if got := out.Blocks[2].Depth; got != 0 {
		t.Errorf("expected depth clamped at 0, got %d", got)
	}
}
