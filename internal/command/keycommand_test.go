package command

import (
	"reflect"
	"testing"

	"github.com/dgallion1/docdraft/internal/document"
)

func TestHandleKeyCommand_InlineShortcuts(t *testing.T) {
	tests := []struct {
		cmd   string
		style document.InlineStyle
	}{
		{KeyBold, document.Bold},
		{KeyItalic, document.Italic},
		{KeyUnderline, document.Underline},
		{KeyCode, document.Code},
	}
	for _, tt := range tests {
		doc := document.Document{Blocks: []document.Block{
			{Key: "a", Type: document.Unstyled, Text: "shortcut"},
		}}
		sel := document.Selection{AnchorKey: "a", AnchorOffset: 0, FocusKey: "a", FocusOffset: 8}
		out, _, handled := HandleKeyCommand(doc, sel, tt.cmd)
		if !handled {
			t.Errorf("%s: expected handled", tt.cmd)
			continue
		}
		if !rangeCovered(out.Blocks[0].Styles, tt.style, 0, 8) {
			t.Errorf("%s: expected %s over [0,8), got %+v", tt.cmd, tt.style, out.Blocks[0].Styles)
		}
	}
}

func TestHandleKeyCommand_Unknown(t *testing.T) {
	doc := document.New()
	sel := document.CollapsedAt(doc.Blocks[0].Key, 0)
	out, outSel, handled := HandleKeyCommand(doc, sel, "transpose-words")
	if handled {
		t.Error("expected unknown command to be unhandled")
	}
	if !reflect.DeepEqual(out, doc) || outSel != sel {
		t.Error("expected unhandled command to leave the pair untouched")
	}
}

func TestSplitBlock(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.OrderedListItem, Text: "hello world", Depth: 2,
			Styles: []document.StyleRange{{Style: document.Bold, Start: 3, End: 9}}},
	}}
	sel := document.CollapsedAt("a", 5)

	out, outSel, handled := SplitBlock(doc, sel)
	if !handled {
		t.Fatal("expected split to be handled")
	}
	if len(out.Blocks) != 2 {
		t.Fatalf("expected 2 blocks after split, got %d", len(out.Blocks))
	}

	head, tail := out.Blocks[0], out.Blocks[1]
	if head.Text != "hello" || tail.Text != " world" {
		t.Errorf("expected split texts (\"hello\", \" world\"), got (%q, %q)", head.Text, tail.Text)
	}
	if head.Key != "a" {
		t.Errorf("expected head to keep its key, got %q", head.Key)
	}
	if tail.Key == "" || tail.Key == "a" {
		t.Errorf("expected tail to get a fresh key, got %q", tail.Key)
	}
	if tail.Type != document.OrderedListItem || tail.Depth != 2 {
		t.Errorf("expected tail to inherit type and depth, got %q depth %d", tail.Type, tail.Depth)
	}

	// BOLD [3,9) partitions into [3,5) and [0,4) relative to the halves.
	wantHead := []document.StyleRange{{Style: document.Bold, Start: 3, End: 5}}
	wantTail := []document.StyleRange{{Style: document.Bold, Start: 0, End: 4}}
	if !reflect.DeepEqual(head.Styles, wantHead) {
		t.Errorf("head styles: expected %+v, got %+v", wantHead, head.Styles)
	}
	if !reflect.DeepEqual(tail.Styles, wantTail) {
		t.Errorf("tail styles: expected %+v, got %+v", wantTail, tail.Styles)
	}

	want := document.CollapsedAt(tail.Key, 0)
	if outSel != want {
		t.Errorf("expected caret at start of new block, got %+v", outSel)
	}
}

func TestBackspaceMergesAtBlockStart(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Unstyled, Text: "first"},
		{Key: "b", Type: document.Blockquote, Text: "second",
			Styles: []document.StyleRange{{Style: document.Italic, Start: 0, End: 6}}},
	}}

	out, outSel, handled := HandleKeyCommand(doc, document.CollapsedAt("b", 0), KeyBackspace)
	if !handled {
		t.Fatal("expected backspace at block start to be handled")
	}
	if len(out.Blocks) != 1 {
		t.Fatalf("expected 1 block after merge, got %d", len(out.Blocks))
	}
	b := out.Blocks[0]
	if b.Text != "firstsecond" {
		t.Errorf("expected merged text %q, got %q", "firstsecond", b.Text)
	}
	if b.Type != document.Unstyled {
		t.Errorf("expected surviving block to keep its type, got %q", b.Type)
	}
	if !rangeCovered(b.Styles, document.Italic, 5, 11) {
		t.Errorf("expected absorbed styles re-anchored to [5,11), got %+v", b.Styles)
	}
	if want := document.CollapsedAt("a", 5); outSel != want {
		t.Errorf("expected caret at join point, got %+v", outSel)
	}
}

func TestBackspaceMidBlockNotHandled(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Unstyled, Text: "first"},
		{Key: "b", Type: document.Unstyled, Text: "second"},
	}}
	_, _, handled := HandleKeyCommand(doc, document.CollapsedAt("b", 3), KeyBackspace)
	if handled {
		t.Error("expected mid-block backspace to fall through to widget default")
	}
	_, _, handled = HandleKeyCommand(doc, document.CollapsedAt("a", 0), KeyBackspace)
	if handled {
		t.Error("expected backspace at document start to be unhandled")
	}
}

func TestDeleteMergesAtBlockEnd(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.Unstyled, Text: "head"},
		{Key: "b", Type: document.Unstyled, Text: "tail"},
	}}

	out, outSel, handled := HandleKeyCommand(doc, document.CollapsedAt("a", 4), KeyDelete)
	if !handled {
		t.Fatal("expected delete at block end to be handled")
	}
	if len(out.Blocks) != 1 || out.Blocks[0].Text != "headtail" {
		t.Fatalf("expected merged %q, got %+v", "headtail", out.Blocks)
	}
	if want := document.CollapsedAt("a", 4); outSel != want {
		t.Errorf("expected caret to stay at join point, got %+v", outSel)
	}

	_, _, handled = HandleKeyCommand(doc, document.CollapsedAt("a", 2), KeyDelete)
	if handled {
		t.Error("expected mid-block delete to be unhandled")
	}
	_, _, handled = HandleKeyCommand(doc, document.CollapsedAt("b", 4), KeyDelete)
	if handled {
		t.Error("expected delete at document end to be unhandled")
	}
}

func TestHandleKeyCommand_IndentOutdent(t *testing.T) {
	doc := document.Document{Blocks: []document.Block{
		{Key: "a", Type: document.UnorderedListItem, Text: "item"},
	}}
	sel := document.CollapsedAt("a", 0)

	out, _, handled := HandleKeyCommand(doc, sel, KeyIndent)
	if !handled || out.Blocks[0].Depth != 1 {
		t.Errorf("expected indent to depth 1, got depth %d handled=%v", out.Blocks[0].Depth, handled)
	}
	out, _, handled = HandleKeyCommand(out, sel, KeyOutdent)
	if !handled || out.Blocks[0].Depth != 0 {
		t.Errorf("expected outdent to depth 0, got depth %d handled=%v", out.Blocks[0].Depth, handled)
	}
}
