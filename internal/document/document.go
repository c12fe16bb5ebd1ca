package document

import (
	"fmt"
	"unicode/utf8"
)

// BlockType classifies one block of the document. The values are the wire
// names exchanged with the host text widget.
type BlockType string

const (
	Unstyled          BlockType = "unstyled"
	HeaderOne         BlockType = "header-one"
	HeaderTwo         BlockType = "header-two"
	HeaderThree       BlockType = "header-three"
	HeaderFour        BlockType = "header-four"
	HeaderFive        BlockType = "header-five"
	HeaderSix         BlockType = "header-six"
	Blockquote        BlockType = "blockquote"
	UnorderedListItem BlockType = "unordered-list-item"
	OrderedListItem   BlockType = "ordered-list-item"
	CodeBlock         BlockType = "code-block"
	AlignLeft         BlockType = "align-left"
	AlignCenter       BlockType = "align-center"
	AlignRight        BlockType = "align-right"
	AlignJustify      BlockType = "align-justify"
)

// HeadingLevel returns 1-6 for header types and 0 for everything else.
func (t BlockType) HeadingLevel() int {
	switch t {
	case HeaderOne:
		return 1
	case HeaderTwo:
		return 2
	case HeaderThree:
		return 3
	case HeaderFour:
		return 4
	case HeaderFive:
		return 5
	case HeaderSix:
		return 6
	}
	return 0
}

// HeaderType returns the header block type for a level 1-6, or Unstyled
// for anything out of range.
func HeaderType(level int) BlockType {
	switch level {
	case 1:
		return HeaderOne
	case 2:
		return HeaderTwo
	case 3:
		return HeaderThree
	case 4:
		return HeaderFour
	case 5:
		return HeaderFive
	case 6:
		return HeaderSix
	}
	return Unstyled
}

// IsListItem reports whether the type participates in list nesting.
func (t BlockType) IsListItem() bool {
	return t == UnorderedListItem || t == OrderedListItem
}

// IsAlignment reports whether the type is one of the align-* values.
func (t BlockType) IsAlignment() bool {
	switch t {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}

// Valid reports whether the type is a member of the closed set.
func (t BlockType) Valid() bool {
	switch t {
	case Unstyled, HeaderOne, HeaderTwo, HeaderThree, HeaderFour, HeaderFive,
		HeaderSix, Blockquote, UnorderedListItem, OrderedListItem, CodeBlock,
		AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}

// InlineStyle is a character-level style applied over a range of block text.
type InlineStyle string

const (
	Bold      InlineStyle = "BOLD"
	Italic    InlineStyle = "ITALIC"
	Underline InlineStyle = "UNDERLINE"
	Code      InlineStyle = "CODE"
)

// Valid reports whether the style is a member of the closed set.
func (s InlineStyle) Valid() bool {
	switch s {
	case Bold, Italic, Underline, Code:
		return true
	}
	return false
}

// StyleRange applies Style over the half-open rune interval [Start, End)
// of a block's text. Ranges of different styles may overlap freely.
type StyleRange struct {
	Style InlineStyle `json:"style"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}

// Block is one paragraph-equivalent unit of the document.
type Block struct {
	Key    string       `json:"key"`
	Type   BlockType    `json:"type"`
	Text   string       `json:"text"`
	Depth  int          `json:"depth"`
	Styles []StyleRange `json:"inlineStyles,omitempty"`
}

// TextLen returns the block text length in runes. Style range offsets and
// selection offsets are rune offsets.
func (b Block) TextLen() int {
	return utf8.RuneCountInString(b.Text)
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	c := b
	if len(b.Styles) > 0 {
		c.Styles = make([]StyleRange, len(b.Styles))
		copy(c.Styles, b.Styles)
	}
	return c
}

// Document is an ordered sequence of blocks. A document is never empty:
// the zero state is a single empty unstyled block.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// New returns the empty document: one unstyled block with no text.
func New() Document {
	return Document{Blocks: []Block{{Key: NewKey(), Type: Unstyled}}}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	blocks := make([]Block, len(d.Blocks))
	for i, b := range d.Blocks {
		blocks[i] = b.Clone()
	}
	return Document{Blocks: blocks}
}

// IndexOf returns the position of the block with the given key, or -1.
func (d Document) IndexOf(key string) int {
	for i, b := range d.Blocks {
		if b.Key == key {
			return i
		}
	}
	return -1
}

// HasVisibleText reports whether the document shows any content. It is
// false only for the empty-document state: exactly one unstyled block with
// empty text. A single empty block of any other type still counts as
// visible (the host widget hides its placeholder for it).
func (d Document) HasVisibleText() bool {
	if len(d.Blocks) != 1 {
		return true
	}
	b := d.Blocks[0]
	return b.Type != Unstyled || b.Text != ""
}

// Validate checks a snapshot received from the host widget: the document
// must be non-empty, keys unique and non-blank, types members of the closed
// set, and style ranges within the text bounds.
func (d Document) Validate() error {
	if len(d.Blocks) == 0 {
		return fmt.Errorf("document has no blocks")
	}
	seen := make(map[string]bool, len(d.Blocks))
	for i, b := range d.Blocks {
		if b.Key == "" {
			return fmt.Errorf("block %d: empty key", i)
		}
		if seen[b.Key] {
			return fmt.Errorf("block %d: duplicate key %q", i, b.Key)
		}
		seen[b.Key] = true
		if !b.Type.Valid() {
			return fmt.Errorf("block %q: unknown type %q", b.Key, b.Type)
		}
		if b.Depth < 0 {
			return fmt.Errorf("block %q: negative depth", b.Key)
		}
		n := b.TextLen()
		for _, sr := range b.Styles {
			if !sr.Style.Valid() {
				return fmt.Errorf("block %q: unknown inline style %q", b.Key, sr.Style)
			}
			if sr.Start < 0 || sr.End > n || sr.Start >= sr.End {
				return fmt.Errorf("block %q: style range [%d,%d) out of bounds (len %d)", b.Key, sr.Start, sr.End, n)
			}
		}
	}
	return nil
}

// Selection anchors the current edit position between two (block, offset)
// points. Anchor is where the selection started, focus where it ends; focus
// may precede anchor in document order.
type Selection struct {
	AnchorKey    string `json:"anchorKey"`
	AnchorOffset int    `json:"anchorOffset"`
	FocusKey     string `json:"focusKey"`
	FocusOffset  int    `json:"focusOffset"`
}

// CollapsedAt returns a cursor selection at the given point.
func CollapsedAt(key string, offset int) Selection {
	return Selection{AnchorKey: key, AnchorOffset: offset, FocusKey: key, FocusOffset: offset}
}

// Collapsed reports whether the selection is a bare cursor.
func (s Selection) Collapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// Normalize orders the selection by document position, returning start and
// end block indexes plus the offsets within them. ok is false when either
// key is absent from the document; commands treat that as a no-op.
func (s Selection) Normalize(d Document) (startIdx, startOff, endIdx, endOff int, ok bool) {
	ai := d.IndexOf(s.AnchorKey)
	fi := d.IndexOf(s.FocusKey)
	if ai < 0 || fi < 0 {
		return 0, 0, 0, 0, false
	}
	if ai < fi || (ai == fi && s.AnchorOffset <= s.FocusOffset) {
		return ai, s.AnchorOffset, fi, s.FocusOffset, true
	}
	return fi, s.FocusOffset, ai, s.AnchorOffset, true
}

// CurrentBlockType returns the type of the block containing the selection
// start, or Unstyled when the selection does not resolve.
func CurrentBlockType(d Document, s Selection) BlockType {
	startIdx, _, _, _, ok := s.Normalize(d)
	if !ok {
		return Unstyled
	}
	return d.Blocks[startIdx].Type
}
