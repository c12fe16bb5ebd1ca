// Package boilerplate provides the canned proposal sections a user can
// inject from the sidebar. Each section appends to the document as a
// heading block followed by paragraph blocks.
package boilerplate

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docdraft/internal/document"
)

// Section is one insertable proposal fragment. Key is the wire identifier
// used by the host UI.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// Sections lists the available sections in sidebar order.
func Sections() []Section {
	out := make([]Section, len(sectionOrder))
	for i, key := range sectionOrder {
		out[i] = Section{Key: key, Title: titleOf(key)}
	}
	return out
}

// titleOf derives the display title from the section's first line.
func titleOf(key string) string {
	body := sectionBodies[key]
	for _, line := range strings.Split(body, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return key
}

// Append adds the named section to the end of the document: the first line
// becomes a header-two block, every following non-empty line an unstyled
// block. Appending to the empty document replaces its single placeholder
// block instead of leaving a blank paragraph above the section.
func Append(doc document.Document, key string) (document.Document, error) {
	body, ok := sectionBodies[key]
	if !ok {
		return doc, fmt.Errorf("unknown proposal section %q", key)
	}

	out := doc.Clone()
	if !out.HasVisibleText() {
		out.Blocks = out.Blocks[:0]
	}

	first := true
	for _, line := range strings.Split(body, "\n") {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		typ := document.Unstyled
		if first {
			typ = document.HeaderTwo
			first = false
		}
		out.Blocks = append(out.Blocks, document.Block{
			Key:  document.NewKey(),
			Type: typ,
			Text: text,
		})
	}

	if len(out.Blocks) == 0 {
		return document.New(), nil
	}
	return out, nil
}
