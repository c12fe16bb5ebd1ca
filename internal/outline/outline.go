// Package outline derives the heading list of a document. The outline is
// a projection: recomputed in full from every snapshot, never mutated or
// persisted on its own.
package outline

import (
	"iter"

	"github.com/dgallion1/docdraft/internal/document"
)

// Entry is one heading in the outline.
type Entry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// All yields one entry per header block in document order. The sequence is
// lazy and restartable.
func All(doc document.Document) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, b := range doc.Blocks {
			lvl := b.Type.HeadingLevel()
			if lvl == 0 {
				continue
			}
			if !yield(Entry{Level: lvl, Text: b.Text}) {
				return
			}
		}
	}
}

// Extract materializes the outline. Never nil.
func Extract(doc document.Document) []Entry {
	entries := []Entry{}
	for e := range All(doc) {
		entries = append(entries, e)
	}
	return entries
}
