package session

import (
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/docdraft/internal/document"
)

func TestNew_SeedsEmptyBlock(t *testing.T) {
	s := New()
	if s.ID == "" {
		t.Fatal("expected non-empty session id")
	}
	doc := s.Document()
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 seed block, got %d", len(doc.Blocks))
	}
	b := doc.Blocks[0]
	if b.Type != document.Unstyled || b.Text != "" {
		t.Errorf("expected empty unstyled seed block, got type=%q text=%q", b.Type, b.Text)
	}
	sel := s.Selection()
	if !sel.Collapsed() || sel.AnchorKey != b.Key || sel.AnchorOffset != 0 {
		t.Errorf("expected collapsed selection at seed block start, got %+v", sel)
	}
}

func TestUpdate_AppliesChanges(t *testing.T) {
	s := New()
	err := s.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		doc.Blocks[0].Text = "hello"
		return doc, document.CollapsedAt(doc.Blocks[0].Key, 5), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Document().Blocks[0].Text; got != "hello" {
		t.Errorf("expected %q, got %q", "hello", got)
	}
	if got := s.Selection().AnchorOffset; got != 5 {
		t.Errorf("expected offset 5, got %d", got)
	}
}

func TestUpdate_ErrorLeavesSessionUntouched(t *testing.T) {
	s := New()
	before := s.Snapshot()
	wantErr := errors.New("nope")
	err := s.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		doc.Blocks[0].Text = "mutated"
		return doc, sel, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	after := s.Snapshot()
	if after.Document.Blocks[0].Text != before.Document.Blocks[0].Text {
		t.Errorf("expected document unchanged after failed update, got %q", after.Document.Blocks[0].Text)
	}
}

func TestUpdate_CallbackGetsCopy(t *testing.T) {
	s := New()
	var leaked document.Document
	_ = s.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		leaked = doc
		return doc, sel, nil
	})
	leaked.Blocks[0].Text = "tampered"
	if got := s.Document().Blocks[0].Text; got == "tampered" {
		t.Error("expected session state isolated from callback copies")
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)
	sess := store.Create()
	if got := store.Get(sess.ID); got != sess {
		t.Errorf("expected to retrieve created session")
	}
	if got := store.Get("missing"); got != nil {
		t.Errorf("expected nil for unknown id, got %v", got)
	}
	if store.Count() != 1 {
		t.Errorf("expected count 1, got %d", store.Count())
	}
}

func TestStore_CleanupEvictsIdleSessions(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	sess := store.Create()
	store.Cleanup()
	if store.Get(sess.ID) == nil {
		t.Fatal("fresh session should survive cleanup")
	}

	sess.mu.Lock()
	sess.updatedAt = time.Now().Add(-time.Minute)
	sess.mu.Unlock()

	store.Cleanup()
	if store.Get(sess.ID) != nil {
		t.Error("expected idle session to be evicted")
	}
}

func TestSnapshot_IncludesPanelState(t *testing.T) {
	s := New()
	if err := s.Panel().Begin("what is this"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Assistant.Status != "pending" {
		t.Errorf("expected pending panel, got %q", snap.Assistant.Status)
	}
	if snap.Assistant.Question != "what is this" {
		t.Errorf("expected question carried into snapshot, got %q", snap.Assistant.Question)
	}
}
