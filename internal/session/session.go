// Package session holds per-editing-session state: the document, the
// current selection and the assistant panel, behind one mutex so command
// handlers read and write a consistent view.
package session

import (
	"sync"
	"time"

	"github.com/dgallion1/docdraft/internal/assistant"
	"github.com/dgallion1/docdraft/internal/document"
)

// Session is one editing surface. All mutation goes through Update so the
// document and selection change together.
type Session struct {
	mu sync.Mutex

	ID        string
	doc       document.Document
	sel       document.Selection
	panel     *assistant.Panel
	createdAt time.Time
	updatedAt time.Time
}

// New creates a session seeded with a single empty unstyled block and a
// collapsed selection at its start.
func New() *Session {
	doc := document.New()
	now := time.Now()
	return &Session{
		ID:        document.NewKey(),
		doc:       doc,
		sel:       document.CollapsedAt(doc.Blocks[0].Key, 0),
		panel:     assistant.NewPanel(),
		createdAt: now,
		updatedAt: now,
	}
}

// Update applies fn to the current document and selection and stores the
// result. fn receives deep copies; returning an error leaves the session
// untouched.
func (s *Session) Update(fn func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, sel, err := fn(s.doc.Clone(), s.sel)
	if err != nil {
		return err
	}
	s.doc = doc.Clone()
	s.sel = sel
	s.updatedAt = time.Now()
	return nil
}

// Replace overwrites the document and selection wholesale.
func (s *Session) Replace(doc document.Document, sel document.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	s.sel = sel
	s.updatedAt = time.Now()
}

// Document returns a deep copy of the current document.
func (s *Session) Document() document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Selection returns the current selection.
func (s *Session) Selection() document.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Panel returns the assistant panel bound to this session.
func (s *Session) Panel() *assistant.Panel {
	return s.panel
}

// Snapshot is a JSON-safe copy of session state.
type Snapshot struct {
	ID        string                  `json:"session_id"`
	Document  document.Document       `json:"document"`
	Selection document.Selection      `json:"selection"`
	Assistant assistant.PanelSnapshot `json:"assistant"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:        s.ID,
		Document:  s.doc.Clone(),
		Selection: s.sel,
		Assistant: s.panel.Snapshot(),
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a fresh session and returns it.
func (s *Store) Create() *Session {
	sess := New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess
}

func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup evicts sessions idle longer than the TTL.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		expired := now.Sub(sess.updatedAt) > s.ttl
		sess.mu.Unlock()
		if expired {
			delete(s.sessions, id)
		}
	}
}
