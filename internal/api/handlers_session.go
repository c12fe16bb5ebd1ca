package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/docdraft/internal/document"
	"github.com/dgallion1/docdraft/internal/session"
)

// sessionView is the wire shape returned by every session-mutating
// endpoint: the full state plus the derived toolbar facts the host
// widget renders from.
type sessionView struct {
	session.Snapshot
	BlockType document.BlockType `json:"blockType"`
	HasText   bool               `json:"hasText"`
}

func (s *Server) viewOf(sess *session.Session) sessionView {
	snap := sess.Snapshot()
	return sessionView{
		Snapshot:  snap,
		BlockType: document.CurrentBlockType(snap.Document, snap.Selection),
		HasText:   snap.Document.HasVisibleText(),
	}
}

// loadSession resolves the sessionID URL param, writing a 404 and
// returning nil when the session is unknown or expired.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) *session.Session {
	id := chi.URLParam(r, "sessionID")
	sess := s.sessions.Get(id)
	if sess == nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return nil
	}
	return sess
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	s.log.Info("session created", "session_id", sess.ID, "active_sessions", s.sessions.Count())
	writeJSON(w, http.StatusCreated, s.viewOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.viewOf(sess))
}

// handlePutSnapshot lets the host widget push its current editor state.
func (s *Server) handlePutSnapshot(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Document  document.Document  `json:"document"`
		Selection document.Selection `json:"selection"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.Document.Validate(); err != nil {
		jsonError(w, "invalid document: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess.Replace(req.Document, req.Selection)
	writeJSON(w, http.StatusOK, s.viewOf(sess))
}
