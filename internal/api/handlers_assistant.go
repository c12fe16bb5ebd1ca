package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/docdraft/internal/assistant"
)

// assistantTimeout bounds one generation round trip, including queue
// time inside the upstream API.
const assistantTimeout = 2 * time.Minute

// handleAskAssistant starts an async generation for the session panel.
// The panel holds one request at a time; a submission while one is in
// flight gets 409. The outcome is read back via GET.
func (s *Server) handleAskAssistant(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	if s.gemini == nil {
		jsonError(w, "assistant unavailable", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	panel := sess.Panel()
	if err := panel.Begin(question); err != nil {
		if errors.Is(err, assistant.ErrBusy) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), assistantTimeout)
		defer cancel()
		answer, err := s.gemini.Generate(ctx, question)
		panel.Settle(answer, err)
		if err != nil {
			s.log.Error("assistant request failed", "session_id", sess.ID, "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, panel.Snapshot())
}

func (s *Server) handleAssistantState(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.Panel().Snapshot())
}

func (s *Server) handleAssistantStats(w http.ResponseWriter, r *http.Request) {
	if s.gemini == nil || s.gemini.Stats == nil {
		jsonError(w, "assistant stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"model": s.gemini.Model(),
		"stats": s.gemini.Stats.Snapshot(),
	})
}
