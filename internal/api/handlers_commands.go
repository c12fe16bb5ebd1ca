package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/docdraft/internal/command"
	"github.com/dgallion1/docdraft/internal/document"
)

func (s *Server) handleBlockTypeCommand(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Type document.BlockType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Type.Valid() {
		jsonError(w, fmt.Sprintf("unknown block type: %s", req.Type), http.StatusBadRequest)
		return
	}

	sess.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		out, outSel := command.ToggleBlockType(doc, sel, req.Type)
		return out, outSel, nil
	})
	writeJSON(w, http.StatusOK, s.viewOf(sess))
}

func (s *Server) handleInlineStyleCommand(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Style document.InlineStyle `json:"style"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Style.Valid() {
		jsonError(w, fmt.Sprintf("unknown inline style: %s", req.Style), http.StatusBadRequest)
		return
	}

	sess.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		out, outSel := command.ToggleInlineStyle(doc, sel, req.Style)
		return out, outSel, nil
	})
	writeJSON(w, http.StatusOK, s.viewOf(sess))
}

func (s *Server) handleAlignmentCommand(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Alignment document.BlockType `json:"alignment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !req.Alignment.IsAlignment() {
		jsonError(w, fmt.Sprintf("unknown alignment: %s", req.Alignment), http.StatusBadRequest)
		return
	}

	sess.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		out, outSel := command.ToggleAlignment(doc, sel, req.Alignment)
		return out, outSel, nil
	})
	writeJSON(w, http.StatusOK, s.viewOf(sess))
}

func (s *Server) handleKeyCommand(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Command string `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Command == "" {
		jsonError(w, "command is required", http.StatusBadRequest)
		return
	}

	var handled bool
	sess.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		out, outSel, h := command.HandleKeyCommand(doc, sel, req.Command)
		handled = h
		return out, outSel, nil
	})

	writeJSON(w, http.StatusOK, struct {
		sessionView
		Handled bool `json:"handled"`
	}{s.viewOf(sess), handled})
}

func (s *Server) handleDepthCommand(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Delta != 1 && req.Delta != -1 {
		jsonError(w, "delta must be 1 or -1", http.StatusBadRequest)
		return
	}

	sess.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		out, outSel := command.AdjustDepth(doc, sel, req.Delta)
		return out, outSel, nil
	})
	writeJSON(w, http.StatusOK, s.viewOf(sess))
}
