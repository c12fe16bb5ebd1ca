package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/docdraft/internal/boilerplate"
	"github.com/dgallion1/docdraft/internal/document"
	"github.com/dgallion1/docdraft/internal/importer"
	"github.com/dgallion1/docdraft/internal/markup"
	"github.com/dgallion1/docdraft/internal/outline"
)

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	entries := outline.Extract(sess.Document())
	writeJSON(w, http.StatusOK, map[string]any{"outline": entries})
}

func (s *Server) handleMarkup(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}
	doc := sess.Document()
	writeJSON(w, http.StatusOK, map[string]any{
		"fragments": markup.Serialize(doc),
		"html":      markup.Render(doc),
	})
}

func (s *Server) handleListBoilerplate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sections": boilerplate.Sections()})
}

func (s *Server) handleBoilerplate(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Section string `json:"section"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := sess.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		out, err := boilerplate.Append(doc, req.Section)
		if err != nil {
			return doc, sel, err
		}
		last := out.Blocks[len(out.Blocks)-1]
		return out, document.CollapsedAt(last.Key, last.TextLen()), nil
	})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.viewOf(sess))
}

// handleImport appends blocks parsed from an uploaded file to the
// session document. A document that is still the empty seed block is
// replaced instead of appended to.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	sess := s.loadSession(w, r)
	if sess == nil {
		return
	}

	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !importer.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	imp, err := importer.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if p, ok := imp.(*importer.PDFImporter); ok {
		p.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	blocks, err := imp.Import(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Error("import failed", "filename", filename, "error", err)
		jsonError(w, "import failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if len(blocks) == 0 {
		jsonError(w, "no content found in file", http.StatusUnprocessableEntity)
		return
	}

	sess.Update(func(doc document.Document, sel document.Selection) (document.Document, document.Selection, error) {
		if !doc.HasVisibleText() && len(doc.Blocks) == 1 {
			doc.Blocks = blocks
		} else {
			doc.Blocks = append(doc.Blocks, blocks...)
		}
		last := doc.Blocks[len(doc.Blocks)-1]
		return doc, document.CollapsedAt(last.Key, last.TextLen()), nil
	})

	s.log.Info("file imported",
		"session_id", sess.ID,
		"filename", filename,
		"blocks", len(blocks),
	)
	writeJSON(w, http.StatusOK, struct {
		sessionView
		ImportedBlocks int `json:"imported_blocks"`
	}{s.viewOf(sess), len(blocks)})
}
