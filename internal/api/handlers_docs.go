package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/contentmodel/internal/command"
	"github.com/dgallion1/contentmodel/internal/doctree"
	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/render"
	"github.com/dgallion1/contentmodel/internal/session"
)

const maxCommandBytes = 1 << 20

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(chi.URLParam(r, "docID"))
	if err != nil {
		sessionError(w, err)
		return
	}
	snap, err := sess.Snapshot()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("ETag", etag(snap.ContentHash))
	writeJSON(w, http.StatusOK, snap)
}

// handleReplaceDocument swaps the session's model, e.g. after the client
// moved the selection.
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(chi.URLParam(r, "docID"))
	if err != nil {
		sessionError(w, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := model.DecodeDocument(data)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := sess.Replace(ifMatch(r), doc)
	if err != nil {
		sessionError(w, err)
		return
	}
	w.Header().Set("ETag", etag(res.ContentHash))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.store.Delete(docID); err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doc_id": docID, "deleted": true})
}

func (s *Server) handleRenderDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(chi.URLParam(r, "docID"))
	if err != nil {
		sessionError(w, err)
		return
	}

	var buf bytes.Buffer
	err = sess.View(func(doc *model.Document) error {
		return render.HTML(&buf, doc)
	})
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(chi.URLParam(r, "docID"))
	if err != nil {
		sessionError(w, err)
		return
	}

	var tree *doctree.DocTree
	sess.View(func(doc *model.Document) error {
		tree = doctree.Build(doc)
		return nil
	})
	writeJSON(w, http.StatusOK, tree)
}

// handleApplyCommand runs one named command against a session. The request
// body holds the command's JSON arguments, if any.
func (s *Server) handleApplyCommand(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	name := chi.URLParam(r, "name")

	cmd, err := command.Lookup(name)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	sess, err := s.store.Get(docID)
	if err != nil {
		sessionError(w, err)
		return
	}

	args, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCommandBytes))
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}
	mutate, err := cmd.Bind(json.RawMessage(bytes.TrimSpace(args)))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := sess.ApplyIfMatch(r.Context(), ifMatch(r), name, mutate)
	if err != nil {
		sessionError(w, err)
		return
	}
	s.log.Info("command applied",
		"doc_id", docID,
		"command", name,
		"changed", res.Changed,
		"revision", res.Revision,
	)
	w.Header().Set("ETag", etag(res.ContentHash))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListCommands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"commands": command.All()})
}

// sessionError maps session errors onto HTTP status codes.
func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrHashMismatch):
		jsonError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, session.ErrStoreFull):
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		jsonError(w, err.Error(), http.StatusRequestTimeout)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func ifMatch(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("If-Match"))
	if v == "*" {
		return ""
	}
	return strings.Trim(strings.TrimPrefix(v, "W/"), `"`)
}

func etag(hash string) string {
	return `"` + hash + `"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
