package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/parser"
)

// createRequest is the JSON form of a document creation request.
type createRequest struct {
	Filename string          `json:"filename"`
	Model    json.RawMessage `json:"model"`
}

// importResult reports the outcome of one file of a batch import.
type importResult struct {
	Filename string `json:"filename"`
	DocID    string `json:"doc_id,omitempty"`
	Revision int    `json:"revision,omitempty"`
	Hash     string `json:"content_hash,omitempty"`
	Error    string `json:"error,omitempty"`
}

var errFileTooLarge = errors.New("file exceeds max size")

// handleCreateDocument opens a session from an uploaded file (multipart) or
// from a content model posted as JSON.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	var (
		doc      *model.Document
		filename string
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		uploads := r.MultipartForm.File["file"]
		if len(uploads) == 0 {
			jsonError(w, "file is required", http.StatusBadRequest)
			return
		}
		filename = sanitizeFilename(uploads[0].Filename)
		var err error
		doc, err = s.importFile(uploads[0], filename)
		if err != nil {
			s.importError(w, filename, err)
			return
		}
	} else {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		filename = req.Filename
		doc = model.NewDocument(s.cfg.DefaultSegmentFormat())
		if len(req.Model) > 0 && string(req.Model) != "null" {
			var err error
			if doc, err = model.DecodeDocument(req.Model); err != nil {
				jsonError(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
	}

	sess, err := s.store.Create(filename, doc)
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
	writeJSON(w, http.StatusCreated, snap)
}

// handleBatchImport imports every uploaded file concurrently, bounded by
// MaxConcurrentImport. Each file gets its own session; failures are reported
// per file.
func (s *Server) handleBatchImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]importResult, len(files))
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(s.cfg.MaxConcurrentImport)
	for i, fh := range files {
		g.Go(func() error {
			filename := sanitizeFilename(fh.Filename)
			res := importResult{Filename: filename}
			defer func() { results[i] = res }()

			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := s.importFile(fh, filename)
			if err != nil {
				res.Error = err.Error()
				return nil
			}
			sess, err := s.store.Create(filename, doc)
			if err != nil {
				res.Error = err.Error()
				return nil
			}
			res.DocID = sess.ID
			res.Hash = sess.ContentHash()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		jsonError(w, "batch import canceled: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	s.log.Info("batch import", "files", len(files))
	writeJSON(w, http.StatusCreated, map[string]any{"documents": results})
}

// importFile reads and parses one uploaded file.
func (s *Server) importFile(fh *multipart.FileHeader, filename string) (*model.Document, error) {
	if !parser.IsSupportedExtension(filename) {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w (%d bytes)", errFileTooLarge, s.cfg.MaxUploadBytes)
	}

	return parser.Import(bytes.NewReader(data), filename, parser.Options{
		DefaultFormat:     s.cfg.DefaultSegmentFormat(),
		FallbackPdftotext: s.cfg.PDFFallbackPdftotext,
	})
}

func (s *Server) importError(w http.ResponseWriter, filename string, err error) {
	s.log.Warn("import failed", "filename", filename, "error", err)
	if errors.Is(err, errFileTooLarge) {
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	jsonError(w, err.Error(), http.StatusBadRequest)
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
