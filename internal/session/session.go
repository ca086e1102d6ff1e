// Package session holds documents being edited in memory and serializes the
// operations applied to them.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dgallion1/contentmodel/internal/command"
	"github.com/dgallion1/contentmodel/internal/model"
	"github.com/dgallion1/contentmodel/internal/normalize"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrHashMismatch    = errors.New("content hash mismatch")
	ErrStoreFull       = errors.New("session store is full")
)

// Session is one document under edit. All access goes through its mutex, so
// operations on a session never interleave.
type Session struct {
	mu sync.Mutex

	ID       string
	Filename string

	doc         *model.Document
	revision    int
	contentHash string
	createdAt   time.Time
	updatedAt   time.Time

	stats *OpStats
}

// Result describes the outcome of one applied operation.
type Result struct {
	Operation   string `json:"operation"`
	Changed     bool   `json:"changed"`
	Revision    int    `json:"revision"`
	ContentHash string `json:"content_hash"`
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID          string          `json:"doc_id"`
	Filename    string          `json:"filename,omitempty"`
	Revision    int             `json:"revision"`
	ContentHash string          `json:"content_hash"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Model       json.RawMessage `json:"model"`
}

func newSession(filename string, doc *model.Document, stats *OpStats) (*Session, error) {
	if doc == nil {
		doc = model.NewDocument(nil)
	}
	normalize.NormalizeContentModel(doc)
	hash, err := hashDocument(doc)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		Filename:    filename,
		doc:         doc,
		contentHash: hash,
		createdAt:   now,
		updatedAt:   now,
		stats:       stats,
	}, nil
}

// Apply runs one mutator against the session's document. See ApplyIfMatch.
func (s *Session) Apply(ctx context.Context, apiName string, m command.Mutator) (Result, error) {
	return s.ApplyIfMatch(ctx, "", apiName, m)
}

// ApplyIfMatch runs m when ifMatch is empty or equals the current content
// hash. A mutator that reports a change is followed by normalization, a new
// revision and a new content hash.
func (s *Session) ApplyIfMatch(ctx context.Context, ifMatch, apiName string, m command.Mutator) (Result, error) {
	ctx, span := tracer.Start(ctx, "session.Apply", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("operation", apiName),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "context canceled")
		return Result{}, err
	}
	if ifMatch != "" && ifMatch != s.contentHash {
		span.SetStatus(codes.Error, ErrHashMismatch.Error())
		return Result{}, fmt.Errorf("apply %s: %w", apiName, ErrHashMismatch)
	}

	start := time.Now()
	changed := m(s.doc)
	if changed {
		normalize.NormalizeContentModel(s.doc)
		if err := s.commitLocked(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Result{}, fmt.Errorf("apply %s: %w", apiName, err)
		}
	}
	elapsed := time.Since(start)

	if s.stats != nil {
		s.stats.Record(apiName, elapsed, changed)
	}
	operationsTotal.WithLabelValues(apiName, strconv.FormatBool(changed)).Inc()
	operationDuration.WithLabelValues(apiName).Observe(elapsed.Seconds())

	span.SetAttributes(
		attribute.Bool("changed", changed),
		attribute.Int("revision", s.revision),
	)
	span.SetStatus(codes.Ok, "")

	return Result{
		Operation:   apiName,
		Changed:     changed,
		Revision:    s.revision,
		ContentHash: s.contentHash,
	}, nil
}

// Replace swaps in a new document, typically one the client edited to move
// the selection. The same If-Match rule as ApplyIfMatch applies.
func (s *Session) Replace(ifMatch string, doc *model.Document) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ifMatch != "" && ifMatch != s.contentHash {
		return Result{}, fmt.Errorf("replace document: %w", ErrHashMismatch)
	}
	normalize.NormalizeContentModel(doc)
	old := s.doc
	s.doc = doc
	if err := s.commitLocked(); err != nil {
		s.doc = old
		return Result{}, fmt.Errorf("replace document: %w", err)
	}
	return Result{Operation: "replace", Changed: true, Revision: s.revision, ContentHash: s.contentHash}, nil
}

// View calls fn with the document under the session lock. fn must not keep
// the document.
func (s *Session) View(fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.doc)
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(s.doc)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal document: %w", err)
	}
	return Snapshot{
		ID:          s.ID,
		Filename:    s.Filename,
		Revision:    s.revision,
		ContentHash: s.contentHash,
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
		Model:       data,
	}, nil
}

// ContentHash returns the hash of the current document.
func (s *Session) ContentHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentHash
}

func (s *Session) lastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = time.Now()
}

func (s *Session) commitLocked() error {
	hash, err := hashDocument(s.doc)
	if err != nil {
		return err
	}
	s.revision++
	s.contentHash = hash
	s.updatedAt = time.Now()
	return nil
}

func hashDocument(doc *model.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	return ContentHashHex(data), nil
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
