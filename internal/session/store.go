package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/contentmodel/internal/model"
)

const cleanupInterval = time.Minute

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	stats    *OpStats
	log      *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStore creates a store. Sessions idle longer than ttl are evicted;
// maxSessions bounds the number of live sessions, 0 meaning unbounded.
func NewStore(ttl time.Duration, maxSessions int, log *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      maxSessions,
		stats:    NewOpStats(ttl),
		log:      log,
	}
}

// Create normalizes doc and registers a new session for it.
func (st *Store) Create(filename string, doc *model.Document) (*Session, error) {
	s, err := newSession(filename, doc, st.stats)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.max > 0 && len(st.sessions) >= st.max {
		st.evictExpiredLocked(time.Now())
		if len(st.sessions) >= st.max {
			return nil, fmt.Errorf("create session: %w (%d)", ErrStoreFull, st.max)
		}
	}
	st.sessions[s.ID] = s
	sessionsActive.Set(float64(len(st.sessions)))
	st.log.Info("session created", "doc_id", s.ID, "filename", filename)
	return s, nil
}

// Get returns the session with id and marks it as used.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("get session %s: %w", id, ErrSessionNotFound)
	}
	s.touch()
	return s, nil
}

// Delete removes the session with id.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return fmt.Errorf("delete session %s: %w", id, ErrSessionNotFound)
	}
	delete(st.sessions, id)
	sessionsActive.Set(float64(len(st.sessions)))
	return nil
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Stats returns per-operation latency aggregates.
func (st *Store) Stats() map[string]StatsSnapshot {
	return st.stats.Snapshot()
}

// Cleanup removes expired sessions and returns how many were removed.
func (st *Store) Cleanup() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := st.evictExpiredLocked(time.Now())
	if n > 0 {
		st.log.Info("sessions evicted", "count", n, "remaining", len(st.sessions))
	}
	return n
}

func (st *Store) evictExpiredLocked(now time.Time) int {
	n := 0
	for id, s := range st.sessions {
		if now.Sub(s.lastUsed()) > st.ttl {
			delete(st.sessions, id)
			n++
		}
	}
	sessionsActive.Set(float64(len(st.sessions)))
	return n
}

// Start launches the background cleanup loop. It runs until ctx is done or
// Stop is called.
func (st *Store) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	st.cancel = cancel

	st.wg.Add(1)
	go func() {
		defer st.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st.Cleanup()
			}
		}
	}()
}

// Stop ends the cleanup loop and waits for it.
func (st *Store) Stop() {
	if st.cancel != nil {
		st.cancel()
	}
	st.wg.Wait()
}
