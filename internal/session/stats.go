package session

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationUs int64
}

// StatsSnapshot is a point-in-time aggregate of operation latencies.
type StatsSnapshot struct {
	Count   int     `json:"count"`
	Changed int     `json:"changed"`
	MinUs   int64   `json:"min_us"`
	MaxUs   int64   `json:"max_us"`
	AvgUs   float64 `json:"avg_us"`
	P50Us   float64 `json:"p50_us"`
	P95Us   float64 `json:"p95_us"`
	P99Us   float64 `json:"p99_us"`
}

type window struct {
	samples []sample
	changed []time.Time
}

// OpStats tracks recent operation latencies per operation name within a
// rolling window.
type OpStats struct {
	mu     sync.Mutex
	ops    map[string]*window
	maxAge time.Duration
}

func NewOpStats(maxAge time.Duration) *OpStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &OpStats{
		ops:    make(map[string]*window),
		maxAge: maxAge,
	}
}

// Record adds one run of op. changed counts runs that modified the document.
func (s *OpStats) Record(op string, d time.Duration, changed bool) {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.ops[op]
	if !ok {
		w = &window{samples: make([]sample, 0, 64)}
		s.ops[op] = w
	}
	s.pruneLocked(w, now)
	w.samples = append(w.samples, sample{timestamp: now, durationUs: us})
	if changed {
		w.changed = append(w.changed, now)
	}
}

// Snapshot aggregates every operation seen within the window. Operations
// without recent samples are dropped.
func (s *OpStats) Snapshot() map[string]StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]StatsSnapshot, len(s.ops))
	for op, w := range s.ops {
		s.pruneLocked(w, now)
		if len(w.samples) == 0 {
			delete(s.ops, op)
			continue
		}
		out[op] = aggregate(w)
	}
	return out
}

func aggregate(w *window) StatsSnapshot {
	values := make([]int64, 0, len(w.samples))
	var sum int64
	for _, sm := range w.samples {
		values = append(values, sm.durationUs)
		sum += sm.durationUs
	}
	slices.Sort(values)

	return StatsSnapshot{
		Count:   len(values),
		Changed: len(w.changed),
		MinUs:   values[0],
		MaxUs:   values[len(values)-1],
		AvgUs:   float64(sum) / float64(len(values)),
		P50Us:   percentile(values, 50),
		P95Us:   percentile(values, 95),
		P99Us:   percentile(values, 99),
	}
}

func (s *OpStats) pruneLocked(w *window, now time.Time) {
	cutoff := now.Add(-s.maxAge)
	w.samples = slices.DeleteFunc(w.samples, func(sm sample) bool { return sm.timestamp.Before(cutoff) })
	w.changed = slices.DeleteFunc(w.changed, func(ts time.Time) bool { return ts.Before(cutoff) })
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
