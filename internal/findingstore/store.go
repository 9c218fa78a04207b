// Package findingstore provides the thread-safe, append-only collection
// that ServiceAuditors write Findings into during one audit run.
package findingstore

import (
	"sync"

	"github.com/nimbusaudit/cloudpulse/internal/models"
)

// maxFindings bounds the number of findings a single run can accumulate.
// Further adds past this cap are silently dropped; DroppedCount tracks how
// many were lost so the caller can surface a warning.
const maxFindings = 10000

// dedupeKey is the composite key (kind, resource_id, finding_code) used to
// collapse duplicate findings from one run.
type dedupeKey struct {
	kind       models.ResourceKind
	resourceID string
	code       string
}

// Store is a mutex-guarded, append-only collection of Findings for one
// audit run. Multiple ServiceAuditors write concurrently; the orchestrator
// reads once, after all writers have finished.
type Store struct {
	mu       sync.Mutex
	findings []models.Finding
	seen     map[dedupeKey]struct{}
	dropped  int
}

// New returns an empty Store ready for concurrent use.
func New() *Store {
	return &Store{
		seen: make(map[dedupeKey]struct{}),
	}
}

// Add appends f unless it duplicates an already-stored finding's
// (kind, resource_id, finding_code) key, or the store is at capacity.
// Neither case fails loudly. An add rejected at capacity increments the
// counter DroppedCount reports; a duplicate is discarded without being
// counted.
func (s *Store) Add(f models.Finding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind, id, code := f.DedupeKey()
	key := dedupeKey{kind: kind, resourceID: id, code: code}
	if _, dup := s.seen[key]; dup {
		return
	}
	if len(s.findings) >= maxFindings {
		s.dropped++
		return
	}
	s.seen[key] = struct{}{}
	s.findings = append(s.findings, f)
}

// All returns every stored finding in insertion order. The returned slice
// is a copy; callers may not mutate the store through it.
func (s *Store) All() []models.Finding {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Finding, len(s.findings))
	copy(out, s.findings)
	return out
}

// GroupByKind partitions all stored findings by ResourceKind.
func (s *Store) GroupByKind() map[models.ResourceKind][]models.Finding {
	all := s.All()
	groups := make(map[models.ResourceKind][]models.Finding)
	for _, f := range all {
		groups[f.Kind] = append(groups[f.Kind], f)
	}
	return groups
}

// TotalSavings sums EstimatedMonthlySavings across every stored finding.
func (s *Store) TotalSavings() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, f := range s.findings {
		total += f.EstimatedMonthlySavings
	}
	return total
}

// Count returns the number of stored findings with the given severity.
func (s *Store) Count(sev models.Severity) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// DroppedCount returns how many Add calls were rejected for exceeding the
// per-run capacity. It does not count deduplicated adds.
func (s *Store) DroppedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
