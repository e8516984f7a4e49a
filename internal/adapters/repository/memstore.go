package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/ovation/internal/domain/lifecycle"
	"github.com/okian/ovation/internal/domain/model"
	"github.com/okian/ovation/pkg/metrics"
)

// aggregate pairs the canonical competition with its own lock. The lock is
// the single-writer boundary from the concurrency contract: everything that
// mutates the competition holds it.
type aggregate struct {
	mu      sync.Mutex
	comp    *model.Competition
	deleted bool
}

// MemStore is the in-memory Store implementation. A read-write mutex guards
// the id index only; each aggregate carries its own mutex so unrelated
// competitions never contend.
type MemStore struct {
	mu   sync.RWMutex
	byID map[string]*aggregate

	newID func() string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		byID:  make(map[string]*aggregate),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a new aggregate and returns a resolved copy.
func (s *MemStore) Create(ctx context.Context, c *model.Competition, now time.Time) (*model.Competition, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	if c.ID != "" {
		return nil, fmt.Errorf("%w: competition id must be assigned by the store", model.ErrConflict)
	}
	canonical := c.Clone()
	canonical.ID = s.newID()
	canonical.CreatedAt = now
	canonical.UpdatedAt = now

	s.mu.Lock()
	s.byID[canonical.ID] = &aggregate{comp: canonical}
	s.mu.Unlock()
	metrics.UpdateCompetitionCount(s.Count(ctx))

	out := canonical.Clone()
	out.Status = lifecycle.ResolveCompetition(out, now)
	return out, nil
}

// Get returns a deep copy with status resolved at now.
func (s *MemStore) Get(ctx context.Context, id string, now time.Time) (*model.Competition, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	agg, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.deleted {
		return nil, fmt.Errorf("%w: competition %s", model.ErrNotFound, id)
	}
	out := agg.comp.Clone()
	out.Status = lifecycle.ResolveCompetition(out, now)
	return out, nil
}

// List returns resolved deep copies matching the filter.
func (s *MemStore) List(ctx context.Context, f Filter, now time.Time) []*model.Competition {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	s.mu.RLock()
	aggs := make([]*aggregate, 0, len(s.byID))
	for _, agg := range s.byID {
		aggs = append(aggs, agg)
	}
	s.mu.RUnlock()

	out := make([]*model.Competition, 0, len(aggs))
	for _, agg := range aggs {
		agg.mu.Lock()
		if agg.deleted {
			agg.mu.Unlock()
			continue
		}
		c := agg.comp.Clone()
		agg.mu.Unlock()
		c.Status = lifecycle.ResolveCompetition(c, now)
		if matches(c, f) {
			out = append(out, c)
		}
	}

	sortCompetitions(out, f)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// Mutate runs fn on the canonical aggregate under its lock.
func (s *MemStore) Mutate(ctx context.Context, id string, now time.Time, fn func(*model.Competition) error) (*model.Competition, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	agg, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.deleted {
		return nil, fmt.Errorf("%w: competition %s", model.ErrNotFound, id)
	}
	if err := fn(agg.comp); err != nil {
		return nil, err
	}
	agg.comp.UpdatedAt = now
	out := agg.comp.Clone()
	out.Status = lifecycle.ResolveCompetition(out, now)
	return out, nil
}

// Delete removes the aggregate once guard passes.
func (s *MemStore) Delete(ctx context.Context, id string, guard func(*model.Competition) error) error {
	start := time.Now()
	defer func() { metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds())) }()

	agg, err := s.lookup(id)
	if err != nil {
		return err
	}
	agg.mu.Lock()
	defer agg.mu.Unlock()
	if agg.deleted {
		return fmt.Errorf("%w: competition %s", model.ErrNotFound, id)
	}
	if guard != nil {
		if err := guard(agg.comp); err != nil {
			return err
		}
	}
	// Tombstone first so a mutation racing on the same aggregate pointer
	// observes the removal.
	agg.deleted = true
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
	metrics.UpdateCompetitionCount(s.Count(ctx))
	return nil
}

// Count returns the number of stored competitions.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// PhaseCounts returns competitions per phase resolved at now.
func (s *MemStore) PhaseCounts(_ context.Context, now time.Time) map[model.Status]int {
	s.mu.RLock()
	aggs := make([]*aggregate, 0, len(s.byID))
	for _, agg := range s.byID {
		aggs = append(aggs, agg)
	}
	s.mu.RUnlock()

	counts := make(map[model.Status]int)
	for _, agg := range aggs {
		agg.mu.Lock()
		if !agg.deleted {
			counts[lifecycle.ResolveCompetition(agg.comp, now)]++
		}
		agg.mu.Unlock()
	}
	return counts
}

func (s *MemStore) lookup(id string) (*aggregate, error) {
	s.mu.RLock()
	agg, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: competition %s", model.ErrNotFound, id)
	}
	return agg, nil
}

func matches(c *model.Competition, f Filter) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) &&
			!strings.Contains(strings.ToLower(c.Category), q) {
			return false
		}
	}
	return true
}

func sortCompetitions(list []*model.Competition, f Filter) {
	less := func(a, b *model.Competition) bool {
		switch f.Sort {
		case SortEndDate:
			return a.EndDate.Before(b.EndDate)
		case SortCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		case SortTitle:
			return a.Title < b.Title
		default:
			return a.StartDate.Before(b.StartDate)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if f.Asc {
			return less(list[i], list[j])
		}
		return less(list[j], list[i])
	})
}
