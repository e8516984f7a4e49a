// Package repository owns the canonical competition aggregates and
// serializes mutation per aggregate.
package repository

import (
	"context"
	"time"

	"github.com/okian/ovation/internal/domain/model"
)

// Sort names the field competitions are ordered by in List.
type Sort string

const (
	SortStartDate Sort = "start_date"
	SortEndDate   Sort = "end_date"
	SortCreatedAt Sort = "created_at"
	SortTitle     Sort = "title"
)

// Filter narrows and orders List results. Zero values mean "no constraint";
// the default order is most recent start date first.
type Filter struct {
	// Status keeps only competitions whose phase, resolved at the List
	// call's now, matches.
	Status model.Status
	// Category is an exact match on the category field.
	Category string
	// Query is a case-insensitive substring match over title, description
	// and category.
	Query string
	// Sort selects the ordering field; Asc flips the direction.
	Sort Sort
	Asc  bool
	// Limit caps the result size when positive.
	Limit int
}

// Store provides read/write access to competition aggregates.
//
// Mutate runs fn on the canonical aggregate inside a per-competition
// critical section: two mutations on the same id never interleave, and
// mutations on different ids never block each other. If fn returns an
// error the aggregate is left exactly as fn left it, so fn must perform
// all guard checks before touching state.
type Store interface {
	// Create adds a new aggregate. The competition's id must be unset;
	// Create assigns one and returns a resolved copy.
	Create(ctx context.Context, c *model.Competition, now time.Time) (*model.Competition, error)

	// Get returns a deep copy with Status resolved at now.
	// Returns model.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string, now time.Time) (*model.Competition, error)

	// List returns deep copies matching the filter, status resolved at now.
	List(ctx context.Context, f Filter, now time.Time) []*model.Competition

	// Mutate applies fn to the canonical aggregate under its lock and
	// returns a resolved deep copy of the result.
	Mutate(ctx context.Context, id string, now time.Time, fn func(*model.Competition) error) (*model.Competition, error)

	// Delete removes the aggregate after guard passes under its lock.
	Delete(ctx context.Context, id string, guard func(*model.Competition) error) error

	// Count returns the number of stored competitions.
	Count(ctx context.Context) int

	// PhaseCounts returns how many competitions sit in each phase at now.
	PhaseCounts(ctx context.Context, now time.Time) map[model.Status]int
}
