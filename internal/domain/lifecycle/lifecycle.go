// Package lifecycle computes a competition's current phase from its date
// window and any pinned terminal state.
package lifecycle

import (
	"time"

	"github.com/okian/ovation/internal/domain/model"
)

// Resolve returns the phase for the given dates and pin at time now.
//
// The function is pure: same inputs, same output, no mutation. A pin always
// wins over the date window; otherwise the window splits time into
// upcoming / open / judging. Both window edges are inclusive on the open side.
func Resolve(start, end time.Time, pin model.PinKind, now time.Time) model.Status {
	switch pin {
	case model.PinClosed:
		return model.StatusClosed
	case model.PinArchived:
		return model.StatusArchived
	}
	switch {
	case now.Before(start):
		return model.StatusUpcoming
	case now.After(end):
		return model.StatusJudging
	default:
		return model.StatusOpen
	}
}

// ResolveCompetition is a convenience wrapper over Resolve for a whole
// aggregate. It does not touch c.Status; filling the field is the
// repository's job.
func ResolveCompetition(c *model.Competition, now time.Time) model.Status {
	return Resolve(c.StartDate, c.EndDate, c.Pin, now)
}
