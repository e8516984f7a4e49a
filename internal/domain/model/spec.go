package model

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CompetitionSpec carries the caller-supplied fields for create and update.
// Submissions, winner and payment status are owned by dedicated operations
// and deliberately have no place here.
type CompetitionSpec struct {
	Title       string     `validate:"required"`
	Description string     `validate:"required"`
	Rules       string     `validate:"required"`
	Prize       string     `validate:"required"`
	Category    string     `validate:"required"`
	StartDate   time.Time  `validate:"required"`
	EndDate     time.Time  `validate:"required,gtfield=StartDate"`
	Tasks       []TaskSpec `validate:"dive"`
}

// TaskSpec describes one task attached to a competition.
type TaskSpec struct {
	Title       string `validate:"required"`
	Description string
	Kind        string `validate:"required,oneof=text upload portfolioReference"`
	Points      int    `validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required fields and date ordering. Failures wrap
// ErrValidation so callers can classify them.
func (s CompetitionSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// TaskList materializes the task descriptors for the aggregate.
func (s CompetitionSpec) TaskList() []Task {
	if len(s.Tasks) == 0 {
		return nil
	}
	out := make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		out[i] = Task{Title: t.Title, Description: t.Description, Kind: t.Kind, Points: t.Points}
	}
	return out
}
