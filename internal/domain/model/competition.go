// Package model contains domain models passed between layers.
package model

import "time"

// Status is the externally visible lifecycle phase of a competition.
type Status string

// Lifecycle phases. Upcoming/Open/Judging are derived from the date window;
// Closed and Archived are pinned.
const (
	StatusUpcoming Status = "upcoming"
	StatusOpen     Status = "open"
	StatusJudging  Status = "judging"
	StatusClosed   Status = "closed"
	StatusArchived Status = "archived"
)

// PinKind marks a manually set terminal status that overrides the
// date-derived phase.
type PinKind string

const (
	PinClosed   PinKind = "closed"
	PinArchived PinKind = "archived"
)

// SubmissionKind distinguishes free-text entries from portfolio references.
type SubmissionKind string

const (
	SubmissionText      SubmissionKind = "text"
	SubmissionPortfolio SubmissionKind = "portfolioReference"
)

// PaymentStatus tracks the prize payment outcome once a winner exists.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentProcessed     PaymentStatus = "Processed"
	PaymentNotApplicable PaymentStatus = "NotApplicable"
)

// ValidPaymentStatus reports whether s is one of the accepted payment values.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentProcessed, PaymentNotApplicable:
		return true
	}
	return false
}

// Task is a passive descriptor of what submitters are asked to do.
// The engine never mutates tasks after creation.
type Task struct {
	Title       string
	Description string
	Kind        string
	Points      int
}

// Rating is one judge's score and comment on a submission.
// At most one rating per judge per submission.
type Rating struct {
	JudgeID string
	Score   int
	Comment string
	RatedAt time.Time
}

// Submission is one talent's entry into a competition.
// Immutable after creation except for its Ratings list.
type Submission struct {
	ID          string
	TalentID    string
	TalentName  string
	Kind        SubmissionKind
	Content     string
	SubmittedAt time.Time
	Ratings     []Rating
}

// RatingBy returns the rating left by judgeID, if any.
func (s *Submission) RatingBy(judgeID string) (Rating, bool) {
	for _, r := range s.Ratings {
		if r.JudgeID == judgeID {
			return r, true
		}
	}
	return Rating{}, false
}

// Winner records the one-shot winner declaration. Immutable once set.
type Winner struct {
	TalentID     string
	TalentName   string
	SubmissionID string
	DeclaredAt   time.Time
}

// Competition is the aggregate root. The repository owns the canonical
// instance; everything handed to callers is a deep copy.
type Competition struct {
	ID          string
	Title       string
	Description string
	Rules       string
	Prize       string
	Category    string
	StartDate   time.Time
	EndDate     time.Time
	Tasks       []Task

	// Pin, when non-empty, overrides the date-derived status.
	Pin PinKind

	// Status is the resolved phase at read time. The repository fills it
	// on every read; it is never the source of truth.
	Status Status

	Submissions   []Submission
	Winner        *Winner
	PaymentStatus PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubmissionByID returns the submission with the given id, if present.
func (c *Competition) SubmissionByID(id string) (*Submission, bool) {
	for i := range c.Submissions {
		if c.Submissions[i].ID == id {
			return &c.Submissions[i], true
		}
	}
	return nil, false
}

// SubmissionByTalent returns the submission made by talentID, if present.
func (c *Competition) SubmissionByTalent(talentID string) (*Submission, bool) {
	for i := range c.Submissions {
		if c.Submissions[i].TalentID == talentID {
			return &c.Submissions[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the competition, detaching all nested slices
// so callers can never reach the repository's canonical state.
func (c *Competition) Clone() *Competition {
	out := *c
	if c.Tasks != nil {
		out.Tasks = make([]Task, len(c.Tasks))
		copy(out.Tasks, c.Tasks)
	}
	if c.Submissions != nil {
		out.Submissions = make([]Submission, len(c.Submissions))
		for i := range c.Submissions {
			out.Submissions[i] = c.Submissions[i]
			if rs := c.Submissions[i].Ratings; rs != nil {
				out.Submissions[i].Ratings = make([]Rating, len(rs))
				copy(out.Submissions[i].Ratings, rs)
			}
		}
	}
	if c.Winner != nil {
		w := *c.Winner
		out.Winner = &w
	}
	return &out
}
