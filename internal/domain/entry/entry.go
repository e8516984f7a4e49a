// Package entry holds the submission rules: entries are accepted only while
// a competition is open, and each talent gets exactly one.
package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/ovation/internal/domain/lifecycle"
	"github.com/okian/ovation/internal/domain/model"
)

// Request carries the caller-supplied fields for a new submission.
type Request struct {
	TalentID   string
	TalentName string
	Kind       model.SubmissionKind
	Content    string
}

func (r Request) validate() error {
	switch {
	case strings.TrimSpace(r.TalentID) == "":
		return fmt.Errorf("%w: missing talent id", model.ErrValidation)
	case strings.TrimSpace(r.TalentName) == "":
		return fmt.Errorf("%w: missing talent name", model.ErrValidation)
	}
	switch r.Kind {
	case model.SubmissionText:
		// Free text may be empty; an empty text entry is the submitter's
		// problem, not an engine invariant.
	case model.SubmissionPortfolio:
		// Whether the reference resolves is the portfolio collaborator's
		// concern; the engine only refuses an empty one.
		if strings.TrimSpace(r.Content) == "" {
			return fmt.Errorf("%w: empty portfolio reference", model.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown submission kind %q", model.ErrValidation, r.Kind)
	}
	return nil
}

// Attach validates the request against the aggregate and appends the new
// submission. It must run inside the repository's per-competition critical
// section so that the duplicate check and the append are a single atomic
// unit. All guards run before any mutation.
func Attach(c *model.Competition, req Request, now time.Time) (model.Submission, error) {
	if err := req.validate(); err != nil {
		return model.Submission{}, err
	}
	if status := lifecycle.ResolveCompetition(c, now); status != model.StatusOpen {
		return model.Submission{}, fmt.Errorf("%w: competition is %s, not open", model.ErrInvalidState, status)
	}
	if _, exists := c.SubmissionByTalent(req.TalentID); exists {
		return model.Submission{}, fmt.Errorf("%w: talent %s", model.ErrDuplicateSubmission, req.TalentID)
	}

	sub := model.Submission{
		ID:          uuid.NewString(),
		TalentID:    req.TalentID,
		TalentName:  req.TalentName,
		Kind:        req.Kind,
		Content:     req.Content,
		SubmittedAt: now,
	}
	c.Submissions = append(c.Submissions, sub)
	return sub, nil
}
