// Package award holds the terminal-state rules: one-shot winner declaration,
// the archive pin, payment gating, and the delete guard.
package award

import (
	"fmt"
	"time"

	"github.com/okian/ovation/internal/domain/model"
)

// Declare sets the competition's winner, pins the status to closed and
// initializes the payment status. Winner assignment is one-shot: a second
// call fails with a conflict and leaves the first declaration untouched.
// The archive pin is permanent, so an archived competition cannot be won.
// Must run inside the repository's per-competition critical section.
func Declare(c *model.Competition, talentID, talentName, submissionID string, now time.Time) error {
	if c.Pin == model.PinArchived {
		return fmt.Errorf("%w: competition is archived", model.ErrConflict)
	}
	if c.Winner != nil {
		return fmt.Errorf("%w: winner already declared", model.ErrConflict)
	}
	sub, ok := c.SubmissionByID(submissionID)
	if !ok {
		return fmt.Errorf("%w: submission %s", model.ErrNotFound, submissionID)
	}
	if sub.TalentID != talentID {
		return fmt.Errorf("%w: submission %s does not belong to talent %s", model.ErrNotFound, submissionID, talentID)
	}

	c.Winner = &model.Winner{
		TalentID:     talentID,
		TalentName:   talentName,
		SubmissionID: submissionID,
		DeclaredAt:   now,
	}
	c.Pin = model.PinClosed
	c.PaymentStatus = model.PaymentPending
	return nil
}

// SetPayment updates the payment status. Meaningless without a winner, so
// the winner gate runs first; the value itself must be a known status.
func SetPayment(c *model.Competition, status model.PaymentStatus) error {
	if c.Winner == nil {
		return fmt.Errorf("%w: no winner declared", model.ErrConflict)
	}
	if !model.ValidPaymentStatus(status) {
		return fmt.Errorf("%w: unknown payment status %q", model.ErrValidation, status)
	}
	c.PaymentStatus = status
	return nil
}

// Archive pins the competition to archived. Archiving is permanent and
// allowed from any phase.
func Archive(c *model.Competition) error {
	if c.Pin == model.PinArchived {
		return fmt.Errorf("%w: already archived", model.ErrConflict)
	}
	c.Pin = model.PinArchived
	return nil
}

// CheckDeletable blocks deletion while a declared winner's payment is still
// pending. Resolve or waive the payment first.
func CheckDeletable(c *model.Competition) error {
	if c.Winner != nil && c.PaymentStatus == model.PaymentPending {
		return fmt.Errorf("%w: winner payment still pending", model.ErrConflict)
	}
	return nil
}
