package award_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/ovation/internal/domain/award"
	"github.com/okian/ovation/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func judgedCompetition() *model.Competition {
	return &model.Competition{
		ID: "comp-1",
		Submissions: []model.Submission{
			{ID: "sub-1", TalentID: "T1", TalentName: "Talent One"},
			{ID: "sub-2", TalentID: "T2", TalentName: "Talent Two"},
		},
	}
}

func TestDeclare(t *testing.T) {
	now := time.Now()

	Convey("Given a competition with submissions", t, func() {
		c := judgedCompetition()

		Convey("Declaring a winner pins closed and starts payment tracking", func() {
			err := award.Declare(c, "T1", "Talent One", "sub-1", now)
			So(err, ShouldBeNil)
			So(c.Winner, ShouldNotBeNil)
			So(c.Winner.SubmissionID, ShouldEqual, "sub-1")
			So(c.Pin, ShouldEqual, model.PinClosed)
			So(c.PaymentStatus, ShouldEqual, model.PaymentPending)

			Convey("A second declaration is refused and changes nothing", func() {
				err := award.Declare(c, "T2", "Talent Two", "sub-2", now)
				So(errors.Is(err, model.ErrConflict), ShouldBeTrue)
				So(c.Winner.TalentID, ShouldEqual, "T1")
			})
		})

		Convey("An unknown submission fails not found", func() {
			err := award.Declare(c, "T1", "Talent One", "sub-404", now)
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
			So(c.Winner, ShouldBeNil)
		})

		Convey("A submission owned by another talent fails not found", func() {
			err := award.Declare(c, "T1", "Talent One", "sub-2", now)
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
			So(c.Winner, ShouldBeNil)
			So(c.Pin, ShouldBeEmpty)
		})
	})
}

func TestSetPayment(t *testing.T) {
	now := time.Now()

	Convey("Given a competition without a winner", t, func() {
		c := judgedCompetition()

		Convey("Payment updates are refused", func() {
			err := award.SetPayment(c, model.PaymentProcessed)
			So(errors.Is(err, model.ErrConflict), ShouldBeTrue)
		})
	})

	Convey("Given a competition with a winner", t, func() {
		c := judgedCompetition()
		So(award.Declare(c, "T1", "Talent One", "sub-1", now), ShouldBeNil)

		Convey("Valid statuses are accepted", func() {
			for _, s := range []model.PaymentStatus{model.PaymentProcessed, model.PaymentNotApplicable, model.PaymentPending} {
				So(award.SetPayment(c, s), ShouldBeNil)
				So(c.PaymentStatus, ShouldEqual, s)
			}
		})

		Convey("Unknown statuses are rejected", func() {
			err := award.SetPayment(c, "Refunded")
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			So(c.PaymentStatus, ShouldEqual, model.PaymentPending)
		})
	})
}

func TestArchive(t *testing.T) {
	Convey("Given a competition", t, func() {
		c := judgedCompetition()

		Convey("Archiving pins permanently", func() {
			So(award.Archive(c), ShouldBeNil)
			So(c.Pin, ShouldEqual, model.PinArchived)

			Convey("Archiving twice is a conflict", func() {
				err := award.Archive(c)
				So(errors.Is(err, model.ErrConflict), ShouldBeTrue)
			})
		})

		Convey("Archiving over a closed pin is allowed", func() {
			c.Pin = model.PinClosed
			So(award.Archive(c), ShouldBeNil)
			So(c.Pin, ShouldEqual, model.PinArchived)
		})
	})
}

func TestCheckDeletable(t *testing.T) {
	now := time.Now()

	Convey("Given a competition", t, func() {
		c := judgedCompetition()

		Convey("Without a winner deletion is allowed", func() {
			So(award.CheckDeletable(c), ShouldBeNil)
		})

		Convey("With a pending winner payment deletion is blocked", func() {
			So(award.Declare(c, "T1", "Talent One", "sub-1", now), ShouldBeNil)
			err := award.CheckDeletable(c)
			So(errors.Is(err, model.ErrConflict), ShouldBeTrue)

			Convey("Once payment is resolved deletion is allowed", func() {
				So(award.SetPayment(c, model.PaymentProcessed), ShouldBeNil)
				So(award.CheckDeletable(c), ShouldBeNil)
			})
		})
	})
}
