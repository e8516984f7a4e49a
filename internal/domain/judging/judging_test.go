package judging_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/ovation/internal/domain/judging"
	"github.com/okian/ovation/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func competitionWithSubmission() *model.Competition {
	return &model.Competition{
		ID: "comp-1",
		Submissions: []model.Submission{
			{ID: "sub-1", TalentID: "T1", TalentName: "Talent One", Kind: model.SubmissionText},
			{ID: "sub-2", TalentID: "T2", TalentName: "Talent Two", Kind: model.SubmissionText},
		},
	}
}

func TestUpsert(t *testing.T) {
	now := time.Now()
	bounds := judging.DefaultBounds()

	Convey("Given a competition with submissions", t, func() {
		c := competitionWithSubmission()

		Convey("A first rating is appended", func() {
			sub, err := judging.Upsert(c, "sub-1", "judgeA", 4, "solid", bounds, now)
			So(err, ShouldBeNil)
			So(sub.Ratings, ShouldHaveLength, 1)
			So(sub.Ratings[0].Score, ShouldEqual, 4)

			Convey("Re-rating by the same judge replaces in place", func() {
				sub, err := judging.Upsert(c, "sub-1", "judgeA", 5, "better on second look", bounds, now)
				So(err, ShouldBeNil)
				So(sub.Ratings, ShouldHaveLength, 1)
				So(sub.Ratings[0].JudgeID, ShouldEqual, "judgeA")
				So(sub.Ratings[0].Score, ShouldEqual, 5)
				So(sub.Ratings[0].Comment, ShouldEqual, "better on second look")
			})

			Convey("A different judge gets a second rating", func() {
				sub, err := judging.Upsert(c, "sub-1", "judgeB", 3, "", bounds, now)
				So(err, ShouldBeNil)
				So(sub.Ratings, ShouldHaveLength, 2)
			})
		})

		Convey("Scores outside the bounds are rejected", func() {
			_, err := judging.Upsert(c, "sub-1", "judgeA", 0, "", bounds, now)
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			_, err = judging.Upsert(c, "sub-1", "judgeA", 6, "", bounds, now)
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			So(c.Submissions[0].Ratings, ShouldBeEmpty)
		})

		Convey("A missing judge id is rejected", func() {
			_, err := judging.Upsert(c, "sub-1", " ", 3, "", bounds, now)
			So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
		})

		Convey("An unknown submission fails not found", func() {
			_, err := judging.Upsert(c, "sub-404", "judgeA", 3, "", bounds, now)
			So(errors.Is(err, model.ErrNotFound), ShouldBeTrue)
		})

		Convey("The returned submission is detached from the aggregate", func() {
			sub, err := judging.Upsert(c, "sub-1", "judgeA", 4, "", bounds, now)
			So(err, ShouldBeNil)
			sub.Ratings[0].Score = 1
			So(c.Submissions[0].Ratings[0].Score, ShouldEqual, 4)
		})

		Convey("Custom bounds are honored", func() {
			wide := judging.Bounds{Min: 1, Max: 10}
			sub, err := judging.Upsert(c, "sub-2", "judgeA", 9, "", wide, now)
			So(err, ShouldBeNil)
			So(sub.Ratings[0].Score, ShouldEqual, 9)
		})
	})
}
