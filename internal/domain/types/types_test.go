package types_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/okian/ovation/internal/domain/model"
	"github.com/okian/ovation/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromCompetition(t *testing.T) {
	Convey("Given a domain competition", t, func() {
		declared := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
		c := &model.Competition{
			ID:        "comp-1",
			Title:     "Open Mic",
			Category:  "music",
			Status:    model.StatusClosed,
			StartDate: declared.Add(-48 * time.Hour),
			EndDate:   declared.Add(-24 * time.Hour),
			Tasks:     []model.Task{{Title: "Perform", Kind: "text", Points: 10}},
			Submissions: []model.Submission{
				{
					ID:       "sub-1",
					TalentID: "talent-1",
					Kind:     model.SubmissionText,
					Ratings:  []model.Rating{{JudgeID: "judge-1", Score: 4}},
				},
			},
			Winner: &model.Winner{
				TalentID:     "talent-1",
				TalentName:   "Talent One",
				SubmissionID: "sub-1",
				DeclaredAt:   declared,
			},
			PaymentStatus: model.PaymentPending,
		}

		Convey("When converting to the API shape", func() {
			out := types.FromCompetition(c)

			Convey("Then every field crosses over", func() {
				So(out.ID, ShouldEqual, "comp-1")
				So(out.Status, ShouldEqual, "closed")
				So(out.Tasks, ShouldHaveLength, 1)
				So(out.Submissions, ShouldHaveLength, 1)
				So(out.Submissions[0].Ratings, ShouldHaveLength, 1)
				So(out.Winner, ShouldNotBeNil)
				So(out.Winner.TalentID, ShouldEqual, "talent-1")
				So(out.PaymentStatus, ShouldEqual, "Pending")
			})

			Convey("Then the JSON wire format uses snake_case", func() {
				raw, err := json.Marshal(out)
				So(err, ShouldBeNil)
				body := string(raw)
				So(body, ShouldContainSubstring, `"start_date"`)
				So(body, ShouldContainSubstring, `"payment_status"`)
				So(body, ShouldContainSubstring, `"talent_id"`)
				So(strings.Contains(body, `"StartDate"`), ShouldBeFalse)
			})
		})

		Convey("A competition without submissions marshals an empty array, not null", func() {
			out := types.FromCompetition(&model.Competition{ID: "empty"})
			raw, err := json.Marshal(out)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"submissions":[]`)
			So(string(raw), ShouldNotContainSubstring, `"winner"`)
		})
	})
}

func TestFromSubmission(t *testing.T) {
	Convey("Given a domain submission without ratings", t, func() {
		out := types.FromSubmission(model.Submission{ID: "sub-1", Kind: model.SubmissionPortfolio, Content: "https://example.com"})

		Convey("Then ratings marshal as an empty array", func() {
			raw, err := json.Marshal(out)
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"ratings":[]`)
			So(out.Kind, ShouldEqual, "portfolioReference")
		})
	})
}
