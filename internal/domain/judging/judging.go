// Package judging holds the rating rules: bounded scores, one rating per
// judge per submission, last write wins.
package judging

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/ovation/internal/domain/model"
)

// Default score bounds, overridable through Bounds.
const (
	DefaultMinScore = 1
	DefaultMaxScore = 5
)

// Bounds is the inclusive score range accepted from judges.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds returns the stock 1..5 range.
func DefaultBounds() Bounds {
	return Bounds{Min: DefaultMinScore, Max: DefaultMaxScore}
}

// Upsert records or replaces judgeID's rating on the submission with the
// given id. It must run inside the repository's per-competition critical
// section so the find-or-append is atomic. Returns a copy of the updated
// submission.
func Upsert(c *model.Competition, submissionID, judgeID string, score int, comment string, b Bounds, now time.Time) (model.Submission, error) {
	if strings.TrimSpace(judgeID) == "" {
		return model.Submission{}, fmt.Errorf("%w: missing judge id", model.ErrValidation)
	}
	if score < b.Min || score > b.Max {
		return model.Submission{}, fmt.Errorf("%w: score %d outside [%d,%d]", model.ErrValidation, score, b.Min, b.Max)
	}
	sub, ok := c.SubmissionByID(submissionID)
	if !ok {
		return model.Submission{}, fmt.Errorf("%w: submission %s", model.ErrNotFound, submissionID)
	}

	rating := model.Rating{JudgeID: judgeID, Score: score, Comment: comment, RatedAt: now}
	replaced := false
	for i := range sub.Ratings {
		if sub.Ratings[i].JudgeID == judgeID {
			sub.Ratings[i] = rating
			replaced = true
			break
		}
	}
	if !replaced {
		sub.Ratings = append(sub.Ratings, rating)
	}

	out := *sub
	out.Ratings = make([]model.Rating, len(sub.Ratings))
	copy(out.Ratings, sub.Ratings)
	return out, nil
}
