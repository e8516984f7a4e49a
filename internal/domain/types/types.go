// Package types contains the JSON-facing shapes shared between the service
// and the HTTP layer.
package types

import (
	"time"

	"github.com/okian/ovation/internal/domain/model"
)

// ListFilter narrows and orders competition listings. Zero values mean no
// constraint; the default order is most recent start date first.
type ListFilter struct {
	Status   string
	Category string
	Query    string
	Sort     string
	Asc      bool
	Limit    int
}

// Task mirrors model.Task for API responses.
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	Points      int    `json:"points,omitempty"`
}

// Rating mirrors model.Rating for API responses.
type Rating struct {
	JudgeID string    `json:"judge_id"`
	Score   int       `json:"score"`
	Comment string    `json:"comment,omitempty"`
	RatedAt time.Time `json:"rated_at"`
}

// Submission mirrors model.Submission for API responses.
type Submission struct {
	ID          string    `json:"id"`
	TalentID    string    `json:"talent_id"`
	TalentName  string    `json:"talent_name"`
	Kind        string    `json:"kind"`
	Content     string    `json:"content"`
	SubmittedAt time.Time `json:"submitted_at"`
	Ratings     []Rating  `json:"ratings"`
}

// Winner mirrors model.Winner for API responses.
type Winner struct {
	TalentID     string    `json:"talent_id"`
	TalentName   string    `json:"talent_name"`
	SubmissionID string    `json:"submission_id"`
	DeclaredAt   time.Time `json:"declared_at"`
}

// Competition mirrors model.Competition for API responses. Status is the
// phase resolved at read time.
type Competition struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Rules         string       `json:"rules"`
	Prize         string       `json:"prize"`
	Category      string       `json:"category"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	Tasks         []Task       `json:"tasks,omitempty"`
	Status        string       `json:"status"`
	Submissions   []Submission `json:"submissions"`
	Winner        *Winner      `json:"winner,omitempty"`
	PaymentStatus string       `json:"payment_status,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// FromSubmission converts a domain submission to its API shape.
func FromSubmission(s model.Submission) Submission {
	out := Submission{
		ID:          s.ID,
		TalentID:    s.TalentID,
		TalentName:  s.TalentName,
		Kind:        string(s.Kind),
		Content:     s.Content,
		SubmittedAt: s.SubmittedAt,
		Ratings:     []Rating{},
	}
	for _, r := range s.Ratings {
		out.Ratings = append(out.Ratings, Rating{
			JudgeID: r.JudgeID,
			Score:   r.Score,
			Comment: r.Comment,
			RatedAt: r.RatedAt,
		})
	}
	return out
}

// FromCompetition converts a domain competition to its API shape.
func FromCompetition(c *model.Competition) Competition {
	out := Competition{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Rules:         c.Rules,
		Prize:         c.Prize,
		Category:      c.Category,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Status:        string(c.Status),
		Submissions:   []Submission{},
		PaymentStatus: string(c.PaymentStatus),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for _, t := range c.Tasks {
		out.Tasks = append(out.Tasks, Task{Title: t.Title, Description: t.Description, Kind: t.Kind, Points: t.Points})
	}
	for _, s := range c.Submissions {
		out.Submissions = append(out.Submissions, FromSubmission(s))
	}
	if c.Winner != nil {
		out.Winner = &Winner{
			TalentID:     c.Winner.TalentID,
			TalentName:   c.Winner.TalentName,
			SubmissionID: c.Winner.SubmissionID,
			DeclaredAt:   c.Winner.DeclaredAt,
		}
	}
	return out
}
