package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/ovation/internal/domain/model"
	"github.com/okian/ovation/internal/domain/types"
)

// CompetitionsHandler dispatches everything under /competitions.
type CompetitionsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewCompetitionsHandler creates the competitions handler.
func NewCompetitionsHandler(deps Dependencies, maxLimit int) *CompetitionsHandler {
	return &CompetitionsHandler{deps: deps, maxLimit: maxLimit}
}

// competitionRequest mirrors the OpenAPI schema for competition create and
// update bodies.
type competitionRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Rules       string        `json:"rules"`
	Prize       string        `json:"prize"`
	Category    string        `json:"category"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Tasks       []taskRequest `json:"tasks,omitempty"`
}

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Kind        string `json:"kind"`
	Points      int    `json:"points,omitempty"`
}

func (c competitionRequest) toSpec() model.CompetitionSpec {
	spec := model.CompetitionSpec{
		Title:       c.Title,
		Description: c.Description,
		Rules:       c.Rules,
		Prize:       c.Prize,
		Category:    c.Category,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
	}
	for _, t := range c.Tasks {
		spec.Tasks = append(spec.Tasks, model.TaskSpec{
			Title:       t.Title,
			Description: t.Description,
			Kind:        t.Kind,
			Points:      t.Points,
		})
	}
	return spec
}

type submissionRequest struct {
	TalentID   string `json:"talent_id"`
	TalentName string `json:"talent_name"`
	Kind       string `json:"kind"`
	Content    string `json:"content"`
}

type ratingRequest struct {
	JudgeID string `json:"judge_id"`
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

type winnerRequest struct {
	TalentID     string `json:"talent_id"`
	TalentName   string `json:"talent_name"`
	SubmissionID string `json:"submission_id"`
}

type paymentRequest struct {
	Status string `json:"status"`
}

// Handle routes /competitions and everything below it.
//
//	POST   /competitions
//	GET    /competitions?status=&category=&q=&sort=&order=&limit=
//	GET    /competitions/{id}
//	PUT    /competitions/{id}
//	DELETE /competitions/{id}
//	POST   /competitions/{id}/archive
//	POST   /competitions/{id}/submissions
//	POST   /competitions/{id}/submissions/{sid}/ratings
//	POST   /competitions/{id}/winner
//	PUT    /competitions/{id}/payment
func (h *CompetitionsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/competitions")
	rest = strings.Trim(rest, "/")
	if rest == "" {
		h.handleCollection(w, r)
		return
	}

	parts := strings.Split(rest, "/")
	id := parts[0]
	switch len(parts) {
	case 1:
		h.handleOne(w, r, id)
	case 2:
		switch parts[1] {
		case "archive":
			h.handleArchive(w, r, id)
		case "submissions":
			h.handleSubmit(w, r, id)
		case "winner":
			h.handleWinner(w, r, id)
		case "payment":
			h.handlePayment(w, r, id)
		default:
			http.NotFound(w, r)
		}
	case 4:
		if parts[1] == "submissions" && parts[3] == "ratings" {
			h.handleRate(w, r, id, parts[2])
			return
		}
		http.NotFound(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *CompetitionsHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *CompetitionsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_competition"
	actor := actorFrom(r.Context())
	var req competitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
		return
	}
	comp, err := h.deps.CreateCompetition(r.Context(), req.toSpec(), actor)
	if err != nil {
		writeEngineError(w, actor, err)
		return
	}
	writeJSON(w, http.StatusCreated, comp)
}

func (h *CompetitionsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_competitions"
	q := r.URL.Query()
	filter := types.ListFilter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
		Asc:      q.Get("order") == "asc",
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: invalid limit", op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %w: limit above %d", op, ErrBadRequest, h.maxLimit))
			return
		}
		filter.Limit = n
	}
	list, err := h.deps.ListCompetitions(r.Context(), filter)
	if err != nil {
		writeEngineError(w, actorFrom(r.Context()), err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CompetitionsHandler) handleOne(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.competition"
	actor := actorFrom(r.Context())
	switch r.Method {
	case http.MethodGet:
		comp, err := h.deps.GetCompetition(r.Context(), id)
		if err != nil {
			writeEngineError(w, actor, err)
			return
		}
		writeJSON(w, http.StatusOK, comp)
	case http.MethodPut:
		var req competitionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
			return
		}
		comp, err := h.deps.UpdateCompetition(r.Context(), id, req.toSpec(), actor)
		if err != nil {
			writeEngineError(w, actor, err)
			return
		}
		writeJSON(w, http.StatusOK, comp)
	case http.MethodDelete:
		if err := h.deps.DeleteCompetition(r.Context(), id, actor); err != nil {
			writeEngineError(w, actor, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		http.NotFound(w, r)
	}
}

func (h *CompetitionsHandler) handleArchive(w http.ResponseWriter, r *http.Request, id string) {
	actor := actorFrom(r.Context())
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	comp, err := h.deps.ArchiveCompetition(r.Context(), id, actor)
	if err != nil {
		writeEngineError(w, actor, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

func (h *CompetitionsHandler) handleSubmit(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.submit_entry"
	actor := actorFrom(r.Context())
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
		return
	}
	sub, err := h.deps.SubmitEntry(r.Context(), id, req.TalentID, req.TalentName, req.Kind, req.Content, actor)
	if err != nil {
		writeEngineError(w, actor, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

func (h *CompetitionsHandler) handleRate(w http.ResponseWriter, r *http.Request, id, submissionID string) {
	const op = "api.rate_submission"
	actor := actorFrom(r.Context())
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req ratingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
		return
	}
	sub, err := h.deps.RateSubmission(r.Context(), id, submissionID, req.JudgeID, req.Score, req.Comment, actor)
	if err != nil {
		writeEngineError(w, actor, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *CompetitionsHandler) handleWinner(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.declare_winner"
	actor := actorFrom(r.Context())
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req winnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
		return
	}
	comp, err := h.deps.DeclareWinner(r.Context(), id, req.TalentID, req.TalentName, req.SubmissionID, actor)
	if err != nil {
		writeEngineError(w, actor, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

func (h *CompetitionsHandler) handlePayment(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.update_payment"
	actor := actorFrom(r.Context())
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
		return
	}
	comp, err := h.deps.UpdatePaymentStatus(r.Context(), id, req.Status, actor)
	if err != nil {
		writeEngineError(w, actor, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}
