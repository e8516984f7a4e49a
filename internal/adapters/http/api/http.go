// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/ovation/internal/adapters/journal"
	"github.com/okian/ovation/internal/domain/model"
	"github.com/okian/ovation/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	CreateCompetition(ctx context.Context, spec model.CompetitionSpec, actor model.Actor) (types.Competition, error)
	UpdateCompetition(ctx context.Context, id string, spec model.CompetitionSpec, actor model.Actor) (types.Competition, error)
	DeleteCompetition(ctx context.Context, id string, actor model.Actor) error
	GetCompetition(ctx context.Context, id string) (types.Competition, error)
	ListCompetitions(ctx context.Context, f types.ListFilter) ([]types.Competition, error)
	SubmitEntry(ctx context.Context, competitionID, talentID, talentName, kind, content string, actor model.Actor) (types.Submission, error)
	RateSubmission(ctx context.Context, competitionID, submissionID, judgeID string, score int, comment string, actor model.Actor) (types.Submission, error)
	DeclareWinner(ctx context.Context, competitionID, talentID, talentName, submissionID string, actor model.Actor) (types.Competition, error)
	UpdatePaymentStatus(ctx context.Context, competitionID, status string, actor model.Actor) (types.Competition, error)
	ArchiveCompetition(ctx context.Context, competitionID string, actor model.Actor) (types.Competition, error)
	RecentActivity(ctx context.Context, n int, actor model.Actor) ([]journal.Event, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	competitionsHandler *CompetitionsHandler
	activityHandler     *ActivityHandler
	statsHandler        *StatsHandler
	healthHandler       *HealthHandler
	actors              *ActorExtractor
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, actors *ActorExtractor, maxListLimit int) *Server {
	return &Server{
		competitionsHandler: NewCompetitionsHandler(deps, maxListLimit),
		activityHandler:     NewActivityHandler(deps),
		statsHandler:        NewStatsHandler(statsProvider),
		healthHandler:       NewHealthHandler(),
		actors:              actors,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	auth := s.actors.Middleware
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/activity", MetricsMiddleware(auth(s.activityHandler.HandleActivity), "activity"))
	mux.HandleFunc("/competitions", MetricsMiddleware(auth(s.competitionsHandler.Handle), "competitions"))
	mux.HandleFunc("/competitions/", MetricsMiddleware(auth(s.competitionsHandler.Handle), "competitions"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeEngineError translates engine error kinds to HTTP statuses.
func writeEngineError(w http.ResponseWriter, actor model.Actor, err error) {
	kind := model.ErrKind(err)
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, kind, err)
	case errors.Is(err, model.ErrAuthorization):
		if actor.ID == "" {
			writeError(w, http.StatusUnauthorized, kind, err)
			return
		}
		writeError(w, http.StatusForbidden, kind, err)
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, kind, err)
	case errors.Is(err, model.ErrDuplicateSubmission),
		errors.Is(err, model.ErrInvalidState),
		errors.Is(err, model.ErrConflict):
		writeError(w, http.StatusConflict, kind, err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
