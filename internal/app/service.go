// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/ovation/internal/adapters/journal"
	repository "github.com/okian/ovation/internal/adapters/repository"
	"github.com/okian/ovation/internal/adapters/sweeper"
	"github.com/okian/ovation/internal/domain/award"
	"github.com/okian/ovation/internal/domain/entry"
	"github.com/okian/ovation/internal/domain/judging"
	"github.com/okian/ovation/internal/domain/model"
	"github.com/okian/ovation/internal/domain/types"
	"github.com/okian/ovation/pkg/logger"
	"github.com/okian/ovation/pkg/metrics"
)

// Service implements the competition lifecycle engine behind the HTTP API.
// All mutation funnels through the repository's per-competition critical
// sections; the service itself adds authorization, validation entry points,
// journaling and metrics.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	journal journal.Journal
	sweeper *sweeper.Sweeper

	// Configuration
	scoreBounds   judging.Bounds
	maxListLimit  int
	journalSize   int
	sweepInterval time.Duration
	now           func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScoreBounds sets the inclusive rating score range.
func WithScoreBounds(min, max int) Option {
	return func(s *Service) {
		if min < max {
			s.scoreBounds = judging.Bounds{Min: min, Max: max}
		}
	}
}

// WithMaxListLimit caps list query sizes.
func WithMaxListLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxListLimit = n
		}
	}
}

// WithJournalSize bounds the activity journal.
func WithJournalSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.journalSize = n
		}
	}
}

// WithSweepInterval sets the phase gauge recount interval.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sweepInterval = d
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		scoreBounds:   judging.DefaultBounds(),
		maxListLimit:  100,
		journalSize:   1024,
		sweepInterval: 15 * time.Second,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components and the background sweep.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.store = repository.NewMemStore(ctx)
	s.journal = journal.NewInMemoryJournal(journal.WithCapacity(s.journalSize))
	s.sweeper = sweeper.New(s.store,
		sweeper.WithInterval(s.sweepInterval),
		sweeper.WithClock(s.now),
		sweeper.WithLogger(s.logger.Named("sweeper")),
	)
	go s.sweeper.Run(ctx)

	s.started = true
	s.logger.Info(ctx, "competition engine started",
		logger.Int("scoreMin", s.scoreBounds.Min),
		logger.Int("scoreMax", s.scoreBounds.Max),
		logger.Int("journalSize", s.journalSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if s.sweeper != nil {
		if err := s.sweeper.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "sweeper shutdown timed out", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(ctx, "competition engine stopped")
}

// CreateCompetition validates the spec and stores a new competition.
// Admin only.
func (s *Service) CreateCompetition(ctx context.Context, spec model.CompetitionSpec, actor model.Actor) (types.Competition, error) {
	const op = "create_competition"
	if err := requireAdmin(actor); err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}
	if err := spec.Validate(); err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	now := s.now()
	c := &model.Competition{
		Title:       spec.Title,
		Description: spec.Description,
		Rules:       spec.Rules,
		Prize:       spec.Prize,
		Category:    spec.Category,
		StartDate:   spec.StartDate,
		EndDate:     spec.EndDate,
		Tasks:       spec.TaskList(),
	}
	created, err := s.store.Create(ctx, c, now)
	if err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	metrics.RecordCompetitionCreated()
	s.record(ctx, journal.KindCompetitionCreated, created.ID, actor.ID, created.Title)
	s.logger.Info(ctx, "competition created",
		logger.String("id", created.ID),
		logger.String("title", created.Title),
		logger.String("actor", actor.ID),
	)
	return types.FromCompetition(created), nil
}

// UpdateCompetition replaces the caller-editable fields. The id, the
// submission list, the winner and the payment status are owned by dedicated
// operations and cannot change through this path. Admin only.
func (s *Service) UpdateCompetition(ctx context.Context, id string, spec model.CompetitionSpec, actor model.Actor) (types.Competition, error) {
	const op = "update_competition"
	if err := requireAdmin(actor); err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}
	if err := spec.Validate(); err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	updated, err := s.store.Mutate(ctx, id, s.now(), func(c *model.Competition) error {
		c.Title = spec.Title
		c.Description = spec.Description
		c.Rules = spec.Rules
		c.Prize = spec.Prize
		c.Category = spec.Category
		c.StartDate = spec.StartDate
		c.EndDate = spec.EndDate
		c.Tasks = spec.TaskList()
		return nil
	})
	if err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	metrics.RecordCompetitionUpdated()
	s.record(ctx, journal.KindCompetitionUpdated, id, actor.ID, updated.Title)
	return types.FromCompetition(updated), nil
}

// DeleteCompetition removes a competition. Deletion is blocked while a
// declared winner's payment is still pending. Admin only.
func (s *Service) DeleteCompetition(ctx context.Context, id string, actor model.Actor) error {
	const op = "delete_competition"
	if err := requireAdmin(actor); err != nil {
		return s.fail(ctx, op, err)
	}
	if err := s.store.Delete(ctx, id, award.CheckDeletable); err != nil {
		return s.fail(ctx, op, err)
	}

	metrics.RecordCompetitionDeleted()
	s.record(ctx, journal.KindCompetitionDeleted, id, actor.ID, "")
	s.logger.Info(ctx, "competition deleted", logger.String("id", id), logger.String("actor", actor.ID))
	return nil
}

// GetCompetition returns a competition with its status resolved now.
func (s *Service) GetCompetition(ctx context.Context, id string) (types.Competition, error) {
	c, err := s.store.Get(ctx, id, s.now())
	if err != nil {
		return types.Competition{}, err
	}
	return types.FromCompetition(c), nil
}

// ListCompetitions returns competitions matching the filter, status
// resolved now.
func (s *Service) ListCompetitions(ctx context.Context, f types.ListFilter) ([]types.Competition, error) {
	const op = "list_competitions"
	if f.Status != "" && !validStatus(f.Status) {
		return nil, s.fail(ctx, op, fmt.Errorf("%w: unknown status %q", model.ErrValidation, f.Status))
	}
	limit := f.Limit
	if limit <= 0 || limit > s.maxListLimit {
		limit = s.maxListLimit
	}
	list := s.store.List(ctx, repository.Filter{
		Status:   model.Status(f.Status),
		Category: f.Category,
		Query:    f.Query,
		Sort:     repository.Sort(f.Sort),
		Asc:      f.Asc,
		Limit:    limit,
	}, s.now())

	out := make([]types.Competition, len(list))
	for i, c := range list {
		out[i] = types.FromCompetition(c)
	}
	return out, nil
}

// SubmitEntry accepts a talent's entry while the competition is open.
// One entry per talent; the check and the append are atomic.
func (s *Service) SubmitEntry(ctx context.Context, competitionID, talentID, talentName, kind, content string, actor model.Actor) (types.Submission, error) {
	const op = "submit_entry"
	if err := requireActor(actor); err != nil {
		return types.Submission{}, s.fail(ctx, op, err)
	}

	var created model.Submission
	_, err := s.store.Mutate(ctx, competitionID, s.now(), func(c *model.Competition) error {
		var err error
		created, err = entry.Attach(c, entry.Request{
			TalentID:   talentID,
			TalentName: talentName,
			Kind:       model.SubmissionKind(kind),
			Content:    content,
		}, s.now())
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateSubmission) {
			metrics.RecordSubmissionDuplicate()
		}
		return types.Submission{}, s.fail(ctx, op, err)
	}

	metrics.RecordSubmissionAccepted()
	s.record(ctx, journal.KindSubmissionAccepted, competitionID, actor.ID, talentID)
	return types.FromSubmission(created), nil
}

// RateSubmission records or replaces a judge's rating on a submission.
// Judges are admin actors.
func (s *Service) RateSubmission(ctx context.Context, competitionID, submissionID, judgeID string, score int, comment string, actor model.Actor) (types.Submission, error) {
	const op = "rate_submission"
	if err := requireAdmin(actor); err != nil {
		return types.Submission{}, s.fail(ctx, op, err)
	}

	var rated model.Submission
	_, err := s.store.Mutate(ctx, competitionID, s.now(), func(c *model.Competition) error {
		var err error
		rated, err = judging.Upsert(c, submissionID, judgeID, score, comment, s.scoreBounds, s.now())
		return err
	})
	if err != nil {
		return types.Submission{}, s.fail(ctx, op, err)
	}

	metrics.RecordRatingRecorded()
	s.record(ctx, journal.KindRatingRecorded, competitionID, actor.ID, submissionID)
	return types.FromSubmission(rated), nil
}

// DeclareWinner sets the one-shot winner, pins the competition closed and
// starts payment tracking. Admin only.
func (s *Service) DeclareWinner(ctx context.Context, competitionID, talentID, talentName, submissionID string, actor model.Actor) (types.Competition, error) {
	const op = "declare_winner"
	if err := requireAdmin(actor); err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	updated, err := s.store.Mutate(ctx, competitionID, s.now(), func(c *model.Competition) error {
		return award.Declare(c, talentID, talentName, submissionID, s.now())
	})
	if err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	metrics.RecordWinnerDeclared()
	s.record(ctx, journal.KindWinnerDeclared, competitionID, actor.ID, talentID)
	s.logger.Info(ctx, "winner declared",
		logger.String("competition", competitionID),
		logger.String("talent", talentID),
		logger.String("actor", actor.ID),
	)
	return types.FromCompetition(updated), nil
}

// UpdatePaymentStatus moves the payment field once a winner exists.
// Admin only.
func (s *Service) UpdatePaymentStatus(ctx context.Context, competitionID, status string, actor model.Actor) (types.Competition, error) {
	const op = "update_payment"
	if err := requireAdmin(actor); err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	updated, err := s.store.Mutate(ctx, competitionID, s.now(), func(c *model.Competition) error {
		return award.SetPayment(c, model.PaymentStatus(status))
	})
	if err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	metrics.RecordPaymentUpdate()
	s.record(ctx, journal.KindPaymentUpdated, competitionID, actor.ID, status)
	return types.FromCompetition(updated), nil
}

// ArchiveCompetition pins the competition to archived. Admin only.
func (s *Service) ArchiveCompetition(ctx context.Context, competitionID string, actor model.Actor) (types.Competition, error) {
	const op = "archive_competition"
	if err := requireAdmin(actor); err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	updated, err := s.store.Mutate(ctx, competitionID, s.now(), func(c *model.Competition) error {
		return award.Archive(c)
	})
	if err != nil {
		return types.Competition{}, s.fail(ctx, op, err)
	}

	metrics.RecordCompetitionArchived()
	s.record(ctx, journal.KindCompetitionArchived, competitionID, actor.ID, "")
	return types.FromCompetition(updated), nil
}

// RecentActivity returns the latest journal entries, newest first.
// Admin only.
func (s *Service) RecentActivity(ctx context.Context, n int, actor model.Actor) ([]journal.Event, error) {
	const op = "recent_activity"
	if err := requireAdmin(actor); err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return s.journal.Recent(ctx, n), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"scoreMin":     s.scoreBounds.Min,
		"scoreMax":     s.scoreBounds.Max,
		"maxListLimit": s.maxListLimit,
	}
	if s.started {
		stats["competitions"] = s.store.Count(ctx)
		stats["journalLength"] = s.journal.Len(ctx)
	}
	return stats
}

// record appends a journal entry. Journaling is best-effort and must never
// fail an operation.
func (s *Service) record(ctx context.Context, kind journal.Kind, competitionID, actorID, detail string) {
	if s.journal == nil {
		return
	}
	s.journal.Record(ctx, journal.Event{
		At:            s.now(),
		Kind:          kind,
		CompetitionID: competitionID,
		ActorID:       actorID,
		Detail:        detail,
	})
}

// fail counts and logs a failed operation before returning the error as-is.
func (s *Service) fail(ctx context.Context, op string, err error) error {
	metrics.RecordOperationError(op, model.ErrKind(err))
	s.logger.Debug(ctx, "operation rejected",
		logger.String("op", op),
		logger.Error(err),
	)
	return err
}

func requireActor(actor model.Actor) error {
	if strings.TrimSpace(actor.ID) == "" {
		return fmt.Errorf("%w: missing actor identity", model.ErrAuthorization)
	}
	return nil
}

func requireAdmin(actor model.Actor) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: %s requires admin role", model.ErrAuthorization, actor.ID)
	}
	return nil
}

func validStatus(s string) bool {
	switch model.Status(s) {
	case model.StatusUpcoming, model.StatusOpen, model.StatusJudging, model.StatusClosed, model.StatusArchived:
		return true
	}
	return false
}
