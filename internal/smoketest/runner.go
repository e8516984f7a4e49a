package smoketest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/ovation/internal/domain/types"
	"github.com/okian/ovation/pkg/logger"
)

const (
	adminID = "smoke-admin"
	judgeA  = "smoke-judge-a"
	judgeB  = "smoke-judge-b"
	talent1 = "smoke-talent-1"
	talent2 = "smoke-talent-2"
)

// Run executes the complete lifecycle scenario against a live server.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("smoke")
	c := newClient(cfg)

	log.Info(ctx, "starting smoke run", logger.String("baseURL", cfg.BaseURL))

	if err := checkHealth(ctx, c); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	// A window that is open right now so submissions are accepted.
	now := time.Now().UTC()
	var comp types.Competition
	create := map[string]any{
		"title":       "Smoke Run " + now.Format(time.RFC3339),
		"description": "Throwaway competition created by the smoke tool.",
		"rules":       "One entry per talent.",
		"prize":       "Bragging rights",
		"category":    cfg.Category,
		"start_date":  now.Add(-time.Hour),
		"end_date":    now.Add(time.Hour),
	}
	if err := c.do(ctx, http.MethodPost, "/competitions", adminID, "admin", create, &comp, http.StatusCreated); err != nil {
		return fmt.Errorf("create competition: %w", err)
	}
	log.Info(ctx, "competition created", logger.String("id", comp.ID), logger.String("status", comp.Status))
	if comp.Status != "open" {
		return fmt.Errorf("expected fresh competition to be open, got %s", comp.Status)
	}

	// Two distinct talents succeed; the duplicate fails with 409.
	var sub1 types.Submission
	entry1 := map[string]any{"talent_id": talent1, "talent_name": "Talent One", "kind": "text", "content": "my piece"}
	if err := c.do(ctx, http.MethodPost, "/competitions/"+comp.ID+"/submissions", talent1, "participant", entry1, &sub1, http.StatusCreated); err != nil {
		return fmt.Errorf("first submission: %w", err)
	}
	if err := c.do(ctx, http.MethodPost, "/competitions/"+comp.ID+"/submissions", talent1, "participant", entry1, nil, http.StatusConflict); err != nil {
		return fmt.Errorf("duplicate submission should be rejected: %w", err)
	}
	entry2 := map[string]any{"talent_id": talent2, "talent_name": "Talent Two", "kind": "portfolioReference", "content": "portfolio-42"}
	if err := c.do(ctx, http.MethodPost, "/competitions/"+comp.ID+"/submissions", talent2, "participant", entry2, nil, http.StatusCreated); err != nil {
		return fmt.Errorf("second submission: %w", err)
	}
	log.Info(ctx, "submissions verified", logger.String("submission", sub1.ID))

	// Re-rating by the same judge replaces, never appends.
	ratePath := "/competitions/" + comp.ID + "/submissions/" + sub1.ID + "/ratings"
	var rated types.Submission
	if err := c.do(ctx, http.MethodPost, ratePath, judgeA, "admin", map[string]any{"judge_id": judgeA, "score": 4}, &rated, http.StatusOK); err != nil {
		return fmt.Errorf("first rating: %w", err)
	}
	if err := c.do(ctx, http.MethodPost, ratePath, judgeA, "admin", map[string]any{"judge_id": judgeA, "score": 5, "comment": "stronger than I thought"}, &rated, http.StatusOK); err != nil {
		return fmt.Errorf("re-rating: %w", err)
	}
	if err := c.do(ctx, http.MethodPost, ratePath, judgeB, "admin", map[string]any{"judge_id": judgeB, "score": 3}, &rated, http.StatusOK); err != nil {
		return fmt.Errorf("second judge rating: %w", err)
	}
	if len(rated.Ratings) != 2 {
		return fmt.Errorf("expected 2 ratings, got %d", len(rated.Ratings))
	}
	for _, r := range rated.Ratings {
		if r.JudgeID == judgeA && r.Score != 5 {
			return fmt.Errorf("expected judge A score 5 after re-rate, got %d", r.Score)
		}
	}
	log.Info(ctx, "rating upsert verified")

	// Winner is one-shot and pins the competition closed.
	winner := map[string]any{"talent_id": talent1, "talent_name": "Talent One", "submission_id": sub1.ID}
	if err := c.do(ctx, http.MethodPost, "/competitions/"+comp.ID+"/winner", adminID, "admin", winner, &comp, http.StatusOK); err != nil {
		return fmt.Errorf("declare winner: %w", err)
	}
	if comp.Status != "closed" || comp.PaymentStatus != "Pending" {
		return fmt.Errorf("expected closed/Pending after winner, got %s/%s", comp.Status, comp.PaymentStatus)
	}
	if err := c.do(ctx, http.MethodPost, "/competitions/"+comp.ID+"/winner", adminID, "admin", winner, nil, http.StatusConflict); err != nil {
		return fmt.Errorf("second winner declaration should be rejected: %w", err)
	}
	log.Info(ctx, "winner declaration verified")

	// Deletion is blocked while payment is pending, allowed once processed.
	if err := c.do(ctx, http.MethodDelete, "/competitions/"+comp.ID, adminID, "admin", nil, nil, http.StatusConflict); err != nil {
		return fmt.Errorf("delete should be blocked while payment pending: %w", err)
	}
	if err := c.do(ctx, http.MethodPut, "/competitions/"+comp.ID+"/payment", adminID, "admin", map[string]any{"status": "Processed"}, &comp, http.StatusOK); err != nil {
		return fmt.Errorf("payment update: %w", err)
	}
	if !cfg.KeepCompetition {
		if err := c.do(ctx, http.MethodDelete, "/competitions/"+comp.ID, adminID, "admin", nil, nil, http.StatusOK); err != nil {
			return fmt.Errorf("final delete: %w", err)
		}
	}

	log.Info(ctx, "smoke run passed")
	return nil
}

func checkHealth(ctx context.Context, c *client) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthz returned %d", resp.StatusCode)
	}
	return nil
}
