package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/tpc/internal/ports/primary"
	"github.com/example/tpc/internal/ports/secondary"
)

// ThoughtServiceImpl implements the ThoughtService interface.
type ThoughtServiceImpl struct {
	thoughtRepo secondary.ThoughtRepository
}

// NewThoughtService creates a new ThoughtService with injected dependencies.
func NewThoughtService(thoughtRepo secondary.ThoughtRepository) *ThoughtServiceImpl {
	return &ThoughtServiceImpl{thoughtRepo: thoughtRepo}
}

// CreateThought validates and inserts a new thought. plan_id is a weak
// reference: pointing at a nonexistent plan is permitted.
func (s *ThoughtServiceImpl) CreateThought(ctx context.Context, req primary.CreateThoughtRequest) (*primary.Thought, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, validationErr("Content is required")
	}

	tags, err := normalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	record := &secondary.ThoughtRecord{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Content:   req.Content,
		PlanID:    req.PlanID,
		Tags:      tags,
	}

	if err := s.thoughtRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create thought: %w", err)
	}

	return toThought(record), nil
}

// ListThoughts retrieves thoughts matching the lenient filters.
// A limit of zero or less yields an empty list without querying.
func (s *ThoughtServiceImpl) ListThoughts(ctx context.Context, req primary.ListThoughtsRequest) ([]*primary.Thought, error) {
	limit := parseLimitFilter(req.Limit)
	if limit != nil && *limit <= 0 {
		return []*primary.Thought{}, nil
	}

	filters := secondary.ThoughtFilters{
		Since: parseSinceFilter(req.Since),
		Limit: limit,
		Tags:  parseTagFilter(req.Tags),
	}

	records, err := s.thoughtRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}
	return toThoughts(records), nil
}

// ListThoughtsForPlan retrieves the thoughts linked to a plan. An
// unknown plan yields 200 [] rather than 404; this asymmetry with
// GET /plans/:id is preserved deliberately.
func (s *ThoughtServiceImpl) ListThoughtsForPlan(ctx context.Context, planID int64) ([]*primary.Thought, error) {
	records, err := s.thoughtRepo.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts for plan: %w", err)
	}
	return toThoughts(records), nil
}
