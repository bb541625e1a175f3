package app

import (
	"context"
	"fmt"

	"github.com/example/tpc/internal/ports/primary"
	"github.com/example/tpc/internal/ports/secondary"
)

// recentThoughtCount is the fixed size of the context snapshot's
// recent-activity window.
const recentThoughtCount = 10

// ContextServiceImpl implements the ContextService interface.
type ContextServiceImpl struct {
	planRepo    secondary.PlanRepository
	thoughtRepo secondary.ThoughtRepository
}

// NewContextService creates a new ContextService with injected dependencies.
func NewContextService(planRepo secondary.PlanRepository, thoughtRepo secondary.ThoughtRepository) *ContextServiceImpl {
	return &ContextServiceImpl{planRepo: planRepo, thoughtRepo: thoughtRepo}
}

// GetContext returns incomplete plans plus the ten most recent
// thoughts (newest first), optionally narrowed by a search term.
func (s *ContextServiceImpl) GetContext(ctx context.Context, search string) (*primary.ContextResponse, error) {
	plans, err := s.planRepo.ListIncomplete(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomplete plans: %w", err)
	}

	thoughts, err := s.thoughtRepo.ListRecent(ctx, recentThoughtCount, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent thoughts: %w", err)
	}

	return &primary.ContextResponse{
		IncompletePlans: toPlans(plans),
		Last10Thoughts:  toThoughts(thoughts),
	}, nil
}
