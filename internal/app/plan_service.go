package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/tpc/internal/ports/primary"
	"github.com/example/tpc/internal/ports/secondary"
)

// PlanServiceImpl implements the PlanService interface.
type PlanServiceImpl struct {
	planRepo secondary.PlanRepository
}

// NewPlanService creates a new PlanService with injected dependencies.
func NewPlanService(planRepo secondary.PlanRepository) *PlanServiceImpl {
	return &PlanServiceImpl{planRepo: planRepo}
}

// CreatePlan validates and inserts a new plan.
func (s *PlanServiceImpl) CreatePlan(ctx context.Context, req primary.CreatePlanRequest) (*primary.PlanSummary, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, validationErr("Title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, validationErr("Description is required")
	}

	tags, err := normalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &secondary.PlanRecord{
		Title:          req.Title,
		Description:    req.Description,
		Status:         StatusProposed,
		Changelog:      []secondary.ChangelogEntry{},
		Timestamp:      now.Format(time.RFC3339),
		CreatedAt:      now.UnixMilli(),
		LastModifiedBy: ModifiedByAgent,
		LastModifiedAt: now.UnixMilli(),
		NeedsReview:    false,
		Tags:           tags,
	}

	if err := s.planRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return &primary.PlanSummary{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Status:      record.Status,
		Timestamp:   record.Timestamp,
		Tags:        record.Tags,
	}, nil
}

// GetPlan retrieves a single plan.
func (s *PlanServiceImpl) GetPlan(ctx context.Context, id int64) (*primary.Plan, error) {
	record, err := s.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPlan(record), nil
}

// ListPlans retrieves plans matching the lenient filters.
func (s *PlanServiceImpl) ListPlans(ctx context.Context, req primary.ListPlansRequest) ([]*primary.Plan, error) {
	filters := secondary.PlanFilters{
		Status:      parseStatusFilter(req.Status),
		NeedsReview: parseBoolFilter(req.NeedsReview),
		Since:       parseSinceFilter(req.Since),
		Tags:        parseTagFilter(req.Tags),
	}

	records, err := s.planRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return toPlans(records), nil
}

// UpdatePlan applies an agent-attributed status/needs_review patch.
// needs_review resets to 0 unless the caller supplied it explicitly.
func (s *PlanServiceImpl) UpdatePlan(ctx context.Context, id int64, req primary.UpdatePlanRequest) (*primary.UpdatePlanResponse, error) {
	if req.Status != nil && !validStatus(*req.Status) {
		return nil, validationErr("Invalid status value")
	}

	record, err := s.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		record.Status = *req.Status
	}

	record.NeedsReview = req.NeedsReview != nil && *req.NeedsReview
	stampAgent(record)

	if err := s.planRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	// Response shape depends on whether needs_review was explicit:
	// full plan when it was, bare {status} when it was not. Preserved
	// for behavioral parity with the original API.
	return &primary.UpdatePlanResponse{
		Plan:       toPlan(record),
		StatusOnly: req.NeedsReview == nil,
	}, nil
}

// EditPlan applies a human-attributed replace-style edit. Provided
// fields must be non-empty; the edit always forces needs_review=1.
func (s *PlanServiceImpl) EditPlan(ctx context.Context, id int64, req primary.EditPlanRequest) (*primary.Plan, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, validationErr("Title cannot be empty if provided")
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, validationErr("Description cannot be empty if provided")
	}

	var tags []string
	if req.Tags != nil {
		normalized, err := normalizeTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		tags = normalized
	}

	record, err := s.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		record.Title = *req.Title
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.Tags != nil {
		record.Tags = tags
	}

	record.NeedsReview = true
	record.LastModifiedBy = ModifiedByHuman
	record.LastModifiedAt = time.Now().UTC().UnixMilli()

	if err := s.planRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to edit plan: %w", err)
	}

	return toPlan(record), nil
}

// AppendChangelog appends one change entry to a plan's changelog.
// The append is a read-modify-write on the JSON column, guarded only
// by the single shared connection.
func (s *PlanServiceImpl) AppendChangelog(ctx context.Context, id int64, req primary.AppendChangelogRequest) (*primary.Plan, error) {
	if strings.TrimSpace(req.Change) == "" {
		return nil, validationErr("Change cannot be empty")
	}

	record, err := s.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	record.Changelog = append(record.Changelog, secondary.ChangelogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Change:    req.Change,
	})

	record.NeedsReview = false
	stampAgent(record)

	if err := s.planRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to append changelog: %w", err)
	}

	return toPlan(record), nil
}

// MutateTags adds and/or removes tags on a plan.
func (s *PlanServiceImpl) MutateTags(ctx context.Context, id int64, req primary.MutateTagsRequest) (*primary.MutateTagsResponse, error) {
	if len(req.Add) == 0 && len(req.Remove) == 0 {
		return nil, validationErr("Must provide tags to add or remove")
	}

	record, err := s.getPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	drop := map[string]bool{}
	for _, tag := range req.Remove {
		drop[strings.ToLower(strings.TrimSpace(tag))] = true
	}

	// The cap applies to the set after both operations, so a full plan
	// can still swap tags in one request.
	merged := append(append([]string{}, record.Tags...), req.Add...)
	tags := []string{}
	seen := map[string]bool{}
	for _, tag := range merged {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] || drop[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	if len(tags) > maxTags {
		return nil, validationErr("A maximum of 10 tags is allowed")
	}

	record.Tags = tags
	record.NeedsReview = false
	stampAgent(record)

	if err := s.planRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update tags: %w", err)
	}

	return &primary.MutateTagsResponse{ID: record.ID, Tags: record.Tags}, nil
}

// getPlan fetches a record, translating the repository's not-found
// sentinel into the API-level NotFound error.
func (s *PlanServiceImpl) getPlan(ctx context.Context, id int64) (*secondary.PlanRecord, error) {
	record, err := s.planRepo.GetByID(ctx, id)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, notFoundErr("Plan not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return record, nil
}

func validStatus(status string) bool {
	switch status {
	case StatusProposed, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

func stampAgent(record *secondary.PlanRecord) {
	record.LastModifiedBy = ModifiedByAgent
	record.LastModifiedAt = time.Now().UTC().UnixMilli()
}
