package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/example/tpc/internal/ports/secondary"
)

// mockPlanRepository implements secondary.PlanRepository for testing.
type mockPlanRepository struct {
	plans  map[int64]*secondary.PlanRecord
	nextID int64

	createErr error
	getErr    error
	updateErr error
	listErr   error
}

func newMockPlanRepository() *mockPlanRepository {
	return &mockPlanRepository{plans: map[int64]*secondary.PlanRecord{}, nextID: 1}
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *secondary.PlanRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	plan.ID = m.nextID
	m.nextID++
	clone := *plan
	m.plans[plan.ID] = &clone
	return nil
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id int64) (*secondary.PlanRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	plan, ok := m.plans[id]
	if !ok {
		return nil, fmt.Errorf("plan %d: %w", id, secondary.ErrNotFound)
	}
	clone := *plan
	return &clone, nil
}

func (m *mockPlanRepository) Update(ctx context.Context, plan *secondary.PlanRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.plans[plan.ID]; !ok {
		return fmt.Errorf("plan %d: %w", plan.ID, secondary.ErrNotFound)
	}
	clone := *plan
	m.plans[plan.ID] = &clone
	return nil
}

func (m *mockPlanRepository) List(ctx context.Context, filters secondary.PlanFilters) ([]*secondary.PlanRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	records := []*secondary.PlanRecord{}
	for _, plan := range m.plans {
		if filters.Status != "" && plan.Status != filters.Status {
			continue
		}
		if filters.NeedsReview != nil && plan.NeedsReview != *filters.NeedsReview {
			continue
		}
		if filters.Since != nil && plan.CreatedAt < filters.Since.UnixMilli() {
			continue
		}
		if !matchTags(plan.Tags, filters.Tags) {
			continue
		}
		clone := *plan
		records = append(records, &clone)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt < records[j].CreatedAt })
	return records, nil
}

func (m *mockPlanRepository) ListIncomplete(ctx context.Context, search string) ([]*secondary.PlanRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	records := []*secondary.PlanRecord{}
	for _, plan := range m.plans {
		if plan.Status == StatusCompleted {
			continue
		}
		if search != "" && !strings.Contains(plan.Title, search) &&
			!strings.Contains(plan.Description, search) &&
			!strings.Contains(strings.Join(plan.Tags, ","), search) {
			continue
		}
		clone := *plan
		records = append(records, &clone)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt < records[j].CreatedAt })
	return records, nil
}

// mockThoughtRepository implements secondary.ThoughtRepository for testing.
type mockThoughtRepository struct {
	thoughts []*secondary.ThoughtRecord
	nextID   int64

	createErr error
	listErr   error
}

func newMockThoughtRepository() *mockThoughtRepository {
	return &mockThoughtRepository{nextID: 1}
}

func (m *mockThoughtRepository) Create(ctx context.Context, thought *secondary.ThoughtRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	thought.ID = m.nextID
	m.nextID++
	clone := *thought
	m.thoughts = append(m.thoughts, &clone)
	return nil
}

func (m *mockThoughtRepository) List(ctx context.Context, filters secondary.ThoughtFilters) ([]*secondary.ThoughtRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	records := []*secondary.ThoughtRecord{}
	for _, thought := range m.thoughts {
		if filters.Since != nil && thought.Timestamp < filters.Since.UTC().Format("2006-01-02T15:04:05Z07:00") {
			continue
		}
		if !matchTags(thought.Tags, filters.Tags) {
			continue
		}
		clone := *thought
		records = append(records, &clone)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Timestamp < records[j].Timestamp })
	if filters.Limit != nil && len(records) > *filters.Limit {
		records = records[:*filters.Limit]
	}
	return records, nil
}

func (m *mockThoughtRepository) ListByPlan(ctx context.Context, planID int64) ([]*secondary.ThoughtRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	records := []*secondary.ThoughtRecord{}
	for _, thought := range m.thoughts {
		if thought.PlanID == nil || *thought.PlanID != planID {
			continue
		}
		clone := *thought
		records = append(records, &clone)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Timestamp < records[j].Timestamp })
	return records, nil
}

func (m *mockThoughtRepository) ListRecent(ctx context.Context, limit int, search string) ([]*secondary.ThoughtRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	records := []*secondary.ThoughtRecord{}
	for _, thought := range m.thoughts {
		if search != "" && !strings.Contains(thought.Content, search) &&
			!strings.Contains(strings.Join(thought.Tags, ","), search) {
			continue
		}
		clone := *thought
		records = append(records, &clone)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Timestamp > records[j].Timestamp })
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// mockSearchRepository implements secondary.SearchRepository for testing.
// Hits are canned per table.
type mockSearchRepository struct {
	planHits    []*secondary.SearchHit
	thoughtHits []*secondary.SearchHit

	planErr    error
	thoughtErr error

	lastQuery secondary.SearchQuery
}

func (m *mockSearchRepository) SearchPlans(ctx context.Context, q secondary.SearchQuery) ([]*secondary.SearchHit, error) {
	m.lastQuery = q
	if m.planErr != nil {
		return nil, m.planErr
	}
	return m.planHits, nil
}

func (m *mockSearchRepository) SearchThoughts(ctx context.Context, q secondary.SearchQuery) ([]*secondary.SearchHit, error) {
	m.lastQuery = q
	if m.thoughtErr != nil {
		return nil, m.thoughtErr
	}
	return m.thoughtHits, nil
}

func matchTags(tags []string, filter *secondary.TagFilter) bool {
	if filter == nil {
		return true
	}
	have := map[string]bool{}
	for _, tag := range tags {
		have[tag] = true
	}
	matched := 0
	for _, tag := range filter.Tags {
		if have[tag] {
			matched++
		}
	}
	if filter.Mode == secondary.TagModeAll {
		return matched == len(filter.Tags)
	}
	return matched > 0
}
