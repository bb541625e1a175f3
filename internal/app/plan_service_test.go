package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/tpc/internal/ports/primary"
	"github.com/example/tpc/internal/ports/secondary"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func seedPlanRecord(repo *mockPlanRepository, title string) *secondary.PlanRecord {
	record := &secondary.PlanRecord{
		Title:          title,
		Description:    "description of " + title,
		Status:         StatusProposed,
		Changelog:      []secondary.ChangelogEntry{},
		Timestamp:      "2026-08-25T10:00:00Z",
		CreatedAt:      1756116000000,
		LastModifiedBy: ModifiedByAgent,
		LastModifiedAt: 1756116000000,
		Tags:           []string{},
	}
	_ = repo.Create(context.Background(), record)
	return record
}

func TestCreatePlan(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)

	summary, err := service.CreatePlan(context.Background(), primary.CreatePlanRequest{
		Title:       "Ship the thing",
		Description: "All of it",
		Tags:        []string{"API", " api ", "Infra"},
	})
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	if summary.ID == 0 {
		t.Error("expected a generated id")
	}
	if summary.Status != StatusProposed {
		t.Errorf("expected status proposed, got %q", summary.Status)
	}
	if len(summary.Tags) != 2 || summary.Tags[0] != "api" || summary.Tags[1] != "infra" {
		t.Errorf("expected normalized tags [api infra], got %v", summary.Tags)
	}

	stored := repo.plans[summary.ID]
	if stored.LastModifiedBy != ModifiedByAgent {
		t.Errorf("expected agent attribution, got %q", stored.LastModifiedBy)
	}
	if stored.NeedsReview {
		t.Error("expected needs_review false on creation")
	}
	if len(stored.Changelog) != 0 {
		t.Errorf("expected empty changelog, got %v", stored.Changelog)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	service := NewPlanService(newMockPlanRepository())
	ctx := context.Background()

	tests := []struct {
		name    string
		req     primary.CreatePlanRequest
		wantMsg string
	}{
		{"missing title", primary.CreatePlanRequest{Description: "d"}, "Title is required"},
		{"blank title", primary.CreatePlanRequest{Title: "   ", Description: "d"}, "Title is required"},
		{"missing description", primary.CreatePlanRequest{Title: "t"}, "Description is required"},
		{"too many tags", primary.CreatePlanRequest{
			Title: "t", Description: "d",
			Tags: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
		}, "A maximum of 10 tags is allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePlan(ctx, tt.req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Message != tt.wantMsg {
				t.Errorf("expected message %q, got %q", tt.wantMsg, ve.Message)
			}
		})
	}
}

func TestGetPlanNotFound(t *testing.T) {
	service := NewPlanService(newMockPlanRepository())

	_, err := service.GetPlan(context.Background(), 42)
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nfe.Message != "Plan not found" {
		t.Errorf("expected message 'Plan not found', got %q", nfe.Message)
	}
}

func TestListPlansLenientFilters(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	ctx := context.Background()

	seedPlanRecord(repo, "one")
	record := seedPlanRecord(repo, "two")
	record.Status = StatusCompleted
	_ = repo.Update(ctx, record)

	t.Run("valid status filters", func(t *testing.T) {
		plans, err := service.ListPlans(ctx, primary.ListPlansRequest{Status: StatusCompleted})
		if err != nil {
			t.Fatalf("ListPlans failed: %v", err)
		}
		if len(plans) != 1 || plans[0].Title != "two" {
			t.Errorf("expected only the completed plan, got %d", len(plans))
		}
	})

	t.Run("invalid status is ignored", func(t *testing.T) {
		plans, err := service.ListPlans(ctx, primary.ListPlansRequest{Status: "bogus"})
		if err != nil {
			t.Fatalf("ListPlans failed: %v", err)
		}
		if len(plans) != 2 {
			t.Errorf("expected all plans when status is invalid, got %d", len(plans))
		}
	})

	t.Run("invalid since is ignored", func(t *testing.T) {
		plans, err := service.ListPlans(ctx, primary.ListPlansRequest{Since: "not-a-date"})
		if err != nil {
			t.Fatalf("ListPlans failed: %v", err)
		}
		if len(plans) != 2 {
			t.Errorf("expected all plans when since is invalid, got %d", len(plans))
		}
	})

	t.Run("invalid needs_review is ignored", func(t *testing.T) {
		plans, err := service.ListPlans(ctx, primary.ListPlansRequest{NeedsReview: "maybe"})
		if err != nil {
			t.Fatalf("ListPlans failed: %v", err)
		}
		if len(plans) != 2 {
			t.Errorf("expected all plans when needs_review is invalid, got %d", len(plans))
		}
	})
}

func TestUpdatePlanStatusOnly(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	ctx := context.Background()

	record := seedPlanRecord(repo, "patchme")

	resp, err := service.UpdatePlan(ctx, record.ID, primary.UpdatePlanRequest{
		Status: strPtr(StatusInProgress),
	})
	if err != nil {
		t.Fatalf("UpdatePlan failed: %v", err)
	}
	if !resp.StatusOnly {
		t.Error("expected StatusOnly response when needs_review absent")
	}
	if resp.Plan.Status != StatusInProgress {
		t.Errorf("expected status in_progress, got %q", resp.Plan.Status)
	}

	stored := repo.plans[record.ID]
	if stored.NeedsReview {
		t.Error("expected needs_review reset to false on agent patch")
	}
	if stored.LastModifiedBy != ModifiedByAgent {
		t.Errorf("expected agent attribution, got %q", stored.LastModifiedBy)
	}
}

func TestUpdatePlanExplicitNeedsReview(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)

	record := seedPlanRecord(repo, "patchme")

	resp, err := service.UpdatePlan(context.Background(), record.ID, primary.UpdatePlanRequest{
		NeedsReview: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("UpdatePlan failed: %v", err)
	}
	if resp.StatusOnly {
		t.Error("expected full-plan response when needs_review supplied")
	}
	if resp.Plan.NeedsReview != 1 {
		t.Errorf("expected needs_review 1, got %d", resp.Plan.NeedsReview)
	}
}

func TestUpdatePlanInvalidStatus(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	record := seedPlanRecord(repo, "patchme")

	_, err := service.UpdatePlan(context.Background(), record.ID, primary.UpdatePlanRequest{
		Status: strPtr("done"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != "Invalid status value" {
		t.Errorf("expected 'Invalid status value', got %v", err)
	}
}

func TestEditPlan(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	ctx := context.Background()

	record := seedPlanRecord(repo, "editme")

	plan, err := service.EditPlan(ctx, record.ID, primary.EditPlanRequest{
		Title: strPtr("renamed"),
	})
	if err != nil {
		t.Fatalf("EditPlan failed: %v", err)
	}
	if plan.Title != "renamed" {
		t.Errorf("expected title renamed, got %q", plan.Title)
	}
	if plan.Description != record.Description {
		t.Errorf("expected description unchanged, got %q", plan.Description)
	}
	if plan.NeedsReview != 1 {
		t.Error("expected human edit to set needs_review")
	}
	if plan.LastModifiedBy != ModifiedByHuman {
		t.Errorf("expected human attribution, got %q", plan.LastModifiedBy)
	}
}

func TestEditPlanEmptyProvidedFields(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	record := seedPlanRecord(repo, "editme")
	ctx := context.Background()

	_, err := service.EditPlan(ctx, record.ID, primary.EditPlanRequest{Title: strPtr("  ")})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != "Title cannot be empty if provided" {
		t.Errorf("expected 'Title cannot be empty if provided', got %v", err)
	}

	_, err = service.EditPlan(ctx, record.ID, primary.EditPlanRequest{Description: strPtr("")})
	if !errors.As(err, &ve) || ve.Message != "Description cannot be empty if provided" {
		t.Errorf("expected 'Description cannot be empty if provided', got %v", err)
	}
}

func TestEditPlanReplacesTags(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	ctx := context.Background()

	record := seedPlanRecord(repo, "editme")
	record.Tags = []string{"old", "stale"}
	_ = repo.Update(ctx, record)

	newTags := []string{"Fresh"}
	plan, err := service.EditPlan(ctx, record.ID, primary.EditPlanRequest{Tags: &newTags})
	if err != nil {
		t.Fatalf("EditPlan failed: %v", err)
	}
	if len(plan.Tags) != 1 || plan.Tags[0] != "fresh" {
		t.Errorf("expected tags replaced with [fresh], got %v", plan.Tags)
	}
}

func TestAppendChangelog(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	ctx := context.Background()

	record := seedPlanRecord(repo, "logme")
	record.NeedsReview = true
	_ = repo.Update(ctx, record)

	plan, err := service.AppendChangelog(ctx, record.ID, primary.AppendChangelogRequest{
		Change: "did a thing",
	})
	if err != nil {
		t.Fatalf("AppendChangelog failed: %v", err)
	}
	if len(plan.Changelog) != 1 || plan.Changelog[0].Change != "did a thing" {
		t.Errorf("expected one changelog entry, got %v", plan.Changelog)
	}
	if plan.Changelog[0].Timestamp == "" {
		t.Error("expected a server-side timestamp on the entry")
	}
	if plan.NeedsReview != 0 {
		t.Error("expected agent append to reset needs_review")
	}

	_, err = service.AppendChangelog(ctx, record.ID, primary.AppendChangelogRequest{Change: " "})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != "Change cannot be empty" {
		t.Errorf("expected 'Change cannot be empty', got %v", err)
	}
}

func TestMutateTags(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	ctx := context.Background()

	record := seedPlanRecord(repo, "tagme")
	record.Tags = []string{"keep", "drop"}
	_ = repo.Update(ctx, record)

	resp, err := service.MutateTags(ctx, record.ID, primary.MutateTagsRequest{
		Add:    []string{"New", "keep"},
		Remove: []string{"Drop"},
	})
	if err != nil {
		t.Fatalf("MutateTags failed: %v", err)
	}
	if strings.Join(resp.Tags, ",") != "keep,new" {
		t.Errorf("expected tags [keep new], got %v", resp.Tags)
	}
}

func TestMutateTagsValidation(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	ctx := context.Background()
	record := seedPlanRecord(repo, "tagme")

	_, err := service.MutateTags(ctx, record.ID, primary.MutateTagsRequest{})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != "Must provide tags to add or remove" {
		t.Errorf("expected 'Must provide tags to add or remove', got %v", err)
	}
}

func TestMutateTagsCapAppliesAfterRemoval(t *testing.T) {
	repo := newMockPlanRepository()
	service := NewPlanService(repo)
	ctx := context.Background()

	record := seedPlanRecord(repo, "fullplan")
	record.Tags = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	_ = repo.Update(ctx, record)

	// Swapping one tag on a full plan stays within the cap.
	resp, err := service.MutateTags(ctx, record.ID, primary.MutateTagsRequest{
		Add:    []string{"k"},
		Remove: []string{"a"},
	})
	if err != nil {
		t.Fatalf("MutateTags swap failed: %v", err)
	}
	if len(resp.Tags) != 10 {
		t.Errorf("expected 10 tags after swap, got %d", len(resp.Tags))
	}

	// Adding without removing pushes past the cap.
	_, err = service.MutateTags(ctx, record.ID, primary.MutateTagsRequest{Add: []string{"l"}})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Message != "A maximum of 10 tags is allowed" {
		t.Errorf("expected tag cap error, got %v", err)
	}
}

func TestPlanServiceRepositoryErrors(t *testing.T) {
	repo := newMockPlanRepository()
	repo.getErr = errors.New("disk on fire")
	service := NewPlanService(repo)

	_, err := service.GetPlan(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		t.Error("infrastructure error must not be reported as not found")
	}
}
