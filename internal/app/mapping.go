package app

import (
	"github.com/example/tpc/internal/ports/primary"
	"github.com/example/tpc/internal/ports/secondary"
)

// Status and attribution constants.
const (
	StatusProposed   = "proposed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"

	ModifiedByAgent = "agent"
	ModifiedByHuman = "human"
)

func toPlan(record *secondary.PlanRecord) *primary.Plan {
	changelog := make([]primary.ChangelogEntry, 0, len(record.Changelog))
	for _, entry := range record.Changelog {
		changelog = append(changelog, primary.ChangelogEntry{
			Timestamp: entry.Timestamp,
			Change:    entry.Change,
		})
	}

	needsReview := 0
	if record.NeedsReview {
		needsReview = 1
	}

	return &primary.Plan{
		ID:             record.ID,
		Title:          record.Title,
		Description:    record.Description,
		Status:         record.Status,
		Changelog:      changelog,
		Timestamp:      record.Timestamp,
		CreatedAt:      record.CreatedAt,
		LastModifiedBy: record.LastModifiedBy,
		LastModifiedAt: record.LastModifiedAt,
		NeedsReview:    needsReview,
		Tags:           record.Tags,
	}
}

func toPlans(records []*secondary.PlanRecord) []*primary.Plan {
	plans := make([]*primary.Plan, 0, len(records))
	for _, record := range records {
		plans = append(plans, toPlan(record))
	}
	return plans
}

func toThought(record *secondary.ThoughtRecord) *primary.Thought {
	return &primary.Thought{
		ID:        record.ID,
		Timestamp: record.Timestamp,
		Content:   record.Content,
		PlanID:    record.PlanID,
		Tags:      record.Tags,
	}
}

func toThoughts(records []*secondary.ThoughtRecord) []*primary.Thought {
	thoughts := make([]*primary.Thought, 0, len(records))
	for _, record := range records {
		thoughts = append(thoughts, toThought(record))
	}
	return thoughts
}
