// Package secondary defines the secondary ports (driven adapters) for the
// application: the interfaces through which it drives persistence.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by id-addressed lookups when no row matches.
// Services translate it into the API-level NotFound error.
var ErrNotFound = errors.New("record not found")

// ChangelogEntry is one append-only change line attached to a plan.
type ChangelogEntry struct {
	Timestamp string `json:"timestamp"`
	Change    string `json:"change"`
}

// PlanRecord represents a plan as stored in persistence. Changelog and
// Tags are JSON-encoded text columns; (de)serialization happens at the
// storage boundary.
type PlanRecord struct {
	ID             int64
	Title          string
	Description    string
	Status         string
	Changelog      []ChangelogEntry
	Timestamp      string // ISO creation time
	CreatedAt      int64  // epoch millis
	LastModifiedBy string // "agent" or "human"
	LastModifiedAt int64  // epoch millis
	NeedsReview    bool
	Tags           []string
}

// ThoughtRecord represents a thought as stored in persistence.
// PlanID is a weak reference: it may point at a nonexistent plan.
type ThoughtRecord struct {
	ID        int64
	Timestamp string
	Content   string
	PlanID    *int64
	Tags      []string
}

// TagMode selects union vs. intersection semantics for tag filters.
type TagMode string

const (
	TagModeAny TagMode = "any"
	TagModeAll TagMode = "all"
)

// TagFilter restricts rows to those carrying the given tags.
type TagFilter struct {
	Mode TagMode
	Tags []string
}

// PlanFilters contains filter options for querying plans. Nil/empty
// fields mean "no filter"; values are validated before they get here.
type PlanFilters struct {
	Status      string
	NeedsReview *bool
	Since       *time.Time
	Tags        *TagFilter
}

// ThoughtFilters contains filter options for querying thoughts.
type ThoughtFilters struct {
	Since *time.Time
	Limit *int
	Tags  *TagFilter
}

// SearchQuery describes one relevance-scored table search.
type SearchQuery struct {
	Term  string
	Tags  *TagFilter
	Limit int
}

// SearchHit is one scored row from either table.
type SearchHit struct {
	Type      string // "plan" or "thought"
	ID        int64
	Title     string // empty for thoughts
	Content   string // plan description or thought content
	Tags      []string
	Timestamp string
	Relevance int
}

// PlanRepository defines the secondary port for plan persistence.
type PlanRepository interface {
	// Create persists a new plan and fills in its generated ID.
	Create(ctx context.Context, plan *PlanRecord) error

	// GetByID retrieves a plan by its ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (*PlanRecord, error)

	// Update rewrites all mutable columns of an existing plan.
	// Returns ErrNotFound if absent.
	Update(ctx context.Context, plan *PlanRecord) error

	// List retrieves plans matching the given filters, ordered by
	// created_at ascending.
	List(ctx context.Context, filters PlanFilters) ([]*PlanRecord, error)

	// ListIncomplete retrieves plans whose status is not completed,
	// optionally narrowed by a substring search over title,
	// description, and tags.
	ListIncomplete(ctx context.Context, search string) ([]*PlanRecord, error)
}

// ThoughtRepository defines the secondary port for thought persistence.
type ThoughtRepository interface {
	// Create persists a new thought and fills in its generated ID.
	Create(ctx context.Context, thought *ThoughtRecord) error

	// List retrieves thoughts matching the given filters, ordered by
	// timestamp ascending.
	List(ctx context.Context, filters ThoughtFilters) ([]*ThoughtRecord, error)

	// ListByPlan retrieves the thoughts linked to a plan, ordered by
	// timestamp ascending. An unknown plan yields an empty slice.
	ListByPlan(ctx context.Context, planID int64) ([]*ThoughtRecord, error)

	// ListRecent retrieves the most recent thoughts, newest first,
	// optionally narrowed by a substring search over content and tags.
	ListRecent(ctx context.Context, limit int, search string) ([]*ThoughtRecord, error)
}

// SearchRepository defines the secondary port for relevance-scored search.
type SearchRepository interface {
	// SearchPlans scores plans by weighted substring matches
	// (title 3, tags 3, description 2), ordered by relevance then
	// recency, capped at q.Limit.
	SearchPlans(ctx context.Context, q SearchQuery) ([]*SearchHit, error)

	// SearchThoughts scores thoughts by weighted substring matches
	// (content 3, tags 3), ordered by relevance then recency,
	// capped at q.Limit.
	SearchThoughts(ctx context.Context, q SearchQuery) ([]*SearchHit, error)
}
