// Package primary defines the primary ports (driving adapters) for the
// application: the service interfaces the HTTP layer calls, plus their
// request and response types. Request types double as JSON bodies.
package primary

import "context"

// ChangelogEntry is one append-only change line on a plan.
type ChangelogEntry struct {
	Timestamp string `json:"timestamp"`
	Change    string `json:"change"`
}

// Plan is the full API representation of a plan record.
type Plan struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Status         string           `json:"status"`
	Changelog      []ChangelogEntry `json:"changelog"`
	Timestamp      string           `json:"timestamp"`
	CreatedAt      int64            `json:"created_at"`
	LastModifiedBy string           `json:"last_modified_by"`
	LastModifiedAt int64            `json:"last_modified_at"`
	NeedsReview    int              `json:"needs_review"`
	Tags           []string         `json:"tags"`
}

// PlanSummary is the trimmed shape returned by plan creation.
type PlanSummary struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Timestamp   string   `json:"timestamp"`
	Tags        []string `json:"tags"`
}

// Thought is the full API representation of a thought record.
type Thought struct {
	ID        int64    `json:"id"`
	Timestamp string   `json:"timestamp"`
	Content   string   `json:"content"`
	PlanID    *int64   `json:"plan_id"`
	Tags      []string `json:"tags"`
}

// CreatePlanRequest is the body of POST /plans.
type CreatePlanRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ListPlansRequest carries the raw query parameters of GET /plans.
// Invalid values are silently ignored per the leniency policy.
type ListPlansRequest struct {
	Status      string
	NeedsReview string
	Since       string
	Tags        string
}

// UpdatePlanRequest is the body of PATCH /plans/:id. Pointer fields
// distinguish "absent" from "zero value".
type UpdatePlanRequest struct {
	Status      *string `json:"status"`
	NeedsReview *bool   `json:"needs_review"`
}

// UpdatePlanResponse reports the PATCH outcome. StatusOnly mirrors the
// historical response-shape asymmetry: when the caller did not supply
// needs_review, only {status} is returned.
type UpdatePlanResponse struct {
	Plan       *Plan
	StatusOnly bool
}

// EditPlanRequest is the body of PUT /plans/:id. Every field is
// optional, but a provided field must be non-empty.
type EditPlanRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

// AppendChangelogRequest is the body of PATCH /plans/:id/changelog.
type AppendChangelogRequest struct {
	Change string `json:"change"`
}

// MutateTagsRequest is the body of PATCH /plans/:id/tags.
type MutateTagsRequest struct {
	Add    []string `json:"add"`
	Remove []string `json:"remove"`
}

// MutateTagsResponse is the partial plan returned by the tags endpoint.
type MutateTagsResponse struct {
	ID   int64    `json:"id"`
	Tags []string `json:"tags"`
}

// CreateThoughtRequest is the body of POST /thoughts.
type CreateThoughtRequest struct {
	Content string   `json:"content"`
	PlanID  *int64   `json:"plan_id"`
	Tags    []string `json:"tags"`
}

// ListThoughtsRequest carries the raw query parameters of GET /thoughts.
type ListThoughtsRequest struct {
	Since string
	Limit string
	Tags  string
}

// SearchRequest carries the raw query parameters of GET /search.
type SearchRequest struct {
	Query string
	Type  string
	Tags  string
	Limit string
}

// SearchResult is one entry of the merged search response.
type SearchResult struct {
	Type      string   `json:"type"`
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Timestamp string   `json:"timestamp"`
}

// ContextResponse is the body of GET /context.
type ContextResponse struct {
	IncompletePlans []*Plan    `json:"incompletePlans"`
	Last10Thoughts  []*Thought `json:"last10Thoughts"`
}

// PlanService defines the primary port for plan operations.
type PlanService interface {
	// CreatePlan validates and inserts a new plan.
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*PlanSummary, error)

	// GetPlan retrieves a single plan.
	GetPlan(ctx context.Context, id int64) (*Plan, error)

	// ListPlans retrieves plans matching the lenient filters.
	ListPlans(ctx context.Context, req ListPlansRequest) ([]*Plan, error)

	// UpdatePlan applies an agent-attributed status/needs_review patch.
	UpdatePlan(ctx context.Context, id int64, req UpdatePlanRequest) (*UpdatePlanResponse, error)

	// EditPlan applies a human-attributed replace-style edit.
	EditPlan(ctx context.Context, id int64, req EditPlanRequest) (*Plan, error)

	// AppendChangelog appends one change entry to a plan's changelog.
	AppendChangelog(ctx context.Context, id int64, req AppendChangelogRequest) (*Plan, error)

	// MutateTags adds and/or removes tags on a plan.
	MutateTags(ctx context.Context, id int64, req MutateTagsRequest) (*MutateTagsResponse, error)
}

// ThoughtService defines the primary port for thought operations.
type ThoughtService interface {
	// CreateThought validates and inserts a new thought.
	CreateThought(ctx context.Context, req CreateThoughtRequest) (*Thought, error)

	// ListThoughts retrieves thoughts matching the lenient filters.
	ListThoughts(ctx context.Context, req ListThoughtsRequest) ([]*Thought, error)

	// ListThoughtsForPlan retrieves the thoughts linked to a plan.
	// An unknown plan yields an empty list, not an error.
	ListThoughtsForPlan(ctx context.Context, planID int64) ([]*Thought, error)
}

// SearchService defines the primary port for cross-table search.
type SearchService interface {
	// Search runs the relevance-scored query across plans and
	// thoughts and merges the results by recency.
	Search(ctx context.Context, req SearchRequest) ([]*SearchResult, error)
}

// ContextService defines the primary port for the activity snapshot.
type ContextService interface {
	// GetContext returns incomplete plans and the ten most recent
	// thoughts, optionally narrowed by a search term.
	GetContext(ctx context.Context, search string) (*ContextResponse, error)
}
