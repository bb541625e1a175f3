package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpc/internal/ports/secondary"
)

const planColumns = `id, title, description, status, changelog, timestamp,
	created_at, last_modified_by, last_modified_at, needs_review, tags`

// PlanRepository implements secondary.PlanRepository with SQLite.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new SQLite plan repository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create persists a new plan and fills in its generated ID.
func (r *PlanRepository) Create(ctx context.Context, plan *secondary.PlanRecord) error {
	changelogJSON, err := encodeChangelog(plan.Changelog)
	if err != nil {
		return err
	}
	tagsJSON, err := encodeTags(plan.Tags)
	if err != nil {
		return err
	}

	needsReview := 0
	if plan.NeedsReview {
		needsReview = 1
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (title, description, status, changelog, timestamp, created_at, last_modified_by, last_modified_at, needs_review, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.Title, plan.Description, plan.Status, changelogJSON, plan.Timestamp,
		plan.CreatedAt, plan.LastModifiedBy, plan.LastModifiedAt, needsReview, tagsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read plan id: %w", err)
	}
	plan.ID = id

	return nil
}

// GetByID retrieves a plan by its ID.
func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*secondary.PlanRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+planColumns+" FROM plans WHERE id = ?", id)

	record, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan %d: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return record, nil
}

// Update rewrites all mutable columns of an existing plan.
func (r *PlanRepository) Update(ctx context.Context, plan *secondary.PlanRecord) error {
	changelogJSON, err := encodeChangelog(plan.Changelog)
	if err != nil {
		return err
	}
	tagsJSON, err := encodeTags(plan.Tags)
	if err != nil {
		return err
	}

	needsReview := 0
	if plan.NeedsReview {
		needsReview = 1
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE plans SET title = ?, description = ?, status = ?, changelog = ?,
			last_modified_by = ?, last_modified_at = ?, needs_review = ?, tags = ?
		WHERE id = ?`,
		plan.Title, plan.Description, plan.Status, changelogJSON,
		plan.LastModifiedBy, plan.LastModifiedAt, needsReview, tagsJSON, plan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan %d: %w", plan.ID, secondary.ErrNotFound)
	}

	return nil
}

// List retrieves plans matching the given filters, ordered by
// created_at ascending.
func (r *PlanRepository) List(ctx context.Context, filters secondary.PlanFilters) ([]*secondary.PlanRecord, error) {
	query := "SELECT " + planColumns + " FROM plans WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	if filters.NeedsReview != nil {
		needsReview := 0
		if *filters.NeedsReview {
			needsReview = 1
		}
		query += " AND needs_review = ?"
		args = append(args, needsReview)
	}

	if filters.Since != nil {
		query += " AND created_at >= ?"
		args = append(args, filters.Since.UnixMilli())
	}

	if pred, predArgs := tagPredicate("tags", filters.Tags); pred != "" {
		query += " AND " + pred
		args = append(args, predArgs...)
	}

	query += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	return collectPlans(rows)
}

// ListIncomplete retrieves plans whose status is not completed,
// optionally narrowed by a substring search.
func (r *PlanRepository) ListIncomplete(ctx context.Context, search string) ([]*secondary.PlanRecord, error) {
	query := "SELECT " + planColumns + " FROM plans WHERE status != 'completed'"
	args := []any{}

	if search != "" {
		query += " AND (title LIKE ? OR description LIKE ? OR tags LIKE ?)"
		pattern := likePattern(search)
		args = append(args, pattern, pattern, pattern)
	}

	query += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomplete plans: %w", err)
	}
	defer rows.Close()

	return collectPlans(rows)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*secondary.PlanRecord, error) {
	var (
		changelogRaw   sql.NullString
		createdAt      sql.NullInt64
		lastModifiedBy sql.NullString
		lastModifiedAt sql.NullInt64
		needsReview    sql.NullInt64
		tagsRaw        sql.NullString
	)

	record := &secondary.PlanRecord{}
	err := row.Scan(&record.ID, &record.Title, &record.Description, &record.Status,
		&changelogRaw, &record.Timestamp, &createdAt, &lastModifiedBy,
		&lastModifiedAt, &needsReview, &tagsRaw)
	if err != nil {
		return nil, err
	}

	record.Changelog, err = decodeChangelog(changelogRaw)
	if err != nil {
		return nil, err
	}
	record.Tags, err = decodeTags(tagsRaw)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Int64
	record.LastModifiedBy = lastModifiedBy.String
	if record.LastModifiedBy == "" {
		record.LastModifiedBy = "agent"
	}
	record.LastModifiedAt = lastModifiedAt.Int64
	record.NeedsReview = needsReview.Int64 != 0

	return record, nil
}

func collectPlans(rows *sql.Rows) ([]*secondary.PlanRecord, error) {
	records := []*secondary.PlanRecord{}
	for rows.Next() {
		record, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plans: %w", err)
	}
	return records, nil
}
