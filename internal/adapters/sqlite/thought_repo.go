package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/tpc/internal/ports/secondary"
)

const thoughtColumns = "id, timestamp, content, plan_id, tags"

// ThoughtRepository implements secondary.ThoughtRepository with SQLite.
type ThoughtRepository struct {
	db *sql.DB
}

// NewThoughtRepository creates a new SQLite thought repository.
func NewThoughtRepository(db *sql.DB) *ThoughtRepository {
	return &ThoughtRepository{db: db}
}

// Create persists a new thought and fills in its generated ID.
func (r *ThoughtRepository) Create(ctx context.Context, thought *secondary.ThoughtRecord) error {
	tagsJSON, err := encodeTags(thought.Tags)
	if err != nil {
		return err
	}

	var planID sql.NullInt64
	if thought.PlanID != nil {
		planID = sql.NullInt64{Int64: *thought.PlanID, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO thoughts (timestamp, content, plan_id, tags) VALUES (?, ?, ?, ?)",
		thought.Timestamp, thought.Content, planID, tagsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to create thought: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read thought id: %w", err)
	}
	thought.ID = id

	return nil
}

// List retrieves thoughts matching the given filters, ordered by
// timestamp ascending.
func (r *ThoughtRepository) List(ctx context.Context, filters secondary.ThoughtFilters) ([]*secondary.ThoughtRecord, error) {
	query := "SELECT " + thoughtColumns + " FROM thoughts WHERE 1=1"
	args := []any{}

	if filters.Since != nil {
		query += " AND timestamp >= ?"
		args = append(args, filters.Since.UTC().Format(time.RFC3339))
	}

	if pred, predArgs := tagPredicate("tags", filters.Tags); pred != "" {
		query += " AND " + pred
		args = append(args, predArgs...)
	}

	query += " ORDER BY timestamp ASC"

	if filters.Limit != nil {
		query += " LIMIT ?"
		args = append(args, *filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts: %w", err)
	}
	defer rows.Close()

	return collectThoughts(rows)
}

// ListByPlan retrieves the thoughts linked to a plan, oldest first.
// An unknown plan simply matches no rows.
func (r *ThoughtRepository) ListByPlan(ctx context.Context, planID int64) ([]*secondary.ThoughtRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+thoughtColumns+" FROM thoughts WHERE plan_id = ? ORDER BY timestamp ASC",
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list thoughts for plan: %w", err)
	}
	defer rows.Close()

	return collectThoughts(rows)
}

// ListRecent retrieves the most recent thoughts, newest first.
func (r *ThoughtRepository) ListRecent(ctx context.Context, limit int, search string) ([]*secondary.ThoughtRecord, error) {
	query := "SELECT " + thoughtColumns + " FROM thoughts WHERE 1=1"
	args := []any{}

	if search != "" {
		query += " AND (content LIKE ? OR tags LIKE ?)"
		pattern := likePattern(search)
		args = append(args, pattern, pattern)
	}

	query += " ORDER BY timestamp DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent thoughts: %w", err)
	}
	defer rows.Close()

	return collectThoughts(rows)
}

func scanThought(row rowScanner) (*secondary.ThoughtRecord, error) {
	var (
		planID  sql.NullInt64
		tagsRaw sql.NullString
	)

	record := &secondary.ThoughtRecord{}
	err := row.Scan(&record.ID, &record.Timestamp, &record.Content, &planID, &tagsRaw)
	if err != nil {
		return nil, err
	}

	if planID.Valid {
		id := planID.Int64
		record.PlanID = &id
	}

	record.Tags, err = decodeTags(tagsRaw)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func collectThoughts(rows *sql.Rows) ([]*secondary.ThoughtRecord, error) {
	records := []*secondary.ThoughtRecord{}
	for rows.Next() {
		record, err := scanThought(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan thought: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate thoughts: %w", err)
	}
	return records, nil
}
