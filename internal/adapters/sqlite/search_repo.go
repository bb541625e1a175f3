package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tpc/internal/ports/secondary"
)

// SearchRepository implements secondary.SearchRepository with SQLite.
// Relevance is a weighted sum of substring matches computed in SQL so
// each table can be scored and capped independently.
type SearchRepository struct {
	db *sql.DB
}

// NewSearchRepository creates a new SQLite search repository.
func NewSearchRepository(db *sql.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// SearchPlans scores plans: title match 3, tag match 3, description 2.
func (r *SearchRepository) SearchPlans(ctx context.Context, q secondary.SearchQuery) ([]*secondary.SearchHit, error) {
	pattern := likePattern(q.Term)

	query := `SELECT id, title, description, tags, timestamp,
		((CASE WHEN title LIKE ? THEN 3 ELSE 0 END) +
		 (CASE WHEN tags LIKE ? THEN 3 ELSE 0 END) +
		 (CASE WHEN description LIKE ? THEN 2 ELSE 0 END)) AS relevance
	FROM plans
	WHERE (title LIKE ? OR tags LIKE ? OR description LIKE ?)`
	args := []any{pattern, pattern, pattern, pattern, pattern, pattern}

	if pred, predArgs := tagPredicate("tags", q.Tags); pred != "" {
		query += " AND " + pred
		args = append(args, predArgs...)
	}

	query += " ORDER BY relevance DESC, timestamp DESC LIMIT ?"
	args = append(args, q.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search plans: %w", err)
	}
	defer rows.Close()

	hits := []*secondary.SearchHit{}
	for rows.Next() {
		var tagsRaw sql.NullString
		hit := &secondary.SearchHit{Type: "plan"}
		if err := rows.Scan(&hit.ID, &hit.Title, &hit.Content, &tagsRaw, &hit.Timestamp, &hit.Relevance); err != nil {
			return nil, fmt.Errorf("failed to scan plan hit: %w", err)
		}
		hit.Tags, err = decodeTags(tagsRaw)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan hits: %w", err)
	}

	return hits, nil
}

// SearchThoughts scores thoughts: content match 3, tag match 3.
// Thoughts have no title, so content carries the title weight.
func (r *SearchRepository) SearchThoughts(ctx context.Context, q secondary.SearchQuery) ([]*secondary.SearchHit, error) {
	pattern := likePattern(q.Term)

	query := `SELECT id, content, tags, timestamp,
		((CASE WHEN content LIKE ? THEN 3 ELSE 0 END) +
		 (CASE WHEN tags LIKE ? THEN 3 ELSE 0 END)) AS relevance
	FROM thoughts
	WHERE (content LIKE ? OR tags LIKE ?)`
	args := []any{pattern, pattern, pattern, pattern}

	if pred, predArgs := tagPredicate("tags", q.Tags); pred != "" {
		query += " AND " + pred
		args = append(args, predArgs...)
	}

	query += " ORDER BY relevance DESC, timestamp DESC LIMIT ?"
	args = append(args, q.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search thoughts: %w", err)
	}
	defer rows.Close()

	hits := []*secondary.SearchHit{}
	for rows.Next() {
		var tagsRaw sql.NullString
		hit := &secondary.SearchHit{Type: "thought"}
		if err := rows.Scan(&hit.ID, &hit.Content, &tagsRaw, &hit.Timestamp, &hit.Relevance); err != nil {
			return nil, fmt.Errorf("failed to scan thought hit: %w", err)
		}
		hit.Tags, err = decodeTags(tagsRaw)
		if err != nil {
			return nil, err
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate thought hits: %w", err)
	}

	return hits, nil
}
