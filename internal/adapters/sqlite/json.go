package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/tpc/internal/ports/secondary"
)

// Changelog and tags live in JSON-encoded text columns. These helpers
// are the single (de)serialization point at the storage boundary.

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func encodeChangelog(entries []secondary.ChangelogEntry) (string, error) {
	if entries == nil {
		entries = []secondary.ChangelogEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode changelog: %w", err)
	}
	return string(data), nil
}

func decodeChangelog(raw sql.NullString) ([]secondary.ChangelogEntry, error) {
	if !raw.Valid || raw.String == "" {
		return []secondary.ChangelogEntry{}, nil
	}
	var entries []secondary.ChangelogEntry
	if err := json.Unmarshal([]byte(raw.String), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode changelog: %w", err)
	}
	if entries == nil {
		entries = []secondary.ChangelogEntry{}
	}
	return entries, nil
}
