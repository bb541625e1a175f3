package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/example/tpc/internal/ports/secondary"
)

// Query parameter parsing is deliberately lenient: invalid enum,
// boolean, timestamp, or numeric values mean "no filter" rather than
// an error, so malformed agent input never fails a listing request.

// parseStatusFilter returns the value if it is a known status,
// otherwise "" (no filter).
func parseStatusFilter(value string) string {
	switch value {
	case StatusProposed, StatusInProgress, StatusCompleted:
		return value
	default:
		return ""
	}
}

// parseBoolFilter recognizes true/false/1/0; anything else is no filter.
func parseBoolFilter(value string) *bool {
	switch strings.ToLower(value) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	default:
		return nil
	}
}

// parseSinceFilter parses an RFC3339 lower bound; unparseable values
// are no filter.
func parseSinceFilter(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseTagFilter parses a comma-separated tag list with an optional
// any:/all: prefix controlling union vs. intersection semantics.
// The default is any. Tags are case-folded; an empty list is no filter.
func parseTagFilter(value string) *secondary.TagFilter {
	if value == "" {
		return nil
	}

	mode := secondary.TagModeAny
	if rest, ok := strings.CutPrefix(value, "all:"); ok {
		mode = secondary.TagModeAll
		value = rest
	} else if rest, ok := strings.CutPrefix(value, "any:"); ok {
		value = rest
	}

	tags := []string{}
	for _, tag := range strings.Split(value, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}

	return &secondary.TagFilter{Mode: mode, Tags: tags}
}

// parseLimitFilter parses a row limit. Non-numeric values are no
// filter; zero and negative values are returned as-is so the caller
// can short-circuit to an empty result.
func parseLimitFilter(value string) *int {
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseSearchLimit parses the search result cap: default 10, hard cap 50.
func parseSearchLimit(value string) int {
	limit := 10
	if value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > 50 {
		limit = 50
	}
	return limit
}
