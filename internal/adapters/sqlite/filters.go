// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"strings"

	"github.com/example/tpc/internal/ports/secondary"
)

// tagPredicate builds the parameterized predicate testing tag-set
// membership. Tags are stored as a JSON array of individually quoted
// strings, so a substring match on the quoted form is exact enough;
// this is a deliberate simplification, not a structured join.
//
// Mode "any" ORs the per-tag tests (union), "all" ANDs them
// (intersection). Returns ("", nil) when the filter is empty.
func tagPredicate(column string, f *secondary.TagFilter) (string, []any) {
	if f == nil || len(f.Tags) == 0 {
		return "", nil
	}

	tests := make([]string, 0, len(f.Tags))
	args := make([]any, 0, len(f.Tags))
	for _, tag := range f.Tags {
		tests = append(tests, column+" LIKE ?")
		args = append(args, `%"`+tag+`"%`)
	}

	joiner := " OR "
	if f.Mode == secondary.TagModeAll {
		joiner = " AND "
	}
	return "(" + strings.Join(tests, joiner) + ")", args
}

// likePattern wraps a term for a substring LIKE test.
func likePattern(term string) string {
	return "%" + term + "%"
}
