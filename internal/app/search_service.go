package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/tpc/internal/ports/primary"
	"github.com/example/tpc/internal/ports/secondary"
)

// SearchServiceImpl implements the SearchService interface.
type SearchServiceImpl struct {
	searchRepo secondary.SearchRepository
}

// NewSearchService creates a new SearchService with injected dependencies.
func NewSearchService(searchRepo secondary.SearchRepository) *SearchServiceImpl {
	return &SearchServiceImpl{searchRepo: searchRepo}
}

// Search runs the relevance-scored query per table, then concatenates
// and re-sorts by timestamp descending. The merge is by recency, not
// combined relevance — a known approximation of global top-k.
func (s *SearchServiceImpl) Search(ctx context.Context, req primary.SearchRequest) ([]*primary.SearchResult, error) {
	if req.Query == "" {
		return nil, validationErr("Search query cannot be empty")
	}

	// Unknown type values fall back to searching both tables.
	searchType := req.Type
	if searchType != "plan" && searchType != "thought" {
		searchType = "all"
	}

	query := secondary.SearchQuery{
		Term:  req.Query,
		Tags:  parseTagFilter(req.Tags),
		Limit: parseSearchLimit(req.Limit),
	}

	hits := []*secondary.SearchHit{}

	if searchType == "plan" || searchType == "all" {
		planHits, err := s.searchRepo.SearchPlans(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to search plans: %w", err)
		}
		hits = append(hits, planHits...)
	}

	if searchType == "thought" || searchType == "all" {
		thoughtHits, err := s.searchRepo.SearchThoughts(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to search thoughts: %w", err)
		}
		hits = append(hits, thoughtHits...)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Timestamp > hits[j].Timestamp
	})
	if len(hits) > query.Limit {
		hits = hits[:query.Limit]
	}

	results := make([]*primary.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, &primary.SearchResult{
			Type:      hit.Type,
			ID:        hit.ID,
			Title:     hit.Title,
			Content:   hit.Content,
			Tags:      hit.Tags,
			Timestamp: hit.Timestamp,
		})
	}
	return results, nil
}
