package services

import (
	"context"
	"log/slog"

	"go-waypoint/internal/routecheck/models"
)

// ResolveUniqueSystemIDs maps every term to the single solar system it names.
// All terms are classified before failing, so the error lists every term that
// is ambiguous or unknown and no term is resolved.
func (s *Service) ResolveUniqueSystemIDs(ctx context.Context, terms []string) (map[string]int64, error) {
	result, err := s.SearchTerms(ctx, terms)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]int64, len(terms))
	ambiguous := make(map[string][]models.TermHit)
	notFound := []string{}
	seen := make(map[string]struct{}, len(terms))

	for _, term := range result.Terms() {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}

		hits := result.HitsFor(term).HitsFor(models.CategorySystem)
		switch len(hits) {
		case 0:
			notFound = append(notFound, term)
		case 1:
			resolved[term] = hits[0].ID
		default:
			ambiguous[term] = hits
		}
	}

	if len(ambiguous) > 0 || len(notFound) > 0 {
		slog.InfoContext(ctx, "Route terms did not resolve uniquely",
			"ambiguous_count", len(ambiguous),
			"not_found", notFound)
		return nil, &AmbiguousRouteError{
			AmbiguousHits: ambiguous,
			NotFoundTerms: notFound,
		}
	}

	return resolved, nil
}
