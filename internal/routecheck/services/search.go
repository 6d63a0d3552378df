package services

import (
	"context"
	"log/slog"

	"go-waypoint/internal/routecheck/models"
	"go-waypoint/pkg/evegateway/universe"
)

// SearchTerms resolves all terms with a single /universe/ids/ call and
// assigns the raw hits to the terms they contain.
func (s *Service) SearchTerms(ctx context.Context, terms []string) (*models.TermSearchResult, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyTerms
	}

	raw, err := s.universe.SearchIDs(ctx, terms)
	if err != nil {
		slog.ErrorContext(ctx, "Term search failed", "terms", terms, "error", err)
		return nil, err
	}

	candidates := flattenIDs(raw)
	slog.DebugContext(ctx, "Term search returned candidates", "terms", terms, "candidate_count", len(candidates))

	return models.NewTermSearchResult(terms, candidates)
}

// flattenIDs turns the per-category payload into tagged hits, keeping the
// order ESI returned within each category.
func flattenIDs(raw *universe.IDsResponse) []models.TermHit {
	if raw == nil {
		return nil
	}

	var hits []models.TermHit
	for _, category := range models.EntityCategories {
		for _, hit := range rawHitsFor(raw, category) {
			hits = append(hits, models.TermHit{
				Name:     hit.Name,
				Category: category,
				ID:       hit.ID,
			})
		}
	}
	return hits
}

func rawHitsFor(raw *universe.IDsResponse, category models.EntityCategory) []universe.IDHit {
	switch category {
	case models.CategoryAgent:
		return raw.Agents
	case models.CategoryAlliance:
		return raw.Alliances
	case models.CategoryCharacter:
		return raw.Characters
	case models.CategoryConstellation:
		return raw.Constellations
	case models.CategoryCorporation:
		return raw.Corporations
	case models.CategoryFaction:
		return raw.Factions
	case models.CategoryInventoryType:
		return raw.InventoryTypes
	case models.CategoryRegion:
		return raw.Regions
	case models.CategoryStation:
		return raw.Stations
	case models.CategorySystem:
		return raw.Systems
	}
	return nil
}

// SystemsByTerms returns the solar system hits of every term without
// failing on ambiguity or misses.
func (s *Service) SystemsByTerms(ctx context.Context, terms []string) (map[string][]models.TermHit, error) {
	result, err := s.SearchTerms(ctx, terms)
	if err != nil {
		return nil, err
	}

	systems := make(map[string][]models.TermHit, len(terms))
	for _, term := range result.Terms() {
		systems[term] = result.HitsFor(term).HitsFor(models.CategorySystem)
	}
	return systems, nil
}
