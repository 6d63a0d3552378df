package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go-waypoint/internal/routecheck/models"
	"go-waypoint/pkg/config"
	"go-waypoint/pkg/evegateway/routes"
	"go-waypoint/pkg/evegateway/transport"
	"go-waypoint/pkg/evegateway/universe"
	"go-waypoint/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Service resolves system names and checks routes against ESI
type Service struct {
	universe universe.Client
	routes   routes.Client
}

// NewService creates a new route check service
func NewService(universeClient universe.Client, routesClient routes.Client) *Service {
	return &Service{
		universe: universeClient,
		routes:   routesClient,
	}
}

// CheckRoute resolves both terms to solar systems and returns the shortest
// route between them, enriched with names and traffic statistics.
func (s *Service) CheckRoute(ctx context.Context, originTerm, destinationTerm string) (*models.Route, error) {
	return s.CheckRouteWithFlag(ctx, originTerm, destinationTerm, routes.FlagShortest)
}

// CheckRouteWithFlag is CheckRoute with an explicit route preference
func (s *Service) CheckRouteWithFlag(ctx context.Context, originTerm, destinationTerm string, flag routes.Flag) (route *models.Route, err error) {
	var span trace.Span
	if config.GetBoolEnv("ENABLE_TELEMETRY", false) {
		ctx, span = otel.Tracer("go-waypoint/routecheck").Start(ctx, "routecheck.CheckRoute")
		defer span.End()
		span.SetAttributes(
			attribute.String("route.origin_term", originTerm),
			attribute.String("route.destination_term", destinationTerm),
			attribute.String("route.flag", string(flag)),
		)
	}

	defer func() {
		metrics.RecordRouteCheck(outcomeFor(err))
		if span == nil {
			return
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "route check failed")
		} else {
			span.SetAttributes(attribute.Int("route.length", route.Len()))
			span.SetStatus(codes.Ok, "ok")
		}
	}()

	slog.InfoContext(ctx, "Checking route", "origin", originTerm, "destination", destinationTerm, "flag", flag)

	ids, err := s.ResolveUniqueSystemIDs(ctx, []string{originTerm, destinationTerm})
	if err != nil {
		return nil, err
	}
	originID, destinationID := ids[originTerm], ids[destinationTerm]

	routeIDs, err := s.routes.GetRoute(ctx, originID, destinationID, flag)
	if err != nil {
		return nil, err
	}
	if len(routeIDs) == 0 {
		slog.WarnContext(ctx, "ESI returned no route", "origin_id", originID, "destination_id", destinationID)
		return models.NewRoute(nil), nil
	}

	var (
		names map[int64]models.NameHit
		jumps []universe.SystemJumps
		kills []universe.SystemKills
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		names, err = s.NamesForIDs(gctx, routeIDs)
		return err
	})
	g.Go(func() error {
		var err error
		jumps, err = s.universe.GetSystemJumps(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		kills, err = s.universe.GetSystemKills(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	route, err = Assemble(routeIDs, names, jumps, kills)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to assemble route", "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "Route checked", "origin_id", originID, "destination_id", destinationID, "jumps", route.Len()-1)
	return route, nil
}

// NamesForIDs resolves IDs to names and categories with a single batched call
func (s *Service) NamesForIDs(ctx context.Context, ids []int64) (map[int64]models.NameHit, error) {
	entries, err := s.universe.GetNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]models.NameHit, len(entries))
	for _, entry := range entries {
		category, err := models.ParseNameCategory(entry.Category)
		if err != nil {
			slog.WarnContext(ctx, "Skipping name with unknown category", "id", entry.ID, "category", entry.Category)
			continue
		}
		names[entry.ID] = models.NameHit{
			ID:       entry.ID,
			Name:     entry.Name,
			Category: category,
		}
	}
	return names, nil
}

// GetSystemNames returns the names of the given IDs in ESI response order
func (s *Service) GetSystemNames(ctx context.Context, ids []int64) ([]string, error) {
	entries, err := s.universe.GetNames(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names, nil
}

// GetSystems lists every solar system ID known to ESI
func (s *Service) GetSystems(ctx context.Context) ([]int64, error) {
	ids, err := s.universe.GetSystems(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func outcomeFor(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	if _, ok := transport.AsESIError(err); ok {
		return metrics.OutcomeESIError
	}
	var ambiguous *AmbiguousRouteError
	if errors.As(err, &ambiguous) {
		return metrics.OutcomeAmbiguous
	}
	var integrity *DataIntegrityError
	if errors.As(err, &integrity) {
		return metrics.OutcomeIntegrity
	}
	return metrics.OutcomeError
}

// Describe is a short human-readable summary of err for adapter responses
func Describe(err error) string {
	if esiErr, ok := transport.AsESIError(err); ok {
		return esiErr.Message
	}
	var ambiguous *AmbiguousRouteError
	if errors.As(err, &ambiguous) {
		return ambiguous.Error()
	}
	var integrity *DataIntegrityError
	if errors.As(err, &integrity) {
		return "Inconsistent response from ESI"
	}
	if errors.Is(err, ErrEmptyTerms) {
		return err.Error()
	}
	return fmt.Sprintf("Internal error: %v", err)
}
