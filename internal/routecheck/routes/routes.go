package routes

import (
	"context"
	"log/slog"
	"net/http"

	"go-waypoint/internal/routecheck/dto"
	"go-waypoint/internal/routecheck/models"
	"go-waypoint/internal/routecheck/services"

	"github.com/danielgtaylor/huma/v2"
)

// Routes handles route check route definitions
type Routes struct {
	service *services.Service
}

// NewRoutes creates a new routes instance
func NewRoutes(service *services.Service) *Routes {
	return &Routes{
		service: service,
	}
}

// RegisterUnifiedRoutes registers all route check operations under basePath
func (r *Routes) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "check-route",
		Method:      http.MethodGet,
		Path:        basePath + "/route/check",
		Summary:     "Check route",
		Description: "Resolves both system names and returns the shortest route between them with live jump and kill counts",
		Tags:        []string{"Route"},
	}, func(ctx context.Context, input *dto.CheckRouteInput) (*dto.CheckRouteOutput, error) {
		if err := dto.Validate(input); err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		route, err := r.service.CheckRoute(ctx, input.Origin, input.Destination)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &dto.CheckRouteOutput{Body: route.Waypoints()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "search-terms",
		Method:      http.MethodPost,
		Path:        basePath + "/universe/search",
		Summary:     "Search terms",
		Description: "Resolves free-text terms to entity IDs, grouped by category for every term",
		Tags:        []string{"Universe"},
	}, func(ctx context.Context, input *dto.SearchTermsInput) (*dto.SearchTermsOutput, error) {
		if err := dto.Validate(&input.Body); err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		result, err := r.service.SearchTerms(ctx, input.Body.Terms)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &dto.SearchTermsOutput{Body: result.Record()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "search-systems",
		Method:      http.MethodPost,
		Path:        basePath + "/universe/systems/search",
		Summary:     "Search solar systems",
		Description: "Returns the solar systems matching each name, including ambiguous and empty matches",
		Tags:        []string{"Universe"},
	}, func(ctx context.Context, input *dto.SystemsByNamesInput) (*dto.SystemsByNamesOutput, error) {
		if err := dto.Validate(&input.Body); err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		systems, err := r.service.SystemsByTerms(ctx, input.Body.SystemNames)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &dto.SystemsByNamesOutput{Body: systems}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-systems",
		Method:      http.MethodGet,
		Path:        basePath + "/universe/systems",
		Summary:     "List solar systems",
		Description: "Returns every solar system ID known to ESI",
		Tags:        []string{"Universe"},
	}, func(ctx context.Context, input *struct{}) (*dto.SystemsOutput, error) {
		ids, err := r.service.GetSystems(ctx)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}
		return &dto.SystemsOutput{Body: ids}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "resolve-names",
		Method:      http.MethodPost,
		Path:        basePath + "/universe/names",
		Summary:     "Resolve names",
		Description: "Resolves entity IDs to names and categories",
		Tags:        []string{"Universe"},
	}, func(ctx context.Context, input *dto.NamesInput) (*dto.NamesOutput, error) {
		if err := dto.Validate(&input.Body); err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		names, err := r.service.NamesForIDs(ctx, input.Body.IDs)
		if err != nil {
			return nil, toHumaError(ctx, err)
		}

		out := make([]models.NameHit, 0, len(names))
		seen := make(map[int64]struct{}, len(names))
		for _, id := range input.Body.IDs {
			hit, ok := names[id]
			if !ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, hit)
		}
		return &dto.NamesOutput{Body: out}, nil
	})
}

// toHumaError converts a core error to a problem response carrying the
// upstream status when there is one.
func toHumaError(ctx context.Context, err error) error {
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Route check request failed", "status", status, "error", err)
	}
	return huma.NewError(status, services.Describe(err))
}
