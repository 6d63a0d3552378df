package routecheck

import (
	"context"
	"log/slog"

	"go-waypoint/internal/routecheck/routes"
	"go-waypoint/internal/routecheck/services"
	"go-waypoint/pkg/evegateway"
	"go-waypoint/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the route check module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Routes
}

// NewModule creates a new route check module on top of the ESI client
func NewModule(eveClient *evegateway.Client) *Module {
	service := services.NewService(eveClient.Universe, eveClient.Routes)

	return &Module{
		BaseModule: module.NewBaseModule("routecheck"),
		service:    service,
		routes:     routes.NewRoutes(service),
	}
}

// GetService returns the route check service for the event adapters
func (m *Module) GetService() *services.Service {
	return m.service
}

// Routes mounts the module health endpoint
func (m *Module) Routes(r chi.Router) {
	m.RegisterHealthRoute(r)
}

// RegisterUnifiedRoutes registers routes on the shared Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	m.routes.RegisterUnifiedRoutes(api, basePath)
	slog.Info("Route check routes registered", "base_path", basePath)
}

// StartBackgroundTasks is a no-op: the module holds no state between requests
func (m *Module) StartBackgroundTasks(ctx context.Context) {}
