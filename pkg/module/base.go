package module

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"go-waypoint/pkg/handlers"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module defines the interface that all application modules must implement
type Module interface {
	// Routes sets up the plain HTTP routes for this module
	Routes(r chi.Router)

	// RegisterUnifiedRoutes registers the module operations on the shared Huma API
	RegisterUnifiedRoutes(api huma.API, basePath string)

	// StartBackgroundTasks starts any background processing for this module
	StartBackgroundTasks(ctx context.Context)

	// Stop gracefully stops the module and its background tasks
	Stop()

	// Name returns the module name for logging and identification
	Name() string
}

// BaseModule provides common functionality for all modules
type BaseModule struct {
	name     string
	stopOnce sync.Once
}

// NewBaseModule creates a new base module
func NewBaseModule(name string) *BaseModule {
	return &BaseModule{name: name}
}

// Name returns the module name
func (b *BaseModule) Name() string {
	return b.name
}

// Stop gracefully stops the module
func (b *BaseModule) Stop() {
	b.stopOnce.Do(func() {
		slog.Info("Module stopped", "module", b.name)
	})
}

// HealthHandler creates a health check handler for this module
func (b *BaseModule) HealthHandler() http.HandlerFunc {
	return handlers.HealthHandler(b.name)
}

// RegisterHealthRoute registers the health endpoint for this module
func (b *BaseModule) RegisterHealthRoute(r chi.Router) {
	r.Get("/health", b.HealthHandler())
}
