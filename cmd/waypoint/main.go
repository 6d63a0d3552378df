package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"go-waypoint/internal/routecheck"
	"go-waypoint/pkg/app"
	"go-waypoint/pkg/config"
	"go-waypoint/pkg/evegateway"
	"go-waypoint/pkg/handlers"
	waypointMiddleware "go-waypoint/pkg/middleware"
	"go-waypoint/pkg/module"
	"go-waypoint/pkg/version"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "go.uber.org/automaxprocs"
)

// skipHealthLogging keeps probe traffic out of the request log
func skipHealthLogging(next http.Handler) http.Handler {
	logged := waypointMiddleware.RequestLogger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		logged.ServeHTTP(w, r)
	})
}

func main() {
	log.Printf("Version: %s | Build: %s", version.GetVersionString(), version.Get().BuildDate)
	log.Printf("CPUs: %d | GOMAXPROCS: %d", runtime.NumCPU(), runtime.GOMAXPROCS(0))

	appCtx, err := app.InitializeApp("go-waypoint")
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	router, modules := newRouter(appCtx.ESIClient, config.GetAPIPrefix())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, mod := range modules {
		go mod.StartBackgroundTasks(ctx)
	}

	port := app.GetPort("8080")
	host := config.GetHost()

	srv := &http.Server{
		Addr:         host + ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting waypoint server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Received shutdown signal, initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	for _, mod := range modules {
		mod.Stop()
	}

	appCtx.Shutdown(shutdownCtx)
	slog.Info("Waypoint shutdown completed")
}

// newRouter wires middleware, the plain endpoints and every module's Huma
// operations under apiPrefix.
func newRouter(esiClient *evegateway.Client, apiPrefix string) (chi.Router, []module.Module) {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(skipHealthLogging)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(waypointMiddleware.TracingMiddleware)

	r.Get("/health", handlers.SimpleHealthHandler())
	r.Handle("/metrics", promhttp.Handler())

	routeCheckModule := routecheck.NewModule(esiClient)
	modules := []module.Module{routeCheckModule}

	humaConfig := app.NewHumaConfig()

	mount := func(pr chi.Router) {
		api := humachi.New(pr, humaConfig)
		for _, mod := range modules {
			mod.RegisterUnifiedRoutes(api, "")
			pr.Route("/"+mod.Name(), mod.Routes)
		}
	}
	if apiPrefix == "" {
		mount(r)
	} else {
		r.Route(apiPrefix, mount)
	}

	return r, modules
}
