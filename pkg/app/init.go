package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go-waypoint/pkg/config"
	"go-waypoint/pkg/evegateway"
	"go-waypoint/pkg/logging"
	"go-waypoint/pkg/metrics"

	"github.com/joho/godotenv"
)

// AppContext holds the shared application context and dependencies
type AppContext struct {
	ESIClient        *evegateway.Client
	TelemetryManager *logging.TelemetryManager
	ServiceName      string
	shutdownFuncs    []func(context.Context) error
}

// Options tune InitializeApp for a particular binary
type Options struct {
	// LogOutput receives console logs; stdout when nil
	LogOutput io.Writer

	// LogLevel overrides LOG_LEVEL when set
	LogLevel string

	// ESIBaseURL overrides ESI_BASE_URL when set
	ESIBaseURL string
}

// InitializeApp initializes common application dependencies
func InitializeApp(serviceName string) (*AppContext, error) {
	return InitializeAppWithOptions(serviceName, Options{})
}

// InitializeAppWithOptions is InitializeApp with binary-specific options
func InitializeAppWithOptions(serviceName string, opts Options) (*AppContext, error) {
	// Load .env file if it exists
	envErr := godotenv.Load()

	ctx := context.Background()

	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}

	telemetryManager := logging.NewTelemetryManager(serviceName).WithOutput(out)
	if opts.LogLevel != "" {
		telemetryManager.WithLogLevel(opts.LogLevel)
	}
	if err := telemetryManager.Initialize(ctx); err != nil {
		// Continue without telemetry rather than failing
		slog.Warn("Failed to initialize telemetry", "error", err)
	}
	if envErr != nil {
		slog.Debug("No .env file loaded", "error", envErr)
	}

	metrics.Init()

	esiConfig := config.GetESIConfig()
	if opts.ESIBaseURL != "" {
		esiConfig.BaseURL = strings.TrimRight(opts.ESIBaseURL, "/")
	}
	esiClient := evegateway.NewClient(esiConfig)
	slog.Info("ESI client initialized",
		"base_url", esiConfig.BaseURL,
		"timeout", esiConfig.Timeout.String(),
	)

	appCtx := &AppContext{
		ESIClient:        esiClient,
		TelemetryManager: telemetryManager,
		ServiceName:      serviceName,
	}
	appCtx.shutdownFuncs = append(appCtx.shutdownFuncs, telemetryManager.Shutdown)

	return appCtx, nil
}

// Shutdown gracefully shuts down all application dependencies
func (a *AppContext) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application", "service", a.ServiceName)

	for _, shutdown := range a.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}

	return nil
}

// GetPort returns the port from environment or default
func GetPort(defaultPort string) string {
	return config.GetEnv("PORT", defaultPort)
}
