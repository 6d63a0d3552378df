package evegateway

import (
	"fmt"
	"net/http"

	"go-waypoint/pkg/config"
	"go-waypoint/pkg/evegateway/routes"
	"go-waypoint/pkg/evegateway/transport"
	"go-waypoint/pkg/evegateway/universe"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client represents an EVE Online ESI client with all category clients
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	requester  *transport.DefaultRequester

	// Category clients
	Universe universe.Client
	Routes   routes.Client
}

// NewClient creates a new EVE Online ESI client from cfg
func NewClient(cfg config.ESIConfig) *Client {
	var rt http.RoundTripper = http.DefaultTransport

	// Only add OpenTelemetry instrumentation if telemetry is enabled
	if config.GetBoolEnv("ENABLE_TELEMETRY", false) {
		rt = otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Host)
			}),
		)
	}

	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: rt,
	}

	return NewClientWithHTTP(httpClient, cfg.BaseURL, cfg.UserAgent)
}

// NewClientWithHTTP wires the category clients on top of an existing HTTP client
func NewClientWithHTTP(httpClient *http.Client, baseURL, userAgent string) *Client {
	requester := transport.NewDefaultRequester(httpClient, userAgent)

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		requester:  requester,
		Universe:   universe.NewUniverseClient(requester, baseURL),
		Routes:     routes.NewRoutesClient(requester, baseURL),
	}
}

// HTTPClient returns the underlying HTTP client for advanced usage
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// BaseURL returns the ESI root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ErrorLimits returns the last ESI error limit headers seen by any category client
func (c *Client) ErrorLimits() transport.ESIErrorLimits {
	return c.requester.ErrorLimits()
}
