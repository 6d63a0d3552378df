package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"go-waypoint/pkg/evegateway/transport"
)

// EndpointRoute is the path template of the route endpoint
const EndpointRoute = "/route/{origin}/{destination}/"

// Flag selects the ESI route preference
type Flag string

const (
	FlagShortest Flag = "shortest"
	FlagSecure   Flag = "secure"
	FlagInsecure Flag = "insecure"
)

// Valid reports whether f is one of the flags ESI accepts
func (f Flag) Valid() bool {
	switch f {
	case FlagShortest, FlagSecure, FlagInsecure:
		return true
	}
	return false
}

// Client interface for route ESI operations
type Client interface {
	GetRoute(ctx context.Context, origin, destination int64, flag Flag) ([]int64, error)
}

// RoutesClient implements route ESI operations
type RoutesClient struct {
	requester transport.Requester
	baseURL   string
}

// NewRoutesClient creates a new route client
func NewRoutesClient(requester transport.Requester, baseURL string) *RoutesClient {
	return &RoutesClient{
		requester: requester,
		baseURL:   baseURL,
	}
}

// GetRoute returns the system IDs from origin to destination inclusive, in
// travel order. An empty flag means FlagShortest.
func (c *RoutesClient) GetRoute(ctx context.Context, origin, destination int64, flag Flag) ([]int64, error) {
	if flag == "" {
		flag = FlagShortest
	}
	if !flag.Valid() {
		return nil, fmt.Errorf("invalid route flag %q", flag)
	}

	query := url.Values{}
	query.Set("flag", string(flag))
	endpoint := fmt.Sprintf("%s/route/%d/%d/?%s", c.baseURL, origin, destination, query.Encode())

	slog.InfoContext(ctx, "Requesting route from ESI",
		"origin", origin,
		"destination", destination,
		"flag", string(flag),
	)

	var result []int64
	if err := transport.Call(ctx, c.requester, http.MethodGet, endpoint, EndpointRoute, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
