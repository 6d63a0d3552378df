package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// ESIErrorLimits represents ESI error limit headers
type ESIErrorLimits struct {
	Remain int
	Reset  time.Time
	Window int
}

// Requester sends one prepared ESI request
type Requester interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// DefaultRequester sends each request exactly once and tracks the ESI error
// limit headers of every response. It never retries.
type DefaultRequester struct {
	httpClient  *http.Client
	userAgent   string
	errorLimits ESIErrorLimits
	limitsMutex sync.RWMutex
}

// NewDefaultRequester creates a requester on top of httpClient
func NewDefaultRequester(httpClient *http.Client, userAgent string) *DefaultRequester {
	return &DefaultRequester{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Do sets the standard ESI headers and performs the request
func (r *DefaultRequester) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ESI: %w", err)
	}

	// 404s do not count against the error limit
	if resp.StatusCode != http.StatusNotFound {
		r.updateErrorLimits(ctx, resp.Header, req)
	}

	return resp, nil
}

// ErrorLimits returns the most recently observed error limit state
func (r *DefaultRequester) ErrorLimits() ESIErrorLimits {
	r.limitsMutex.RLock()
	defer r.limitsMutex.RUnlock()
	return r.errorLimits
}

func (r *DefaultRequester) updateErrorLimits(ctx context.Context, headers http.Header, req *http.Request) {
	r.limitsMutex.Lock()
	defer r.limitsMutex.Unlock()

	if resetStr := headers.Get("X-ESI-Error-Limit-Reset"); resetStr != "" {
		if reset, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
			r.errorLimits.Reset = time.Now().Add(time.Duration(reset) * time.Second)
		}
	}

	if windowStr := headers.Get("X-ESI-Error-Limit-Window"); windowStr != "" {
		if window, err := strconv.Atoi(windowStr); err == nil {
			r.errorLimits.Window = window
		}
	}

	remainStr := headers.Get("X-ESI-Error-Limit-Remain")
	if remainStr == "" {
		return
	}
	remain, err := strconv.Atoi(remainStr)
	if err != nil {
		return
	}
	r.errorLimits.Remain = remain

	if remain <= 50 {
		slog.WarnContext(ctx, "ESI error limit running low",
			"x_esi_error_limit_remain", remain,
			"endpoint", req.URL.Path,
			"method", req.Method,
			"reset_time", r.errorLimits.Reset.Format(time.RFC3339),
			"window", r.errorLimits.Window,
		)
	}
}
