package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go-waypoint/pkg/config"
	"go-waypoint/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const maxErrorBody = 4 << 10

// Call performs a single ESI request and decodes a 2xx JSON body into dst.
// endpoint is the path template used for logs, spans and metrics. body, when
// non-nil, is sent as JSON. Non-2xx responses yield an *ESIError.
func Call(ctx context.Context, r Requester, method, url, endpoint string, body, dst any) error {
	var span trace.Span
	if config.GetBoolEnv("ENABLE_TELEMETRY", false) {
		tracer := otel.Tracer("go-waypoint/evegateway")
		ctx, span = tracer.Start(ctx, "esi "+method+" "+endpoint)
		defer span.End()

		span.SetAttributes(
			attribute.String("esi.endpoint", endpoint),
			attribute.String("http.method", method),
			attribute.String("http.url", url),
		)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		recordSpanError(span, err, "failed to create request")
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.DebugContext(ctx, "Calling ESI", "method", method, "endpoint", endpoint)

	start := time.Now()
	resp, err := r.Do(ctx, req)
	if err != nil {
		metrics.ObserveESIRequest(endpoint, 0, time.Since(start))
		recordSpanError(span, err, "failed to call ESI")
		slog.ErrorContext(ctx, "ESI request failed", "endpoint", endpoint, "error", err)
		return err
	}
	defer resp.Body.Close()

	metrics.ObserveESIRequest(endpoint, resp.StatusCode, time.Since(start))
	if span != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		esiErr := newESIError(endpoint, resp.StatusCode, errBody)
		if span != nil {
			span.SetStatus(codes.Error, "ESI returned error status")
		}
		slog.WarnContext(ctx, "ESI returned error status",
			"endpoint", endpoint,
			"status_code", resp.StatusCode,
			"message", esiErr.Message,
		)
		return esiErr
	}

	if dst == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		recordSpanError(span, err, "failed to parse response")
		return fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}

	if span != nil {
		span.SetStatus(codes.Ok, "ok")
	}
	return nil
}

func recordSpanError(span trace.Span, err error, msg string) {
	if span == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}
