package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

type eventShape struct {
	APIPath *string `json:"apiPath"`
}

// Dispatch decodes a raw event, picks the adapter for its shape and returns
// the adapter's response. Events carrying apiPath are agent API events; all
// others are function events. Only undecodable input is an error.
func Dispatch(ctx context.Context, core RouteChecker, raw json.RawMessage) (any, error) {
	invocationID := uuid.NewString()
	slog.DebugContext(ctx, "Received event", "invocation_id", invocationID, "event", string(raw))

	var shape eventShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	if shape.APIPath != nil {
		var event AgentAPIEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return nil, fmt.Errorf("failed to decode agent API event: %w", err)
		}
		resp := HandleAgentAPIEvent(ctx, core, event)
		slog.InfoContext(ctx, "Agent API event handled",
			"invocation_id", invocationID,
			"api_path", event.APIPath,
			"status_code", resp.Response.HTTPStatusCode,
		)
		return resp, nil
	}

	var event FunctionEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("failed to decode function event: %w", err)
	}
	resp := HandleFunctionEvent(ctx, core, event)
	slog.InfoContext(ctx, "Function event handled",
		"invocation_id", invocationID,
		"function", event.Function,
		"status_code", resp.StatusCode,
	)
	return resp, nil
}
