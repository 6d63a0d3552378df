package adapters

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	// APIPathCheckRoute is the only agent API path served
	APIPathCheckRoute = "/checkRoute"

	agentMessageVersion = "1.0"
	contentTypeJSON     = "application/json"
	msgInvalidEndpoints = "Invalid inputs; both the starting and ending systems must be defined"
)

// HandleAgentAPIEvent runs an action-group invocation and wraps the outcome
// in the agent response envelope.
func HandleAgentAPIEvent(ctx context.Context, core RouteChecker, event AgentAPIEvent) AgentAPIResponse {
	var props []Parameter
	if content, ok := event.RequestBody.Content[contentTypeJSON]; ok {
		props = content.Properties
	}
	params := parameters(props)

	slog.DebugContext(ctx, "Handling agent API event",
		"action_group", event.ActionGroup,
		"api_path", event.APIPath,
		"http_method", event.HTTPMethod,
	)

	status, body := http.StatusBadRequest, any(msgNoFunction)
	if event.APIPath == APIPathCheckRoute {
		status, body = agentCheckRoute(ctx, core, params)
	}

	return AgentAPIResponse{
		MessageVersion: agentMessageVersion,
		Response: AgentAPIPayload{
			ActionGroup:    event.ActionGroup,
			APIPath:        event.APIPath,
			HTTPMethod:     event.HTTPMethod,
			HTTPStatusCode: status,
			ResponseBody: map[string]AgentAPIBody{
				contentTypeJSON: {Body: body},
			},
		},
	}
}

func agentCheckRoute(ctx context.Context, core RouteChecker, params map[string]json.RawMessage) (int, any) {
	origin := decodeString(params["startingSystem"])
	destination := decodeString(params["endingSystem"])
	if origin == "" || destination == "" {
		return http.StatusBadRequest, msgInvalidEndpoints
	}

	route, err := core.CheckRoute(ctx, origin, destination)
	if err != nil {
		resp := errorResponse(ctx, err)
		return resp.StatusCode, resp.Body
	}
	return http.StatusOK, route.Waypoints()
}

// decodeString accepts a JSON string. Anything else reads as missing.
func decodeString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
