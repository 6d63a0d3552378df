package adapters

import (
	"context"
	"encoding/json"

	"go-waypoint/internal/routecheck/models"
)

// RouteChecker is the core surface the adapters translate to
type RouteChecker interface {
	CheckRoute(ctx context.Context, originTerm, destinationTerm string) (*models.Route, error)
	SearchTerms(ctx context.Context, terms []string) (*models.TermSearchResult, error)
	SystemsByTerms(ctx context.Context, terms []string) (map[string][]models.TermHit, error)
	GetSystems(ctx context.Context) ([]int64, error)
	GetSystemNames(ctx context.Context, ids []int64) ([]string, error)
}

// Parameter is one named argument of an inbound event. Value is kept raw so
// each function decides the type it needs.
type Parameter struct {
	Name  string          `json:"name"`
	Type  string          `json:"type,omitempty"`
	Value json.RawMessage `json:"value"`
}

// FunctionEvent is a direct function invocation
type FunctionEvent struct {
	Function   string      `json:"function"`
	Parameters []Parameter `json:"parameters"`
}

// FunctionResponse is the status-coded record returned for a FunctionEvent
type FunctionResponse struct {
	StatusCode int `json:"statusCode"`
	Body       any `json:"body"`
}

// AgentAPIEvent is an action-group invocation from an agent runtime
type AgentAPIEvent struct {
	ActionGroup string `json:"actionGroup"`
	APIPath     string `json:"apiPath"`
	HTTPMethod  string `json:"httpMethod"`
	RequestBody struct {
		Content map[string]struct {
			Properties []Parameter `json:"properties"`
		} `json:"content"`
	} `json:"requestBody"`
}

// AgentAPIResponse is the enveloped response expected by the agent runtime
type AgentAPIResponse struct {
	MessageVersion string          `json:"messageVersion"`
	Response       AgentAPIPayload `json:"response"`
}

// AgentAPIPayload echoes the invocation and carries the status and body
type AgentAPIPayload struct {
	ActionGroup    string                  `json:"actionGroup"`
	APIPath        string                  `json:"apiPath"`
	HTTPMethod     string                  `json:"httpMethod"`
	HTTPStatusCode int                     `json:"httpStatusCode"`
	ResponseBody   map[string]AgentAPIBody `json:"responseBody"`
}

// AgentAPIBody wraps the body for one content type
type AgentAPIBody struct {
	Body any `json:"body"`
}

// parameters indexes params by name. Later duplicates win.
func parameters(params []Parameter) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(params))
	for _, p := range params {
		out[p.Name] = p.Value
	}
	return out
}
