package adapters

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"go-waypoint/internal/routecheck/dto"
	"go-waypoint/internal/routecheck/services"
)

// Function names accepted in a FunctionEvent
const (
	FunctionCheckRoute        = "check_route"
	FunctionGetSystemsByTerms = "get_systems_by_terms"
	FunctionGetIDsByTerms     = "get_ids_by_terms"
	FunctionGetSystems        = "get_systems"
	FunctionGetSystemsNames   = "get_systems_names"
)

const (
	msgNoFunction         = "No function specified"
	msgInvalidRouteNames  = "Invalid system_names parameter; must be a list of exactly two strings"
	msgInvalidSystemNames = "Invalid system_names parameter; must exist and be a list of strings"
	msgInvalidTerms       = "Invalid terms parameter; must exist and be a list of strings"
	msgInvalidSystemIDs   = "Invalid system_ids parameter; must exist and be a list of integers"
)

// HandleFunctionEvent runs one function invocation and answers with a
// status-coded record. Validation failures answer 400 before the core is called.
func HandleFunctionEvent(ctx context.Context, core RouteChecker, event FunctionEvent) FunctionResponse {
	params := parameters(event.Parameters)
	slog.DebugContext(ctx, "Handling function event", "function", event.Function, "parameter_count", len(params))

	switch event.Function {
	case FunctionCheckRoute:
		names, ok := decodeStrings(params["system_names"])
		if !ok || dto.Validate(&dto.CheckRouteParams{SystemNames: names}) != nil {
			return badRequest(msgInvalidRouteNames)
		}
		route, err := core.CheckRoute(ctx, names[0], names[1])
		if err != nil {
			return errorResponse(ctx, err)
		}
		return FunctionResponse{StatusCode: http.StatusOK, Body: route.Waypoints()}

	case FunctionGetSystemsByTerms:
		names, ok := decodeStrings(params["system_names"])
		if !ok || dto.Validate(&dto.TermsParams{Terms: names}) != nil {
			return badRequest(msgInvalidSystemNames)
		}
		systems, err := core.SystemsByTerms(ctx, names)
		if err != nil {
			return errorResponse(ctx, err)
		}
		return FunctionResponse{StatusCode: http.StatusOK, Body: systems}

	case FunctionGetIDsByTerms:
		terms, ok := decodeStrings(params["terms"])
		if !ok || dto.Validate(&dto.TermsParams{Terms: terms}) != nil {
			return badRequest(msgInvalidTerms)
		}
		result, err := core.SearchTerms(ctx, terms)
		if err != nil {
			return errorResponse(ctx, err)
		}
		return FunctionResponse{StatusCode: http.StatusOK, Body: result.Record()}

	case FunctionGetSystems:
		ids, err := core.GetSystems(ctx)
		if err != nil {
			return errorResponse(ctx, err)
		}
		return FunctionResponse{StatusCode: http.StatusOK, Body: ids}

	case FunctionGetSystemsNames:
		ids, ok := decodeIDs(params["system_ids"])
		if !ok || dto.Validate(&dto.IDsParams{IDs: ids}) != nil {
			return badRequest(msgInvalidSystemIDs)
		}
		names, err := core.GetSystemNames(ctx, ids)
		if err != nil {
			return errorResponse(ctx, err)
		}
		return FunctionResponse{StatusCode: http.StatusOK, Body: names}
	}

	return badRequest(msgNoFunction)
}

func badRequest(msg string) FunctionResponse {
	return FunctionResponse{StatusCode: http.StatusBadRequest, Body: msg}
}

func errorResponse(ctx context.Context, err error) FunctionResponse {
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Function event failed", "status", status, "error", err)
	}
	return FunctionResponse{StatusCode: status, Body: services.Describe(err)}
}

// decodeStrings accepts only a JSON list of strings
func decodeStrings(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

// decodeIDs accepts only a JSON list of integers
func decodeIDs(raw json.RawMessage) ([]int64, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var out []int64
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}
