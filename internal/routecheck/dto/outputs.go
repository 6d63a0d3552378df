package dto

import "go-waypoint/internal/routecheck/models"

// CheckRouteOutput is the ordered list of waypoints from origin to destination
type CheckRouteOutput struct {
	Body []models.RouteWaypoint
}

// SearchTermsOutput maps every term to its categorized hits
type SearchTermsOutput struct {
	Body map[string]models.TermHitSetRecord
}

// SystemsByNamesOutput maps every name to its solar system hits
type SystemsByNamesOutput struct {
	Body map[string][]models.TermHit
}

// SystemsOutput lists every solar system ID
type SystemsOutput struct {
	Body []int64
}

// NamesOutput lists resolved names in request order
type NamesOutput struct {
	Body []models.NameHit
}
