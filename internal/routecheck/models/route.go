package models

import (
	"encoding/json"
	"slices"
)

// RouteWaypoint is one system on a route. ShipKills and ShipJumps are nil
// when the statistics snapshot does not list the system.
type RouteWaypoint struct {
	SystemID   int64  `json:"system_id" yaml:"system_id"`
	SystemName string `json:"system_name" yaml:"system_name"`
	ShipKills  *int   `json:"ship_kills" yaml:"ship_kills"`
	ShipJumps  *int   `json:"ship_jumps" yaml:"ship_jumps"`
}

// Route is an ordered list of waypoints, origin first, with lookup by system ID
type Route struct {
	waypoints []RouteWaypoint
	index     map[int64]int
}

// NewRoute keeps waypoints in the given order
func NewRoute(waypoints []RouteWaypoint) *Route {
	index := make(map[int64]int, len(waypoints))
	for i, wp := range waypoints {
		if _, exists := index[wp.SystemID]; !exists {
			index[wp.SystemID] = i
		}
	}
	return &Route{
		waypoints: slices.Clone(waypoints),
		index:     index,
	}
}

// Waypoints returns a copy of the ordered waypoints, never nil
func (r *Route) Waypoints() []RouteWaypoint {
	if len(r.waypoints) == 0 {
		return []RouteWaypoint{}
	}
	return slices.Clone(r.waypoints)
}

// Len returns the number of waypoints
func (r *Route) Len() int {
	return len(r.waypoints)
}

// Empty reports whether ESI found no path
func (r *Route) Empty() bool {
	return len(r.waypoints) == 0
}

// Waypoint looks up a system on the route
func (r *Route) Waypoint(systemID int64) (RouteWaypoint, bool) {
	i, ok := r.index[systemID]
	if !ok {
		return RouteWaypoint{}, false
	}
	return r.waypoints[i], true
}

// SystemIDs returns the system IDs in travel order
func (r *Route) SystemIDs() []int64 {
	ids := make([]int64, len(r.waypoints))
	for i, wp := range r.waypoints {
		ids[i] = wp.SystemID
	}
	return ids
}

// MarshalJSON encodes the route as a plain ordered list
func (r *Route) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Waypoints())
}

// MarshalYAML encodes the route as a plain ordered list
func (r *Route) MarshalYAML() (any, error) {
	return r.Waypoints(), nil
}
