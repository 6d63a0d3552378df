package services

import (
	"go-waypoint/internal/routecheck/models"
	"go-waypoint/pkg/evegateway/universe"
)

// Assemble joins routed system IDs with their names and the traffic
// snapshots. Output order equals routeIDs exactly. A system missing from a
// snapshot keeps a nil count.
func Assemble(routeIDs []int64, names map[int64]models.NameHit, jumps []universe.SystemJumps, kills []universe.SystemKills) (*models.Route, error) {
	jumpsBySystem := make(map[int64]int, len(jumps))
	for _, j := range jumps {
		if _, ok := jumpsBySystem[j.SystemID]; !ok {
			jumpsBySystem[j.SystemID] = j.ShipJumps
		}
	}

	killsBySystem := make(map[int64]int, len(kills))
	for _, k := range kills {
		if _, ok := killsBySystem[k.SystemID]; !ok {
			killsBySystem[k.SystemID] = k.ShipKills
		}
	}

	waypoints := make([]models.RouteWaypoint, 0, len(routeIDs))
	for _, id := range routeIDs {
		name, ok := names[id]
		if !ok {
			return nil, &DataIntegrityError{SystemID: id}
		}

		wp := models.RouteWaypoint{
			SystemID:   id,
			SystemName: name.Name,
		}
		if n, ok := jumpsBySystem[id]; ok {
			wp.ShipJumps = &n
		}
		if n, ok := killsBySystem[id]; ok {
			wp.ShipKills = &n
		}
		waypoints = append(waypoints, wp)
	}

	return models.NewRoute(waypoints), nil
}
