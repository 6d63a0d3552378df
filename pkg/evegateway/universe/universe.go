package universe

import (
	"context"
	"log/slog"
	"net/http"

	"go-waypoint/pkg/evegateway/transport"
)

// Endpoint path templates
const (
	EndpointIDs         = "/universe/ids/"
	EndpointNames       = "/universe/names/"
	EndpointSystems     = "/universe/systems/"
	EndpointSystemJumps = "/universe/system_jumps/"
	EndpointSystemKills = "/universe/system_kills/"
)

// Client interface for universe-related ESI operations
type Client interface {
	SearchIDs(ctx context.Context, terms []string) (*IDsResponse, error)
	GetNames(ctx context.Context, ids []int64) ([]NameEntry, error)
	GetSystems(ctx context.Context) ([]int64, error)
	GetSystemJumps(ctx context.Context) ([]SystemJumps, error)
	GetSystemKills(ctx context.Context) ([]SystemKills, error)
}

// IDHit is one raw match from /universe/ids/
type IDHit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IDsResponse is the /universe/ids/ payload. ESI omits categories with no
// matches, so any field may be nil.
type IDsResponse struct {
	Agents         []IDHit `json:"agents,omitempty"`
	Alliances      []IDHit `json:"alliances,omitempty"`
	Characters     []IDHit `json:"characters,omitempty"`
	Constellations []IDHit `json:"constellations,omitempty"`
	Corporations   []IDHit `json:"corporations,omitempty"`
	Factions       []IDHit `json:"factions,omitempty"`
	InventoryTypes []IDHit `json:"inventory_types,omitempty"`
	Regions        []IDHit `json:"regions,omitempty"`
	Stations       []IDHit `json:"stations,omitempty"`
	Systems        []IDHit `json:"systems,omitempty"`
}

// NameEntry is one element of the /universe/names/ payload
type NameEntry struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// SystemJumps is one entry of the jump statistics snapshot
type SystemJumps struct {
	SystemID  int64 `json:"system_id"`
	ShipJumps int   `json:"ship_jumps"`
}

// SystemKills is one entry of the kill statistics snapshot
type SystemKills struct {
	SystemID  int64 `json:"system_id"`
	ShipKills int   `json:"ship_kills"`
	NPCKills  int   `json:"npc_kills"`
	PodKills  int   `json:"pod_kills"`
}

// UniverseClient implements universe-related ESI operations
type UniverseClient struct {
	requester transport.Requester
	baseURL   string
}

// NewUniverseClient creates a new universe client
func NewUniverseClient(requester transport.Requester, baseURL string) *UniverseClient {
	return &UniverseClient{
		requester: requester,
		baseURL:   baseURL,
	}
}

// SearchIDs resolves all terms in one call. Repeated terms are sent once.
// Matching against the terms is left to the caller.
func (c *UniverseClient) SearchIDs(ctx context.Context, terms []string) (*IDsResponse, error) {
	unique := make([]string, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		unique = append(unique, term)
	}

	slog.InfoContext(ctx, "Resolving terms via ESI", "term_count", len(unique))

	var result IDsResponse
	if err := transport.Call(ctx, c.requester, http.MethodPost, c.baseURL+EndpointIDs, EndpointIDs, unique, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetNames resolves IDs to names and categories in one call. Duplicate IDs
// are sent once since ESI rejects repeated IDs.
func (c *UniverseClient) GetNames(ctx context.Context, ids []int64) ([]NameEntry, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	slog.InfoContext(ctx, "Resolving names via ESI", "id_count", len(unique))

	var result []NameEntry
	if err := transport.Call(ctx, c.requester, http.MethodPost, c.baseURL+EndpointNames, EndpointNames, unique, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSystems lists every solar system ID
func (c *UniverseClient) GetSystems(ctx context.Context) ([]int64, error) {
	var result []int64
	if err := transport.Call(ctx, c.requester, http.MethodGet, c.baseURL+EndpointSystems, EndpointSystems, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSystemJumps fetches the whole-universe jump snapshot
func (c *UniverseClient) GetSystemJumps(ctx context.Context) ([]SystemJumps, error) {
	var result []SystemJumps
	if err := transport.Call(ctx, c.requester, http.MethodGet, c.baseURL+EndpointSystemJumps, EndpointSystemJumps, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSystemKills fetches the whole-universe kill snapshot
func (c *UniverseClient) GetSystemKills(ctx context.Context) ([]SystemKills, error) {
	var result []SystemKills
	if err := transport.Call(ctx, c.requester, http.MethodGet, c.baseURL+EndpointSystemKills, EndpointSystemKills, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
