package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"go-waypoint/internal/routecheck/models"
	"go-waypoint/pkg/evegateway/routes"
	"go-waypoint/pkg/evegateway/transport"
	"go-waypoint/pkg/evegateway/universe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUniverse struct {
	mu    sync.Mutex
	calls []string

	ids      *universe.IDsResponse
	idsErr   error
	names    []universe.NameEntry
	namesErr error
	systems  []int64
	jumps    []universe.SystemJumps
	jumpsErr error
	kills    []universe.SystemKills
	killsErr error
}

func (f *fakeUniverse) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeUniverse) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeUniverse) SearchIDs(ctx context.Context, terms []string) (*universe.IDsResponse, error) {
	f.record("ids")
	return f.ids, f.idsErr
}

func (f *fakeUniverse) GetNames(ctx context.Context, ids []int64) ([]universe.NameEntry, error) {
	f.record("names")
	return f.names, f.namesErr
}

func (f *fakeUniverse) GetSystems(ctx context.Context) ([]int64, error) {
	f.record("systems")
	return f.systems, nil
}

func (f *fakeUniverse) GetSystemJumps(ctx context.Context) ([]universe.SystemJumps, error) {
	f.record("jumps")
	return f.jumps, f.jumpsErr
}

func (f *fakeUniverse) GetSystemKills(ctx context.Context) ([]universe.SystemKills, error) {
	f.record("kills")
	return f.kills, f.killsErr
}

type fakeRoutes struct {
	calls int
	got   struct {
		origin, destination int64
		flag                routes.Flag
	}
	route []int64
	err   error
}

func (f *fakeRoutes) GetRoute(ctx context.Context, origin, destination int64, flag routes.Flag) ([]int64, error) {
	f.calls++
	f.got.origin, f.got.destination, f.got.flag = origin, destination, flag
	return f.route, f.err
}

func jitaAmarrUniverse() *fakeUniverse {
	return &fakeUniverse{
		ids: &universe.IDsResponse{
			Systems: []universe.IDHit{
				{ID: 30000142, Name: "Jita"},
				{ID: 30002187, Name: "Amarr"},
			},
			Factions: []universe.IDHit{
				{ID: 500003, Name: "Amarr Empire"},
			},
		},
		// Deliberately not in route order.
		names: []universe.NameEntry{
			{ID: 30002187, Name: "Amarr", Category: "solar_system"},
			{ID: 30000142, Name: "Jita", Category: "solar_system"},
			{ID: 30002813, Name: "Tama", Category: "solar_system"},
		},
		jumps: []universe.SystemJumps{
			{SystemID: 30002187, ShipJumps: 900},
			{SystemID: 30000142, ShipJumps: 1500},
		},
		kills: []universe.SystemKills{
			{SystemID: 30002813, ShipKills: 12, NPCKills: 3},
			{SystemID: 30000142, ShipKills: 0},
		},
	}
}

func TestCheckRoute_JitaToAmarr(t *testing.T) {
	t.Setenv("ENABLE_TELEMETRY", "false")

	u := jitaAmarrUniverse()
	r := &fakeRoutes{route: []int64{30000142, 30002813, 30002187}}
	service := NewService(u, r)

	route, err := service.CheckRoute(context.Background(), "Jita", "Amarr")
	require.NoError(t, err)

	assert.Equal(t, int64(30000142), r.got.origin)
	assert.Equal(t, int64(30002187), r.got.destination)
	assert.Equal(t, routes.FlagShortest, r.got.flag)

	waypoints := route.Waypoints()
	require.Len(t, waypoints, 3)
	assert.Equal(t, []int64{30000142, 30002813, 30002187}, route.SystemIDs())
	assert.Equal(t, "Jita", waypoints[0].SystemName)
	assert.Equal(t, "Tama", waypoints[1].SystemName)
	assert.Equal(t, "Amarr", waypoints[2].SystemName)

	require.NotNil(t, waypoints[0].ShipJumps)
	assert.Equal(t, 1500, *waypoints[0].ShipJumps)
	require.NotNil(t, waypoints[0].ShipKills)
	assert.Equal(t, 0, *waypoints[0].ShipKills)

	assert.Nil(t, waypoints[1].ShipJumps)
	require.NotNil(t, waypoints[1].ShipKills)
	assert.Equal(t, 12, *waypoints[1].ShipKills)

	require.NotNil(t, waypoints[2].ShipJumps)
	assert.Equal(t, 900, *waypoints[2].ShipJumps)
	assert.Nil(t, waypoints[2].ShipKills)
}

func TestCheckRouteWithFlag_PassesFlag(t *testing.T) {
	u := jitaAmarrUniverse()
	r := &fakeRoutes{route: []int64{30000142, 30002813, 30002187}}

	_, err := NewService(u, r).CheckRouteWithFlag(context.Background(), "Jita", "Amarr", routes.FlagSecure)
	require.NoError(t, err)
	assert.Equal(t, routes.FlagSecure, r.got.flag)
}

func TestCheckRoute_AmbiguousOriginSkipsRouting(t *testing.T) {
	u := &fakeUniverse{
		ids: &universe.IDsResponse{
			Systems: []universe.IDHit{
				{ID: 30000142, Name: "Jita"},
				{ID: 30099999, Name: "Jita"},
				{ID: 30002187, Name: "Amarr"},
			},
		},
	}
	r := &fakeRoutes{}

	_, err := NewService(u, r).CheckRoute(context.Background(), "Jita", "Amarr")

	var ambiguous *AmbiguousRouteError
	require.ErrorAs(t, err, &ambiguous)
	assert.Len(t, ambiguous.AmbiguousHits["Jita"], 2)
	assert.Empty(t, ambiguous.NotFoundTerms)
	assert.Equal(t, 0, r.calls)
	assert.False(t, u.called("names"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestCheckRoute_SearchFailurePropagates(t *testing.T) {
	esiErr := &transport.ESIError{StatusCode: 500, Message: "Request failed with status code: 500", Endpoint: universe.EndpointIDs}
	u := &fakeUniverse{idsErr: esiErr}
	r := &fakeRoutes{}

	_, err := NewService(u, r).CheckRoute(context.Background(), "Jita", "Amarr")

	got, ok := transport.AsESIError(err)
	require.True(t, ok)
	assert.Equal(t, 500, got.StatusCode)
	assert.Same(t, esiErr, got)
	assert.Equal(t, 0, r.calls)
	assert.False(t, u.called("names"))
	assert.False(t, u.called("jumps"))
	assert.False(t, u.called("kills"))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestCheckRoute_RouteFailurePassesStatus(t *testing.T) {
	u := jitaAmarrUniverse()
	r := &fakeRoutes{err: &transport.ESIError{StatusCode: 404, Message: "Request failed with status code: 404"}}

	_, err := NewService(u, r).CheckRoute(context.Background(), "Jita", "Amarr")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.False(t, u.called("names"))
}

func TestCheckRoute_EnrichmentFailure(t *testing.T) {
	u := jitaAmarrUniverse()
	u.killsErr = &transport.ESIError{StatusCode: 503, Message: "Request failed with status code: 503"}
	r := &fakeRoutes{route: []int64{30000142, 30002187}}

	_, err := NewService(u, r).CheckRoute(context.Background(), "Jita", "Amarr")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
}

func TestCheckRoute_EmptyRouteSkipsEnrichment(t *testing.T) {
	u := jitaAmarrUniverse()
	r := &fakeRoutes{route: []int64{}}

	route, err := NewService(u, r).CheckRoute(context.Background(), "Jita", "Amarr")
	require.NoError(t, err)
	assert.True(t, route.Empty())
	assert.False(t, u.called("names"))
	assert.False(t, u.called("jumps"))
}

func TestCheckRoute_MissingNameIsIntegrityError(t *testing.T) {
	u := jitaAmarrUniverse()
	u.names = u.names[:2]
	r := &fakeRoutes{route: []int64{30000142, 30002813, 30002187}}

	_, err := NewService(u, r).CheckRoute(context.Background(), "Jita", "Amarr")

	var integrity *DataIntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, int64(30002813), integrity.SystemID)
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(err))
}

func TestResolveUniqueSystemIDs(t *testing.T) {
	u := &fakeUniverse{
		ids: &universe.IDsResponse{
			Systems: []universe.IDHit{
				{ID: 30000142, Name: "Jita"},
				{ID: 30002187, Name: "Amarr"},
			},
		},
	}
	service := NewService(u, &fakeRoutes{})

	t.Run("all unique", func(t *testing.T) {
		ids, err := service.ResolveUniqueSystemIDs(context.Background(), []string{"Jita", "Amarr"})
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"Jita": 30000142, "Amarr": 30002187}, ids)
	})

	t.Run("does not stop at the first bad term", func(t *testing.T) {
		ids, err := service.ResolveUniqueSystemIDs(context.Background(), []string{"Jita", "Amarr", "Zzzznotreal"})
		assert.Nil(t, ids)

		var ambiguous *AmbiguousRouteError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, []string{"Zzzznotreal"}, ambiguous.NotFoundTerms)
		assert.Empty(t, ambiguous.AmbiguousHits)
	})

	t.Run("reports ambiguous and missing together", func(t *testing.T) {
		u.ids.Systems = append(u.ids.Systems, universe.IDHit{ID: 30045329, Name: "Amarr Prime"})
		defer func() { u.ids.Systems = u.ids.Systems[:2] }()

		_, err := service.ResolveUniqueSystemIDs(context.Background(), []string{"Zzzz", "Amarr", "Jita", "Qqqq"})

		var ambiguous *AmbiguousRouteError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, []string{"Zzzz", "Qqqq"}, ambiguous.NotFoundTerms)
		require.Len(t, ambiguous.AmbiguousHits["Amarr"], 2)
		assert.Equal(t, "Amarr", ambiguous.AmbiguousHits["Amarr"][0].Name)
		assert.Equal(t, "Amarr Prime", ambiguous.AmbiguousHits["Amarr"][1].Name)
		assert.Contains(t, err.Error(), "Ambiguous route.")
		assert.Contains(t, err.Error(), `"Amarr" matches multiple systems: Amarr, Amarr Prime`)
		assert.Contains(t, err.Error(), `No system found for: "Zzzz", "Qqqq"`)
	})

	t.Run("non-system hits do not count", func(t *testing.T) {
		u.ids.Factions = []universe.IDHit{{ID: 500001, Name: "Caldari State"}}
		defer func() { u.ids.Factions = nil }()

		_, err := service.ResolveUniqueSystemIDs(context.Background(), []string{"Caldari"})

		var ambiguous *AmbiguousRouteError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, []string{"Caldari"}, ambiguous.NotFoundTerms)
	})

	t.Run("repeated terms resolve once", func(t *testing.T) {
		ids, err := service.ResolveUniqueSystemIDs(context.Background(), []string{"Jita", "Jita"})
		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"Jita": 30000142}, ids)
	})
}

func TestSearchTerms_EveryCategoryPresent(t *testing.T) {
	u := &fakeUniverse{ids: &universe.IDsResponse{
		InventoryTypes: []universe.IDHit{{ID: 29984, Name: "Tengu"}},
	}}

	result, err := NewService(u, &fakeRoutes{}).SearchTerms(context.Background(), []string{"Tengu", "nothing"})
	require.NoError(t, err)

	for _, term := range []string{"Tengu", "nothing"} {
		record := result.HitsFor(term).Record()
		assert.Len(t, record.Hits, len(models.EntityCategories))
	}
	assert.Equal(t, []models.TermHit{{Name: "Tengu", Category: models.CategoryInventoryType, ID: 29984}},
		result.HitsFor("Tengu").HitsFor(models.CategoryInventoryType))
}

func TestSearchTerms_RejectsEmpty(t *testing.T) {
	u := &fakeUniverse{}
	_, err := NewService(u, &fakeRoutes{}).SearchTerms(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyTerms)
	assert.False(t, u.called("ids"))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestSystemsByTerms(t *testing.T) {
	u := &fakeUniverse{ids: &universe.IDsResponse{
		Systems: []universe.IDHit{
			{ID: 30000142, Name: "Jita"},
			{ID: 30002187, Name: "Amarr"},
			{ID: 30045329, Name: "Amarr Prime"},
		},
		Stations: []universe.IDHit{{ID: 60008494, Name: "Amarr VIII (Oris) - Emperor Family Academy"}},
	}}

	systems, err := NewService(u, &fakeRoutes{}).SystemsByTerms(context.Background(), []string{"Amarr", "Nowhere"})
	require.NoError(t, err)

	assert.Len(t, systems["Amarr"], 2)
	assert.NotNil(t, systems["Nowhere"])
	assert.Empty(t, systems["Nowhere"])
}

func TestNamesForIDs(t *testing.T) {
	u := &fakeUniverse{names: []universe.NameEntry{
		{ID: 30000142, Name: "Jita", Category: "solar_system"},
		{ID: 1, Name: "Odd", Category: "structure"},
	}}

	names, err := NewService(u, &fakeRoutes{}).NamesForIDs(context.Background(), []int64{30000142, 1})
	require.NoError(t, err)

	assert.Equal(t, models.NameHit{ID: 30000142, Name: "Jita", Category: models.NameCategorySolarSystem}, names[30000142])
	_, ok := names[1]
	assert.False(t, ok)
}

func TestGetSystemNamesAndSystems(t *testing.T) {
	u := &fakeUniverse{
		names: []universe.NameEntry{
			{ID: 30002187, Name: "Amarr", Category: "solar_system"},
			{ID: 30000142, Name: "Jita", Category: "solar_system"},
		},
	}
	service := NewService(u, &fakeRoutes{})

	names, err := service.GetSystemNames(context.Background(), []int64{30000142, 30002187})
	require.NoError(t, err)
	assert.Equal(t, []string{"Amarr", "Jita"}, names)

	systems, err := service.GetSystems(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, systems)
	assert.Empty(t, systems)
}

func TestAssemble_PreservesRouteOrder(t *testing.T) {
	names := map[int64]models.NameHit{
		30002053: {ID: 30002053, Name: "Hek"},
		30000142: {ID: 30000142, Name: "Jita"},
		30002187: {ID: 30002187, Name: "Amarr"},
	}
	jumps := []universe.SystemJumps{
		{SystemID: 30002053, ShipJumps: 7},
		{SystemID: 30000142, ShipJumps: 0},
	}

	route, err := Assemble([]int64{30000142, 30002187, 30002053}, names, jumps, nil)
	require.NoError(t, err)

	assert.Equal(t, []int64{30000142, 30002187, 30002053}, route.SystemIDs())

	jita, _ := route.Waypoint(30000142)
	require.NotNil(t, jita.ShipJumps)
	assert.Equal(t, 0, *jita.ShipJumps)
	assert.Nil(t, jita.ShipKills)

	amarr, _ := route.Waypoint(30002187)
	assert.Nil(t, amarr.ShipJumps)
}

func TestAssemble_KeepsRepeatedSystems(t *testing.T) {
	names := map[int64]models.NameHit{1: {ID: 1, Name: "A"}, 2: {ID: 2, Name: "B"}}

	route, err := Assemble([]int64{1, 2, 1}, names, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 1}, route.SystemIDs())
}

func TestHTTPStatusAndDescribe(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"nil", nil, http.StatusOK},
		{"esi", &transport.ESIError{StatusCode: 420, Message: "Request failed with status code: 420"}, 420},
		{"wrapped esi", errors.Join(errors.New("ctx"), &transport.ESIError{StatusCode: 502, Message: "Request failed with status code: 502"}), 502},
		{"ambiguous", &AmbiguousRouteError{NotFoundTerms: []string{"x"}}, http.StatusNotFound},
		{"integrity", &DataIntegrityError{SystemID: 1}, http.StatusInternalServerError},
		{"empty terms", ErrEmptyTerms, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
			if tt.err != nil {
				assert.NotEmpty(t, Describe(tt.err))
			}
		})
	}
}
