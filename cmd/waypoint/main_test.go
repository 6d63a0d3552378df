package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-waypoint/internal/esitest"
	"go-waypoint/pkg/evegateway"
	"go-waypoint/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	t.Setenv("ENABLE_TELEMETRY", "false")
	metrics.Init()

	esi := esitest.NewServer()
	defer esi.Close()

	client := evegateway.NewClientWithHTTP(esi.Client(), esi.URL, "waypoint-test")

	for _, prefix := range []string{"", "/api"} {
		t.Run("prefix="+prefix, func(t *testing.T) {
			router, modules := newRouter(client, prefix)
			require.Len(t, modules, 1)

			get := func(path string) *httptest.ResponseRecorder {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				return w
			}

			w := get("/health")
			require.Equal(t, http.StatusOK, w.Code)
			var health map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
			assert.Equal(t, "healthy", health["status"])

			w = get(prefix + "/routecheck/health")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"module":"routecheck"`)

			w = get(prefix + "/route/check?origin=Jita&destination=Amarr")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var waypoints []map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &waypoints))
			assert.Len(t, waypoints, 3)

			w = get(prefix + "/openapi.json")
			assert.Equal(t, http.StatusOK, w.Code)

			w = get("/metrics")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "waypoint_route_checks_total")
			assert.Contains(t, w.Body.String(), "waypoint_esi_requests_total")
		})
	}
}
