package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-waypoint/pkg/evegateway/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRoute(t *testing.T) {
	tests := []struct {
		name         string
		flag         Flag
		expectedFlag string
	}{
		{name: "default flag", flag: "", expectedFlag: "shortest"},
		{name: "secure", flag: FlagSecure, expectedFlag: "secure"},
		{name: "insecure", flag: FlagInsecure, expectedFlag: "insecure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/route/30000142/30002187/", r.URL.Path)
				assert.Equal(t, tt.expectedFlag, r.URL.Query().Get("flag"))
				fmt.Fprint(w, `[30000142, 30002813, 30002187]`)
			}))
			defer server.Close()

			client := NewRoutesClient(transport.NewDefaultRequester(server.Client(), "test"), server.URL)
			route, err := client.GetRoute(context.Background(), 30000142, 30002187, tt.flag)

			require.NoError(t, err)
			assert.Equal(t, []int64{30000142, 30002813, 30002187}, route)
		})
	}
}

func TestGetRoute_InvalidFlag(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewRoutesClient(transport.NewDefaultRequester(server.Client(), "test"), server.URL)
	_, err := client.GetRoute(context.Background(), 1, 2, Flag("fastest"))

	require.Error(t, err)
	assert.False(t, called)
}

func TestGetRoute_NoPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"No route found"}`)
	}))
	defer server.Close()

	client := NewRoutesClient(transport.NewDefaultRequester(server.Client(), "test"), server.URL)
	_, err := client.GetRoute(context.Background(), 30000142, 31000005, FlagShortest)

	esiErr, ok := transport.AsESIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, esiErr.StatusCode)
	assert.Equal(t, EndpointRoute, esiErr.Endpoint)
}

func TestFlagValid(t *testing.T) {
	assert.True(t, FlagShortest.Valid())
	assert.True(t, FlagSecure.Valid())
	assert.True(t, FlagInsecure.Valid())
	assert.False(t, Flag("").Valid())
	assert.False(t, Flag("SHORTEST").Valid())
}
