package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"go-waypoint/internal/adapters"
	"go-waypoint/internal/esitest"
	"go-waypoint/internal/routecheck/services"
	"go-waypoint/pkg/evegateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_FunctionEvent(t *testing.T) {
	esi := esitest.NewServer()
	defer esi.Close()

	client := evegateway.NewClientWithHTTP(esi.Client(), esi.URL, "waypoint-test")
	handler := newHandler(services.NewService(client.Universe, client.Routes))

	out, err := handler(context.Background(), json.RawMessage(`{"function":"get_systems","parameters":[]}`))
	require.NoError(t, err)

	resp, ok := out.(adapters.FunctionResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Body, 3)
}

func TestHandler_InvalidEvent(t *testing.T) {
	handler := newHandler(nil)

	_, err := handler(context.Background(), json.RawMessage(`not json`))
	assert.Error(t, err)
}
