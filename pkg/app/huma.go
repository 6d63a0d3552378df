package app

import (
	"go-waypoint/pkg/version"

	"github.com/danielgtaylor/huma/v2"
)

// NewHumaConfig returns the API metadata shared by the server and the OpenAPI exporter
func NewHumaConfig() huma.Config {
	humaConfig := huma.DefaultConfig("Go Waypoint API", version.Version)
	humaConfig.Info.Description = "EVE Online route checks with live jump and kill statistics"
	return humaConfig
}
