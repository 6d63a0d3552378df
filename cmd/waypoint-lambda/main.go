package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"go-waypoint/internal/adapters"
	"go-waypoint/internal/routecheck"
	"go-waypoint/pkg/app"

	"github.com/aws/aws-lambda-go/lambda"
)

// newHandler binds the event dispatcher to one core instance
func newHandler(core adapters.RouteChecker) func(context.Context, json.RawMessage) (any, error) {
	return func(ctx context.Context, event json.RawMessage) (any, error) {
		return adapters.Dispatch(ctx, core, event)
	}
}

func main() {
	appCtx, err := app.InitializeAppWithOptions("go-waypoint-lambda", app.Options{LogOutput: os.Stderr})
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer appCtx.Shutdown(context.Background())

	lambda.Start(newHandler(routecheck.NewModule(appCtx.ESIClient).GetService()))
}
