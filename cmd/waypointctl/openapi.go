package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go-waypoint/internal/routecheck"
	"go-waypoint/pkg/app"
	"go-waypoint/pkg/config"
	"go-waypoint/pkg/evegateway"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// buildOpenAPI registers every module on a throwaway router. No ESI call is made.
func buildOpenAPI() *huma.OpenAPI {
	api := humachi.New(chi.NewRouter(), app.NewHumaConfig())

	client := evegateway.NewClientWithHTTP(http.DefaultClient, config.DefaultESIBaseURL, "waypointctl")
	routecheck.NewModule(client).RegisterUnifiedRoutes(api, "")

	return api.OpenAPI()
}

func newOpenAPICmd(c *cli) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Export the HTTP API as an OpenAPI 3.1 document",
		Long: `Export the HTTP API as an OpenAPI 3.1 document.

Only json and yaml formats apply; human falls back to json.

Examples:
  waypointctl openapi --format json -o waypoint-openapi.json
  waypointctl openapi --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := json.MarshalIndent(buildOpenAPI(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal OpenAPI document: %w", err)
			}

			if format, _ := parseFormat(c.format); format == FormatYAML {
				var tree any
				if err := json.Unmarshal(doc, &tree); err != nil {
					return fmt.Errorf("failed to convert OpenAPI document: %w", err)
				}
				if doc, err = yaml.Marshal(tree); err != nil {
					return fmt.Errorf("failed to marshal YAML: %w", err)
				}
			}

			if outFile == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(doc))
				return err
			}
			if err := os.WriteFile(outFile, doc, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "OpenAPI document written to %s\n", outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "Write to file instead of stdout")
	return cmd
}
