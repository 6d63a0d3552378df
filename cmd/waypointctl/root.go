package main

import (
	"context"
	"fmt"
	"os"

	"go-waypoint/internal/routecheck/services"
	"go-waypoint/pkg/app"
	"go-waypoint/pkg/version"

	"github.com/spf13/cobra"
)

// cli carries the state shared by every subcommand
type cli struct {
	format  string
	esiURL  string
	verbose bool

	appCtx  *app.AppContext
	service *services.Service
}

func newRootCmd() *cobra.Command {
	return (&cli{}).rootCmd()
}

func (c *cli) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "waypointctl",
		Short: "Check EVE Online routes against ESI",
		Long: `waypointctl resolves solar system names through ESI, plans a route
between them and enriches every waypoint with the latest jump and kill counts.

Examples:
  waypointctl route Jita Amarr
  waypointctl route Jita Amarr --format human
  waypointctl search Jita "Amarr Empire"
  waypointctl systems Jita Tama
  waypointctl names 30000142 30002187`,
		Version:       version.GetVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parseFormat(c.format); err != nil {
				return err
			}
			return nil
		},
	}
	rootCmd.SetVersionTemplate("waypointctl {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.format, "format", string(FormatHuman), "Output format (json, yaml, human)")
	flags.StringVar(&c.esiURL, "esi-url", "", "ESI base URL (defaults to ESI_BASE_URL)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Log ESI traffic to stderr")

	rootCmd.AddCommand(
		newRouteCmd(c),
		newSearchCmd(c),
		newSystemsCmd(c),
		newNamesCmd(c),
		newVersionCmd(c),
		newOpenAPICmd(c),
	)

	// Shut down after every subcommand, failed ones included
	for _, sub := range rootCmd.Commands() {
		runE := sub.RunE
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			defer c.shutdown()
			return runE(cmd, args)
		}
	}

	return rootCmd
}

// core builds the route check service on first use
func (c *cli) core(cmd *cobra.Command) (*services.Service, error) {
	if c.service != nil {
		return c.service, nil
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}

	appCtx, err := app.InitializeAppWithOptions("waypointctl", app.Options{
		LogOutput:  cmd.ErrOrStderr(),
		LogLevel:   level,
		ESIBaseURL: c.esiURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	c.appCtx = appCtx
	c.service = services.NewService(appCtx.ESIClient.Universe, appCtx.ESIClient.Routes)
	return c.service, nil
}

// shutdown flushes telemetry once the command has finished, successfully or not
func (c *cli) shutdown() {
	if c.appCtx == nil {
		return
	}
	if err := c.appCtx.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: shutdown failed: %v\n", err)
	}
	c.appCtx = nil
	c.service = nil
}

// print renders v in the selected format to the command's output
func (c *cli) print(cmd *cobra.Command, v any) error {
	format, err := parseFormat(c.format)
	if err != nil {
		return err
	}

	out, err := FormatResponse(v, format)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
