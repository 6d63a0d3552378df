package main

import (
	"fmt"
	"strconv"

	"go-waypoint/internal/routecheck/services"
	"go-waypoint/pkg/version"

	"github.com/spf13/cobra"
)

// fail turns a core error into the message the HTTP surface would show
func fail(err error) error {
	return fmt.Errorf("%s (status %d)", services.Describe(err), services.HTTPStatus(err))
}

func newRouteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "route <origin> <destination>",
		Short: "Plan and enrich a route between two systems",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.core(cmd)
			if err != nil {
				return err
			}

			route, err := core.CheckRoute(cmd.Context(), args[0], args[1])
			if err != nil {
				return fail(err)
			}
			return c.print(cmd, route)
		},
	}
}

func newSearchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>...",
		Short: "Classify search terms by entity category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.core(cmd)
			if err != nil {
				return err
			}

			result, err := core.SearchTerms(cmd.Context(), args)
			if err != nil {
				return fail(err)
			}
			return c.print(cmd, result.Record())
		},
	}
}

func newSystemsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "systems [name]...",
		Short: "Look up solar systems by name, or list every system ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := c.core(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				ids, err := core.GetSystems(cmd.Context())
				if err != nil {
					return fail(err)
				}
				return c.print(cmd, ids)
			}

			hits, err := core.SystemsByTerms(cmd.Context(), args)
			if err != nil {
				return fail(err)
			}
			return c.print(cmd, hits)
		},
	}
}

func newNamesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "names <id>...",
		Short: "Resolve entity IDs to names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid ID %q: must be a positive integer", arg)
				}
				ids = append(ids, id)
			}

			core, err := c.core(cmd)
			if err != nil {
				return err
			}

			names, err := core.NamesForIDs(cmd.Context(), ids)
			if err != nil {
				return fail(err)
			}

			rows := make([]nameRow, 0, len(ids))
			seen := make(map[int64]bool, len(ids))
			for _, id := range ids {
				hit, ok := names[id]
				if !ok || seen[id] {
					continue
				}
				seen[id] = true
				rows = append(rows, nameRow{ID: id, Name: hit.Name, Category: hit.Category.String()})
			}
			return c.print(cmd, rows)
		},
	}
}

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.print(cmd, version.Get())
		},
	}
}
