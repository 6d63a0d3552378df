package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"go-waypoint/internal/routecheck/models"
	"go-waypoint/pkg/version"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

// nameRow is one resolved ID as printed by the names command
type nameRow struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

func parseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatHuman:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp any, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp any) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp any) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatHuman(resp any) (string, error) {
	switch v := resp.(type) {
	case *models.Route:
		return formatRouteHuman(v), nil
	case map[string]models.TermHitSetRecord:
		return formatSearchHuman(v), nil
	case map[string][]models.TermHit:
		return formatSystemsHuman(v), nil
	case []nameRow:
		return formatNamesHuman(v), nil
	case []int64:
		return formatIDsHuman(v), nil
	case version.Info:
		return formatVersionHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatRouteHuman(route *models.Route) string {
	if route.Empty() {
		return "No route found."
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSYSTEM\tID\tJUMPS\tKILLS")
	for i, wp := range route.Waypoints() {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", i+1, wp.SystemName, wp.SystemID, optionalInt(wp.ShipJumps), optionalInt(wp.ShipKills))
	}
	w.Flush()

	fmt.Fprintf(&b, "\n%d systems, %d jumps", route.Len(), route.Len()-1)
	return b.String()
}

func formatSearchHuman(records map[string]models.TermHitSetRecord) string {
	terms := make([]string, 0, len(records))
	for term := range records {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	var b strings.Builder
	for i, term := range terms {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%q\n", term)

		found := false
		for _, c := range models.EntityCategories {
			hits := records[term].Hits[c.String()]
			if len(hits) == 0 {
				continue
			}
			found = true
			for _, hit := range hits {
				fmt.Fprintf(&b, "  %-16s %-12d %s\n", c.String(), hit.ID, hit.Name)
			}
		}
		if !found {
			b.WriteString("  no matches\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatSystemsHuman(hits map[string][]models.TermHit) string {
	terms := make([]string, 0, len(hits))
	for term := range hits {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TERM\tSYSTEM\tID")
	for _, term := range terms {
		if len(hits[term]) == 0 {
			fmt.Fprintf(w, "%s\t-\t-\n", term)
			continue
		}
		for _, hit := range hits[term] {
			fmt.Fprintf(w, "%s\t%s\t%d\n", term, hit.Name, hit.ID)
		}
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func formatNamesHuman(rows []nameRow) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\n", row.ID, row.Name, row.Category)
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func formatIDsHuman(ids []int64) string {
	lines := make([]string, len(ids))
	for i, id := range ids {
		lines[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(lines, "\n")
}

func formatVersionHuman(info version.Info) string {
	return fmt.Sprintf("waypointctl %s\ncommit: %s\nbuilt: %s\ngo: %s (%s)",
		info.Version, info.GitCommit, info.BuildDate, info.GoVersion, info.Platform)
}
