package services

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"go-waypoint/internal/routecheck/models"
	"go-waypoint/pkg/evegateway/transport"
)

// ErrEmptyTerms is returned when a search is requested without any term
var ErrEmptyTerms = errors.New("at least one search term is required")

// AmbiguousRouteError reports every term that did not resolve to exactly one
// solar system. Both fields may be populated at once.
type AmbiguousRouteError struct {
	AmbiguousHits map[string][]models.TermHit
	NotFoundTerms []string
}

func (e *AmbiguousRouteError) Error() string {
	var b strings.Builder
	b.WriteString("Ambiguous route.")

	terms := make([]string, 0, len(e.AmbiguousHits))
	for term := range e.AmbiguousHits {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		names := make([]string, 0, len(e.AmbiguousHits[term]))
		for _, hit := range e.AmbiguousHits[term] {
			names = append(names, hit.Name)
		}
		fmt.Fprintf(&b, "\n%q matches multiple systems: %s", term, strings.Join(names, ", "))
	}
	if len(e.NotFoundTerms) > 0 {
		quoted := make([]string, len(e.NotFoundTerms))
		for i, term := range e.NotFoundTerms {
			quoted[i] = fmt.Sprintf("%q", term)
		}
		fmt.Fprintf(&b, "\nNo system found for: %s", strings.Join(quoted, ", "))
	}
	return b.String()
}

// DataIntegrityError means ESI routed through a system it could not name
type DataIntegrityError struct {
	SystemID int64
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("route system %d has no resolved name", e.SystemID)
}

// HTTPStatus maps a core error to the status an adapter should answer with
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if esiErr, ok := transport.AsESIError(err); ok {
		return esiErr.StatusCode
	}

	var ambiguous *AmbiguousRouteError
	if errors.As(err, &ambiguous) {
		return http.StatusNotFound
	}

	var integrity *DataIntegrityError
	if errors.As(err, &integrity) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, ErrEmptyTerms) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
