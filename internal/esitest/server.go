// Package esitest serves a canned ESI universe over httptest for package tests.
package esitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Well-known fixture systems
const (
	JitaID  int64 = 30000142
	TamaID  int64 = 30002813
	AmarrID int64 = 30002187
)

type idHit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Server is a fake ESI with the Jita to Amarr fixture loaded
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string

	systems  []idHit
	stations []idHit
	factions []idHit

	route      []int64
	failPath   string
	failStatus int
}

// NewServer starts a fake ESI. Close it when done.
func NewServer() *Server {
	s := &Server{
		systems: []idHit{
			{ID: JitaID, Name: "Jita"},
			{ID: TamaID, Name: "Tama"},
			{ID: AmarrID, Name: "Amarr"},
		},
		stations: []idHit{
			{ID: 60003760, Name: "Jita IV - Moon 4 - Caldari Navy Assembly Plant"},
		},
		factions: []idHit{
			{ID: 500003, Name: "Amarr Empire"},
		},
		route: []int64{JitaID, TamaID, AmarrID},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// AddSystem makes another system resolvable, for ambiguity fixtures
func (s *Server) AddSystem(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systems = append(s.systems, idHit{ID: id, Name: name})
}

// Requests returns "METHOD path" for every request served so far
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Called reports whether any request path started with prefix
func (s *Server) Called(prefix string) bool {
	for _, r := range s.Requests() {
		if strings.HasPrefix(strings.SplitN(r, " ", 2)[1], prefix) {
			return true
		}
	}
	return false
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	failPath, failStatus, route := s.failPath, s.failStatus, s.route
	s.mu.Unlock()

	if failPath != "" && strings.HasPrefix(r.URL.Path, failPath) {
		w.WriteHeader(failStatus)
		fmt.Fprint(w, `{"error":"fixture failure"}`)
		return
	}

	switch {
	case r.URL.Path == "/universe/ids/":
		s.writeIDs(w, r)
	case r.URL.Path == "/universe/names/":
		s.writeNames(w, r)
	case r.URL.Path == "/universe/systems/":
		writeJSON(w, s.systemIDs())
	case r.URL.Path == "/universe/system_jumps/":
		writeJSON(w, []map[string]int64{
			{"system_id": AmarrID, "ship_jumps": 900},
			{"system_id": JitaID, "ship_jumps": 1500},
		})
	case r.URL.Path == "/universe/system_kills/":
		writeJSON(w, []map[string]int64{
			{"system_id": TamaID, "ship_kills": 12, "npc_kills": 3, "pod_kills": 2},
		})
	case strings.HasPrefix(r.URL.Path, "/route/"):
		writeJSON(w, route)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"Not found"}`)
	}
}

// writeIDs mimics ESI: exact name matches only, empty categories omitted
func (s *Server) writeIDs(w http.ResponseWriter, r *http.Request) {
	var terms []string
	if err := json.NewDecoder(r.Body).Decode(&terms); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string][]idHit{}
	add := func(key string, hits []idHit) {
		for _, h := range hits {
			for _, t := range terms {
				if strings.EqualFold(h.Name, t) {
					out[key] = append(out[key], h)
					break
				}
			}
		}
	}
	add("systems", s.systems)
	add("stations", s.stations)
	add("factions", s.factions)

	writeJSON(w, out)
}

func (s *Server) writeNames(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	type nameEntry struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	var out []nameEntry
	for _, id := range ids {
		for _, sys := range s.systems {
			if sys.ID == id {
				out = append(out, nameEntry{ID: id, Name: sys.Name, Category: "solar_system"})
			}
		}
	}
	writeJSON(w, out)
}

func (s *Server) systemIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.systems))
	for _, sys := range s.systems {
		ids = append(ids, sys.ID)
	}
	return ids
}

// SetRoute replaces the route returned by /route/
func (s *Server) SetRoute(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.route = ids
}

// Fail makes every request under pathPrefix answer with status
func (s *Server) Fail(pathPrefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPath, s.failStatus = pathPrefix, status
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
