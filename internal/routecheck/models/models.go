package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// TermHit is one candidate entity for a search term
type TermHit struct {
	Name     string         `json:"name" yaml:"name"`
	Category EntityCategory `json:"category" yaml:"category"`
	ID       int64          `json:"id" yaml:"id"`
}

func (h TermHit) String() string {
	return fmt.Sprintf("%s (%s %d)", h.Name, h.Category, h.ID)
}

// TermHitSet holds the hits of one search term, partitioned by category.
// Every category is present, possibly empty.
type TermHitSet struct {
	term string
	hits map[EntityCategory][]TermHit
}

// TermHitSetRecord is the serialized form of a TermHitSet
type TermHitSetRecord struct {
	SearchTerm string               `json:"search_term" yaml:"search_term"`
	Hits       map[string][]TermHit `json:"hits" yaml:"hits"`
}

// NewTermHitSet returns an empty set with every category initialized
func NewTermHitSet(term string) *TermHitSet {
	hits := make(map[EntityCategory][]TermHit, len(EntityCategories))
	for _, c := range EntityCategories {
		hits[c] = []TermHit{}
	}
	return &TermHitSet{term: term, hits: hits}
}

// Term returns the search term the set belongs to
func (s *TermHitSet) Term() string {
	return s.term
}

// Add appends hit to its category
func (s *TermHitSet) Add(hit TermHit) error {
	if !hit.Category.Valid() {
		return fmt.Errorf("unknown entity category %d", int(hit.Category))
	}
	s.hits[hit.Category] = append(s.hits[hit.Category], hit)
	return nil
}

// HitsFor returns a copy of the hits in category c, never nil
func (s *TermHitSet) HitsFor(c EntityCategory) []TermHit {
	hits, ok := s.hits[c]
	if !ok {
		return []TermHit{}
	}
	return slices.Clone(hits)
}

// Len returns the number of hits across all categories
func (s *TermHitSet) Len() int {
	n := 0
	for _, hits := range s.hits {
		n += len(hits)
	}
	return n
}

// Record converts the set to its serialized form
func (s *TermHitSet) Record() TermHitSetRecord {
	hits := make(map[string][]TermHit, len(EntityCategories))
	for _, c := range EntityCategories {
		hits[c.String()] = s.HitsFor(c)
	}
	return TermHitSetRecord{SearchTerm: s.term, Hits: hits}
}

func (s *TermHitSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Record())
}

// TermSearchResult maps every searched term to its hit set. It is built
// once from the raw search payload and read-only afterwards.
type TermSearchResult struct {
	terms []string
	sets  map[string]*TermHitSet
}

// NewTermSearchResult assigns each candidate to every term that is a
// case-insensitive substring of the candidate's name. A candidate may land in
// several overlapping terms. Candidate order is preserved within a category.
func NewTermSearchResult(terms []string, candidates []TermHit) (*TermSearchResult, error) {
	result := &TermSearchResult{
		terms: slices.Clone(terms),
		sets:  make(map[string]*TermHitSet, len(terms)),
	}

	for _, term := range terms {
		if _, done := result.sets[term]; done {
			continue
		}
		set := NewTermHitSet(term)
		needle := strings.ToLower(term)
		for _, candidate := range candidates {
			if !strings.Contains(strings.ToLower(candidate.Name), needle) {
				continue
			}
			if err := set.Add(candidate); err != nil {
				return nil, err
			}
		}
		result.sets[term] = set
	}

	return result, nil
}

// Terms returns the searched terms in request order, repeats included
func (r *TermSearchResult) Terms() []string {
	return slices.Clone(r.terms)
}

// HitsFor returns the hit set for term. Unknown terms get an empty set.
func (r *TermSearchResult) HitsFor(term string) *TermHitSet {
	if set, ok := r.sets[term]; ok {
		return set
	}
	return NewTermHitSet(term)
}

// Record converts the result to term -> serialized hit set
func (r *TermSearchResult) Record() map[string]TermHitSetRecord {
	out := make(map[string]TermHitSetRecord, len(r.sets))
	for term, set := range r.sets {
		out[term] = set.Record()
	}
	return out
}

func (r *TermSearchResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Record())
}

// NameHit is a resolved ID from /universe/names/
type NameHit struct {
	ID       int64        `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Category NameCategory `json:"category" yaml:"category"`
}
