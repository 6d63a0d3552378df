package models

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
)

// EntityCategory is the kind of entity a /universe/ids/ hit refers to
type EntityCategory int

const (
	CategoryAgent EntityCategory = iota
	CategoryAlliance
	CategoryCharacter
	CategoryConstellation
	CategoryCorporation
	CategoryFaction
	CategoryInventoryType
	CategoryRegion
	CategoryStation
	CategorySystem
)

// EntityCategories lists every category in wire order
var EntityCategories = []EntityCategory{
	CategoryAgent,
	CategoryAlliance,
	CategoryCharacter,
	CategoryConstellation,
	CategoryCorporation,
	CategoryFaction,
	CategoryInventoryType,
	CategoryRegion,
	CategoryStation,
	CategorySystem,
}

// String returns the /universe/ids/ key for c
func (c EntityCategory) String() string {
	switch c {
	case CategoryAgent:
		return "agents"
	case CategoryAlliance:
		return "alliances"
	case CategoryCharacter:
		return "characters"
	case CategoryConstellation:
		return "constellations"
	case CategoryCorporation:
		return "corporations"
	case CategoryFaction:
		return "factions"
	case CategoryInventoryType:
		return "inventory_types"
	case CategoryRegion:
		return "regions"
	case CategoryStation:
		return "stations"
	case CategorySystem:
		return "systems"
	}
	return fmt.Sprintf("EntityCategory(%d)", int(c))
}

// Valid reports whether c is a member of the enumeration
func (c EntityCategory) Valid() bool {
	return c >= CategoryAgent && c <= CategorySystem
}

// MarshalText encodes c as its wire name
func (c EntityCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown entity category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a wire name
func (c *EntityCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseEntityCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseEntityCategory maps a wire name back to its category
func ParseEntityCategory(s string) (EntityCategory, error) {
	for _, c := range EntityCategories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown entity category %q", s)
}

// Schema documents c as its string wire name in the OpenAPI document
func (EntityCategory) Schema(r huma.Registry) *huma.Schema {
	enum := make([]any, len(EntityCategories))
	for i, c := range EntityCategories {
		enum[i] = c.String()
	}
	return &huma.Schema{Type: huma.TypeString, Enum: enum}
}

// NameCategory is the category reported by /universe/names/
type NameCategory int

const (
	NameCategoryAlliance NameCategory = iota
	NameCategoryCharacter
	NameCategoryConstellation
	NameCategoryCorporation
	NameCategoryFaction
	NameCategoryInventoryType
	NameCategoryRegion
	NameCategorySolarSystem
	NameCategoryStation
)

// NameCategories lists every name category
var NameCategories = []NameCategory{
	NameCategoryAlliance,
	NameCategoryCharacter,
	NameCategoryConstellation,
	NameCategoryCorporation,
	NameCategoryFaction,
	NameCategoryInventoryType,
	NameCategoryRegion,
	NameCategorySolarSystem,
	NameCategoryStation,
}

func (c NameCategory) String() string {
	switch c {
	case NameCategoryAlliance:
		return "alliance"
	case NameCategoryCharacter:
		return "character"
	case NameCategoryConstellation:
		return "constellation"
	case NameCategoryCorporation:
		return "corporation"
	case NameCategoryFaction:
		return "faction"
	case NameCategoryInventoryType:
		return "inventory_type"
	case NameCategoryRegion:
		return "region"
	case NameCategorySolarSystem:
		return "solar_system"
	case NameCategoryStation:
		return "station"
	}
	return fmt.Sprintf("NameCategory(%d)", int(c))
}

// Valid reports whether c is a member of the enumeration
func (c NameCategory) Valid() bool {
	return c >= NameCategoryAlliance && c <= NameCategoryStation
}

// MarshalText encodes c as its wire name
func (c NameCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown name category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a wire name
func (c *NameCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseNameCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseNameCategory maps a wire name back to its category
func ParseNameCategory(s string) (NameCategory, error) {
	for _, c := range NameCategories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown name category %q", s)
}

// Schema documents c as its string wire name in the OpenAPI document
func (NameCategory) Schema(r huma.Registry) *huma.Schema {
	enum := make([]any, len(NameCategories))
	for i, c := range NameCategories {
		enum[i] = c.String()
	}
	return &huma.Schema{Type: huma.TypeString, Enum: enum}
}
