// Package relation normalizes raw relationship kinds into display categories.
//
// The dataset records relationship kinds as directional strings such as
// "craft_from", "recycle_to", or "sold_by". For display, every kind collapses
// into one of six categories (craft, repair, upgrade, recycle, salvage,
// trade) with a fixed priority order. The priority order decides both how
// merged edge labels are stacked and how counterpart groups are arranged
// around the focal entity.
package relation

import "strings"

// Category is a normalized relation category.
type Category string

// Display categories, in priority order.
const (
	Craft   Category = "craft"
	Repair  Category = "repair"
	Upgrade Category = "upgrade"
	Recycle Category = "recycle"
	Salvage Category = "salvage"
	Trade   Category = "trade"
)

// UnknownPriority sorts unrecognized categories after every known one.
const UnknownPriority = 999

// Priorities maps categories to their display rank (lower sorts first).
type Priorities map[Category]int

// DefaultPriorities returns the standard display order.
func DefaultPriorities() Priorities {
	return Priorities{
		Craft:   0,
		Repair:  1,
		Upgrade: 2,
		Recycle: 3,
		Salvage: 4,
		Trade:   5,
	}
}

// Of returns the priority of c, or UnknownPriority if c is not ranked.
func (p Priorities) Of(c Category) int {
	if v, ok := p[c]; ok {
		return v
	}
	return UnknownPriority
}

// Clean converts a raw relation kind into its display category.
// Trailing "_from"/"_to" suffixes are stripped; the trader-specific kinds
// "trader" and "sold_by" both normalize to Trade.
func Clean(raw string) Category {
	s := strings.TrimSuffix(raw, "_from")
	s = strings.TrimSuffix(s, "_to")
	if s == "trader" || s == "sold_by" {
		return Trade
	}
	return Category(s)
}

// PriorityOf returns the default display priority for a category.
func PriorityOf(c Category) int {
	return DefaultPriorities().Of(c)
}
