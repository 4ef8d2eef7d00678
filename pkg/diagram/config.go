// Package diagram builds the one-hop crafting relationship diagram for a
// single focal entity.
//
// A build takes the focal entity's flat relation list plus the dataset
// lookup and produces a deduplicated node/edge graph with deterministic 2D
// coordinates: the focal entity in the center, everything that feeds into it
// grouped on the left, everything it produces or trades into grouped on the
// right. Multiple relations to the same counterpart on the same side
// collapse into one node and one multi-line edge.
//
// The package performs no I/O and holds no state between builds; a new focal
// entity or filter selection means a full rebuild.
package diagram

import "github.com/craftlens/craftlens/pkg/relation"

// Default layout constants.
const (
	// DefaultSpacingY is the vertical distance between neighboring nodes in
	// a group.
	DefaultSpacingY = 90.0

	// DefaultSideOffset is the horizontal distance from the center node to
	// each side's column.
	DefaultSideOffset = 320.0

	// DefaultCurvature is the bend magnitude applied to every non-center
	// edge. Only the sign varies per edge.
	DefaultCurvature = 40.0
)

// Config carries the ordering and layout constants for a build. The zero
// value is usable: SetDefaults fills in the standard constants, keeping
// alternate configurations available for testing.
type Config struct {
	// SpacingY is the vertical spacing between nodes within a group.
	SpacingY float64

	// SideOffset is the horizontal distance of each side column from center.
	SideOffset float64

	// Curvature is the bend magnitude for non-center edges.
	Curvature float64

	// CenterX, CenterY position the focal entity (the visual midpoint).
	CenterX float64
	CenterY float64

	// Priorities overrides the relation display order. Nil means the
	// standard craft < repair < upgrade < recycle < salvage < trade order.
	Priorities relation.Priorities
}

// SetDefaults fills unset fields with the standard constants.
// Idempotent; Build calls it on every pass.
func (c *Config) SetDefaults() {
	if c.SpacingY == 0 {
		c.SpacingY = DefaultSpacingY
	}
	if c.SideOffset == 0 {
		c.SideOffset = DefaultSideOffset
	}
	if c.Curvature == 0 {
		c.Curvature = DefaultCurvature
	}
	if c.Priorities == nil {
		c.Priorities = relation.DefaultPriorities()
	}
}

// DefaultConfig returns a Config with all standard constants applied.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}
