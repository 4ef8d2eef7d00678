package diagram

// Side identifies which half of the diagram a group occupies.
type Side string

// Diagram sides.
const (
	SideInput  Side = "input"  // visual left
	SideOutput Side = "output" // visual right
)

// PositionOf returns deterministic coordinates for a node given its role and
// its rank within a group of the given size.
//
// The center node sits at the configured midpoint. Side columns sit at a
// fixed horizontal offset, with group members evenly spaced vertically over
// a total span of (size-1)*SpacingY, centered on the center node's Y. Equal
// sized input and output groups therefore mirror each other around the
// center.
//
// This is a pure function of its arguments; no layout state survives a
// build. It is shaped to serve as a preset-layout callback for the drawing
// library.
func (c Config) PositionOf(role string, rank, size int) (x, y float64) {
	switch role {
	case RoleInput:
		x = c.CenterX - c.SideOffset
	case RoleOutput:
		x = c.CenterX + c.SideOffset
	default:
		return c.CenterX, c.CenterY
	}
	y = c.CenterY + (float64(rank)-float64(size-1)/2)*c.SpacingY
	return x, y
}

// CurvatureOf returns the signed curvature for the edge of the node at rank
// within a group of the given size.
//
// The magnitude is the configured constant for every non-center edge; only
// the sign varies, flipping at the group's vertical midpoint so edges above
// and below the center bow apart. An even-sized group splits into two halves
// of opposite sign with no straight edge; an odd-sized group gives its exact
// middle rank zero curvature. The output side uses the opposite convention
// from the input side, keeping the overall diagram mirror-symmetric.
func (c Config) CurvatureOf(side Side, rank, size int) float64 {
	mid := float64(size-1) / 2
	offset := float64(rank) - mid

	var sign float64
	switch {
	case offset > 0:
		sign = 1
	case offset < 0:
		sign = -1
	default:
		return 0
	}

	if side == SideOutput {
		sign = -sign
	}
	return sign * c.Curvature
}
