package diagram

// Node roles.
const (
	RoleCenter = "center"
	RoleInput  = "input"
	RoleOutput = "output"
)

// Node is one positioned element of a built diagram.
//
// IDs are synthesized per render: "center-<name>", "left-<name>", or
// "right-<name>". The same counterpart appearing on both sides (an entity
// that is both input and output of the focal entity, e.g. via recycling)
// yields two independent nodes.
type Node struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Role     string  `json:"role"`
	NodeType string  `json:"node_type,omitempty"`
	Rarity   string  `json:"rarity,omitempty"`
	Image    string  `json:"image,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`

	// Counterpart is the dataset name of the entity behind a non-center
	// node, kept for navigation on activation. Empty for the center node.
	Counterpart string `json:"counterpart,omitempty"`
}

// Edge connects a grouped counterpart node to the center node. One edge per
// group: all relation records sharing the counterpart and side contribute
// one label line each.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`

	// Relations is the comma-joined list of cleaned categories contributing
	// to this edge, in priority order, for downstream styling.
	Relations string `json:"relations"`

	// Curvature bends the drawn path; the magnitude is constant per build,
	// the sign alternates around the group midpoint so parallel edges fan
	// out instead of overlapping.
	Curvature float64 `json:"curvature"`
}

// Graph is the result of one build pass. It is never mutated after Build
// returns; a changed focal entity or filter discards and rebuilds it.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Center returns the center node. Every successful build has exactly one.
func (g *Graph) Center() *Node {
	for i := range g.Nodes {
		if g.Nodes[i].Role == RoleCenter {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Node returns the node with the given ID, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Activate implements the interaction contract for node selection: for a
// non-center node it returns the counterpart name to navigate to and true.
// Activating the center node, or an unknown ID (background click), is a
// no-navigation event and returns false.
func (g *Graph) Activate(nodeID string) (string, bool) {
	n, ok := g.Node(nodeID)
	if !ok || n.Role == RoleCenter || n.Counterpart == "" {
		return "", false
	}
	return n.Counterpart, true
}
