package diagram

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Drawing Library Elements
// =============================================================================

// The element types below are the wire shape consumed by the browser drawing
// library: flat data bags plus a preset position per node. The closed field
// set replaces the dynamic attribute maps such libraries default to; the one
// open-ended styling hook is the Relations tag list on edges.

// Position is a preset node coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the attribute bag of one node element.
type NodeData struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Role        string `json:"role"`
	NodeType    string `json:"node_type,omitempty"`
	Rarity      string `json:"rarity,omitempty"`
	Image       string `json:"image,omitempty"`
	Counterpart string `json:"counterpart,omitempty"`
}

// NodeElement is one node with its preset position.
type NodeElement struct {
	Data     NodeData `json:"data"`
	Position Position `json:"position"`
}

// EdgeData is the attribute bag of one edge element.
type EdgeData struct {
	ID        string  `json:"id"`
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	Label     string  `json:"label"`
	Relations string  `json:"relations"`
	Curvature float64 `json:"curvature"`
}

// EdgeElement is one edge.
type EdgeElement struct {
	Data EdgeData `json:"data"`
}

// Elements is the complete drawing-library payload for one render.
type Elements struct {
	Nodes []NodeElement `json:"nodes"`
	Edges []EdgeElement `json:"edges"`
}

// Elements converts a built graph into the drawing-library shape.
func (g *Graph) Elements() Elements {
	out := Elements{
		Nodes: make([]NodeElement, len(g.Nodes)),
		Edges: make([]EdgeElement, len(g.Edges)),
	}

	for i, n := range g.Nodes {
		out.Nodes[i] = NodeElement{
			Data: NodeData{
				ID:          n.ID,
				Label:       n.Label,
				Role:        n.Role,
				NodeType:    n.NodeType,
				Rarity:      n.Rarity,
				Image:       n.Image,
				Counterpart: n.Counterpart,
			},
			Position: Position{X: n.X, Y: n.Y},
		}
	}

	for i, e := range g.Edges {
		out.Edges[i] = EdgeElement{
			Data: EdgeData{
				ID:        fmt.Sprintf("%s->%s", e.Source, e.Target),
				Source:    e.Source,
				Target:    e.Target,
				Label:     e.Label,
				Relations: e.Relations,
				Curvature: e.Curvature,
			},
		}
	}

	return out
}

// MarshalElements serializes elements to JSON bytes.
func MarshalElements(e Elements) ([]byte, error) {
	return json.Marshal(e)
}
