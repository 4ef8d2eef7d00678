package diagram

import (
	"testing"

	"github.com/craftlens/craftlens/pkg/dataset"
	"github.com/craftlens/craftlens/pkg/errors"
	"github.com/craftlens/craftlens/pkg/relation"
)

// testLookup is a small dataset exercising grouping, both sides, traders,
// and counterparts missing from the lookup.
func testLookup() dataset.Lookup {
	records := []dataset.EntityRecord{
		{
			Name:     "Power Rod",
			NodeType: dataset.TypeItem,
			Rarity:   "rare",
			Image:    "power_rod.png",
			Relations: []dataset.RelationRecord{
				{Counterpart: "Steel Plate", Direction: dataset.DirectionIn, Kind: "craft_from", Quantity: 3},
				{Counterpart: "Steel Plate", Direction: dataset.DirectionIn, Kind: "recycle_from", Tier: "T2"},
				{Counterpart: "Copper Coil", Direction: dataset.DirectionIn, Kind: "craft_from", Quantity: 1},
				{Counterpart: "Scrap Heap", Direction: dataset.DirectionOut, Kind: "salvage_to", Quantity: 5},
				{Counterpart: "Quartermaster", Direction: dataset.DirectionOut, Kind: "sold_by",
					Dependencies: []dataset.DependencyFact{{Type: dataset.FactPrice, Amount: 250, Currency: "Scrip"}}},
				{Counterpart: "Ghost Part", Direction: dataset.DirectionIn, Kind: "repair_from"},
			},
		},
		{Name: "Steel Plate", NodeType: dataset.TypeItem, Rarity: "common", Image: "steel.png"},
		{Name: "Copper Coil", NodeType: dataset.TypeItem},
		{Name: "Scrap Heap", NodeType: dataset.TypeItem},
		{Name: "Quartermaster", NodeType: dataset.TypeTrader},
		// "Ghost Part" is deliberately absent from the dataset.
	}
	return dataset.BuildLookup(records)
}

func TestBuildFocalNotFound(t *testing.T) {
	_, err := Build("Nonexistent", testLookup(), Options{})
	if err == nil {
		t.Fatal("expected error for missing focal entity")
	}
	if !errors.Is(err, errors.ErrCodeEntityNotFound) {
		t.Errorf("error code = %q, want ENTITY_NOT_FOUND", errors.GetCode(err))
	}
}

func TestBuildCenterNode(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	centers := 0
	for _, n := range g.Nodes {
		if n.Role == RoleCenter {
			centers++
		}
	}
	if centers != 1 {
		t.Fatalf("got %d center nodes, want exactly 1", centers)
	}

	c := g.Center()
	if c.ID != "center-Power Rod" {
		t.Errorf("center ID = %q", c.ID)
	}
	if c.NodeType != dataset.TypeItem || c.Rarity != "rare" || c.Image != "power_rod.png" {
		t.Errorf("center metadata not carried over: %+v", c)
	}
	if c.Counterpart != "" {
		t.Errorf("center must not carry a counterpart, got %q", c.Counterpart)
	}
}

func TestBuildGroupsCollapseCounterpart(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	var steelNodes, steelEdges int
	var steelEdge *Edge
	for _, n := range g.Nodes {
		if n.Counterpart == "Steel Plate" {
			steelNodes++
		}
	}
	for i := range g.Edges {
		if g.Edges[i].Source == "left-Steel Plate" {
			steelEdges++
			steelEdge = &g.Edges[i]
		}
	}

	if steelNodes != 1 || steelEdges != 1 {
		t.Fatalf("Steel Plate: %d nodes, %d edges; want 1 and 1", steelNodes, steelEdges)
	}

	// craft before recycle by priority, one line per record.
	if want := "craft (3x)\nrecycle [T2]"; steelEdge.Label != want {
		t.Errorf("label = %q, want %q", steelEdge.Label, want)
	}
	if steelEdge.Relations != "craft,recycle" {
		t.Errorf("relation tags = %q, want %q", steelEdge.Relations, "craft,recycle")
	}
	if steelEdge.Target != "center-Power Rod" {
		t.Errorf("input edge target = %q, want center", steelEdge.Target)
	}
}

func TestBuildGroupOrdering(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	var inputs []string
	for _, n := range g.Nodes {
		if n.Role == RoleInput {
			inputs = append(inputs, n.Counterpart)
		}
	}

	// Craft groups first (Steel Plate before Copper Coil by dataset order),
	// then the repair-only group.
	want := []string{"Steel Plate", "Copper Coil", "Ghost Part"}
	if len(inputs) != len(want) {
		t.Fatalf("inputs = %v, want %v", inputs, want)
	}
	for i := range want {
		if inputs[i] != want[i] {
			t.Errorf("input[%d] = %q, want %q", i, inputs[i], want[i])
		}
	}

	var outputs []string
	for _, n := range g.Nodes {
		if n.Role == RoleOutput {
			outputs = append(outputs, n.Counterpart)
		}
	}
	// Salvage sorts before trade.
	if len(outputs) != 2 || outputs[0] != "Scrap Heap" || outputs[1] != "Quartermaster" {
		t.Errorf("outputs = %v", outputs)
	}
}

func TestBuildOutputEdgeDirectionAndPrice(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	for _, e := range g.Edges {
		if e.Target == "right-Quartermaster" {
			if e.Source != "center-Power Rod" {
				t.Errorf("output edge source = %q, want center", e.Source)
			}
			if e.Label != "trade [250 Scrip]" {
				t.Errorf("trader label = %q, want %q", e.Label, "trade [250 Scrip]")
			}
			return
		}
	}
	t.Fatal("no edge to the trader node")
}

func TestBuildUnresolvedCounterpartDegrades(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	n, ok := g.Node("left-Ghost Part")
	if !ok {
		t.Fatal("missing node for unresolved counterpart")
	}
	if n.Label != "Ghost Part" {
		t.Errorf("label = %q, want bare name", n.Label)
	}
	if n.NodeType != "" || n.Rarity != "" || n.Image != "" {
		t.Errorf("unresolved counterpart should keep default styling: %+v", n)
	}
}

func TestBuildNilSelectionShowsEverything(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	// 1 center + 3 input groups + 2 output groups.
	if len(g.Nodes) != 6 {
		t.Errorf("got %d nodes, want 6", len(g.Nodes))
	}
	if len(g.Edges) != 5 {
		t.Errorf("got %d edges, want 5", len(g.Edges))
	}
}

func TestBuildEmptySelectionCenterOnly(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{
		Selection: relation.NewSelection(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 1 || g.Nodes[0].Role != RoleCenter {
		t.Errorf("empty selection should render the center alone, got %d nodes", len(g.Nodes))
	}
	if len(g.Edges) != 0 {
		t.Errorf("empty selection should produce no edges, got %d", len(g.Edges))
	}
}

func TestBuildSelectionFilters(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{
		Selection: relation.NewSelection("craft"),
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range g.Nodes {
		if n.Role == RoleCenter {
			continue
		}
		if n.Counterpart != "Steel Plate" && n.Counterpart != "Copper Coil" {
			t.Errorf("unexpected node %q under craft-only filter", n.ID)
		}
	}

	// Steel Plate's recycle record is filtered out of the merged label too.
	for _, e := range g.Edges {
		if e.Source == "left-Steel Plate" && e.Label != "craft (3x)" {
			t.Errorf("filtered label = %q, want %q", e.Label, "craft (3x)")
		}
	}
}

func TestBuildCounterpartOnBothSides(t *testing.T) {
	records := []dataset.EntityRecord{
		{
			Name: "Alloy Bar",
			Relations: []dataset.RelationRecord{
				{Counterpart: "Scrap Metal", Direction: dataset.DirectionIn, Kind: "craft_from", Quantity: 2},
				{Counterpart: "Scrap Metal", Direction: dataset.DirectionOut, Kind: "recycle_to", Quantity: 1},
			},
		},
		{Name: "Scrap Metal"},
	}
	g, err := Build("Alloy Bar", dataset.BuildLookup(records), Options{})
	if err != nil {
		t.Fatal(err)
	}

	// Same counterpart on both sides stays two independent nodes.
	if _, ok := g.Node("left-Scrap Metal"); !ok {
		t.Error("missing left-side node")
	}
	if _, ok := g.Node("right-Scrap Metal"); !ok {
		t.Error("missing right-side node")
	}
	if len(g.Nodes) != 3 {
		t.Errorf("got %d nodes, want 3", len(g.Nodes))
	}
}

func TestBuildTranslators(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{
		TranslateName:     func(s string) string { return "x-" + s },
		TranslateRelation: func(s string) string { return "r-" + s },
	})
	if err != nil {
		t.Fatal(err)
	}

	if g.Center().Label != "x-Power Rod" {
		t.Errorf("center label = %q", g.Center().Label)
	}
	n, _ := g.Node("left-Copper Coil")
	if n.Label != "x-Copper Coil" {
		t.Errorf("counterpart label = %q", n.Label)
	}
	for _, e := range g.Edges {
		if e.Source == "left-Copper Coil" && e.Label != "r-craft (1x)" {
			t.Errorf("translated label = %q", e.Label)
		}
	}
	// IDs stay untranslated; navigation keys off dataset names.
	if _, ok := g.Node("left-Copper Coil"); !ok {
		t.Error("node IDs must use raw dataset names")
	}
}

func TestBuildImageRewrite(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{
		ImageRef: func(raw string) string { return "/img?src=" + raw },
	})
	if err != nil {
		t.Fatal(err)
	}

	if g.Center().Image != "/img?src=power_rod.png" {
		t.Errorf("center image = %q", g.Center().Image)
	}
	// Entities without a thumbnail stay empty rather than gaining a proxy URL.
	n, _ := g.Node("left-Copper Coil")
	if n.Image != "" {
		t.Errorf("image = %q, want empty", n.Image)
	}
}

func TestActivate(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if name, ok := g.Activate("left-Steel Plate"); !ok || name != "Steel Plate" {
		t.Errorf("Activate(left-Steel Plate) = %q, %v", name, ok)
	}
	if _, ok := g.Activate("center-Power Rod"); ok {
		t.Error("activating the center must not navigate")
	}
	if _, ok := g.Activate("nope"); ok {
		t.Error("activating an unknown ID must not navigate")
	}
}

func TestElements(t *testing.T) {
	g, err := Build("Power Rod", testLookup(), Options{})
	if err != nil {
		t.Fatal(err)
	}

	els := g.Elements()
	if len(els.Nodes) != len(g.Nodes) || len(els.Edges) != len(g.Edges) {
		t.Fatalf("elements %d/%d, want %d/%d", len(els.Nodes), len(els.Edges), len(g.Nodes), len(g.Edges))
	}

	for i, n := range els.Nodes {
		if n.Data.ID != g.Nodes[i].ID {
			t.Errorf("node %d id = %q, want %q", i, n.Data.ID, g.Nodes[i].ID)
		}
		if n.Position.X != g.Nodes[i].X || n.Position.Y != g.Nodes[i].Y {
			t.Errorf("node %d position mismatch", i)
		}
	}
	for _, e := range els.Edges {
		if e.Data.ID == "" {
			t.Error("edge element without ID")
		}
	}
}
