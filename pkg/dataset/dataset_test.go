package dataset

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalPipelineShape(t *testing.T) {
	// One record as emitted by the extraction pipeline.
	raw := `{
		"name": "Power Rod",
		"node_type": "item",
		"rarity": "rare",
		"edges": [
			{"name": "Steel Plate", "direction": "in", "relation": "craft_from", "quantity": 3},
			{"name": "Quartermaster", "direction": "out", "relation": "sold_by",
			 "dependency": [{"type": "price", "amount": 250, "currency": "Scrip"}]}
		]
	}`

	var rec EntityRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatal(err)
	}

	if rec.Name != "Power Rod" || len(rec.Relations) != 2 {
		t.Fatalf("decoded %+v", rec)
	}
	r := rec.Relations[0]
	if r.Counterpart != "Steel Plate" || r.Direction != DirectionIn || r.Kind != "craft_from" || r.Quantity != 3 {
		t.Errorf("relation decoded as %+v", r)
	}

	price, ok := rec.Relations[1].Price()
	if !ok {
		t.Fatal("expected a price fact")
	}
	if price.Amount != 250 || price.Currency != "Scrip" {
		t.Errorf("price = %+v", price)
	}
}

func TestPrice(t *testing.T) {
	rec := RelationRecord{
		Dependencies: []DependencyFact{
			{Type: FactWorkshop, Name: "Forge"},
			{Type: FactPrice, Amount: 10, Currency: "Gold"},
		},
	}

	price, ok := rec.Price()
	if !ok || price.Amount != 10 {
		t.Errorf("Price() = %+v, %v", price, ok)
	}

	none := RelationRecord{Dependencies: []DependencyFact{{Type: FactWorkshop, Name: "Forge"}}}
	if _, ok := none.Price(); ok {
		t.Error("Price() should miss when no price fact is present")
	}
}

func TestBuildLookup(t *testing.T) {
	records := []EntityRecord{
		{Name: "A", Rarity: "rare"},
		{Name: ""},                   // skipped
		{Name: "A", Rarity: "junk"}, // duplicate, first wins
		{Name: "B"},
	}

	lookup := BuildLookup(records)
	if len(lookup) != 2 {
		t.Fatalf("lookup has %d entries, want 2", len(lookup))
	}
	a, ok := lookup.Get("A")
	if !ok || a.Rarity != "rare" {
		t.Errorf("Get(A) = %+v, %v", a, ok)
	}
	if names := lookup.Names(); len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("Names() = %v", names)
	}
}

func TestLookupHashIsStable(t *testing.T) {
	records := []EntityRecord{{Name: "A"}, {Name: "B"}}
	h1 := BuildLookup(records).Hash()
	h2 := BuildLookup([]EntityRecord{{Name: "B"}, {Name: "A"}}).Hash()
	if h1 != h2 {
		t.Error("hash should not depend on record order")
	}

	h3 := BuildLookup([]EntityRecord{{Name: "A"}, {Name: "B", Rarity: "rare"}}).Hash()
	if h1 == h3 {
		t.Error("hash should change with record content")
	}
}
