package diagram

import (
	"strings"
	"testing"

	"github.com/craftlens/craftlens/pkg/dataset"
)

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		name string
		rec  dataset.RelationRecord
		want string
	}{
		{
			name: "Bare",
			rec:  dataset.RelationRecord{Kind: "craft_from"},
			want: "craft",
		},
		{
			name: "Quantity",
			rec:  dataset.RelationRecord{Kind: "craft_from", Quantity: 3},
			want: "craft (3x)",
		},
		{
			name: "ZeroQuantityOmitted",
			rec:  dataset.RelationRecord{Kind: "craft_from", Quantity: 0},
			want: "craft",
		},
		{
			name: "Tier",
			rec:  dataset.RelationRecord{Kind: "recycle_from", Tier: "T2"},
			want: "recycle [T2]",
		},
		{
			name: "QuantityAndTier",
			rec:  dataset.RelationRecord{Kind: "upgrade_to", Quantity: 2, Tier: "Ferro II"},
			want: "upgrade (2x) [Ferro II]",
		},
		{
			name: "Price",
			rec: dataset.RelationRecord{
				Kind: "trader",
				Dependencies: []dataset.DependencyFact{
					{Type: dataset.FactPrice, Amount: 250, Currency: "Scrip"},
				},
			},
			want: "trade [250 Scrip]",
		},
		{
			// A price fact wins the single bracket even when a tier exists.
			name: "PriceBeatsTier",
			rec: dataset.RelationRecord{
				Kind: "sold_by",
				Tier: "T3",
				Dependencies: []dataset.DependencyFact{
					{Type: dataset.FactPrice, Amount: 99, Currency: "Gold"},
				},
			},
			want: "trade [99 Gold]",
		},
		{
			// Non-price facts never claim the bracket.
			name: "WorkshopFactIgnored",
			rec: dataset.RelationRecord{
				Kind: "craft_from",
				Dependencies: []dataset.DependencyFact{
					{Type: dataset.FactWorkshop, Name: "Forge"},
				},
			},
			want: "craft",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatLabel(&tt.rec, nil, nil); got != tt.want {
				t.Errorf("formatLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatLabelTranslated(t *testing.T) {
	trRelation := Translator(func(s string) string { return "R:" + s })
	trName := Translator(func(s string) string { return "N:" + s })

	rec := dataset.RelationRecord{Kind: "recycle_from", Tier: "T2"}
	if got := formatLabel(&rec, trRelation, trName); got != "R:recycle [N:T2]" {
		t.Errorf("formatLabel = %q, want %q", got, "R:recycle [N:T2]")
	}
}

func TestCompositeLabel(t *testing.T) {
	records := []*dataset.RelationRecord{
		{Kind: "craft_from", Quantity: 3},
		{Kind: "recycle_from", Tier: "T2"},
	}

	got := compositeLabel(records, nil, nil)
	want := "craft (3x)\nrecycle [T2]"
	if got != want {
		t.Errorf("compositeLabel = %q, want %q", got, want)
	}
	if lines := strings.Split(got, "\n"); len(lines) != 2 {
		t.Errorf("composite label has %d lines, want 2", len(lines))
	}
}

func TestRelationTags(t *testing.T) {
	records := []*dataset.RelationRecord{
		{Kind: "craft_from"},
		{Kind: "craft_to"}, // duplicate category collapses
		{Kind: "trader"},
	}

	if got := relationTags(records); got != "craft,trade" {
		t.Errorf("relationTags = %q, want %q", got, "craft,trade")
	}
}
