// Package dataset defines the crafting relationship records consumed by the
// diagram builder.
//
// The records mirror the JSON produced by the wiki extraction pipeline: one
// record per entity (item or trader), each carrying the flat list of directed
// relationships to other entities. The dataset is fully materialized before a
// build and treated as immutable for the lifetime of a render.
package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// Node types.
const (
	TypeItem   = "item"
	TypeTrader = "trader"
)

// Relation directions, from the perspective of the owning entity.
const (
	DirectionIn  = "in"  // counterpart feeds into this entity
	DirectionOut = "out" // this entity feeds the counterpart
)

// Dependency fact types.
const (
	FactPrice      = "price"
	FactWorkshop   = "workshop"
	FactBlueprint  = "blueprint"
	FactPerks      = "perks"
	FactDurability = "durability"
)

// DependencyFact is a typed side-fact attached to a relation, such as the
// workshop a recipe requires or the price a trader charges. Only price facts
// carry Amount and Currency; other types carry an opaque Name.
type DependencyFact struct {
	Type     string `json:"type" bson:"type"`
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Amount   int    `json:"amount,omitempty" bson:"amount,omitempty"`
	Currency string `json:"currency,omitempty" bson:"currency,omitempty"`
}

// RelationRecord is one directed relationship from the owning entity to a
// counterpart. Direction and Kind jointly determine which side of the
// diagram the counterpart lands on.
type RelationRecord struct {
	Counterpart  string           `json:"name" bson:"name"`
	Direction    string           `json:"direction" bson:"direction"`
	Kind         string           `json:"relation" bson:"relation"`
	Quantity     int              `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Tier         string           `json:"tier,omitempty" bson:"tier,omitempty"`
	Dependencies []DependencyFact `json:"dependency,omitempty" bson:"dependency,omitempty"`
}

// Price returns the first price fact attached to the relation, if any.
func (r *RelationRecord) Price() (DependencyFact, bool) {
	for _, d := range r.Dependencies {
		if d.Type == FactPrice {
			return d, true
		}
	}
	return DependencyFact{}, false
}

// EntityRecord is one entity in the dataset, keyed by its unique name.
type EntityRecord struct {
	Name      string           `json:"name" bson:"name"`
	NodeType  string           `json:"node_type,omitempty" bson:"node_type,omitempty"`
	Rarity    string           `json:"rarity,omitempty" bson:"rarity,omitempty"`
	Image     string           `json:"image,omitempty" bson:"image,omitempty"`
	Relations []RelationRecord `json:"edges,omitempty" bson:"edges,omitempty"`
}

// Lookup maps entity names to their records. It is built once from a loaded
// dataset and shared read-only across builds.
type Lookup map[string]*EntityRecord

// BuildLookup indexes records by name. Records with empty names are skipped;
// on duplicate names the first record wins, matching the dedup pass of the
// extraction pipeline.
func BuildLookup(records []EntityRecord) Lookup {
	lookup := make(Lookup, len(records))
	for i := range records {
		name := records[i].Name
		if name == "" {
			continue
		}
		if _, exists := lookup[name]; exists {
			continue
		}
		lookup[name] = &records[i]
	}
	return lookup
}

// Get returns the record for name, if present.
func (l Lookup) Get(name string) (*EntityRecord, bool) {
	e, ok := l[name]
	return e, ok
}

// Names returns all entity names in sorted order.
func (l Lookup) Names() []string {
	names := make([]string, 0, len(l))
	for n := range l {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Hash returns a content hash of the lookup, stable across process restarts.
// Used as a cache key component so cached builds invalidate when the dataset
// changes.
func (l Lookup) Hash() string {
	h := sha256.New()
	for _, n := range l.Names() {
		data, _ := json.Marshal(l[n])
		h.Write([]byte(n))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}
