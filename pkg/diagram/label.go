package diagram

import (
	"fmt"
	"strings"

	"github.com/craftlens/craftlens/pkg/dataset"
	"github.com/craftlens/craftlens/pkg/relation"
)

// Translator maps a raw display string to its localized form. A nil
// Translator passes values through unchanged.
type Translator func(string) string

func (t Translator) apply(s string) string {
	if t == nil {
		return s
	}
	return t(s)
}

// formatLabel renders the display line for a single relation record:
// the (translated) cleaned relation name, a quantity suffix "(<n>x)" when a
// positive quantity is present, then exactly one bracketed annotation. A
// price fact wins the bracket over a tier label; without either there is no
// bracket.
func formatLabel(rec *dataset.RelationRecord, trRelation, trName Translator) string {
	var b strings.Builder
	b.WriteString(trRelation.apply(string(relation.Clean(rec.Kind))))

	if rec.Quantity > 0 {
		fmt.Fprintf(&b, " (%dx)", rec.Quantity)
	}

	if price, ok := rec.Price(); ok {
		fmt.Fprintf(&b, " [%d %s]", price.Amount, price.Currency)
	} else if rec.Tier != "" {
		fmt.Fprintf(&b, " [%s]", trName.apply(rec.Tier))
	}

	return b.String()
}

// compositeLabel joins the per-record labels of one group with line breaks.
// Callers pass records already sorted in priority order, so the first line
// is always the highest-priority relation.
func compositeLabel(records []*dataset.RelationRecord, trRelation, trName Translator) string {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = formatLabel(rec, trRelation, trName)
	}
	return strings.Join(lines, "\n")
}

// relationTags joins the cleaned categories of one group with commas, in the
// same priority order as the label lines, deduplicated. The drawing library
// keys edge styling off this field.
func relationTags(records []*dataset.RelationRecord) string {
	seen := make(map[relation.Category]bool, len(records))
	tags := make([]string, 0, len(records))
	for _, rec := range records {
		c := relation.Clean(rec.Kind)
		if seen[c] {
			continue
		}
		seen[c] = true
		tags = append(tags, string(c))
	}
	return strings.Join(tags, ",")
}
