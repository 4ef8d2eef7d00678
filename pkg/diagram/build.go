package diagram

import (
	"sort"

	"github.com/craftlens/craftlens/pkg/dataset"
	"github.com/craftlens/craftlens/pkg/errors"
	"github.com/craftlens/craftlens/pkg/relation"
)

// Options configures a single build pass.
type Options struct {
	// Selection restricts visible relations. Nil shows everything; a
	// non-nil empty Selection hides everything but the center node.
	Selection relation.Selection

	// TranslateRelation localizes relation category names in edge labels.
	TranslateRelation Translator

	// TranslateName localizes entity display names and tier labels.
	TranslateName Translator

	// ImageRef rewrites an entity's raw thumbnail reference into the form
	// the renderer should load (e.g. through the image proxy). Nil keeps
	// the raw reference.
	ImageRef func(string) string

	// Config supplies ordering and layout constants; zero fields fall back
	// to defaults.
	Config Config
}

// group collects the relation records sharing one counterpart and side.
type group struct {
	name    string
	records []*dataset.RelationRecord
}

// priority of a group is the priority of its best record. Records are kept
// priority-sorted, so that is the first one.
func (g *group) priority(p relation.Priorities) int {
	return p.Of(relation.Clean(g.records[0].Kind))
}

// Build constructs the relationship diagram for one focal entity.
//
// The focal entity must resolve through lookup; otherwise Build fails with
// ErrCodeEntityNotFound and no partial graph. Counterparts missing from
// lookup degrade to name-only nodes with default styling.
//
// Grouping and ordering are deterministic: records within a group sort by
// relation priority, groups sort by the priority of their best record, and
// ties preserve the dataset's relation order.
func Build(focal string, lookup dataset.Lookup, opts Options) (*Graph, error) {
	opts.Config.SetDefaults()
	cfg := opts.Config

	ent, ok := lookup.Get(focal)
	if !ok {
		return nil, errors.New(errors.ErrCodeEntityNotFound, "entity %q not in dataset", focal)
	}

	g := &Graph{}
	cx, cy := cfg.PositionOf(RoleCenter, 0, 1)
	g.Nodes = append(g.Nodes, Node{
		ID:       "center-" + ent.Name,
		Label:    opts.TranslateName.apply(ent.Name),
		Role:     RoleCenter,
		NodeType: ent.NodeType,
		Rarity:   ent.Rarity,
		Image:    imageRef(opts, ent.Image),
		X:        cx,
		Y:        cy,
	})

	inputs := partition(ent.Relations, dataset.DirectionIn, opts.Selection)
	outputs := partition(ent.Relations, dataset.DirectionOut, opts.Selection)
	sortGroups(inputs, cfg.Priorities)
	sortGroups(outputs, cfg.Priorities)

	centerID := g.Nodes[0].ID
	emitSide(g, inputs, SideInput, centerID, lookup, opts)
	emitSide(g, outputs, SideOutput, centerID, lookup, opts)

	return g, nil
}

// partition groups the records for one direction by counterpart, dropping
// records hidden by the selection. Group order follows first appearance in
// the relation list.
func partition(records []dataset.RelationRecord, direction string, sel relation.Selection) []*group {
	var groups []*group
	index := make(map[string]*group)

	for i := range records {
		rec := &records[i]
		if rec.Direction != direction || !sel.Visible(rec.Kind) {
			continue
		}
		grp, ok := index[rec.Counterpart]
		if !ok {
			grp = &group{name: rec.Counterpart}
			index[rec.Counterpart] = grp
			groups = append(groups, grp)
		}
		grp.records = append(grp.records, rec)
	}

	return groups
}

// sortGroups orders each group's records by relation priority, then the
// groups themselves by their best record's priority. Both sorts are stable
// so same-priority entries keep dataset order.
func sortGroups(groups []*group, p relation.Priorities) {
	for _, grp := range groups {
		recs := grp.records
		sort.SliceStable(recs, func(i, j int) bool {
			return p.Of(relation.Clean(recs[i].Kind)) < p.Of(relation.Clean(recs[j].Kind))
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].priority(p) < groups[j].priority(p)
	})
}

// emitSide appends one node and one edge per group. Input-side edges run
// counterpart → center, output-side edges center → counterpart.
func emitSide(g *Graph, groups []*group, side Side, centerID string, lookup dataset.Lookup, opts Options) {
	cfg := opts.Config
	role, prefix := RoleInput, "left-"
	if side == SideOutput {
		role, prefix = RoleOutput, "right-"
	}

	size := len(groups)
	for rank, grp := range groups {
		node := Node{
			ID:          prefix + grp.name,
			Label:       opts.TranslateName.apply(grp.name),
			Role:        role,
			Counterpart: grp.name,
		}
		// Missing counterparts keep the bare name and default styling.
		if ent, ok := lookup.Get(grp.name); ok {
			node.NodeType = ent.NodeType
			node.Rarity = ent.Rarity
			node.Image = imageRef(opts, ent.Image)
		}
		node.X, node.Y = cfg.PositionOf(role, rank, size)
		g.Nodes = append(g.Nodes, node)

		edge := Edge{
			Label:     compositeLabel(grp.records, opts.TranslateRelation, opts.TranslateName),
			Relations: relationTags(grp.records),
			Curvature: cfg.CurvatureOf(side, rank, size),
		}
		if side == SideInput {
			edge.Source, edge.Target = node.ID, centerID
		} else {
			edge.Source, edge.Target = centerID, node.ID
		}
		g.Edges = append(g.Edges, edge)
	}
}

func imageRef(opts Options, raw string) string {
	if raw == "" || opts.ImageRef == nil {
		return raw
	}
	return opts.ImageRef(raw)
}
