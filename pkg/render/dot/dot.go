// Package dot exports a built diagram as Graphviz DOT and renders it to
// static SVG or PNG images.
//
// The interactive drawing happens in the browser; this package covers the
// CLI export path for sharing a snapshot of one entity's relationships.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/craftlens/craftlens/pkg/dataset"
	"github.com/craftlens/craftlens/pkg/diagram"
)

// ToDOT converts a built diagram to Graphviz DOT format. Inputs rank left of
// the center, outputs right, matching the interactive layout's reading
// direction.
func ToDOT(g *diagram.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmtAttrs(n)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Source, e.Target, dotLabel(e.Label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n diagram.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.Label)}
	switch n.Role {
	case diagram.RoleCenter:
		attrs = append(attrs, "fillcolor=lightyellow", "penwidth=2")
	default:
		if n.NodeType == dataset.TypeTrader {
			attrs = append(attrs, "fillcolor=lightblue")
		}
	}
	return attrs
}

// dotLabel flattens the multi-line composite labels; Graphviz treats raw
// newlines in quoted strings inconsistently across engines.
func dotLabel(label string) string {
	return strings.ReplaceAll(label, "\n", " / ")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
