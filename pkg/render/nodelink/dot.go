package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/phrasenet/pkg/graph"
	"github.com/matzehuels/phrasenet/pkg/render"
)

const (
	minFontSize = 14.0
	maxFontSize = 40.0
	minPenWidth = 1.0
	maxPenWidth = 6.0
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds frequency and degrees to node labels.
	Detailed bool

	// Relations labels syntactic edges with their dependency relation.
	Relations bool

	// RankDir is the Graphviz rankdir. Empty means "LR".
	RankDir string
}

// ToDOT converts a phrase net to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Font size grows with lemma frequency and pen width with edge weight, both
// scaled against the largest value in g. Grouped nodes are drawn with dashed
// outlines and list their members one per line.
func ToDOT(g graph.Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}

	maxFreq, maxWeight := 1, 1
	for _, n := range g.Nodes {
		maxFreq = max(maxFreq, n.Frequency)
	}
	for _, e := range g.Edges {
		maxWeight = max(maxWeight, e.Weight)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#555555\", arrowsize=0.7];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), maxFreq)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		attrs := []string{fmt.Sprintf("penwidth=%.2f", scale(e.Weight, maxWeight, minPenWidth, maxPenWidth))}
		if e.Weight > 1 {
			attrs = append(attrs, fmt.Sprintf("weight=%d", e.Weight))
		}
		if opts.Relations && e.Relation != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Relation), "fontsize=12")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if n.IsGroup() {
		label = strings.Join(n.GroupMembers, "\n")
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nfreq: %d\nin: %d out: %d", label, n.Frequency, n.InDegree, n.OutDegree)
}

func fmtAttrs(n graph.Node, label string, maxFreq int) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fontsize=%.1f", scale(n.Frequency, maxFreq, minFontSize, maxFontSize)),
	}
	if n.IsGroup() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// scale maps v in [1, top] linearly onto [lo, hi].
func scale(v, top int, lo, hi float64) float64 {
	if top <= 1 || v <= 1 {
		return lo
	}
	if v > top {
		v = top
	}
	return lo + (hi-lo)*float64(v-1)/float64(top-1)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, zoom float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, zoom)
}
