// Package nodelink renders phrase nets as node-link diagrams.
//
// # Overview
//
// Lemmas appear as rounded boxes whose font size follows their frequency,
// connected by arrows whose thickness follows the link weight. Grouped
// nodes (lemmas merged by compression) are dashed and list their members.
//
// # Usage
//
// Convert a serialized graph to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Relations: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
