// Package render converts rendered phrase nets between output formats.
//
// The [nodelink] subpackage draws a serialized graph as a Graphviz diagram
// and produces SVG. [ToPDF] and [ToPNG] convert that SVG using the external
// rsvg-convert tool (from librsvg):
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/phrasenet/pkg/render/nodelink
package render
