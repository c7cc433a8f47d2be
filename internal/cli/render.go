package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/phrasenet/pkg/graph"
	"github.com/matzehuels/phrasenet/pkg/render"
	"github.com/matzehuels/phrasenet/pkg/render/nodelink"
)

// defaultPNGZoom is the Graphviz zoom used for PNG output.
const defaultPNGZoom = 2.0

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output    string   // output file, or base path when several formats are requested
	formats   []string // svg, png, pdf, dot, json
	detailed  bool     // frequency and degrees in node labels
	relations bool     // dependency labels on syntactic edges
	rankDir   string   // Graphviz rankdir
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{rankDir: "LR"}

	cmd := &cobra.Command{
		Use:   "render <graph.json|->",
		Short: "Render a phrase net as SVG, PNG, PDF, or DOT",
		Long: `Render a phrase net produced by "analyze".

Node size follows lemma frequency and edge width follows link weight.
Compressed nodes are drawn dashed, listing their members.`,
		Example: `  phrasenet render essay.json
  phrasenet render essay.json -f svg,png -o out/essay
  phrasenet analyze --text "cats and dogs" | phrasenet render - -f dot -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := render.ParseFormats(formatsStr)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") && opts.output != "" && opts.output != "-" {
				formats = []string{render.FormatFromPath(opts.output)}
			}
			opts.formats = formats
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", `output file or base path ("-" for stdout)`)
	f.StringVarP(&formatsStr, "format", "f", "", "output formats: svg, png, pdf, dot, json (comma-separated)")
	f.BoolVar(&opts.detailed, "detailed", false, "show frequency and degrees in node labels")
	f.BoolVar(&opts.relations, "relations", false, "label syntactic edges with their relation")
	f.StringVar(&opts.rankDir, "rankdir", opts.rankDir, "Graphviz rank direction: LR, TB, RL, or BT")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	g, err := readGraphInput(input)
	if err != nil {
		return err
	}
	if opts.output == "-" && len(opts.formats) > 1 {
		return fmt.Errorf("stdout output takes a single format, got %d", len(opts.formats))
	}
	c.Logger.Debug("rendering", "nodes", g.NodeCount, "edges", g.EdgeCount, "formats", opts.formats)

	dot := nodelink.ToDOT(g, nodelink.Options{
		Detailed:  opts.detailed,
		Relations: opts.relations,
		RankDir:   strings.ToUpper(opts.rankDir),
	})
	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		data, err := renderFormat(ctx, g, dot, format)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}

		path := base + "." + format
		if opts.output == "-" {
			path = "-"
		} else if path == input {
			return fmt.Errorf("refusing to overwrite input %s", input)
		}
		if err := c.writeOutput(path, data); err != nil {
			return err
		}
		if path != "-" {
			c.Logger.Infof("Generated %s", path)
		}
	}
	return nil
}

func readGraphInput(input string) (graph.Graph, error) {
	if input == "-" {
		return graph.ReadGraph(os.Stdin)
	}
	return graph.ReadGraphFile(input)
}

// renderFormat produces one output format from the graph and its DOT source.
func renderFormat(ctx context.Context, g graph.Graph, dot, format string) ([]byte, error) {
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatJSON:
		return graph.MarshalGraph(g)
	case render.FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case render.FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case render.FormatPNG:
		return nodelink.RenderPNG(ctx, dot, defaultPNGZoom)
	default:
		return nil, render.ValidateFormat(format)
	}
}

func (c *CLI) writeOutput(path string, data []byte) error {
	out, err := c.openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// basePath derives the output path without extension. With no output it
// strips the extension from input; a known format extension on output is
// stripped too.
func basePath(output, input string) string {
	if output == "" || output == "-" {
		if input == "-" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if render.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
