package nodelink_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/phrasenet/pkg/graph"
	"github.com/matzehuels/phrasenet/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "cats", Label: "cats", Frequency: 2},
			{ID: "chase", Label: "chase", Frequency: 2},
		},
		Edges: []graph.Edge{{Source: "cats", Target: "chase", Weight: 2}},
	}

	dot := nodelink.ToDOT(g, nodelink.Options{})
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// "cats" -> "chase" [penwidth=6.00, weight=2];
}

func ExampleRenderSVG() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a", Label: "a", Frequency: 1}, {ID: "b", Label: "b", Frequency: 1}},
		Edges: []graph.Edge{{Source: "a", Target: "b", Weight: 1}},
	}

	svg, err := nodelink.RenderSVG(context.Background(), nodelink.ToDOT(g, nodelink.Options{}))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz installation
}
