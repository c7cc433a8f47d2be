package transform

import (
	"slices"
	"strings"

	"github.com/matzehuels/phrasenet/pkg/core/lexgraph"
)

// EquivalenceClasses partitions the nodes of g into classes with identical
// predecessor and successor sets. Classes are ordered by their first member
// and members keep graph insertion order.
//
// This is a single pass over the input graph. It is not a bisimulation
// fixed point.
func EquivalenceClasses(g *lexgraph.Graph) [][]string {
	ids := g.NodeIDs()
	sigs := make(map[string]string, len(ids))
	for _, id := range ids {
		sigs[id] = signature(g, id)
	}

	assigned := make(map[string]bool, len(ids))
	var classes [][]string
	for i, id := range ids {
		if assigned[id] {
			continue
		}
		assigned[id] = true
		class := []string{id}
		for _, other := range ids[i+1:] {
			if !assigned[other] && sigs[other] == sigs[id] {
				assigned[other] = true
				class = append(class, other)
			}
		}
		classes = append(classes, class)
	}
	return classes
}

// signature encodes the neighborhood of id so that two nodes share a
// signature exactly when their predecessor and successor sets are equal.
func signature(g *lexgraph.Graph, id string) string {
	preds := slices.Sorted(slices.Values(g.Predecessors(id)))
	succs := slices.Sorted(slices.Values(g.Successors(id)))
	return strings.Join(preds, "\x00") + "\x01" + strings.Join(succs, "\x00")
}

// Collapse merges every class of two or more nodes into a super-node and
// re-routes edges through it. Nodes missing from classes, and classes of
// one, pass through unchanged. IDs not present in g are ignored.
//
// A super-node takes the position of its earliest member and the summed
// frequency of all members. Parallel edges created by re-routing are summed
// and keep the relation of the first edge in g's edge order. Edges inside a
// class are dropped and counted in the result.
func Collapse(g *lexgraph.Graph, classes [][]string) (*lexgraph.Graph, CompressResult) {
	var res CompressResult

	rep := make(map[string]string, g.NodeCount())
	supers := make(map[string]lexgraph.Node)
	for _, class := range classes {
		members := make([]string, 0, len(class))
		for _, id := range class {
			if g.HasNode(id) && rep[id] == "" {
				members = append(members, id)
			}
		}
		if len(members) < 2 {
			continue
		}
		super := lexgraph.Node{
			ID:   lexgraph.SuperID(members),
			Kind: lexgraph.NodeKindSuper,
		}
		for _, id := range members {
			n, _ := g.Node(id)
			super.Frequency += n.Frequency
			super.Members = append(super.Members, id)
			rep[id] = super.ID
		}
		slices.Sort(super.Members)
		supers[super.ID] = super
		res.NodesMerged += len(members)
	}

	out := lexgraph.New()
	for _, n := range g.Nodes() {
		target, merged := rep[n.ID]
		if !merged {
			_ = out.AddNode(n)
			continue
		}
		if !out.HasNode(target) {
			_ = out.AddNode(supers[target])
		}
	}

	for _, e := range g.Edges() {
		if r, ok := rep[e.From]; ok {
			e.From = r
		}
		if r, ok := rep[e.To]; ok {
			e.To = r
		}
		if e.From == e.To {
			res.SelfLoopsDropped++
			res.WeightDropped += e.Weight
			continue
		}
		_, _ = out.AddEdge(e)
	}

	res.Classes = out.NodeCount()
	return out, res
}

// Compress collapses the equivalence classes of g.
func Compress(g *lexgraph.Graph) (*lexgraph.Graph, CompressResult) {
	return Collapse(g, EquivalenceClasses(g))
}
