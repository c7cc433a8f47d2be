package graph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/phrasenet/pkg/core/lexgraph"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

// Serialize converts a compressed graph to its wire form.
//
// Nodes whose ID is in stop are omitted along with their edges. Super-nodes
// are emitted under a public ID built from their members. Degrees are taken
// from g, so they count edges to omitted nodes too. Order follows g.
func Serialize(g *lexgraph.Graph, stop stopwords.Set) Graph {
	out := Graph{Nodes: []Node{}, Edges: []Edge{}}
	public := make(map[string]string, g.NodeCount())
	used := make(map[string]bool, g.NodeCount())
	for _, id := range g.NodeIDs() {
		if !lexgraph.IsSuperID(id) {
			used[id] = true
		}
	}

	for _, n := range g.Nodes() {
		if stop.Contains(n.ID) {
			continue
		}
		node := Node{
			ID:        n.ID,
			Frequency: n.Frequency,
			InDegree:  g.InDegree(n.ID),
			OutDegree: g.OutDegree(n.ID),
		}
		if n.IsSuper() {
			members := n.Members
			if len(members) == 0 {
				members = lexgraph.SuperMembers(n.ID)
			}
			node.ID = uniqueID(strings.Join(members, GroupSep), used)
			node.GroupMembers = members
		}
		node.Label = node.ID
		public[n.ID] = node.ID
		out.Nodes = append(out.Nodes, node)
	}

	for _, e := range g.Edges() {
		src, ok1 := public[e.From]
		dst, ok2 := public[e.To]
		if !ok1 || !ok2 {
			continue
		}
		out.Edges = append(out.Edges, Edge{Source: src, Target: dst, Weight: e.Weight, Relation: e.Relation})
	}

	out.NodeCount = len(out.Nodes)
	out.EdgeCount = len(out.Edges)
	return out
}

func uniqueID(base string, used map[string]bool) string {
	id := base
	for i := 2; used[id]; i++ {
		id = fmt.Sprintf("%s#%d", base, i)
	}
	used[id] = true
	return id
}
