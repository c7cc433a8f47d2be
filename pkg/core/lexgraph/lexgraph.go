package lexgraph

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidFrequency is returned by [Graph.AddNode] when the frequency
	// is below 1. Every node stands for at least one occurrence.
	ErrInvalidFrequency = errors.New("node frequency must be at least 1")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidWeight is returned by [Graph.AddEdge] when the weight is
	// below 1.
	ErrInvalidWeight = errors.New("edge weight must be at least 1")
)

// SuperPrefix marks node IDs synthesized by compression.
const SuperPrefix = "SUPER_NODE:"

// superSep joins member IDs inside a super-node ID.
const superSep = "|"

// NodeKind distinguishes lemma nodes from synthesized super-nodes.
type NodeKind int

const (
	// NodeKindLemma is a node standing for a single lemma.
	NodeKindLemma NodeKind = iota
	// NodeKindSuper is a node synthesized by compression that stands for a
	// class of structurally equivalent lemmas listed in Members.
	NodeKindSuper
)

// Node is a vertex of the lemma graph.
type Node struct {
	ID        string   // Lemma, or a SuperID for super-nodes
	Frequency int      // Occurrence count; sum of member counts for super-nodes
	Kind      NodeKind // Lemma or super-node
	Members   []string // Sorted member lemmas (super-nodes only)
}

// IsSuper reports whether the node was synthesized by compression.
func (n Node) IsSuper() bool { return n.Kind == NodeKindSuper || IsSuperID(n.ID) }

// Edge is a directed, weighted link between two lemmas. Relation carries the
// dependency label for syntactic links and is empty otherwise.
type Edge struct {
	From     string
	To       string
	Weight   int
	Relation string
}

type pair struct{ from, to string }

// Graph is a directed simple graph of lemmas with weighted edges.
//
// The zero value is not usable - use [New].
type Graph struct {
	nodes    map[string]*Node
	order    []string
	edges    map[pair]*Edge
	edgeSeq  []pair
	outgoing map[string][]string
	incoming map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		edges:    make(map[pair]*Edge),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node. Returns ErrInvalidNodeID for an empty ID,
// ErrDuplicateNodeID if the ID is taken, or ErrInvalidFrequency if the
// frequency is below 1. Members are copied.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Frequency < 1 {
		return ErrInvalidFrequency
	}
	n.Members = slices.Clone(n.Members)
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds e, or adds e.Weight to the existing edge between the same
// ordered pair. The relation of an existing edge is never replaced.
//
// Self-loops are skipped: AddEdge returns false and a nil error. Unknown
// endpoints return ErrUnknownSourceNode or ErrUnknownTargetNode, and a
// weight below 1 returns ErrInvalidWeight.
func (g *Graph) AddEdge(e Edge) (bool, error) {
	if _, ok := g.nodes[e.From]; !ok {
		return false, ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return false, ErrUnknownTargetNode
	}
	if e.Weight < 1 {
		return false, ErrInvalidWeight
	}
	if e.From == e.To {
		return false, nil
	}

	key := pair{e.From, e.To}
	if existing, ok := g.edges[key]; ok {
		existing.Weight += e.Weight
		return true, nil
	}
	g.edges[key] = &e
	g.edgeSeq = append(g.edgeSeq, key)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return true, nil
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	out := *n
	out.Members = slices.Clone(n.Members)
	return out, true
}

// Edge returns a copy of the edge from→to.
func (g *Graph) Edge(from, to string) (Edge, bool) {
	e, ok := g.edges[pair{from, to}]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether the edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edges[pair{from, to}]
	return ok
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		n, _ := g.Node(id)
		out = append(out, n)
	}
	return out
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns copies of all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edgeSeq))
	for _, k := range g.edgeSeq {
		out = append(out, *g.edges[k])
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edgeSeq) }

// Successors returns the targets of edges leaving id, in insertion order.
// The returned slice should not be modified.
func (g *Graph) Successors(id string) []string { return g.outgoing[id] }

// Predecessors returns the sources of edges entering id, in insertion order.
// The returned slice should not be modified.
func (g *Graph) Predecessors(id string) []string { return g.incoming[id] }

// OutDegree returns the number of edges leaving id.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of edges entering id.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Score returns the relevance score of id: the summed weight of all edges
// leaving and entering it. Returns 0 for unknown nodes.
func (g *Graph) Score(id string) int {
	score := 0
	for _, to := range g.outgoing[id] {
		score += g.edges[pair{id, to}].Weight
	}
	for _, from := range g.incoming[id] {
		score += g.edges[pair{from, id}].Weight
	}
	return score
}

// TotalWeight returns the summed weight of all edges.
func (g *Graph) TotalWeight() int {
	total := 0
	for _, e := range g.edges {
		total += e.Weight
	}
	return total
}

// TotalFrequency returns the summed frequency of all nodes.
func (g *Graph) TotalFrequency() int {
	total := 0
	for _, n := range g.nodes {
		total += n.Frequency
	}
	return total
}

// Clone returns a deep copy of the graph that preserves insertion order.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, n := range g.Nodes() {
		_ = c.AddNode(n)
	}
	for _, e := range g.Edges() {
		_, _ = c.AddEdge(e)
	}
	return c
}

// Subgraph returns the subgraph induced by ids: the listed nodes that exist
// in g, and every edge whose endpoints are both listed. Node and edge order
// follow g, not ids.
func (g *Graph) Subgraph(ids []string) *Graph {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	sub := New()
	for _, id := range g.order {
		if keep[id] {
			n, _ := g.Node(id)
			_ = sub.AddNode(n)
		}
	}
	for _, k := range g.edgeSeq {
		if keep[k.from] && keep[k.to] {
			_, _ = sub.AddEdge(*g.edges[k])
		}
	}
	return sub
}

// RemoveIsolated deletes every node without incoming or outgoing edges and
// returns how many were removed.
func (g *Graph) RemoveIsolated() int {
	kept := g.order[:0]
	removed := 0
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 && len(g.incoming[id]) == 0 {
			delete(g.nodes, id)
			delete(g.outgoing, id)
			delete(g.incoming, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	g.order = kept
	return removed
}

// SuperID builds the ID of a super-node from its members. Members are
// sorted first so the ID does not depend on discovery order.
func SuperID(members []string) string {
	sorted := slices.Clone(members)
	slices.Sort(sorted)
	return SuperPrefix + strings.Join(sorted, superSep)
}

// IsSuperID reports whether id follows the super-node convention.
func IsSuperID(id string) bool { return strings.HasPrefix(id, SuperPrefix) }

// SuperMembers returns the member IDs encoded in a super-node ID, or nil if
// id is not a super-node ID.
func SuperMembers(id string) []string {
	if !IsSuperID(id) {
		return nil
	}
	return strings.Split(strings.TrimPrefix(id, SuperPrefix), superSep)
}
