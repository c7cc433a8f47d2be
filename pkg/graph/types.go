package graph

import (
	"errors"
	"fmt"
)

// GroupSep joins the members of a compressed node in its public ID.
const GroupSep = "|"

// =============================================================================
// Graph - Phrase Net Serialization
// =============================================================================

// Graph is the serialized phrase net.
type Graph struct {
	Nodes     []Node `json:"nodes"`
	Edges     []Edge `json:"edges"`
	NodeCount int    `json:"node_count"`
	EdgeCount int    `json:"edge_count"`
}

// Node is a lemma, or a group of structurally equivalent lemmas.
type Node struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Frequency    int      `json:"frequency"`
	InDegree     int      `json:"inDegree"`
	OutDegree    int      `json:"outDegree"`
	GroupMembers []string `json:"groupMembers,omitempty"`
}

// IsGroup reports whether the node stands for several lemmas.
func (n Node) IsGroup() bool { return len(n.GroupMembers) > 0 }

// Edge is a weighted link. Relation is set for syntactic links only.
type Edge struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Weight   int    `json:"weight"`
	Relation string `json:"relation,omitempty"`
}

// =============================================================================
// Validation
// =============================================================================

var (
	// ErrCountMismatch is returned when node_count or edge_count disagree
	// with the lists.
	ErrCountMismatch = errors.New("count does not match list length")

	// ErrDanglingEdge is returned when an edge references a missing node.
	ErrDanglingEdge = errors.New("edge references unknown node")

	// ErrDuplicateNode is returned when two nodes share an ID.
	ErrDuplicateNode = errors.New("duplicate node id")
)

// Validate checks that counts match, node IDs are unique, and every edge
// connects two listed nodes with positive weight.
func (g Graph) Validate() error {
	if g.NodeCount != len(g.Nodes) || g.EdgeCount != len(g.Edges) {
		return fmt.Errorf("%w: node_count=%d (%d nodes), edge_count=%d (%d edges)",
			ErrCountMismatch, g.NodeCount, len(g.Nodes), g.EdgeCount, len(g.Edges))
	}
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if ids[n.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range g.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			return fmt.Errorf("%w: %s→%s", ErrDanglingEdge, e.Source, e.Target)
		}
		if e.Weight < 1 {
			return fmt.Errorf("edge %s→%s: weight %d < 1", e.Source, e.Target, e.Weight)
		}
	}
	return nil
}

// TotalWeight returns the summed weight of all edges.
func (g Graph) TotalWeight() int {
	total := 0
	for _, e := range g.Edges {
		total += e.Weight
	}
	return total
}
