package transform

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/phrasenet/pkg/core/lexgraph"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

type weighted struct {
	from, to string
	weight   int
	relation string
}

func build(t *testing.T, nodes []string, edges []weighted) *lexgraph.Graph {
	t.Helper()
	g := lexgraph.New()
	for _, id := range nodes {
		if err := g.AddNode(lexgraph.Node{ID: id, Frequency: 1}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(lexgraph.Edge{From: e.from, To: e.to, Weight: e.weight, Relation: e.relation}); err != nil {
			t.Fatalf("AddEdge(%s→%s): %v", e.from, e.to, err)
		}
	}
	return g
}

func TestFilter_RanksByScore(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"}, []weighted{
		{"a", "b", 1, ""},
		{"c", "d", 5, ""},
		{"c", "b", 1, ""},
	})

	got, res := Filter(g, 2, nil)
	if ids := got.NodeIDs(); !slices.Equal(ids, []string{"c", "d"}) {
		t.Errorf("NodeIDs() = %v, want [c d]", ids)
	}
	if res.Selected != 2 || res.IsolatedRemoved != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestFilter_TiesKeepInsertionOrder(t *testing.T) {
	g := build(t, []string{"x", "y", "p", "q"}, []weighted{
		{"p", "q", 1, ""},
		{"x", "y", 1, ""},
	})

	got, _ := Filter(g, 2, nil)
	if ids := got.NodeIDs(); !slices.Equal(ids, []string{"x", "y"}) {
		t.Errorf("NodeIDs() = %v, want [x y]", ids)
	}
}

func TestFilter_StopwordsExcluded(t *testing.T) {
	g := build(t, []string{"the", "cat", "sat", "mat"}, []weighted{
		{"the", "cat", 10, ""},
		{"the", "mat", 10, ""},
		{"cat", "sat", 1, ""},
	})

	got, res := Filter(g, 10, stopwords.New("THE"))
	if got.HasNode("the") {
		t.Error("stopword survived filtering")
	}
	if res.StopwordsRemoved != 1 {
		t.Errorf("StopwordsRemoved = %d, want 1", res.StopwordsRemoved)
	}
	if res.IsolatedRemoved != 1 || got.HasNode("mat") {
		t.Errorf("mat should be isolated and removed, result = %+v", res)
	}
}

func TestFilter_SuperMarkersNeverSelected(t *testing.T) {
	super := lexgraph.SuperID([]string{"u", "v"})
	g := build(t, []string{super, "a", "b", "c"}, []weighted{
		{super, "a", 9, ""},
		{"a", "b", 1, ""},
		{"b", "c", 1, ""},
	})

	tests := []struct {
		name     string
		maxNodes int
		want     int
	}{
		{"exact", 3, 3},
		{"free slots", 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := Filter(g, tt.maxNodes, nil)
			if got.HasNode(super) {
				t.Errorf("Filter(%d) kept %s", tt.maxNodes, super)
			}
			if res.Selected != tt.want {
				t.Errorf("Selected = %d, want %d", res.Selected, tt.want)
			}
			if res.SuperSkipped != 1 {
				t.Errorf("SuperSkipped = %d, want 1", res.SuperSkipped)
			}
			if ids := got.NodeIDs(); !slices.Equal(ids, []string{"a", "b", "c"}) {
				t.Errorf("nodes = %v, want [a b c]", ids)
			}
		})
	}
}

func TestFilter_Bounds(t *testing.T) {
	nodes := make([]string, 0, 20)
	var edges []weighted
	for i := range 20 {
		nodes = append(nodes, fmt.Sprintf("n%02d", i))
		if i > 0 {
			edges = append(edges, weighted{nodes[i-1], nodes[i], i, ""})
		}
	}
	g := build(t, nodes, edges)

	for _, limit := range []int{-1, 0, 1, 5, 19, 50} {
		got, _ := Filter(g, limit, nil)
		if got.NodeCount() > max(limit, 0) {
			t.Errorf("Filter(%d) kept %d nodes", limit, got.NodeCount())
		}
		for _, id := range got.NodeIDs() {
			if got.InDegree(id)+got.OutDegree(id) == 0 {
				t.Errorf("Filter(%d) kept isolated node %s", limit, id)
			}
		}
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, []weighted{{"a", "b", 1, ""}})
	_, _ = Filter(g, 1, nil)
	if g.NodeCount() != 3 || g.EdgeCount() != 1 {
		t.Errorf("input changed: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}

func TestEquivalenceClasses(t *testing.T) {
	g := build(t, []string{"cat", "sat", "dog", "mat", "rug"}, []weighted{
		{"cat", "sat", 1, ""},
		{"dog", "sat", 1, ""},
		{"sat", "mat", 1, ""},
		{"sat", "rug", 1, ""},
	})

	got := EquivalenceClasses(g)
	want := [][]string{{"cat", "dog"}, {"sat"}, {"mat", "rug"}}
	if len(got) != len(want) {
		t.Fatalf("classes = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("class %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCompress_MergesParallelEdges(t *testing.T) {
	g := lexgraph.New()
	_ = g.AddNode(lexgraph.Node{ID: "cat", Frequency: 2})
	_ = g.AddNode(lexgraph.Node{ID: "dog", Frequency: 3})
	_ = g.AddNode(lexgraph.Node{ID: "sat", Frequency: 4})
	_ = g.AddNode(lexgraph.Node{ID: "mat", Frequency: 1})
	_, _ = g.AddEdge(lexgraph.Edge{From: "sat", To: "cat", Weight: 2, Relation: "nsubj"})
	_, _ = g.AddEdge(lexgraph.Edge{From: "sat", To: "dog", Weight: 3, Relation: "conj"})
	_, _ = g.AddEdge(lexgraph.Edge{From: "mat", To: "sat", Weight: 1, Relation: "obl"})

	got, res := Compress(g)

	super := lexgraph.SuperID([]string{"cat", "dog"})
	if ids := got.NodeIDs(); !slices.Equal(ids, []string{super, "sat", "mat"}) {
		t.Fatalf("NodeIDs() = %v", ids)
	}
	n, _ := got.Node(super)
	if n.Frequency != 5 || !n.IsSuper() || !slices.Equal(n.Members, []string{"cat", "dog"}) {
		t.Errorf("super-node = %+v", n)
	}
	e, ok := got.Edge("sat", super)
	if !ok || e.Weight != 5 || e.Relation != "nsubj" {
		t.Errorf("Edge(sat, super) = %+v, %v; want weight 5 relation nsubj", e, ok)
	}
	if res.Classes != 3 || res.NodesMerged != 2 || res.SelfLoopsDropped != 0 {
		t.Errorf("result = %+v", res)
	}
	if g.TotalWeight() != got.TotalWeight()+res.WeightDropped {
		t.Errorf("weight not conserved: %d before, %d after", g.TotalWeight(), got.TotalWeight())
	}
	if g.TotalFrequency() != got.TotalFrequency() {
		t.Errorf("frequency not conserved: %d before, %d after", g.TotalFrequency(), got.TotalFrequency())
	}
}

func TestCompress_Idempotent(t *testing.T) {
	g := build(t, []string{"cat", "dog", "sat", "mat"}, []weighted{
		{"cat", "sat", 1, ""},
		{"dog", "sat", 1, ""},
		{"sat", "mat", 1, ""},
	})

	once, _ := Compress(g)
	twice, res := Compress(once)
	if res.NodesMerged != 0 {
		t.Errorf("second Compress merged %d nodes", res.NodesMerged)
	}
	if !slices.Equal(once.NodeIDs(), twice.NodeIDs()) {
		t.Errorf("NodeIDs: %v then %v", once.NodeIDs(), twice.NodeIDs())
	}
	if !slices.Equal(once.Edges(), twice.Edges()) {
		t.Errorf("Edges: %v then %v", once.Edges(), twice.Edges())
	}
}

func TestCollapse_DropsSelfLoops(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, []weighted{
		{"a", "b", 2, ""},
		{"b", "c", 1, ""},
		{"a", "c", 1, ""},
	})

	got, res := Collapse(g, [][]string{{"a", "b"}, {"c"}})

	super := lexgraph.SuperID([]string{"a", "b"})
	if res.SelfLoopsDropped != 1 || res.WeightDropped != 2 {
		t.Errorf("result = %+v, want 1 self-loop of weight 2", res)
	}
	if got.HasEdge(super, super) {
		t.Error("self-loop survived")
	}
	if e, _ := got.Edge(super, "c"); e.Weight != 2 {
		t.Errorf("Edge(super, c).Weight = %d, want 2", e.Weight)
	}
	if g.TotalWeight() != got.TotalWeight()+res.WeightDropped {
		t.Errorf("weight not conserved: %d before, %d after, %d dropped",
			g.TotalWeight(), got.TotalWeight(), res.WeightDropped)
	}
}

func TestCollapse_IgnoresUnknownAndRepeatedIDs(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, nil)

	got, res := Collapse(g, [][]string{{"a", "ghost"}, {"b", "c"}, {"c", "a"}})
	if res.NodesMerged != 2 {
		t.Errorf("NodesMerged = %d, want 2", res.NodesMerged)
	}
	if ids := got.NodeIDs(); !slices.Equal(ids, []string{"a", lexgraph.SuperID([]string{"b", "c"})}) {
		t.Errorf("NodeIDs() = %v", ids)
	}
}

func TestFilterThenCompress_FrequencyConserved(t *testing.T) {
	g := lexgraph.New()
	freqs := map[string]int{"the": 7, "cat": 2, "dog": 3, "sat": 4}
	for _, id := range []string{"the", "cat", "dog", "sat"} {
		_ = g.AddNode(lexgraph.Node{ID: id, Frequency: freqs[id]})
	}
	_, _ = g.AddEdge(lexgraph.Edge{From: "cat", To: "sat", Weight: 1})
	_, _ = g.AddEdge(lexgraph.Edge{From: "dog", To: "sat", Weight: 1})
	_, _ = g.AddEdge(lexgraph.Edge{From: "the", To: "cat", Weight: 1})

	filtered, _ := Filter(g, 10, stopwords.New("the"))
	compressed, _ := Compress(filtered)

	if want := g.TotalFrequency() - freqs["the"]; compressed.TotalFrequency() != want {
		t.Errorf("TotalFrequency() = %d, want %d", compressed.TotalFrequency(), want)
	}
}
