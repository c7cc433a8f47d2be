package linking

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/phrasenet/pkg/core/annotate"
	"github.com/matzehuels/phrasenet/pkg/core/lexgraph"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

func words(s string) *annotate.Document {
	var toks []annotate.Token
	for _, w := range strings.Fields(s) {
		toks = append(toks, annotate.Token{Text: w, Lemma: w})
	}
	return &annotate.Document{Sentences: []annotate.Sentence{{Tokens: toks}}}
}

func edgeMap(g *lexgraph.Graph) map[[2]string]int {
	out := make(map[[2]string]int)
	for _, e := range g.Edges() {
		out[[2]string{e.From, e.To}] = e.Weight
	}
	return out
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"orthographic", ModeOrthographic, false},
		{" Syntactic ", ModeSyntactic, false},
		{"semantic", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidMode) {
			t.Errorf("ParseMode(%q) error should wrap ErrInvalidMode", tt.in)
		}
	}
}

func TestOrthographic_SingleWindow(t *testing.T) {
	g := Orthographic(words("a b c a b"), nil)

	want := map[[2]string]int{
		{"a", "b"}: 1,
		{"a", "c"}: 1,
		{"b", "c"}: 1,
	}
	got := edgeMap(g)
	if len(got) != len(want) {
		t.Fatalf("edges = %v, want %v", got, want)
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("weight(%s→%s) = %d, want %d", k[0], k[1], got[k], w)
		}
	}

	if ids := g.NodeIDs(); !slices.Equal(ids, []string{"a", "b", "c"}) {
		t.Errorf("NodeIDs() = %v", ids)
	}
	for id, f := range map[string]int{"a": 2, "b": 2, "c": 1} {
		if n, _ := g.Node(id); n.Frequency != f {
			t.Errorf("frequency(%s) = %d, want %d", id, n.Frequency, f)
		}
	}
}

func TestOrthographic_SlidingWindows(t *testing.T) {
	g := Orthographic(words("a b c d e a"), nil)
	got := edgeMap(g)

	// First window: all pairs of a..e. Second window (b c d e a) repeats
	// the b..e pairs and adds each of them → a.
	checks := map[[2]string]int{
		{"a", "b"}: 1,
		{"b", "c"}: 2,
		{"d", "e"}: 2,
		{"b", "a"}: 1,
		{"e", "a"}: 1,
	}
	for k, w := range checks {
		if got[k] != w {
			t.Errorf("weight(%s→%s) = %d, want %d", k[0], k[1], got[k], w)
		}
	}
	if g.EdgeCount() != 14 {
		t.Errorf("EdgeCount() = %d, want 14", g.EdgeCount())
	}
}

func TestOrthographic_ShortStream(t *testing.T) {
	g := Orthographic(words("a b c d"), nil)
	if g.NodeCount() != 4 || g.EdgeCount() != 0 {
		t.Errorf("got %d nodes %d edges, want 4 nodes 0 edges", g.NodeCount(), g.EdgeCount())
	}
}

func TestOrthographic_SkipsStopwordsAndPunctuation(t *testing.T) {
	doc := &annotate.Document{Sentences: []annotate.Sentence{{Tokens: []annotate.Token{
		{Lemma: "the", Stop: true},
		{Lemma: "cat"},
		{Lemma: ",", POS: annotate.POSPunct},
		{Lemma: "sat"},
		{Lemma: "on"},
		{Lemma: "mat"},
		{Lemma: "cat"},
		{Lemma: "nap"},
	}}}}

	g := Orthographic(doc, stopwords.New("ON"))
	if ids := g.NodeIDs(); !slices.Equal(ids, []string{"cat", "sat", "mat", "nap"}) {
		t.Errorf("NodeIDs() = %v", ids)
	}
	// Stream is cat sat mat cat nap: one window.
	if g.EdgeCount() != 6 {
		t.Errorf("EdgeCount() = %d, want 6", g.EdgeCount())
	}
	if e, _ := g.Edge("cat", "nap"); e.Weight != 1 {
		t.Errorf("weight(cat→nap) = %d, want 1", e.Weight)
	}
}

func sentence(toks ...annotate.Token) annotate.Sentence {
	return annotate.Sentence{Tokens: toks}
}

func TestSyntactic_HeadToDependent(t *testing.T) {
	doc := &annotate.Document{Sentences: []annotate.Sentence{sentence(
		annotate.Token{Lemma: "run", POS: annotate.POSVerb},
		annotate.Token{Lemma: "dog", POS: annotate.POSNoun, Dep: "nsubj", Head: 1},
	)}}

	g, err := Syntactic(doc, nil)
	if err != nil {
		t.Fatalf("Syntactic() error: %v", err)
	}
	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("edges = %v, want 1", edges)
	}
	want := lexgraph.Edge{From: "run", To: "dog", Weight: 1, Relation: "nsubj"}
	if edges[0] != want {
		t.Errorf("edge = %+v, want %+v", edges[0], want)
	}
}

func TestSyntactic_MissingDependencies(t *testing.T) {
	_, err := Syntactic(words("dogs run"), nil)
	if !errors.Is(err, ErrMissingDependencies) {
		t.Errorf("error = %v, want ErrMissingDependencies", err)
	}
}

func TestSyntactic_RootOnly(t *testing.T) {
	doc := &annotate.Document{Sentences: []annotate.Sentence{
		sentence(annotate.Token{Lemma: "run", POS: annotate.POSVerb, Dep: "root"}),
	}}
	g, err := Syntactic(doc, nil)
	if err != nil {
		t.Fatalf("Syntactic() error: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("graph has %d nodes and %d edges, want none", g.NodeCount(), g.EdgeCount())
	}
}

func TestIsRelation(t *testing.T) {
	tests := []struct {
		dep  string
		want bool
	}{
		{"nsubj", true},
		{"obj", true},
		{"iobj", true},
		{"conj", true},
		{"acl", true},
		{"advcl", true},
		{"root", false},
		{"amod", false},
		{"NSUBJ", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRelation(tt.dep); got != tt.want {
			t.Errorf("IsRelation(%q) = %v, want %v", tt.dep, got, tt.want)
		}
	}
}

func TestSyntactic_Rules(t *testing.T) {
	doc := &annotate.Document{Sentences: []annotate.Sentence{
		sentence(
			annotate.Token{Lemma: "dog", Dep: "nsubj", Head: 2},
			annotate.Token{Lemma: "chase", POS: annotate.POSVerb},
			annotate.Token{Lemma: "cat", Dep: "obj", Head: 2},
			annotate.Token{Lemma: "big", Dep: "amod", Head: 3},
			annotate.Token{Lemma: ".", POS: annotate.POSPunct, Dep: "punct", Head: 2},
		),
		sentence(
			annotate.Token{Lemma: "dog", Dep: "conj", Head: 2},
			annotate.Token{Lemma: "chase"},
			annotate.Token{Lemma: "chase", Dep: "conj", Head: 2},
			annotate.Token{Lemma: "the", Dep: "obj", Head: 2},
			annotate.Token{Lemma: "x", Dep: "nsubj", Head: 6},
			annotate.Token{Lemma: ";", POS: annotate.POSPunct},
			annotate.Token{Lemma: "y", Dep: "nsubj", Head: 0},
		),
	}}

	g, err := Syntactic(doc, stopwords.New("the"))
	if err != nil {
		t.Fatalf("Syntactic() error: %v", err)
	}

	e, ok := g.Edge("chase", "dog")
	if !ok || e.Weight != 2 || e.Relation != "nsubj" {
		t.Errorf("Edge(chase, dog) = %+v, %v; want weight 2 relation nsubj", e, ok)
	}
	if e, _ := g.Edge("chase", "cat"); e.Relation != "obj" {
		t.Errorf("Edge(chase, cat).Relation = %q, want obj", e.Relation)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edges = %v, want 2", g.Edges())
	}
	for _, id := range []string{"big", "the", "x", "y", ";"} {
		if g.HasNode(id) {
			t.Errorf("unexpected node %q", id)
		}
	}
	if ids := g.NodeIDs(); !slices.Equal(ids, []string{"chase", "dog", "cat"}) {
		t.Errorf("NodeIDs() = %v", ids)
	}
	if n, _ := g.Node("chase"); n.Frequency != 3 {
		t.Errorf("frequency(chase) = %d, want 3", n.Frequency)
	}
}

func TestBuild(t *testing.T) {
	if _, err := Build(ModeSyntactic, words("a b"), nil); !errors.Is(err, ErrMissingDependencies) {
		t.Errorf("Build(syntactic) error = %v", err)
	}
	g, err := Build(ModeOrthographic, words("a b c d e"), nil)
	if err != nil || g.EdgeCount() != 10 {
		t.Errorf("Build(orthographic) = %v edges, %v", g.EdgeCount(), err)
	}
	if _, err := Build("fuzzy", words("a"), nil); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Build(fuzzy) error = %v", err)
	}
}
