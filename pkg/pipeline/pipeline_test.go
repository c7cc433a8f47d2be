package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/phrasenet/pkg/core/annotate"
	perrors "github.com/matzehuels/phrasenet/pkg/errors"
	"github.com/matzehuels/phrasenet/pkg/graph"
	"github.com/matzehuels/phrasenet/pkg/observability"
)

// fakeAnnotator returns a fixed document, error, or panic.
type fakeAnnotator struct {
	caps  annotate.Capabilities
	doc   *annotate.Document
	err   error
	panic any
}

func (f *fakeAnnotator) Name() string                        { return "fake" }
func (f *fakeAnnotator) Capabilities() annotate.Capabilities { return f.caps }

func (f *fakeAnnotator) Annotate(context.Context, string) (*annotate.Document, error) {
	if f.panic != nil {
		panic(f.panic)
	}
	return f.doc, f.err
}

func newTestRunner(fake *fakeAnnotator) *Runner {
	reg := annotate.NewDefaultRegistry(annotate.Endpoints{}, nil)
	if fake != nil {
		reg.Register("fake", func(context.Context) (annotate.Annotator, error) { return fake, nil })
	}
	return NewRunner(reg, nil)
}

func orthoOpts(text string) Options {
	return Options{
		Text:        text,
		LinkingType: "orthographic",
		Annotator:   "builtin",
		Pattern:     ".*",
		MaxNodes:    DefaultMaxNodes,
	}
}

func nodeIDs(g graph.Graph) []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

func findEdge(g graph.Graph, src, dst string) (graph.Edge, bool) {
	for _, e := range g.Edges {
		if e.Source == src && e.Target == dst {
			return e, true
		}
	}
	return graph.Edge{}, false
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		want   perrors.Code
	}{
		{"valid", func(*Options) {}, ""},
		{"empty text", func(o *Options) { o.Text = "  \n\t" }, perrors.ErrCodeInvalidInput},
		{"unknown linking type", func(o *Options) { o.LinkingType = "semantic" }, perrors.ErrCodeInvalidLinkingType},
		{"empty linking type", func(o *Options) { o.LinkingType = "" }, perrors.ErrCodeInvalidLinkingType},
		{"case-insensitive linking type", func(o *Options) { o.LinkingType = " Orthographic " }, ""},
		{"missing pattern", func(o *Options) { o.Pattern = " " }, perrors.ErrCodeInvalidInput},
		{"syntactic without pattern", func(o *Options) { o.LinkingType = "syntactic"; o.Pattern = "" }, ""},
		{"negative max nodes", func(o *Options) { o.MaxNodes = -1 }, perrors.ErrCodeInvalidInput},
		{"zero max nodes", func(o *Options) { o.MaxNodes = 0 }, ""},
		{"empty annotator", func(o *Options) { o.Annotator = "" }, perrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := orthoOpts("a b c")
			tt.mutate(&opts)
			err := opts.Validate()
			if got := perrors.GetCode(err); got != tt.want {
				t.Errorf("Validate() code = %q (err %v), want %q", got, err, tt.want)
			}
			if tt.want != "" && !perrors.IsInvalid(err) {
				t.Errorf("IsInvalid(%v) = false", err)
			}
		})
	}
}

func TestAnalyze_Orthographic(t *testing.T) {
	res, err := newTestRunner(nil).Analyze(context.Background(), orthoOpts("A b, c. a B"))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	g := res.Graph
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	want := []string{"a", "b", "c"}
	got := nodeIDs(g)
	if len(got) != len(want) {
		t.Fatalf("nodes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("nodes = %v, want %v", got, want)
		}
	}
	for _, pair := range [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}} {
		e, ok := findEdge(g, pair[0], pair[1])
		if !ok || e.Weight != 1 {
			t.Errorf("edge %s→%s = %+v, %v; want weight 1", pair[0], pair[1], e, ok)
		}
	}
	if g.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount)
	}
	if g.Nodes[0].Frequency != 2 || g.Nodes[2].Frequency != 1 {
		t.Errorf("frequencies = %d, %d; want 2, 1", g.Nodes[0].Frequency, g.Nodes[2].Frequency)
	}

	s := res.Stats
	if s.Tokens != 5 {
		t.Errorf("Tokens = %d, want 5", s.Tokens)
	}
	if s.LinkedNodes != 3 || s.LinkedEdges != 3 {
		t.Errorf("linked = %d/%d, want 3/3", s.LinkedNodes, s.LinkedEdges)
	}
	if s.CompressedNodes != 3 || s.NodesMerged != 0 {
		t.Errorf("compressed = %d, merged = %d", s.CompressedNodes, s.NodesMerged)
	}
}

func TestAnalyze_Stopwords(t *testing.T) {
	opts := orthoOpts("a X b c a b")
	opts.Stopwords = []string{"x"}
	res, err := newTestRunner(nil).Analyze(context.Background(), opts)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	for _, n := range res.Graph.Nodes {
		if n.ID == "x" {
			t.Fatal("stopword x was serialized")
		}
	}
	if res.Graph.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", res.Graph.EdgeCount)
	}
}

func TestAnalyze_MaxNodes(t *testing.T) {
	opts := orthoOpts("a b c a b")
	opts.MaxNodes = 0
	res, err := newTestRunner(nil).Analyze(context.Background(), opts)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if res.Graph.NodeCount != 0 || res.Graph.EdgeCount != 0 {
		t.Errorf("graph = %d nodes, %d edges; want empty", res.Graph.NodeCount, res.Graph.EdgeCount)
	}
}

func TestAnalyze_EmptyGraph(t *testing.T) {
	res, err := newTestRunner(nil).Analyze(context.Background(), orthoOpts("?! ... --"))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if res.Graph.NodeCount != 0 || res.Graph.Nodes == nil || res.Graph.Edges == nil {
		t.Errorf("graph = %+v, want empty non-nil lists", res.Graph)
	}
	if res.Stats.FilterTime != 0 || res.Stats.CompressTime != 0 {
		t.Error("filter and compress ran on an empty graph")
	}
}

func TestAnalyze_Syntactic(t *testing.T) {
	fake := &fakeAnnotator{
		caps: annotate.Capabilities{Lemmas: true, POS: true, Dependencies: true},
		doc: &annotate.Document{Sentences: []annotate.Sentence{{Tokens: []annotate.Token{
			{Text: "Dogs", Lemma: "dog", POS: annotate.POSNoun, Dep: "nsubj", Head: 2},
			{Text: "run", Lemma: "run", POS: annotate.POSVerb, Dep: "root"},
			{Text: ".", Lemma: ".", POS: annotate.POSPunct, Dep: "punct", Head: 2},
		}}}},
	}
	opts := Options{Text: "Dogs run.", LinkingType: "syntactic", Annotator: "fake", MaxNodes: 10}
	res, err := newTestRunner(fake).Analyze(context.Background(), opts)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	e, ok := findEdge(res.Graph, "run", "dog")
	if !ok || e.Relation != "nsubj" || e.Weight != 1 {
		t.Errorf("edge run→dog = %+v, %v", e, ok)
	}
	if res.Graph.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2", res.Graph.NodeCount)
	}
}

func TestAnalyze_SyntacticRootOnly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","capabilities":{"lemmas":true,"pos":true,"dependencies":true}}`))
	})
	mux.HandleFunc("POST /annotate", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sentences":[{"tokens":[
			{"id":1,"text":"Run","lemma":"run","pos":"VERB","dep":"root","head":0}
		]}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	reg := annotate.NewRegistry()
	reg.Register(annotate.ChoiceStanza, annotate.RemoteFactory(annotate.ChoiceStanza, srv.URL))
	runner := NewRunner(reg, nil)

	opts := Options{Text: "Run", LinkingType: "syntactic", Annotator: annotate.ChoiceStanza, MaxNodes: 10}
	res, err := runner.Analyze(context.Background(), opts)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if res.Graph.NodeCount != 0 || res.Graph.EdgeCount != 0 {
		t.Errorf("graph = %+v, want empty", res.Graph)
	}
}

func TestAnalyze_MissingCapability(t *testing.T) {
	tests := []struct {
		name      string
		annotator string
		fake      *fakeAnnotator
	}{
		{"builtin has no dependencies", "builtin", nil},
		{"document without dependencies", "fake", &fakeAnnotator{
			caps: annotate.Capabilities{Dependencies: true},
			doc: &annotate.Document{Sentences: []annotate.Sentence{{Tokens: []annotate.Token{
				{Text: "dogs", Lemma: "dog"},
			}}}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Text: "Dogs run.", LinkingType: "syntactic", Annotator: tt.annotator, MaxNodes: 10}
			_, err := newTestRunner(tt.fake).Analyze(context.Background(), opts)
			if !perrors.Is(err, perrors.ErrCodeMissingCapability) {
				t.Errorf("Analyze() = %v, want MISSING_CAPABILITY", err)
			}
		})
	}
}

func TestAnalyze_Failures(t *testing.T) {
	cause := errors.New("model exploded")
	tests := []struct {
		name      string
		annotator string
		fake      *fakeAnnotator
		want      perrors.Code
	}{
		{"unknown annotator", "nope", nil, perrors.ErrCodeInvalidInput},
		{"annotator error", "fake", &fakeAnnotator{err: cause}, perrors.ErrCodeProcessingFailed},
		{"annotator panic", "fake", &fakeAnnotator{panic: "boom"}, perrors.ErrCodeProcessingFailed},
		{"coded error kept", "fake", &fakeAnnotator{err: perrors.New(perrors.ErrCodeNetwork, "down")}, perrors.ErrCodeNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := orthoOpts("a b c")
			opts.Annotator = tt.annotator
			res, err := newTestRunner(tt.fake).Analyze(context.Background(), opts)
			if res != nil {
				t.Errorf("Analyze() result = %+v, want nil", res)
			}
			if got := perrors.GetCode(err); got != tt.want {
				t.Errorf("Analyze() = %v, want code %s", err, tt.want)
			}
		})
	}

	_, err := newTestRunner(&fakeAnnotator{err: cause}).Analyze(context.Background(), Options{
		Text: "a", LinkingType: "orthographic", Annotator: "fake", Pattern: "x",
	})
	if !errors.Is(err, cause) {
		t.Errorf("Analyze() = %v, want cause preserved", err)
	}
}

func TestAnalyze_InvalidBeforeWork(t *testing.T) {
	fake := &fakeAnnotator{panic: "must not be called"}
	opts := orthoOpts("a b c")
	opts.Annotator = "fake"
	opts.Pattern = ""
	_, err := newTestRunner(fake).Analyze(context.Background(), opts)
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("Analyze() = %v, want INVALID_INPUT", err)
	}
}

type stageRecorder struct {
	observability.NoopPipelineHooks
	mu       sync.Mutex
	stages   []string
	complete int
}

func (r *stageRecorder) OnStage(_ context.Context, stage string, _, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

func (r *stageRecorder) OnAnalyzeComplete(context.Context, string, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.complete++
}

func TestAnalyze_Hooks(t *testing.T) {
	rec := &stageRecorder{}
	observability.SetPipelineHooks(rec)
	t.Cleanup(observability.Reset)

	if _, err := newTestRunner(nil).Analyze(context.Background(), orthoOpts("a b c a b")); err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	want := []string{"link", "filter", "compress"}
	if len(rec.stages) != len(want) {
		t.Fatalf("stages = %v, want %v", rec.stages, want)
	}
	for i := range want {
		if rec.stages[i] != want[i] {
			t.Errorf("stages = %v, want %v", rec.stages, want)
		}
	}
	if rec.complete != 1 {
		t.Errorf("OnAnalyzeComplete calls = %d, want 1", rec.complete)
	}
}

func TestAnalyze_Concurrent(t *testing.T) {
	r := newTestRunner(nil)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := r.Analyze(context.Background(), orthoOpts("a b c a b"))
			if err == nil && res.Graph.NodeCount != 3 {
				err = errors.New("unexpected node count")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}
