package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/phrasenet/pkg/core/annotate"
	"github.com/matzehuels/phrasenet/pkg/core/lexgraph"
	"github.com/matzehuels/phrasenet/pkg/core/lexgraph/transform"
	"github.com/matzehuels/phrasenet/pkg/core/linking"
	perrors "github.com/matzehuels/phrasenet/pkg/errors"
	"github.com/matzehuels/phrasenet/pkg/graph"
	"github.com/matzehuels/phrasenet/pkg/observability"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

// Runner executes analyses against a shared annotator registry.
//
// The Runner keeps no per-run state: annotators are cached by the registry,
// and nothing else survives between calls. Multiple goroutines can use the
// same Runner.
type Runner struct {
	Registry *annotate.Registry
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil registry gets only the builtin
// annotator, and a nil logger discards output.
func NewRunner(reg *annotate.Registry, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if reg == nil {
		reg = annotate.NewDefaultRegistry(annotate.Endpoints{}, logger)
	}
	return &Runner{Registry: reg, Logger: logger}
}

// Analyze runs the whole pipeline for opts.
//
// Invalid options return INVALID_INPUT or INVALID_LINKING_TYPE before any
// work starts. Registry failures keep their codes. Syntactic linking with an
// annotator lacking dependency data returns MISSING_CAPABILITY. Anything
// else, panics included, returns PROCESSING_FAILED wrapping the cause.
func (r *Runner) Analyze(ctx context.Context, opts Options) (res *Result, err error) {
	start := time.Now()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	mode := opts.Mode()
	if opts.Logger != nil {
		r = &Runner{Registry: r.Registry, Logger: opts.Logger}
	}
	logger := r.Logger

	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = perrors.Wrap(perrors.ErrCodeProcessingFailed, fmt.Errorf("panic: %v", p), "analysis failed")
		}
		observability.Pipeline().OnAnalyzeComplete(ctx, string(mode), time.Since(start), err)
		if err != nil {
			logger.Debug("analysis failed", "linking", mode, "error", err)
		}
	}()

	ann, err := r.Registry.Get(ctx, opts.Annotator)
	if err != nil {
		return nil, err
	}
	if mode == linking.ModeSyntactic && !ann.Capabilities().Dependencies {
		return nil, perrors.New(perrors.ErrCodeMissingCapability,
			"annotator %q does not produce dependency relations required by syntactic linking", ann.Name())
	}
	if mode == linking.ModeSyntactic && opts.Pattern != "" {
		logger.Warn("pattern is ignored for syntactic linking", "pattern", opts.Pattern)
	}

	res = &Result{}
	stats := &res.Stats

	doc, err := r.annotate(ctx, ann, opts.Text, stats)
	if err != nil {
		return nil, err
	}

	stop := stopwords.New(opts.Stopwords...)
	g, err := r.link(ctx, mode, doc, stop, stats)
	if err != nil {
		return nil, err
	}

	if g.NodeCount() > 0 {
		g = r.reduce(ctx, g, opts.MaxNodes, stop, stats)
	} else {
		logger.Debug("empty lemma graph, skipping filter and compress")
	}

	res.Graph = graph.Serialize(g, stop)
	stats.TotalTime = time.Since(start)
	logger.Info("analysis complete",
		"linking", mode,
		"annotator", ann.Name(),
		"tokens", stats.Tokens,
		"nodes", res.Graph.NodeCount,
		"edges", res.Graph.EdgeCount,
		"duration", stats.TotalTime.Round(time.Millisecond))
	return res, nil
}

func (r *Runner) annotate(ctx context.Context, ann annotate.Annotator, text string, stats *Stats) (*annotate.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnAnnotateStart(ctx, ann.Name(), len(text))
	start := time.Now()
	doc, err := ann.Annotate(ctx, text)
	stats.AnnotateTime = time.Since(start)
	if doc != nil {
		stats.Tokens = doc.TokenCount()
	}
	hooks.OnAnnotateComplete(ctx, ann.Name(), stats.Tokens, stats.AnnotateTime, err)
	if err != nil {
		if perrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, perrors.Wrap(perrors.ErrCodeProcessingFailed, err, "annotation with %q failed", ann.Name())
	}
	if doc == nil {
		doc = &annotate.Document{}
	}
	r.Logger.Debug("annotated text", "annotator", ann.Name(), "tokens", stats.Tokens, "duration", stats.AnnotateTime)
	return doc, nil
}

func (r *Runner) link(ctx context.Context, mode linking.Mode, doc *annotate.Document, stop stopwords.Set, stats *Stats) (*lexgraph.Graph, error) {
	start := time.Now()
	g, err := linking.Build(mode, doc, stop)
	stats.LinkTime = time.Since(start)
	if errors.Is(err, linking.ErrMissingDependencies) {
		return nil, perrors.Wrap(perrors.ErrCodeMissingCapability, err, "syntactic linking needs dependency relations")
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeProcessingFailed, err, "link: %s", mode)
	}
	stats.LinkedNodes, stats.LinkedEdges = g.NodeCount(), g.EdgeCount()
	observability.Pipeline().OnStage(ctx, "link", stats.LinkedNodes, stats.LinkedEdges, stats.LinkTime)
	return g, nil
}

func (r *Runner) reduce(ctx context.Context, g *lexgraph.Graph, maxNodes int, stop stopwords.Set, stats *Stats) *lexgraph.Graph {
	hooks := observability.Pipeline()

	start := time.Now()
	filtered, fr := transform.Filter(g, maxNodes, stop)
	stats.FilterTime = time.Since(start)
	stats.FilteredNodes, stats.FilteredEdges = filtered.NodeCount(), filtered.EdgeCount()
	stats.StopwordsRemoved = fr.StopwordsRemoved
	stats.IsolatedRemoved = fr.IsolatedRemoved
	hooks.OnStage(ctx, "filter", stats.FilteredNodes, stats.FilteredEdges, stats.FilterTime)
	r.Logger.Debug("filtered graph",
		"selected", fr.Selected,
		"stopwords", fr.StopwordsRemoved,
		"isolated", fr.IsolatedRemoved)

	start = time.Now()
	compressed, cr := transform.Compress(filtered)
	stats.CompressTime = time.Since(start)
	stats.CompressedNodes, stats.CompressedEdges = compressed.NodeCount(), compressed.EdgeCount()
	stats.NodesMerged = cr.NodesMerged
	stats.SelfLoopsDropped = cr.SelfLoopsDropped
	hooks.OnStage(ctx, "compress", stats.CompressedNodes, stats.CompressedEdges, stats.CompressTime)
	r.Logger.Debug("compressed graph",
		"classes", cr.Classes,
		"merged", cr.NodesMerged,
		"self_loops", cr.SelfLoopsDropped)

	return compressed
}
