// Package pipeline runs a complete phrase-net analysis.
//
// This package implements the annotate → link → filter → compress →
// serialize pipeline shared by the CLI and the HTTP API, so both entry
// points validate input and report failures the same way.
//
// # Stages
//
//  1. Annotate: tokenize and lemmatize text with the chosen annotator
//  2. Link: build the lemma graph (orthographic or syntactic)
//  3. Filter: keep the most connected lemmas, dropping stopwords
//  4. Compress: merge structurally equivalent lemmas into super-nodes
//  5. Serialize: produce the node-link document returned to callers
//
// An empty lemma graph skips filtering and compression.
//
// # Usage
//
//	runner := pipeline.NewRunner(annotate.NewDefaultRegistry(ep, logger), logger)
//	result, err := runner.Analyze(ctx, pipeline.Options{
//	    Text:        text,
//	    LinkingType: "orthographic",
//	    Annotator:   "builtin",
//	    Pattern:     ".*",
//	    MaxNodes:    pipeline.DefaultMaxNodes,
//	})
//	if err != nil {
//	    status := errors.HTTPStatus(errors.GetCode(err))
//	    ...
//	}
//	_ = graph.WriteGraph(result.Graph, os.Stdout)
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/phrasenet/pkg/core/linking"
	perrors "github.com/matzehuels/phrasenet/pkg/errors"
	"github.com/matzehuels/phrasenet/pkg/graph"
)

const (
	// DefaultMaxNodes is the node budget used when callers do not choose one.
	DefaultMaxNodes = 100

	// DefaultAnnotator is the annotator choice used when callers do not
	// choose one.
	DefaultAnnotator = "builtin"

	// DefaultLinkingType is the linking mode used when callers do not
	// choose one.
	DefaultLinkingType = string(linking.ModeOrthographic)
)

// Options configures one analysis. MaxNodes is taken literally: zero yields
// an empty graph, so callers apply [DefaultMaxNodes] themselves.
type Options struct {
	Text        string   `json:"text"`
	LinkingType string   `json:"linking_type"`
	Annotator   string   `json:"annotator"`
	Pattern     string   `json:"pattern,omitempty"` // Required for orthographic linking; not applied
	MaxNodes    int      `json:"max_nodes"`
	Stopwords   []string `json:"stopwords,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Validate checks the options. Every failure is an INVALID_INPUT error,
// except an unknown linking type which is INVALID_LINKING_TYPE.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Text) == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "text must not be empty")
	}
	mode, err := linking.ParseMode(o.LinkingType)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidLinkingType, err, "unknown linking type %q", o.LinkingType)
	}
	if mode == linking.ModeOrthographic && strings.TrimSpace(o.Pattern) == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "pattern is required for orthographic linking")
	}
	if o.MaxNodes < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "max_nodes must be >= 0, got %d", o.MaxNodes)
	}
	if strings.TrimSpace(o.Annotator) == "" {
		return perrors.New(perrors.ErrCodeInvalidInput, "annotator must not be empty")
	}
	return nil
}

// Mode returns the parsed linking mode. Call after [Options.Validate].
func (o *Options) Mode() linking.Mode {
	m, _ := linking.ParseMode(o.LinkingType)
	return m
}

// Result is the outcome of a successful analysis.
type Result struct {
	Graph graph.Graph
	Stats Stats
}

// Stats records how the graph changed through the pipeline.
type Stats struct {
	Tokens int // Annotated tokens, punctuation included

	LinkedNodes, LinkedEdges         int
	FilteredNodes, FilteredEdges     int
	CompressedNodes, CompressedEdges int

	StopwordsRemoved int
	IsolatedRemoved  int
	NodesMerged      int
	SelfLoopsDropped int

	AnnotateTime time.Duration
	LinkTime     time.Duration
	FilterTime   time.Duration
	CompressTime time.Duration
	TotalTime    time.Duration
}
