// Package pkg provides the core libraries for phrasenet.
//
// # Overview
//
// Phrasenet turns a body of text into a phrase net: a graph whose nodes are
// lemmas and whose edges connect lemmas that occur together, either close to
// each other in the text (orthographic linking) or joined by a syntactic
// dependency (syntactic linking). The graph is filtered down to its most
// frequent nodes and structurally equivalent nodes are merged, so the result
// stays readable for large documents.
//
// # Architecture
//
// The data flow through phrasenet:
//
//	Text / TXT / PDF
//	       ↓
//	  [extract] (plain text, cached by content hash)
//	       ↓
//	  [core/annotate] (tokens, lemmas, POS, dependencies)
//	       ↓
//	  [core/linking] (orthographic or syntactic lexical graph)
//	       ↓
//	  [core/lexgraph/transform] (Filter, then Compress)
//	       ↓
//	  [graph] (JSON phrase net)
//	       ↓
//	  [render/nodelink] (DOT, SVG, PNG, PDF)
//
// [pipeline] runs the middle stages in order and is shared by the CLI and
// the HTTP server.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, logger)
//	res, err := runner.Analyze(ctx, pipeline.Options{
//	    Text:        text,
//	    LinkingType: "orthographic",
//	    Annotator:   pipeline.DefaultAnnotator,
//	    Pattern:     "X and Y",
//	    MaxNodes:    pipeline.DefaultMaxNodes,
//	})
//	if err != nil {
//	    return err
//	}
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(res.Graph, nodelink.Options{}))
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/annotate] - Annotator interface, the builtin tokenizer, remote
// spaCy/Stanza annotators over HTTP, and a registry that loads each choice
// once.
//
// [core/linking] - Builds the lexical graph from an annotated document.
//
// [core/lexgraph] - The mutable lexical graph and its super-node IDs.
//
// [core/lexgraph/transform] - Filter keeps the most frequent non-stopword
// nodes; Compress merges nodes with identical neighborhoods.
//
// ## Serialization and Rendering
//
// [graph] - The public phrase-net JSON format, with validation.
//
// [render/nodelink] - Graphviz diagrams sized by frequency and weight.
//
// [render] - Output formats and SVG to PDF/PNG conversion.
//
// ## Infrastructure
//
// [config] - TOML, .env and PHRASENET_* environment configuration.
//
// [cache] - File, Redis and null caches for extracted text.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [httputil] - Retrying HTTP client used by remote annotators.
//
// [observability] - Hooks for pipeline, annotator, cache and HTTP events.
//
// [stopwords] - Case-insensitive stopword sets from JSON, YAML or text.
//
// [core/annotate]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/core/annotate
// [core/linking]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/core/linking
// [core/lexgraph]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/core/lexgraph
// [core/lexgraph/transform]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/core/lexgraph/transform
// [extract]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/extract
// [graph]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/observability
// [stopwords]: https://pkg.go.dev/github.com/matzehuels/phrasenet/pkg/stopwords
package pkg
