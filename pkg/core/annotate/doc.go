// Package annotate defines the annotated-token contract consumed by linking
// and the annotators that produce it.
//
// # Overview
//
// An [Annotator] turns raw text into a [Document]: sentences of tokens
// carrying a lemma, a Universal POS tag, and optionally a dependency label
// with a head index. Linking never performs linguistic analysis itself; it
// reads only what the annotator supplied.
//
// # Realizations
//
//   - builtin: a Unicode word tokenizer with no lemmatization, tagging or
//     parsing. Always available.
//   - spacy: a fast tagger and lemmatizer behind an HTTP service. Whether it
//     reports dependencies depends on the model the service runs.
//   - stanza: a full pipeline (tokenize, mwt, pos, lemma, depparse) behind
//     an HTTP service.
//
// Remote services speak a small JSON protocol:
//
//	GET  {url}/health   → {"status":"ok","capabilities":{"lemmas":true,...}}
//	POST {url}/annotate {"text":"..."} → {"sentences":[{"tokens":[...]}]}
//
// # Registry
//
// [Registry] holds one loaded annotator per choice for the life of the
// process. Loads happen on first use; concurrent first requests for the
// same choice share a single load. [Registry.Reload] replaces a loaded
// annotator explicitly.
//
// # Capabilities
//
// [Capabilities] reports what an annotator can produce. Syntactic linking
// checks [Document.HasDependencies] on the actual output, so an annotator
// that claims dependencies but returns none is still rejected.
package annotate
