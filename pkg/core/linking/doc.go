// Package linking builds the initial lemma graph from an annotated document.
//
// Two modes exist, selected by [Mode]:
//
//   - [Orthographic]: proximity co-occurrence. A window of [WindowSize]
//     lemmas slides across the document; every pair of distinct lemmas in a
//     window gains one unit of edge weight, directed from the lemma seen
//     first in that window to the lemma seen later.
//   - [Syntactic]: grammatical dependency. Each token attached to its head
//     by an allowed relation yields an edge head→dependent labelled with
//     the relation.
//
// Orthographic linking works with any annotator, including the builtin
// tokenizer. Syntactic linking needs dependency labels and fails with
// [ErrMissingDependencies] when the document has none.
//
// Callers may pass a pattern alongside orthographic mode; it is validated
// upstream but has no effect on how edges are formed.
package linking
