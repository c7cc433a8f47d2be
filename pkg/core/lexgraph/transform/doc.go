// Package transform reduces a raw lemma graph to a compact phrase net.
//
// # Overview
//
// Linking produces one node per distinct lemma, which for any real document
// is far too many to draw. Two transformations run in order:
//
//   - [Filter] keeps the highest-scoring lemmas and drops stopwords
//   - [Compress] merges lemmas that are structurally indistinguishable
//
// Both return a fresh graph and never modify their input.
//
// # Relevance Filter
//
// A node's score is the summed weight of every edge touching it, computed
// on the unfiltered graph. Nodes are ranked by score, highest first; equal
// scores keep the graph's insertion order, so for linked text the lemma
// that appeared first in the document wins a tie. This ordering is total
// and reproducible for a given input.
//
// Selection takes ranked nodes until maxNodes are chosen, passing over
// super-node markers, which are never selected even when slots remain.
// Stopwords are removed before ranking and never come back.
//
// The induced subgraph on the selection is then cleaned of isolated nodes,
// so the result never holds more than maxNodes nodes and none of degree 0.
//
// # Equivalence Compression
//
// [EquivalenceClasses] partitions nodes by their (predecessor set,
// successor set) pair. The partition is computed once against the input
// graph and is not refined iteratively: merging may create new equivalent
// pairs that a second [Compress] would then fold.
//
//	Before: cat→sat, dog→sat, sat→mat
//	After:  SUPER_NODE:cat|dog→sat, sat→mat
//
// [Collapse] turns every class of two or more nodes into a super-node with
// summed frequency, re-routes edges through it, and sums parallel edges.
// Edges whose endpoints land in the same class are dropped; such edges
// cannot arise from [EquivalenceClasses] but can from a caller-supplied
// partition.
package transform
