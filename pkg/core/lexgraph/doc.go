// Package lexgraph provides the directed, weighted lemma graph that every
// stage of the phrase net pipeline produces and consumes.
//
// # Overview
//
// A phrase net is a directed graph whose nodes are word lemmas and whose
// edges record either proximity co-occurrence or a grammatical dependency
// between two lemmas. This package provides the core data structure: a
// simple directed graph (at most one edge per ordered pair) with integer
// edge weights, optional relation labels, and per-node frequencies.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode] and edges with
// [Graph.AddEdge]. Adding an edge that already exists accumulates its
// weight instead of creating a parallel edge. Self-loops are skipped:
//
//	g := lexgraph.New()
//	g.AddNode(lexgraph.Node{ID: "run", Frequency: 2})
//	g.AddNode(lexgraph.Node{ID: "dog", Frequency: 1})
//	g.AddEdge(lexgraph.Edge{From: "run", To: "dog", Weight: 1, Relation: "nsubj"})
//
// # Iteration Order
//
// [Graph.Nodes] and [Graph.Edges] return elements in insertion order. The
// pipeline relies on this: ranking ties in the relevance filter and the
// equivalence partition both walk nodes in this order, so the same input
// always yields the same output.
//
// # Super-Nodes
//
// The compressor in the [transform] subpackage replaces classes of
// structurally equivalent lemmas with a single [NodeKindSuper] node whose
// ID is built by [SuperID]. The upper-case prefix can never collide with a
// lemma because lemmas are lower-cased by the annotator.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Pipeline stages
// never share a graph: each stage returns a fresh value.
//
// [transform]: github.com/matzehuels/phrasenet/pkg/core/lexgraph/transform
package lexgraph
