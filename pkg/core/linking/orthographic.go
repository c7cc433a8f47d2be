package linking

import (
	"github.com/matzehuels/phrasenet/pkg/core/annotate"
	"github.com/matzehuels/phrasenet/pkg/core/lexgraph"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

// Orthographic links lemmas that occur within [WindowSize] positions of
// each other.
//
// The lemma stream skips punctuation, annotator-flagged stopwords, and
// lemmas in stop. Every distinct lemma becomes a node, in first-occurrence
// order, with its count as frequency. For each window start i in
// [0, len-WindowSize], the window's distinct lemmas are taken in order of
// first appearance within the window and every earlier→later pair gains
// weight 1. Streams shorter than a window produce nodes but no edges.
func Orthographic(doc *annotate.Document, stop stopwords.Set) *lexgraph.Graph {
	stream := lemmaStream(doc, stop)

	counts := make(map[string]int)
	var order []string
	for _, l := range stream {
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}

	g := lexgraph.New()
	for _, l := range order {
		_ = g.AddNode(lexgraph.Node{ID: l, Frequency: counts[l]})
	}

	distinct := make([]string, 0, WindowSize)
	seen := make(map[string]bool, WindowSize)
	for i := 0; i+WindowSize <= len(stream); i++ {
		distinct = distinct[:0]
		clear(seen)
		for _, l := range stream[i : i+WindowSize] {
			if !seen[l] {
				seen[l] = true
				distinct = append(distinct, l)
			}
		}
		for a := range distinct {
			for b := a + 1; b < len(distinct); b++ {
				_, _ = g.AddEdge(lexgraph.Edge{From: distinct[a], To: distinct[b], Weight: 1})
			}
		}
	}
	return g
}

func lemmaStream(doc *annotate.Document, stop stopwords.Set) []string {
	var out []string
	for _, s := range doc.Sentences {
		for _, t := range s.Tokens {
			if t.POS.IsPunct() || t.Stop || t.Lemma == "" || stop.Contains(t.Lemma) {
				continue
			}
			out = append(out, t.Lemma)
		}
	}
	return out
}
