package linking

import (
	"github.com/matzehuels/phrasenet/pkg/core/annotate"
	"github.com/matzehuels/phrasenet/pkg/core/lexgraph"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

// IsRelation reports whether the dependency label dep produces a syntactic
// edge. Labels are expected lower-cased.
func IsRelation(dep string) bool {
	switch dep {
	case "nsubj", "obj", "iobj", "conj", "acl", "advcl":
		return true
	}
	return false
}

// Syntactic links each head lemma to its dependents over the labels accepted
// by [IsRelation]. The edge is labelled with the first relation seen for the
// pair. Node frequency is the lemma's count over all non-punctuation
// tokens of doc, and nodes appear in the order edges first touch them.
//
// Edges are skipped when the head is missing or punctuation, when either
// lemma is a stopword, or when head and dependent share a lemma.
func Syntactic(doc *annotate.Document, stop stopwords.Set) (*lexgraph.Graph, error) {
	if !doc.HasDependencies() {
		return nil, ErrMissingDependencies
	}

	counts := make(map[string]int)
	for _, l := range doc.Lemmas() {
		counts[l]++
	}

	g := lexgraph.New()
	touch := func(id string) {
		if !g.HasNode(id) {
			_ = g.AddNode(lexgraph.Node{ID: id, Frequency: max(counts[id], 1)})
		}
	}

	for _, s := range doc.Sentences {
		for i, tok := range s.Tokens {
			if !IsRelation(tok.Dep) || tok.POS.IsPunct() || tok.Lemma == "" {
				continue
			}
			head, ok := s.HeadOf(i)
			if !ok || head.POS.IsPunct() || head.Lemma == "" {
				continue
			}
			if head.Lemma == tok.Lemma || stop.Contains(head.Lemma) || stop.Contains(tok.Lemma) {
				continue
			}
			touch(head.Lemma)
			touch(tok.Lemma)
			_, _ = g.AddEdge(lexgraph.Edge{From: head.Lemma, To: tok.Lemma, Weight: 1, Relation: tok.Dep})
		}
	}
	return g, nil
}
