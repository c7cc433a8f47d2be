package transform

import (
	"sort"

	"github.com/matzehuels/phrasenet/pkg/core/lexgraph"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

type ranked struct {
	id    string
	score int
}

// Filter keeps at most maxNodes of the best-connected, non-stopword nodes of
// g and returns the induced subgraph without isolated nodes. A negative
// maxNodes is treated as 0. A nil stopword set excludes nothing.
func Filter(g *lexgraph.Graph, maxNodes int, stop stopwords.Set) (*lexgraph.Graph, FilterResult) {
	var res FilterResult
	if maxNodes < 0 {
		maxNodes = 0
	}

	candidates := make([]ranked, 0, g.NodeCount())
	for _, id := range g.NodeIDs() {
		if stop.Contains(id) {
			res.StopwordsRemoved++
			continue
		}
		candidates = append(candidates, ranked{id: id, score: g.Score(id)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	// Super-node markers are never selected. They only appear in graphs
	// filtered after compression.
	selected := make([]string, 0, min(maxNodes, len(candidates)))
	for _, c := range candidates {
		if len(selected) == maxNodes {
			break
		}
		if lexgraph.IsSuperID(c.id) {
			res.SuperSkipped++
			continue
		}
		selected = append(selected, c.id)
	}
	res.Selected = len(selected)

	sub := g.Subgraph(selected)
	res.IsolatedRemoved = sub.RemoveIsolated()
	return sub, res
}
