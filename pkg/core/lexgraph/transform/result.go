package transform

// FilterResult reports what [Filter] removed and kept.
type FilterResult struct {
	// StopwordsRemoved is the number of nodes excluded as stopwords.
	StopwordsRemoved int

	// SuperSkipped is the number of super-node markers passed over.
	SuperSkipped int

	// Selected is the number of nodes chosen by ranking, before isolated
	// nodes were removed. Never exceeds maxNodes.
	Selected int

	// IsolatedRemoved is the number of selected nodes dropped because no
	// edge connected them to another selected node.
	IsolatedRemoved int
}

// CompressResult reports what [Collapse] and [Compress] merged.
type CompressResult struct {
	// Classes is the number of equivalence classes, including singletons.
	// It equals the node count of the compressed graph.
	Classes int

	// NodesMerged is the number of input nodes folded into super-nodes.
	NodesMerged int

	// SelfLoopsDropped is the number of input edges discarded because both
	// endpoints ended up in the same super-node.
	SelfLoopsDropped int

	// WeightDropped is the summed weight of those edges.
	WeightDropped int
}
