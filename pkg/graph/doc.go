// Package graph provides the serialized form of a phrase net.
//
// This package defines the wire format returned by the API, written by the
// CLI, and read back by the renderer.
//
// # Architecture
//
// The package sits at the serialization boundary:
//
//   - [Graph]: serialization type (this package)
//   - pkg/core/lexgraph.Graph: internal graph, including super-node bookkeeping
//
// [Serialize] converts from the internal graph. It is one-way: the internal
// super-node ID convention never appears in a [Graph].
//
// # Format
//
//	{
//	  "nodes": [
//	    {"id": "dog", "label": "dog", "frequency": 3, "inDegree": 1, "outDegree": 0},
//	    {"id": "cat|fox", "label": "cat|fox", "frequency": 4, "inDegree": 1,
//	     "outDegree": 0, "groupMembers": ["cat", "fox"]}
//	  ],
//	  "edges": [{"source": "chase", "target": "dog", "weight": 2, "relation": "nsubj"}],
//	  "node_count": 2,
//	  "edge_count": 1
//	}
//
// A compressed class of lemmas appears as one node whose id joins its
// members with "|" and whose groupMembers lists them. If that id is already
// taken by a real lemma, a "#n" suffix is added.
//
// Common operations:
//
//	out := graph.Serialize(compressed, stop)     // lexgraph → Graph
//	graph.WriteGraphFile(out, "net.json")        // Graph → File
//	data, _ := graph.MarshalGraph(out)           // Graph → []byte
//	g, _ := graph.ReadGraphFile("net.json")      // File → Graph
package graph
