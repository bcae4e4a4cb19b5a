// Package simgraph links postings whose skill vectors are similar enough and
// answers "related postings" lookups over the resulting graph.
package simgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/spigell/skillmatch/internal/textvec"
)

// DefaultThreshold is the similarity an edge weight must exceed.
const DefaultThreshold = 0.55

// Neighbor is a node adjacent to a looked-up posting.
type Neighbor struct {
	ID     int64
	Weight float64
}

// Graph is an undirected graph over posting ids weighted by cosine similarity.
// It is a snapshot of one corpus and is never updated after Build.
type Graph struct {
	g         *simple.WeightedUndirectedGraph
	threshold float64
}

// Build computes the similarity of every unordered pair of postings and links
// the pairs scoring strictly above threshold. Every id becomes a node, even
// when it has no neighbor. The cost is quadratic in len(ids).
//
// ids and vectors are parallel slices; ids must be unique.
func Build(ids []int64, vectors []textvec.Vector, threshold float64) (*Graph, error) {
	if len(ids) != len(vectors) {
		return nil, fmt.Errorf("got %d ids for %d vectors", len(ids), len(vectors))
	}

	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, id := range ids {
		if g.Node(id) != nil {
			return nil, fmt.Errorf("duplicate posting id %d", id)
		}
		g.AddNode(simple.Node(id))
	}

	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			sim := textvec.Cosine(vectors[i], vectors[j])
			if sim <= threshold {
				continue
			}
			g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(ids[i]), simple.Node(ids[j]), sim))
		}
	}

	return &Graph{g: g, threshold: threshold}, nil
}

// Threshold returns the edge threshold the graph was built with.
func (g *Graph) Threshold() float64 {
	return g.threshold
}

// Neighbors returns the postings adjacent to id, heaviest edge first; equal
// weights are ordered by id. An unknown id has no neighbors.
func (g *Graph) Neighbors(id int64) []Neighbor {
	if g == nil || g.g.Node(id) == nil {
		return nil
	}

	nodes := graph.NodesOf(g.g.From(id))
	out := make([]Neighbor, 0, len(nodes))
	for _, n := range nodes {
		w, _ := g.g.Weight(id, n.ID())
		out = append(out, Neighbor{ID: n.ID(), Weight: w})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].ID < out[j].ID
	})

	return out
}

// Weight returns the weight of the edge between a and b, if there is one.
func (g *Graph) Weight(a, b int64) (float64, bool) {
	if g == nil || a == b || !g.HasEdge(a, b) {
		return 0, false
	}
	return g.g.Weight(a, b)
}

// HasEdge reports whether a and b are linked.
func (g *Graph) HasEdge(a, b int64) bool {
	if g == nil {
		return false
	}
	return g.g.HasEdgeBetween(a, b)
}

// HasNode reports whether id is part of the graph.
func (g *Graph) HasNode(id int64) bool {
	return g != nil && g.g.Node(id) != nil
}

func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return g.g.Nodes().Len()
}

func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return g.g.WeightedEdges().Len()
}

// Edges lists every edge once with From < To, ordered by From then To.
func (g *Graph) Edges() []Edge {
	if g == nil {
		return nil
	}

	var out []Edge
	edges := g.g.WeightedEdges()
	for edges.Next() {
		e := edges.WeightedEdge()
		from, to := e.From().ID(), e.To().ID()
		if from > to {
			from, to = to, from
		}
		out = append(out, Edge{From: from, To: to, Weight: e.Weight()})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// Edge is an undirected weighted link between two postings.
type Edge struct {
	From   int64
	To     int64
	Weight float64
}
