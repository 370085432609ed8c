// Package layout assigns 2D positions to graph nodes. Three strategies are
// available: hierarchical (layered top-down), force (Fruchterman–Reingold
// spring simulation), and radial (concentric rings around the best-connected
// node). All strategies are total: any graph shape, including empty or
// cyclic, yields a well-formed layout.
package layout

import (
	"sort"

	"codeatlas/internal/model"
)

// Engine positions nodes with fixed node dimensions and spacing.
type Engine struct {
	NodeWidth  float64
	NodeHeight float64
	HSpacing   float64
	VSpacing   float64
	BaseRadius float64

	// force layout knobs
	Iterations int
	Seed       int64
}

func NewEngine() *Engine {
	return &Engine{
		NodeWidth:  150,
		NodeHeight: 50,
		HSpacing:   50,
		VSpacing:   80,
		BaseRadius: 150,
		Iterations: 50,
		Seed:       1,
	}
}

// Compute sets x/y/width/height on every node in place and returns the same
// slice. Unknown kinds fall back to hierarchical.
func (e *Engine) Compute(nodes []model.Node, edges []model.Edge, kind model.LayoutKind) []model.Node {
	if len(nodes) == 0 {
		return nodes
	}
	switch kind {
	case model.LayoutForce:
		return e.force(nodes, edges)
	case model.LayoutRadial:
		return e.radial(nodes, edges)
	default:
		return e.hierarchical(nodes, edges)
	}
}

func (e *Engine) setPosition(n *model.Node, x, y float64) {
	w, h := e.NodeWidth, e.NodeHeight
	n.X = &x
	n.Y = &y
	n.Width = &w
	n.Height = &h
}

// adjacency holds sorted outgoing/incoming neighbor lists restricted to
// nodes present in the graph. Sorted order keeps BFS traversal, and with it
// level assignment, deterministic.
type adjacency struct {
	out map[string][]string
	in  map[string][]string
}

func buildAdjacency(nodes []model.Node, edges []model.Edge) *adjacency {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}

	adj := &adjacency{
		out: make(map[string][]string),
		in:  make(map[string][]string),
	}
	seen := make(map[[2]string]bool)
	for _, e := range edges {
		if !present[e.Source] || !present[e.Target] {
			continue
		}
		if key := [2]string{e.Source, e.Target}; !seen[key] {
			seen[key] = true
			adj.out[e.Source] = append(adj.out[e.Source], e.Target)
			adj.in[e.Target] = append(adj.in[e.Target], e.Source)
		}
	}
	for _, m := range []map[string][]string{adj.out, adj.in} {
		for id := range m {
			sort.Strings(m[id])
		}
	}
	return adj
}
