package layout

import (
	"math"
	"testing"

	"codeatlas/internal/model"
)

func node(id string, kind model.NodeKind) model.Node {
	return model.Node{ID: id, Label: id, Kind: kind}
}

func chain(ids ...string) ([]model.Node, []model.Edge) {
	var nodes []model.Node
	var edges []model.Edge
	for i, id := range ids {
		nodes = append(nodes, node(id, model.NodeFunction))
		if i > 0 {
			edges = append(edges, model.Edge{Source: ids[i-1], Target: id, Kind: model.EdgeCalls})
		}
	}
	return nodes, edges
}

func checkPlaced(t *testing.T, nodes []model.Node, bound float64) {
	t.Helper()
	for _, n := range nodes {
		if n.X == nil || n.Y == nil || n.Width == nil || n.Height == nil {
			t.Fatalf("node %s missing position or size", n.ID)
		}
		if math.IsNaN(*n.X) || math.IsInf(*n.X, 0) || math.IsNaN(*n.Y) || math.IsInf(*n.Y, 0) {
			t.Fatalf("node %s has non-finite position (%v, %v)", n.ID, *n.X, *n.Y)
		}
		if *n.Width != 150 || *n.Height != 50 {
			t.Errorf("node %s size = %vx%v, want 150x50", n.ID, *n.Width, *n.Height)
		}
		if bound > 0 && (math.Abs(*n.X) > bound || math.Abs(*n.Y) > bound) {
			t.Errorf("node %s out of bounds (%v, %v)", n.ID, *n.X, *n.Y)
		}
	}
}

func TestAllStrategiesPlaceEveryNode(t *testing.T) {
	nodes, edges := chain("a", "b", "c", "d", "e")
	// one disconnected node and one cycle
	nodes = append(nodes, node("island", model.NodeClass))
	edges = append(edges, model.Edge{Source: "e", Target: "a", Kind: model.EdgeCalls})

	for _, kind := range []model.LayoutKind{model.LayoutHierarchical, model.LayoutForce, model.LayoutRadial} {
		got := NewEngine().Compute(append([]model.Node(nil), nodes...), edges, kind)
		if len(got) != len(nodes) {
			t.Fatalf("%s: node count changed", kind)
		}
		bound := 0.0
		if kind == model.LayoutForce {
			bound = float64(len(nodes)) * 10000 / 2
		}
		checkPlaced(t, got, bound)
	}
}

func TestHierarchicalChain(t *testing.T) {
	nodes, edges := chain("a", "b", "c")
	got := NewEngine().Compute(nodes, edges, model.LayoutHierarchical)

	byID := make(map[string]model.Node)
	for _, n := range got {
		byID[n.ID] = n
	}

	// levels 0, 1, 2 at y = level * (50 + 80)
	for i, id := range []string{"a", "b", "c"} {
		n := byID[id]
		wantY := float64(i) * 130
		if *n.Y != wantY {
			t.Errorf("%s y = %v, want %v", id, *n.Y, wantY)
		}
	}

	// single node per level, centered at x = 0
	for _, n := range got {
		if *n.X != 0 {
			t.Errorf("%s x = %v, want 0 (row of one centered)", n.ID, *n.X)
		}
	}
}

func TestHierarchicalCycleFallsBackToFileNodes(t *testing.T) {
	nodes := []model.Node{
		node("file:a", model.NodeFile),
		node("file:b", model.NodeFile),
	}
	edges := []model.Edge{
		{Source: "file:a", Target: "file:b", Kind: model.EdgeImports},
		{Source: "file:b", Target: "file:a", Kind: model.EdgeImports},
	}

	got := NewEngine().Compute(nodes, edges, model.LayoutHierarchical)
	checkPlaced(t, got, 0)

	// the first file node becomes the root level
	for _, n := range got {
		if n.ID == "file:a" && *n.Y != 0 {
			t.Errorf("file:a y = %v, want 0", *n.Y)
		}
	}
}

func TestHierarchicalUnreachedSyntheticLevel(t *testing.T) {
	// a detached cycle: both members have incoming edges, so neither is a
	// root and BFS from the chain never reaches them
	nodes, edges := chain("a", "b")
	nodes = append(nodes, node("d", model.NodeFunction), node("e", model.NodeFunction))
	edges = append(edges,
		model.Edge{Source: "d", Target: "e", Kind: model.EdgeCalls},
		model.Edge{Source: "e", Target: "d", Kind: model.EdgeCalls},
	)

	got := NewEngine().Compute(nodes, edges, model.LayoutHierarchical)
	byID := make(map[string]model.Node)
	for _, n := range got {
		byID[n.ID] = n
	}

	// the cycle sits on a synthetic level below the deepest reached level
	for _, id := range []string{"d", "e"} {
		if *byID[id].Y <= *byID["b"].Y {
			t.Errorf("%s y = %v, not beyond b y = %v", id, *byID[id].Y, *byID["b"].Y)
		}
	}
	if *byID["d"].Y != *byID["e"].Y {
		t.Errorf("d y = %v, e y = %v, want same synthetic level", *byID["d"].Y, *byID["e"].Y)
	}
}

func TestForceDeterministicForSeed(t *testing.T) {
	nodes1, edges := chain("a", "b", "c", "d")
	nodes2, _ := chain("a", "b", "c", "d")

	e := NewEngine()
	first := e.Compute(nodes1, edges, model.LayoutForce)
	second := NewEngine().Compute(nodes2, edges, model.LayoutForce)

	for i := range first {
		if *first[i].X != *second[i].X || *first[i].Y != *second[i].Y {
			t.Fatalf("node %s moved between identical runs", first[i].ID)
		}
	}

	e.Seed = 99
	third := e.Compute(append([]model.Node(nil), nodes1...), edges, model.LayoutForce)
	same := true
	for i := range first {
		if *first[i].X != *third[i].X || *first[i].Y != *third[i].Y {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical layouts")
	}
}

func TestForceSeparatesNodes(t *testing.T) {
	nodes, edges := chain("a", "b", "c")
	got := NewEngine().Compute(nodes, edges, model.LayoutForce)

	for i := 0; i < len(got); i++ {
		for j := i + 1; j < len(got); j++ {
			dx := *got[i].X - *got[j].X
			dy := *got[i].Y - *got[j].Y
			if math.Hypot(dx, dy) < 1 {
				t.Errorf("nodes %s and %s ended on top of each other", got[i].ID, got[j].ID)
			}
		}
	}
}

func TestRadialCenterAndRings(t *testing.T) {
	// hub with three spokes; hub has the highest degree
	nodes := []model.Node{
		node("hub", model.NodeClass),
		node("s1", model.NodeFunction),
		node("s2", model.NodeFunction),
		node("s3", model.NodeFunction),
	}
	edges := []model.Edge{
		{Source: "hub", Target: "s1", Kind: model.EdgeCalls},
		{Source: "hub", Target: "s2", Kind: model.EdgeCalls},
		{Source: "s3", Target: "hub", Kind: model.EdgeCalls},
	}

	got := NewEngine().Compute(nodes, edges, model.LayoutRadial)
	byID := make(map[string]model.Node)
	for _, n := range got {
		byID[n.ID] = n
	}

	if *byID["hub"].X != 0 || *byID["hub"].Y != 0 {
		t.Errorf("hub at (%v, %v), want origin", *byID["hub"].X, *byID["hub"].Y)
	}
	for _, id := range []string{"s1", "s2", "s3"} {
		n := byID[id]
		r := math.Hypot(*n.X, *n.Y)
		if math.Abs(r-150) > 1e-9 {
			t.Errorf("%s radius = %v, want 150", id, r)
		}
	}
}

func TestRadialUnreachedOuterRing(t *testing.T) {
	nodes := []model.Node{
		node("hub", model.NodeClass),
		node("s1", model.NodeFunction),
		node("island", model.NodeFunction),
	}
	edges := []model.Edge{{Source: "hub", Target: "s1", Kind: model.EdgeCalls}}

	got := NewEngine().Compute(nodes, edges, model.LayoutRadial)
	for _, n := range got {
		if n.ID == "island" {
			r := math.Hypot(*n.X, *n.Y)
			if math.Abs(r-300) > 1e-9 {
				t.Errorf("island radius = %v, want 300 (one ring past max)", r)
			}
		}
	}
}

func TestComputeEmptyGraph(t *testing.T) {
	for _, kind := range []model.LayoutKind{model.LayoutHierarchical, model.LayoutForce, model.LayoutRadial} {
		if got := NewEngine().Compute(nil, nil, kind); len(got) != 0 {
			t.Errorf("%s: empty graph produced nodes", kind)
		}
	}
}
