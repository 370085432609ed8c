package graph

import (
	"reflect"
	"sort"
	"testing"

	"codeatlas/internal/model"
)

func node(id, path string, kind model.NodeKind) model.Node {
	n := model.Node{ID: id, Label: id, Kind: kind}
	if path != "" {
		n.Location = &model.SourceLocation{FilePath: path, StartLine: 1, EndLine: 1}
	}
	return n
}

func TestClusterByDirectory(t *testing.T) {
	nodes := []model.Node{
		node("n1", "api/billing/service.py", model.NodeFile),
		node("n2", "api/billing/models.py", model.NodeFile),
		node("n3", "web/index.ts", model.NodeFile),
		node("n4", "main.py", model.NodeFile),
	}

	clusters := NewClusterer().Cluster(nodes, nil)

	if got := clusters["dir:api/billing"]; !reflect.DeepEqual(got, []string{"n1", "n2"}) {
		t.Errorf("dir:api/billing = %v", got)
	}
	if got := clusters["dir:web"]; !reflect.DeepEqual(got, []string{"n3"}) {
		t.Errorf("dir:web = %v", got)
	}
	// a bare file name has no directory
	if got := clusters["dir:root"]; !reflect.DeepEqual(got, []string{"n4"}) {
		t.Errorf("dir:root = %v", got)
	}
}

func TestClusterByDirectoryGroupFallback(t *testing.T) {
	nodes := []model.Node{{ID: "g1", Kind: model.NodeExternal, Group: "vendored"}}
	clusters := NewClusterer().Cluster(nodes, nil)
	if got := clusters["dir:vendored"]; !reflect.DeepEqual(got, []string{"g1"}) {
		t.Errorf("dir:vendored = %v", got)
	}
}

func TestClusterByKindThreshold(t *testing.T) {
	nodes := []model.Node{
		node("f1", "a/x.py", model.NodeFunction),
		node("f2", "a/y.py", model.NodeFunction),
		node("f3", "a/z.py", model.NodeFunction),
		node("c1", "a/w.py", model.NodeClass),
		node("c2", "a/v.py", model.NodeClass),
	}

	clusters := NewClusterer().Cluster(nodes, nil)

	if _, ok := clusters["type:function"]; !ok {
		t.Error("type:function cluster missing (3 members)")
	}
	if _, ok := clusters["type:class"]; ok {
		t.Error("type:class cluster created with only 2 members")
	}
}

func TestClusterByConnectivity(t *testing.T) {
	nodes := []model.Node{
		node("a", "", model.NodeFunction),
		node("b", "", model.NodeFunction),
		node("c", "", model.NodeFunction),
		node("d", "", model.NodeFunction),
		node("lone", "", model.NodeFunction),
	}
	edges := []model.Edge{
		{Source: "a", Target: "b", Kind: model.EdgeCalls},
		{Source: "b", Target: "c", Kind: model.EdgeImports},
		// contains is not a strong kind, must not merge components
		{Source: "c", Target: "d", Kind: model.EdgeContains},
	}

	clusters := NewClusterer().Cluster(nodes, edges)

	var components [][]string
	for name, members := range clusters {
		if len(name) > 10 && name[:10] == "component:" {
			components = append(components, members)
		}
	}
	if len(components) != 1 {
		t.Fatalf("components = %d, want 1 (got %v)", len(components), components)
	}
	want := []string{"a", "b", "c"}
	got := append([]string(nil), components[0]...)
	sort.Strings(got)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("component members = %v, want %v", got, want)
	}
}

func TestClusterReadOnly(t *testing.T) {
	nodes := []model.Node{node("a", "x/y/z.py", model.NodeFunction)}
	edges := []model.Edge{{Source: "a", Target: "a", Kind: model.EdgeCalls}}
	before := nodes[0]

	NewClusterer().Cluster(nodes, edges)

	if !reflect.DeepEqual(before, nodes[0]) {
		t.Error("clustering mutated a node")
	}
}

func TestRefineDropsSmallAndSplitsLarge(t *testing.T) {
	var nodes []model.Node
	var big []string
	for i := 0; i < 6; i++ {
		id := string(rune('a' + i))
		path := "pkg/alpha/f.py"
		if i >= 3 {
			path = "pkg/beta/f.py"
		}
		nodes = append(nodes, node(id, path, model.NodeFunction))
		big = append(big, id)
	}
	clusters := map[string][]string{
		"dir:pkg": big,
		"tiny":    {"a"},
	}

	refined := NewClusterer().Refine(clusters, nodes, 4, 2)

	if _, ok := refined["tiny"]; ok {
		t.Error("cluster below min size survived")
	}
	if _, ok := refined["dir:pkg"]; ok {
		t.Error("oversized cluster not split")
	}
	if got := refined["dir:pkg/alpha"]; len(got) != 3 {
		t.Errorf("dir:pkg/alpha = %v", got)
	}
	if got := refined["dir:pkg/beta"]; len(got) != 3 {
		t.Errorf("dir:pkg/beta = %v", got)
	}
}

func TestUnionFind(t *testing.T) {
	uf := newUnionFind(5)
	uf.union(0, 1)
	uf.union(3, 4)
	uf.union(1, 3)

	if uf.find(0) != uf.find(4) {
		t.Error("0 and 4 should share a root")
	}
	if uf.find(2) == uf.find(0) {
		t.Error("2 should be its own component")
	}
}
