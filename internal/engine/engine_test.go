package engine

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"codeatlas/internal/config"
	"codeatlas/internal/model"
	"codeatlas/internal/slogutil"
)

func testEngine() *Engine {
	return New(config.DefaultConfig(), slogutil.NewDiscardLogger())
}

func pyFiles() []File {
	return []File{
		{
			Path:     "pkg/a.py",
			Language: "python",
			Source: []byte("import os\n\ndef main():\n    pass\n\nclass Runner:\n    pass\n"),
		},
		{
			Path:     "pkg/b.py",
			Language: "python",
			Source:   []byte("def helper():\n    pass\n"),
		},
	}
}

func TestGenerateBuildsGraph(t *testing.T) {
	res, err := testEngine().Generate(context.Background(), Request{Files: pyFiles()})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if res.RunID == "" {
		t.Error("run id empty")
	}
	if len(res.Analyses) != 2 {
		t.Fatalf("analyses = %d, want 2", len(res.Analyses))
	}

	ids := make(map[string]bool)
	for _, n := range res.Graph.Nodes {
		ids[n.ID] = true
	}
	if !ids["file:pkg/a.py"] || !ids["file:pkg/b.py"] {
		t.Errorf("file nodes missing: %v", ids)
	}

	labels := make(map[string]bool)
	for _, n := range res.Graph.Nodes {
		labels[n.Label] = true
	}
	for _, want := range []string{"main", "helper", "Runner"} {
		if !labels[want] {
			t.Errorf("symbol node %q missing", want)
		}
	}

	// every node positioned
	for _, n := range res.Graph.Nodes {
		if n.X == nil || n.Y == nil {
			t.Errorf("node %s not positioned", n.ID)
		}
	}

	if len(res.Graph.RootNodes) == 0 {
		t.Error("no root nodes")
	}
	if len(res.Graph.RootNodes) > 5 {
		t.Errorf("root nodes = %d, want at most 5", len(res.Graph.RootNodes))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	var files []File
	for i := 0; i < 12; i++ {
		files = append(files, File{
			Path:     fmt.Sprintf("mod/f%02d.py", i),
			Language: "python",
			Source:   []byte(fmt.Sprintf("import os\n\ndef fn%02d():\n    pass\n", i)),
		})
	}
	req := Request{Files: files, Intent: &model.QueryIntent{Keywords: []string{"fn"}}}

	first, err := testEngine().Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := testEngine().Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(first.Graph.Nodes) != len(second.Graph.Nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(first.Graph.Nodes), len(second.Graph.Nodes))
	}
	for i := range first.Graph.Nodes {
		if first.Graph.Nodes[i].ID != second.Graph.Nodes[i].ID {
			t.Fatalf("node order differs at %d", i)
		}
	}
	if len(first.Graph.Edges) != len(second.Graph.Edges) {
		t.Fatalf("edge counts differ")
	}
	for i := range first.Graph.Edges {
		if first.Graph.Edges[i].ID != second.Graph.Edges[i].ID {
			t.Fatalf("edge order differs at %d", i)
		}
	}

	names := func(c map[string][]string) []string {
		var out []string
		for name := range c {
			out = append(out, name)
		}
		sort.Strings(out)
		return out
	}
	a, b := names(first.Graph.Clusters), names(second.Graph.Clusters)
	if len(a) != len(b) {
		t.Fatalf("cluster counts differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cluster names differ: %v vs %v", a, b)
		}
	}
}

func TestGenerateRespectsMaxNodes(t *testing.T) {
	var files []File
	for i := 0; i < 20; i++ {
		files = append(files, File{
			Path:     fmt.Sprintf("big/f%02d.py", i),
			Language: "python",
			Source:   []byte(fmt.Sprintf("def one%02d():\n    pass\n\ndef two%02d():\n    pass\n", i, i)),
		})
	}

	res, err := testEngine().Generate(context.Background(), Request{Files: files, MaxNodes: 15})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Graph.Nodes) > 15 {
		t.Errorf("nodes = %d, want at most 15", len(res.Graph.Nodes))
	}
	// analyses are unpruned raw output
	if len(res.Analyses) != 20 {
		t.Errorf("analyses = %d, want 20", len(res.Analyses))
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := testEngine().Generate(ctx, Request{Files: pyFiles()}); err == nil {
		t.Error("cancelled run returned no error")
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	res, err := testEngine().Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Graph.Nodes) != 0 || len(res.Graph.Edges) != 0 {
		t.Errorf("empty input produced graph content")
	}
}

func TestGenerateLayoutPrecedence(t *testing.T) {
	e := testEngine()
	if got := e.layoutKind(Request{Layout: model.LayoutRadial}); got != model.LayoutRadial {
		t.Errorf("explicit layout = %q", got)
	}
	intent := &model.QueryIntent{PreferredLayout: model.LayoutForce}
	if got := e.layoutKind(Request{Intent: intent}); got != model.LayoutForce {
		t.Errorf("intent layout = %q", got)
	}
	if got := e.layoutKind(Request{}); got != model.LayoutHierarchical {
		t.Errorf("default layout = %q", got)
	}
}

func TestFindingsSortedByPath(t *testing.T) {
	findings := []Finding{
		{FilePath: "src/z.py", Message: "late"},
		{FilePath: "src/a.py", Message: "early"},
		{FilePath: "src/m.py", Message: "middle"},
	}

	sortFindings(findings)

	want := []string{"src/a.py", "src/m.py", "src/z.py"}
	for i, path := range want {
		if findings[i].FilePath != path {
			t.Errorf("findings[%d] = %s, want %s", i, findings[i].FilePath, path)
		}
	}
}

func TestRootNodesCapAndOrder(t *testing.T) {
	var nodes []model.Node
	for i := 0; i < 8; i++ {
		nodes = append(nodes, model.Node{ID: fmt.Sprintf("n%d", i)})
	}
	edges := []model.Edge{{Source: "n0", Target: "n7", Kind: model.EdgeCalls}}

	roots := rootNodes(nodes, edges, 5)
	want := []string{"n0", "n1", "n2", "n3", "n4"}
	if len(roots) != 5 {
		t.Fatalf("roots = %v", roots)
	}
	for i, id := range want {
		if roots[i] != id {
			t.Errorf("roots[%d] = %s, want %s", i, roots[i], id)
		}
	}
}
