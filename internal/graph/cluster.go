package graph

import (
	"fmt"
	"sort"
	"strings"

	"codeatlas/internal/model"
)

// Clusterer emits named groupings of node ids for rendering. It reads nodes
// and edges and never mutates them; the cluster map is a separate artifact.
type Clusterer struct{}

func NewClusterer() *Clusterer {
	return &Clusterer{}
}

// minTypeClusterSize is the smallest kind-based cluster worth rendering.
const minTypeClusterSize = 3

// Cluster combines three strategies: directory prefix, node kind, and
// connected components over strong edges.
func (c *Clusterer) Cluster(nodes []model.Node, edges []model.Edge) map[string][]string {
	clusters := make(map[string][]string)

	c.byDirectory(clusters, nodes)
	c.byKind(clusters, nodes)
	c.byComponent(clusters, nodes, edges)

	for name := range clusters {
		sort.Strings(clusters[name])
	}
	return clusters
}

// byDirectory groups nodes by the first two directory segments of their file
// path (never the file name itself), falling back to the node's group field
// when it has no location.
func (c *Clusterer) byDirectory(clusters map[string][]string, nodes []model.Node) {
	for _, n := range nodes {
		var name string
		switch {
		case n.Location != nil && n.Location.FilePath != "":
			name = "dir:" + dirPrefix(n.Location.FilePath)
		case n.Group != "":
			name = "dir:" + n.Group
		default:
			continue
		}
		clusters[name] = append(clusters[name], n.ID)
	}
}

func dirPrefix(filePath string) string {
	segs := strings.Split(filePath, "/")
	if len(segs) < 2 {
		return "root"
	}
	keep := len(segs) - 1
	if keep > 2 {
		keep = 2
	}
	return strings.Join(segs[:keep], "/")
}

func (c *Clusterer) byKind(clusters map[string][]string, nodes []model.Node) {
	byKind := make(map[model.NodeKind][]string)
	for _, n := range nodes {
		byKind[n.Kind] = append(byKind[n.Kind], n.ID)
	}
	for kind, members := range byKind {
		if len(members) >= minTypeClusterSize {
			clusters["type:"+string(kind)] = members
		}
	}
}

// byComponent finds connected components over the strong structural edge
// kinds (imports, calls, extends) with union-find. Components of at least
// two members are kept unless an identical member set is already present.
func (c *Clusterer) byComponent(clusters map[string][]string, nodes []model.Node, edges []model.Edge) {
	ids := make(map[string]int, len(nodes))
	for i, n := range nodes {
		ids[n.ID] = i
	}

	uf := newUnionFind(len(nodes))
	for _, e := range edges {
		switch e.Kind {
		case model.EdgeImports, model.EdgeCalls, model.EdgeExtends:
		default:
			continue
		}
		si, ok1 := ids[e.Source]
		ti, ok2 := ids[e.Target]
		if ok1 && ok2 {
			uf.union(si, ti)
		}
	}

	components := make(map[int][]string)
	for i, n := range nodes {
		root := uf.find(i)
		components[root] = append(components[root], n.ID)
	}

	covered := make(map[string]bool, len(clusters))
	for _, members := range clusters {
		covered[memberSetKey(members)] = true
	}

	roots := make([]int, 0, len(components))
	for root := range components {
		roots = append(roots, root)
	}
	sort.Ints(roots)

	seq := 0
	for _, root := range roots {
		members := components[root]
		if len(members) < 2 {
			continue
		}
		if covered[memberSetKey(members)] {
			continue
		}
		clusters[fmt.Sprintf("component:%d", seq)] = members
		seq++
	}
}

func memberSetKey(members []string) string {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// Refine splits clusters above maxSize by sub-directory (or kind when a
// member has no location) and drops clusters below minSize. The input map is
// not modified.
func (c *Clusterer) Refine(clusters map[string][]string, nodes []model.Node, maxSize, minSize int) map[string][]string {
	byID := make(map[string]model.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	refined := make(map[string][]string)
	for name, members := range clusters {
		if len(members) < minSize {
			continue
		}
		if maxSize <= 0 || len(members) <= maxSize {
			refined[name] = members
			continue
		}
		for _, id := range members {
			n, ok := byID[id]
			if !ok {
				continue
			}
			sub := name + "/" + string(n.Kind)
			if n.Location != nil {
				if segs := strings.Split(n.Location.FilePath, "/"); len(segs) > 2 {
					sub = name + "/" + segs[1]
				}
			}
			refined[sub] = append(refined[sub], id)
		}
	}
	return refined
}

// unionFind is a dense-arena disjoint set with path compression and union by
// size.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}
