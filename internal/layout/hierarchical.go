package layout

import (
	"sort"

	"codeatlas/internal/model"
)

// hierarchical arranges nodes in layers. Roots are the nodes with no
// incoming edge; graphs without any (cycles) fall back to file nodes (first
// five) or the three highest-out-degree nodes. Levels are assigned by BFS
// along outgoing edges, first visit wins; nodes unreached from every root
// land in a synthetic level past the deepest.
func (e *Engine) hierarchical(nodes []model.Node, edges []model.Edge) []model.Node {
	adj := buildAdjacency(nodes, edges)

	roots := hierarchicalRoots(nodes, adj)
	levels := assignLevels(roots, adj)

	maxLevel := 0
	for _, lvl := range levels {
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}
	byLevel := make(map[int][]string)
	for _, n := range nodes {
		lvl, ok := levels[n.ID]
		if !ok {
			lvl = maxLevel + 1
		}
		byLevel[lvl] = append(byLevel[lvl], n.ID)
	}

	byID := make(map[string]*model.Node, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	step := e.NodeWidth + e.HSpacing
	for lvl, ids := range byLevel {
		sort.Strings(ids)
		y := float64(lvl) * (e.NodeHeight + e.VSpacing)
		for i, id := range ids {
			// row centered on x = 0
			x := (float64(i) - float64(len(ids)-1)/2) * step
			e.setPosition(byID[id], x, y)
		}
	}

	return nodes
}

func hierarchicalRoots(nodes []model.Node, adj *adjacency) []string {
	var roots []string
	for _, n := range nodes {
		if len(adj.in[n.ID]) == 0 {
			roots = append(roots, n.ID)
		}
	}
	if len(roots) > 0 {
		return roots
	}

	// fully cyclic graph: prefer file nodes as entry points
	for _, n := range nodes {
		if n.Kind == model.NodeFile {
			roots = append(roots, n.ID)
			if len(roots) == 5 {
				break
			}
		}
	}
	if len(roots) > 0 {
		return roots
	}

	// last resort: best-connected nodes
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return len(adj.out[ids[i]]) > len(adj.out[ids[j]])
	})
	if len(ids) > 3 {
		ids = ids[:3]
	}
	return ids
}

func assignLevels(roots []string, adj *adjacency) map[string]int {
	levels := make(map[string]int)

	type item struct {
		id    string
		level int
	}
	queue := make([]item, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, item{r, 0})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := levels[cur.id]; ok {
			continue
		}
		levels[cur.id] = cur.level

		for _, next := range adj.out[cur.id] {
			if _, ok := levels[next]; !ok {
				queue = append(queue, item{next, cur.level + 1})
			}
		}
	}
	return levels
}
