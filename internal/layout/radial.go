package layout

import (
	"math"
	"sort"

	"codeatlas/internal/model"
)

// radial places the best-connected node at the origin and everything else on
// concentric rings by BFS distance, following edges in both directions.
// Unreached nodes fill one ring past the outermost.
func (e *Engine) radial(nodes []model.Node, edges []model.Edge) []model.Node {
	adj := buildAdjacency(nodes, edges)

	center := nodes[0].ID
	best := -1
	for _, n := range nodes {
		degree := len(adj.out[n.ID]) + len(adj.in[n.ID])
		if degree > best {
			best = degree
			center = n.ID
		}
	}

	rings := map[string]int{center: 0}
	queue := []string{center}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		next := rings[cur] + 1
		for _, neighbors := range [][]string{adj.out[cur], adj.in[cur]} {
			for _, id := range neighbors {
				if _, ok := rings[id]; !ok {
					rings[id] = next
					queue = append(queue, id)
				}
			}
		}
	}

	maxRing := 0
	for _, r := range rings {
		if r > maxRing {
			maxRing = r
		}
	}
	byRing := make(map[int][]string)
	for _, n := range nodes {
		ring, ok := rings[n.ID]
		if !ok {
			ring = maxRing + 1
		}
		byRing[ring] = append(byRing[ring], n.ID)
	}

	byID := make(map[string]*model.Node, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	for ring, ids := range byRing {
		sort.Strings(ids)
		if ring == 0 {
			for _, id := range ids {
				e.setPosition(byID[id], 0, 0)
			}
			continue
		}
		radius := e.BaseRadius * float64(ring)
		step := 2 * math.Pi / float64(len(ids))
		for i, id := range ids {
			angle := float64(i) * step
			e.setPosition(byID[id], radius*math.Cos(angle), radius*math.Sin(angle))
		}
	}

	return nodes
}
