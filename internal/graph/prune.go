package graph

import (
	"sort"
	"strings"

	"codeatlas/internal/model"
)

// Pruner reduces a graph to at most maxNodes, preferring well-connected,
// query-relevant, high-importance nodes.
type Pruner struct{}

func NewPruner() *Pruner {
	return &Pruner{}
}

// relevanceCap bounds the query-relevance contribution per node.
const relevanceCap = 5.0

// Prune keeps the top-scoring maxNodes nodes and the edges between them.
// When the graph already fits, both slices are returned unchanged.
func (p *Pruner) Prune(nodes []model.Node, edges []model.Edge, intent *model.QueryIntent, maxNodes int) ([]model.Node, []model.Edge) {
	if len(nodes) <= maxNodes {
		return nodes, edges
	}

	inDegree := make(map[string]int)
	outDegree := make(map[string]int)
	for _, e := range edges {
		outDegree[e.Source]++
		inDegree[e.Target]++
	}

	scores := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		scores[n.ID] = nodeScore(n, inDegree[n.ID], outDegree[n.ID], intent)
	}

	ranked := append([]model.Node(nil), nodes...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID] > scores[ranked[j].ID]
	})
	kept := ranked[:maxNodes]

	keptIDs := make(map[string]bool, len(kept))
	for _, n := range kept {
		keptIDs[n.ID] = true
	}
	keptEdges := filterEdges(edges, keptIDs)

	kept, keptEdges = p.removeOrphans(kept, keptEdges)
	return clearDanglingParents(kept), keptEdges
}

func nodeScore(n model.Node, inDegree, outDegree int, intent *model.QueryIntent) float64 {
	score := importanceScore(n.Importance)
	score += float64(inDegree)*3.0 + float64(outDegree)*2.0
	score += queryRelevance(n, intent) * 50.0
	if n.Description != "" {
		score += 5.0
	}
	if n.Snippet != nil {
		score += 3.0
	}
	return score
}

func importanceScore(imp model.Importance) float64 {
	switch imp {
	case model.ImportanceCritical:
		return 100.0
	case model.ImportanceHigh:
		return 50.0
	case model.ImportanceMedium:
		return 20.0
	case model.ImportanceLow:
		return 5.0
	default:
		return 10.0
	}
}

func queryRelevance(n model.Node, intent *model.QueryIntent) float64 {
	if intent == nil {
		return 0
	}
	relevance := 0.0

	label := strings.ToLower(n.Label)
	for _, kw := range intent.Keywords {
		if strings.Contains(label, strings.ToLower(kw)) {
			relevance += 1.0
		}
	}
	for _, focus := range intent.FocusAreas {
		if strings.Contains(label, strings.ToLower(focus)) {
			relevance += 0.8
		}
	}
	if n.Description != "" {
		desc := strings.ToLower(n.Description)
		for _, kw := range intent.Keywords {
			if strings.Contains(desc, strings.ToLower(kw)) {
				relevance += 0.5
			}
		}
	}
	if n.Location != nil {
		path := strings.ToLower(n.Location.FilePath)
		for _, kw := range intent.Keywords {
			if strings.Contains(path, strings.ToLower(kw)) {
				relevance += 0.3
			}
		}
	}

	if relevance > relevanceCap {
		return relevanceCap
	}
	return relevance
}

// removeOrphans drops unconnected nodes, keeping critical and high tiers as
// presumed entry points, then refilters edges against the final node set.
func (p *Pruner) removeOrphans(nodes []model.Node, edges []model.Edge) ([]model.Node, []model.Edge) {
	connected := make(map[string]bool)
	for _, e := range edges {
		connected[e.Source] = true
		connected[e.Target] = true
	}

	kept := nodes[:0:0]
	keptIDs := make(map[string]bool)
	for _, n := range nodes {
		if connected[n.ID] || n.Importance == model.ImportanceCritical || n.Importance == model.ImportanceHigh {
			kept = append(kept, n)
			keptIDs[n.ID] = true
		}
	}

	return kept, filterEdges(edges, keptIDs)
}

// PruneByDepth keeps only nodes within maxDepth hops of the given roots,
// following outgoing edges.
func (p *Pruner) PruneByDepth(nodes []model.Node, edges []model.Edge, roots []string, maxDepth int) ([]model.Node, []model.Edge) {
	adjacency := make(map[string][]string)
	for _, e := range edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	type item struct {
		id    string
		depth int
	}
	queue := make([]item, 0, len(roots))
	for _, r := range roots {
		queue = append(queue, item{r, 0})
	}

	visited := make(map[string]bool)
	keptIDs := make(map[string]bool)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		keptIDs[cur.id] = true

		if cur.depth < maxDepth {
			for _, next := range adjacency[cur.id] {
				if !visited[next] {
					queue = append(queue, item{next, cur.depth + 1})
				}
			}
		}
	}

	var kept []model.Node
	for _, n := range nodes {
		if keptIDs[n.ID] {
			kept = append(kept, n)
		}
	}
	return clearDanglingParents(kept), filterEdges(edges, keptIDs)
}

// clearDanglingParents blanks parent references to pruned nodes so the
// surviving graph never carries a dangling parent id.
func clearDanglingParents(nodes []model.Node) []model.Node {
	present := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		present[n.ID] = true
	}
	for i := range nodes {
		if nodes[i].ParentID != "" && !present[nodes[i].ParentID] {
			nodes[i].ParentID = ""
		}
	}
	return nodes
}

func filterEdges(edges []model.Edge, keep map[string]bool) []model.Edge {
	var kept []model.Edge
	for _, e := range edges {
		if keep[e.Source] && keep[e.Target] {
			kept = append(kept, e)
		}
	}
	return kept
}
