package layout

import (
	"math"
	"math/rand"

	"codeatlas/internal/model"
)

// force runs a Fruchterman–Reingold spring simulation: all node pairs repel
// with k²/d, edges attract with d²/k, displacement per iteration is clamped
// to a linearly cooling temperature, and final positions stay within
// ±area/2. Initial positions come from a seeded source so runs are
// reproducible.
func (e *Engine) force(nodes []model.Node, edges []model.Edge) []model.Node {
	n := len(nodes)
	if n == 0 {
		return nodes
	}

	area := float64(n) * 10000
	k := math.Sqrt(area / float64(n))

	rng := rand.New(rand.NewSource(e.Seed))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range nodes {
		xs[i] = rng.Float64()*area/2 - area/4
		ys[i] = rng.Float64()*area/2 - area/4
	}

	index := make(map[string]int, n)
	for i, node := range nodes {
		index[node.ID] = i
	}

	iterations := e.Iterations
	if iterations <= 0 {
		iterations = 50
	}
	temperature := area / 10
	cooling := temperature / float64(iterations+1)

	dx := make([]float64, n)
	dy := make([]float64, n)

	for it := 0; it < iterations; it++ {
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		// repulsion between all pairs
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ddx := xs[i] - xs[j]
				ddy := ys[i] - ys[j]
				dist := math.Max(math.Hypot(ddx, ddy), 0.01)
				force := k * k / dist
				dx[i] += ddx / dist * force
				dy[i] += ddy / dist * force
				dx[j] -= ddx / dist * force
				dy[j] -= ddy / dist * force
			}
		}

		// attraction along edges
		for _, edge := range edges {
			si, ok1 := index[edge.Source]
			ti, ok2 := index[edge.Target]
			if !ok1 || !ok2 {
				continue
			}
			ddx := xs[si] - xs[ti]
			ddy := ys[si] - ys[ti]
			dist := math.Max(math.Hypot(ddx, ddy), 0.01)
			force := dist * dist / k
			dx[si] -= ddx / dist * force
			dy[si] -= ddy / dist * force
			dx[ti] += ddx / dist * force
			dy[ti] += ddy / dist * force
		}

		// apply, clamped by temperature and bounds
		bound := area / 2
		for i := 0; i < n; i++ {
			dist := math.Max(math.Hypot(dx[i], dy[i]), 0.01)
			xs[i] = clamp(xs[i]+dx[i]/dist*math.Min(dist, temperature), -bound, bound)
			ys[i] = clamp(ys[i]+dy[i]/dist*math.Min(dist, temperature), -bound, bound)
		}

		temperature -= cooling
	}

	for i := range nodes {
		e.setPosition(&nodes[i], xs[i], ys[i])
	}
	return nodes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
