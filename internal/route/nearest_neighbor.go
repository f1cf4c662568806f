package route

import "github.com/Graceus777/Route-Optimizer/internal/domain"

// distanceEpsilon bounds the "equidistant" comparison in the greedy step.
const distanceEpsilon = 1e-9

// nearestNeighborOrder computes a visiting order over points using a
// greedy nearest-neighbor walk from start.
//
// The algorithm minimizes immediate straight-line distance at each step.
// It does not attempt global route optimization (e.g., VRP solvers).
// The design prioritizes determinism and simplicity over optimality:
// when two unvisited points are equidistant within epsilon, the one
// appearing earlier in the input keeps its claim.
func nearestNeighborOrder(start domain.Coordinates, points []domain.Coordinates) []int {
	order := make([]int, 0, len(points))
	visited := make([]bool, len(points))
	current := start

	for len(order) < len(points) {
		best := -1
		bestDist := 0.0

		for i, p := range points {
			if visited[i] {
				continue
			}
			d := domain.HaversineMiles(current, p)
			// Strict improvement required, so earlier input indices win ties.
			if best == -1 || d < bestDist-distanceEpsilon {
				best = i
				bestDist = d
			}
		}

		order = append(order, best)
		visited[best] = true
		current = points[best]
	}

	return order
}

// cycleMiles sums haversine distances across the closed tour
// start -> points[order...] -> start.
func cycleMiles(start domain.Coordinates, points []domain.Coordinates, order []int) float64 {
	if len(order) == 0 {
		return 0
	}

	total := 0.0
	current := start
	for _, idx := range order {
		total += domain.HaversineMiles(current, points[idx])
		current = points[idx]
	}
	total += domain.HaversineMiles(current, start)

	return total
}
