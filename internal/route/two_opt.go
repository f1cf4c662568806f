package route

import "github.com/Graceus777/Route-Optimizer/internal/domain"

// improveOrder2Opt applies a simple 2-opt heuristic to reduce the total
// cycle distance of an order produced by the greedy walk. The start point
// stays fixed at both ends of the tour. Improvement requires beating the
// incumbent by a fixed margin, keeping the pass deterministic.
func improveOrder2Opt(start domain.Coordinates, points []domain.Coordinates, order []int, iterations int) []int {
	if iterations <= 0 || len(order) < 3 {
		return order
	}

	best := append([]int(nil), order...)
	bestDist := cycleMiles(start, points, best)
	n := len(order)

	for it := 0; it < iterations; it++ {
		improved := false
		for i := 0; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				candidate := twoOptSwap(best, i, k)
				d := cycleMiles(start, points, candidate)
				if d+1e-6 < bestDist {
					best = candidate
					bestDist = d
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}

	return best
}

// twoOptSwap reverses the segment order[i..k].
func twoOptSwap(order []int, i, k int) []int {
	out := make([]int, len(order))
	copy(out, order[:i])
	pos := i
	for j := k; j >= i; j-- {
		out[pos] = order[j]
		pos++
	}
	copy(out[pos:], order[k+1:])
	return out
}
