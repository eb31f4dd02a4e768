package engine

import "sort"

// topKIndices picks the k=min(3,n) most-attributed feature indices. Ties
// resolve toward the larger original index, so a flat attribution vector
// selects the trailing features rather than the leading ones.
func topKIndices(attr []float64) map[int]bool {
	n := len(attr)
	k := n
	if k > 3 {
		k = 3
	}
	if k < 1 {
		k = 1
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if attr[ia] != attr[ib] {
			return attr[ia] > attr[ib]
		}
		return ia > ib
	})

	top := make(map[int]bool, k)
	for _, idx := range order[:k] {
		top[idx] = true
	}
	return top
}
