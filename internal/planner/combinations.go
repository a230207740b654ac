package planner

// Combinations returns every k-element subset of items, preserving item
// order inside each subset. Subsets containing items[0] come before those
// without it, recursively, so Combinations([0 1 2 3 4], 2) starts
// [0 1] [0 2] [0 3] [0 4] [1 2].
func Combinations[T any](items []T, k int) [][]T {
	if k == 0 {
		return [][]T{{}}
	}
	if len(items) < k {
		return [][]T{}
	}

	first, rest := items[0], items[1:]

	var out [][]T
	for _, comb := range Combinations(rest, k-1) {
		withFirst := make([]T, 0, k)
		withFirst = append(withFirst, first)
		withFirst = append(withFirst, comb...)
		out = append(out, withFirst)
	}
	out = append(out, Combinations(rest, k)...)
	return out
}
