package domain

import "sort"

// Mode returns the most frequent value and its count. Ties go to the value
// encountered first. ok is false for an empty input.
func Mode[T comparable](values []T) (value T, count int, ok bool) {
	counts := make(map[T]int, len(values))
	order := make([]T, 0)
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	for _, v := range order {
		if counts[v] > count {
			value, count = v, counts[v]
		}
	}
	return value, count, len(order) > 0
}

type Count struct {
	Value string
	Count int
}

// Tally counts each distinct value, most frequent first. Equal counts keep
// first-encountered order.
func Tally(values []string) []Count {
	index := map[string]int{}
	out := make([]Count, 0)
	for _, v := range values {
		i, ok := index[v]
		if !ok {
			index[v] = len(out)
			out = append(out, Count{Value: v})
			i = len(out) - 1
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}
