package search

import "runtime"

// ResolveWorkers turns a configured worker count into an actual one. Zero
// or less means all available CPUs but one, and never fewer than one.
func ResolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return max(runtime.NumCPU()-1, 1)
}

// Partition splits items into w contiguous shards. Shard i holds
// items[i*k : (i+1)*k] with k = len(items)/w, and the last shard runs to the
// end of the slice, so it absorbs the remainder. Shards alias items.
func Partition[T any](items []T, w int) [][]T {
	if w < 1 {
		w = 1
	}
	k := len(items) / w
	shards := make([][]T, w)
	for i := range w {
		lo, hi := i*k, (i+1)*k
		if i == w-1 {
			hi = len(items)
		}
		shards[i] = items[lo:hi:hi]
	}
	return shards
}
