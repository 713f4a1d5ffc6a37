package search

import (
	"fmt"
	"runtime"
	"slices"
	"testing"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		n, w  int
		sizes []int
	}{
		{10, 1, []int{10}},
		{10, 2, []int{5, 5}},
		{10, 3, []int{3, 3, 4}},
		{7, 7, []int{1, 1, 1, 1, 1, 1, 1}},
		{2, 4, []int{0, 0, 0, 2}},
		{0, 3, []int{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d over %d", tt.n, tt.w), func(t *testing.T) {
			items := make([]int, tt.n)
			for i := range items {
				items[i] = i
			}

			shards := Partition(items, tt.w)
			if len(shards) != tt.w {
				t.Fatalf("got %d shards, want %d", len(shards), tt.w)
			}

			var joined []int
			for i, s := range shards {
				if len(s) != tt.sizes[i] {
					t.Errorf("shard %d has %d items, want %d", i, len(s), tt.sizes[i])
				}
				joined = append(joined, s...)
			}
			if !slices.Equal(joined, items) {
				t.Errorf("shards join to %v, want %v", joined, items)
			}
		})
	}
}

func TestPartitionShardsDoNotOverlap(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8}
	shards := Partition(items, 4)

	// Appending to one shard must not clobber the next.
	shards[0] = append(shards[0], 99)
	if items[2] != 2 {
		t.Errorf("append to shard 0 overwrote items[2] = %d", items[2])
	}
}

func TestResolveWorkers(t *testing.T) {
	if got := ResolveWorkers(6); got != 6 {
		t.Errorf("ResolveWorkers(6) = %d", got)
	}
	want := max(runtime.NumCPU()-1, 1)
	for _, n := range []int{0, -1} {
		if got := ResolveWorkers(n); got != want {
			t.Errorf("ResolveWorkers(%d) = %d, want %d", n, got, want)
		}
	}
}

func ExamplePartition() {
	flights := []string{"BA1", "BA2", "BA3", "BA4", "BA5"}
	for i, shard := range Partition(flights, 2) {
		fmt.Println(i, shard)
	}
	// Output:
	// 0 [BA1 BA2]
	// 1 [BA3 BA4 BA5]
}
