// Package sample draws the index samples used to train ensemble members and
// to restrict attribute selection.
package sample

import (
	"fmt"
	"math/rand"

	"github.com/emirpasic/gods/sets/hashset"
)

// Bootstrap returns n indices drawn uniformly with replacement from [0, n).
func Bootstrap(r *rand.Rand, n int) []int {
	inx, _ := BootstrapInBag(r, n)
	return inx
}

// BootstrapInBag is Bootstrap that also reports, for every position in
// [0, n), whether it was drawn at least once.
func BootstrapInBag(r *rand.Rand, n int) ([]int, []bool) {
	inx := make([]int, n)
	inBag := make([]bool, n)
	for i := range inx {
		j := r.Intn(n)
		inx[i] = j
		inBag[j] = true
	}
	return inx, inBag
}

// SubSample returns k distinct indices drawn uniformly from [0, n), in draw
// order. It panics unless 0 <= k <= n.
func SubSample(r *rand.Rand, n, k int) []int {
	if k < 0 || k > n {
		panic(fmt.Sprintf("sample: cannot draw %d distinct indices from %d", k, n))
	}

	seen := hashset.New()
	inx := make([]int, 0, k)
	for len(inx) < k {
		j := r.Intn(n)
		if seen.Contains(j) {
			continue
		}
		seen.Add(j)
		inx = append(inx, j)
	}
	return inx
}
