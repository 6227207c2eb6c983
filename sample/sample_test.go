package sample

import (
	"math"
	"math/rand"
	"testing"

	"github.com/samber/lo"
)

func TestBootstrapDistinct(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	n := 1000
	trials := 200

	total := 0
	for i := 0; i < trials; i++ {
		inx := Bootstrap(r, n)
		if len(inx) != n {
			t.Fatal("expected", n, "indices, got:", len(inx))
		}
		for _, j := range inx {
			if j < 0 || j >= n {
				t.Fatal("index out of range:", j)
			}
		}
		total += len(lo.Uniq(inx))
	}

	mean := float64(total) / float64(trials)
	want := float64(n) * (1 - 1/math.E)
	if math.Abs(mean-want)/want > 0.01 {
		t.Errorf("expected ~%.1f distinct indices, got: %.1f", want, mean)
	}
}

func TestBootstrapInBag(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	inx, inBag := BootstrapInBag(r, 50)

	drawn := make([]bool, 50)
	for _, j := range inx {
		drawn[j] = true
	}
	for i := range drawn {
		if drawn[i] != inBag[i] {
			t.Error("in bag mask disagrees with drawn indices at", i)
		}
	}
}

func TestSubSample(t *testing.T) {
	r := rand.New(rand.NewSource(3))

	for _, k := range []int{0, 1, 5, 20} {
		inx := SubSample(r, 20, k)
		if len(inx) != k {
			t.Error("expected", k, "indices, got:", len(inx))
		}
		if len(lo.Uniq(inx)) != k {
			t.Error("expected distinct indices, got:", inx)
		}
		for _, j := range inx {
			if j < 0 || j >= 20 {
				t.Error("index out of range:", j)
			}
		}
	}
}

func TestSubSampleTooMany(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic drawing more indices than available")
		}
	}()
	SubSample(rand.New(rand.NewSource(1)), 3, 4)
}
