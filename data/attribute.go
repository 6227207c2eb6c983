package data

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
)

// AttributeStats tallies (value, label) pairs for a single attribute. Once
// the number of inserted pairs reaches the declared capacity the tally is
// consolidated into the aggregate split statistics and the per value buckets
// are released. Getters return zero values until then.
type AttributeStats struct {
	numEntries int
	size       int

	pos map[int]int
	neg map[int]int

	keys      map[int]int // value -> key index
	keyCounts []int
	info      float64
	splitInfo float64
	gini      float64
}

// NewAttributeStats returns statistics expecting exactly numEntries inserts.
func NewAttributeStats(numEntries int) *AttributeStats {
	return &AttributeStats{
		numEntries: numEntries,
		pos:        make(map[int]int),
		neg:        make(map[int]int),
	}
}

// Insert records one (value, label) pair. The insert that reaches capacity
// consolidates the statistics; inserts past capacity are refused.
func (a *AttributeStats) Insert(value int, label Label) error {
	if a.size >= a.numEntries {
		return fmt.Errorf("%w: capacity %d", ErrCapacityOverflow, a.numEntries)
	}

	switch label {
	case Positive:
		a.pos[value]++
	case Negative:
		a.neg[value]++
	default:
		return fmt.Errorf("%w: %d", ErrInvalidLabel, int(label))
	}

	a.size++
	if a.size == a.numEntries {
		a.consolidate()
	}

	return nil
}

func (a *AttributeStats) consolidate() {
	values := lo.Uniq(append(lo.Keys(a.pos), lo.Keys(a.neg)...))
	slices.Sort(values)

	a.keys = make(map[int]int, len(values))
	a.keyCounts = make([]int, len(values))

	for i, v := range values {
		p, n := a.pos[v], a.neg[v]
		ratio := float64(p+n) / float64(a.numEntries)

		a.keys[v] = i
		a.keyCounts[i] = p + n

		a.info += ratio * Entropy(p, n)
		a.splitInfo -= ratio * math.Log2(ratio)
		a.gini += ratio * Gini(p, n)
	}

	a.pos = nil
	a.neg = nil
}

// Consolidated reports whether capacity has been reached.
func (a *AttributeStats) Consolidated() bool { return a.keys != nil }

func (a *AttributeStats) Len() int { return a.size }
func (a *AttributeStats) Cap() int { return a.numEntries }

// Keys maps each distinct value to its key index. The index order is only
// promised to be some order over the distinct values; this implementation
// departs from an unordered assignment and always uses ascending value order,
// so that seeded fits are reproducible. Callers should not depend on it. The
// map is shared and must not be modified.
func (a *AttributeStats) Keys() map[int]int { return a.keys }

// NumKeys is the number of distinct values seen.
func (a *AttributeStats) NumKeys() int { return len(a.keyCounts) }

// KeyCount is the number of records holding the value with key index i.
func (a *AttributeStats) KeyCount(i int) int { return a.keyCounts[i] }

// Info is the expected entropy after splitting on the attribute.
func (a *AttributeStats) Info() float64 { return a.info }

// SplitInfo is the entropy of the value distribution itself.
func (a *AttributeStats) SplitInfo() float64 { return a.splitInfo }

// Gini is the weighted gini impurity after splitting on the attribute.
func (a *AttributeStats) Gini() float64 { return a.gini }
