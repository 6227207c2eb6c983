package data

import (
	"fmt"
	"math/rand"
	"time"
)

// Criterion identifies the rule used to rank attributes.
type Criterion int

const (
	// GainRatio ranks attributes by information gain ratio, ignoring
	// attributes whose gain is below the mean gain.
	GainRatio Criterion = iota
	// DeltaGini ranks a random subset of attributes by gini reduction.
	DeltaGini
)

func (c Criterion) String() string {
	if c == GainRatio {
		return "gain-ratio"
	}
	return "delta-gini"
}

type config struct {
	ratio     float64
	randState *rand.Rand
	noSelect  bool
}

// Option configures dataset construction.
type Option func(*config)

// FeatureRatio sets the fraction of attributes considered when selecting a
// split attribute. A ratio of exactly 1 selects by gain ratio over all
// attributes, any other positive ratio selects by delta gini over a random
// subset of floor(ratio*numAttributes) attributes, at least one.
func FeatureRatio(r float64) Option {
	return func(c *config) { c.ratio = r }
}

// RandState sets the source used to draw attribute subsets.
func RandState(r *rand.Rand) Option {
	return func(c *config) { c.randState = r }
}

// SkipSelection builds the dataset without ranking attributes, for data that
// is only evaluated. BestAttribute then reports -1.
func SkipSelection() Option {
	return func(c *config) { c.noSelect = true }
}

// Dataset is an immutable collection of records with equal attribute counts,
// together with the statistics needed to choose a split attribute.
type Dataset struct {
	records    []Record
	attributes []*AttributeStats
	numP, numN int
	pure       bool
	label      Label

	ratio     float64
	f         int
	criterion Criterion
	best      int

	splitValues map[int]int
}

// New builds a dataset from records. The records slice is retained.
func New(records []Record, options ...Option) (*Dataset, error) {
	c := config{ratio: 1}
	for _, opt := range options {
		opt(&c)
	}

	if len(records) == 0 {
		return nil, ErrEmpty
	}
	if !(c.ratio > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, c.ratio)
	}
	if c.randState == nil {
		c.randState = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	nAttr := records[0].NumAttributes()
	d := &Dataset{
		records:    records,
		attributes: make([]*AttributeStats, nAttr),
		ratio:      c.ratio,
	}
	for i := range d.attributes {
		d.attributes[i] = NewAttributeStats(len(records))
	}

	for row, r := range records {
		if r.NumAttributes() != nAttr {
			return nil, fmt.Errorf("%w: record %d has %d attributes, want %d",
				ErrAttributeCount, row, r.NumAttributes(), nAttr)
		}

		switch r.Label() {
		case Positive:
			d.numP++
		case Negative:
			d.numN++
		default:
			return nil, fmt.Errorf("%w: record %d has label %d", ErrInvalidLabel, row, int(r.Label()))
		}

		for i, a := range d.attributes {
			if err := a.Insert(r.Value(i), r.Label()); err != nil {
				return nil, err
			}
		}
	}

	d.pure = d.numP*d.numN == 0
	switch {
	case d.pure:
		d.label = records[0].Label()
	case d.numP > d.numN:
		d.label = Positive
	default:
		d.label = Negative
	}

	if c.noSelect {
		d.best = -1
		return d, nil
	}
	d.selectAttribute(c.randState)

	return d, nil
}

// Subset builds a dataset from the records of src at the positions in inx,
// in that order. Positions may repeat.
func Subset(src *Dataset, inx []int, options ...Option) (*Dataset, error) {
	records := make([]Record, len(inx))
	for i, j := range inx {
		if j < 0 || j >= len(src.records) {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexRange, j, len(src.records))
		}
		records[i] = src.records[j]
	}
	return New(records, options...)
}

func (d *Dataset) Len() int           { return len(d.records) }
func (d *Dataset) NumAttributes() int { return len(d.attributes) }
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Records returns the records in dataset order. The slice is shared and must
// not be modified.
func (d *Dataset) Records() []Record { return d.records }

func (d *Dataset) Positives() int { return d.numP }
func (d *Dataset) Negatives() int { return d.numN }

// IsPure reports whether every record carries the same label.
func (d *Dataset) IsPure() bool { return d.pure }

// Label is the majority label. Ties go to Negative.
func (d *Dataset) Label() Label { return d.label }

func (d *Dataset) Entropy() float64 { return Entropy(d.numP, d.numN) }
func (d *Dataset) Gini() float64    { return Gini(d.numP, d.numN) }

// Attribute returns the consolidated statistics of attribute i.
func (d *Dataset) Attribute(i int) *AttributeStats { return d.attributes[i] }

// FeatureRatio is the ratio the dataset was built with.
func (d *Dataset) FeatureRatio() float64 { return d.ratio }

// F is the number of attributes eligible for delta gini ranking.
func (d *Dataset) F() int { return d.f }

// Criterion reports which rule ranked the attributes.
func (d *Dataset) Criterion() Criterion { return d.criterion }

// BestAttribute returns the attribute to split on, or -1 when no attribute
// is eligible.
func (d *Dataset) BestAttribute() int { return d.best }

// Split partitions the records by their value of attribute attr. Partition i
// holds the records whose value has key index i in the attribute statistics.
func (d *Dataset) Split(attr int) [][]Record {
	a := d.attributes[attr]
	keys := a.Keys()

	parts := make([][]Record, a.NumKeys())
	for i := range parts {
		parts[i] = make([]Record, 0, a.KeyCount(i))
	}

	for _, r := range d.records {
		k, ok := keys[r.Value(attr)]
		if !ok {
			panic(fmt.Sprintf("data: value %d of attribute %d missing from statistics", r.Value(attr), attr))
		}
		parts[k] = append(parts[k], r)
	}

	d.splitValues = keys
	return parts
}

// SplitValues maps attribute values to partition indices for the most
// recent Split, nil before any split.
func (d *Dataset) SplitValues() map[int]int { return d.splitValues }
