package data

// Record is one labeled example. Attribute i is the i-th value; the label is
// not counted as an attribute.
type Record struct {
	label  Label
	values []int
}

// NewRecord returns a record with a private copy of values.
func NewRecord(label Label, values ...int) Record {
	v := make([]int, len(values))
	copy(v, values)
	return Record{label: label, values: v}
}

func (r Record) Label() Label       { return r.label }
func (r Record) Value(i int) int    { return r.values[i] }
func (r Record) NumAttributes() int { return len(r.values) }

// Values returns a copy of the attribute values.
func (r Record) Values() []int {
	v := make([]int, len(r.values))
	copy(v, r.values)
	return v
}
