package tree

import (
	"github.com/xh3b4sd/tracer"

	"github.com/wlattner/dtree/data"
)

// build grows the tree rooted at d. Partitions are expanded depth first from
// an explicit stack, each one as a fresh dataset built with the tree's
// feature ratio.
func (t *Classifier) build(d *data.Dataset) error {
	t.nFeatures = d.NumAttributes()
	t.Root = nil

	s := new(buildStack)
	s.Push(&stackItem{d: d})

	for !s.Empty() {
		w := s.Pop()

		attr := -1
		if !w.d.IsPure() {
			attr = w.d.BestAttribute()
		}

		var n Node
		if attr < 0 {
			n = &Leaf{
				Label:    w.d.Label(),
				Samples:  w.d.Len(),
				Impurity: w.d.Gini(),
			}
		} else {
			parts := w.d.Split(attr)

			in := &Internal{
				SplitVar: attr,
				Label:    w.d.Label(),
				Branches: w.d.SplitValues(),
				Children: make([]Node, len(parts)),
				Samples:  w.d.Len(),
				Impurity: w.d.Gini(),
			}

			for i, p := range parts {
				child, err := data.New(p, data.FeatureRatio(t.FeatureRatio), data.RandState(t.randState))
				if err != nil {
					return tracer.Mask(err)
				}
				s.Push(&stackItem{parent: in, child: i, d: child})
			}

			n = in
		}

		if w.parent == nil {
			t.Root = n
		} else {
			w.parent.Children[w.child] = n
		}
	}

	return nil
}

type buildStack []*stackItem

func (s buildStack) Empty() bool        { return len(s) == 0 }
func (s *buildStack) Push(n *stackItem) { *s = append(*s, n) }
func (s *buildStack) Pop() *stackItem {
	d := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return d
}

type stackItem struct {
	parent *Internal // nil for the root
	child  int
	d      *data.Dataset
}
