package tree

import "github.com/wlattner/dtree/data"

// Node is a node of a fitted tree, either a *Leaf or an *Internal.
type Node interface {
	// N is the number of training examples that reached the node.
	N() int
	// GiniImpurity of the training examples that reached the node.
	GiniImpurity() float64
	node()
}

// Leaf answers a fixed label.
type Leaf struct {
	Label    data.Label
	Samples  int
	Impurity float64
}

// Internal routes a record to the child matching its value of SplitVar.
// Records with a value not seen in training get Label, the majority label
// at the node.
type Internal struct {
	SplitVar int
	Label    data.Label
	Branches map[int]int // value -> index into Children
	Children []Node
	Samples  int
	Impurity float64
}

func (l *Leaf) N() int                    { return l.Samples }
func (l *Leaf) GiniImpurity() float64     { return l.Impurity }
func (l *Leaf) node()                     {}
func (n *Internal) N() int                { return n.Samples }
func (n *Internal) GiniImpurity() float64 { return n.Impurity }
func (n *Internal) node()                 {}
