package forest

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/iter"
	"github.com/xh3b4sd/tracer"
	"golang.org/x/sync/errgroup"

	"github.com/wlattner/dtree/data"
	"github.com/wlattner/dtree/eval"
	"github.com/wlattner/dtree/internal/metrics"
	"github.com/wlattner/dtree/sample"
	"github.com/wlattner/dtree/tree"
)

// Classifier is an ensemble of decision trees. It should be initialized
// with NewBagging or NewRandomForest.
type Classifier struct {
	NTrees          int
	FeatureRatio    float64
	Clamp           RatioClamp
	Bagging         bool
	Trees           []*tree.Classifier
	ConfusionMatrix eval.Matrix // out of bag, with ComputeOOB
	Accuracy        float64     // out of bag, with ComputeOOB
	NSample         int
	nFeatures       int
	nWorkers        int
	computeOOB      bool
	seed            int64
	logger          *slog.Logger
	metrics         *metrics.Metrics
}

// Fit constructs the ensemble from NTrees bootstrap samples of src.
func (f *Classifier) Fit(src *data.Dataset) error {
	if f.NTrees < 1 {
		return fmt.Errorf("%w: %d", ErrNumTrees, f.NTrees)
	}

	f.NSample = src.Len()
	f.nFeatures = src.NumAttributes()
	f.Trees = make([]*tree.Classifier, f.NTrees)

	var oob *oobCtr
	if f.computeOOB {
		oob = newOOBCtr(src.Len())
	}

	// per tree seeds are fixed before any worker starts
	r := rand.New(rand.NewSource(f.seed))
	seeds := make([]int64, f.NTrees)
	for i := range seeds {
		seeds[i] = r.Int63()
	}

	nWorkers := f.nWorkers
	if nWorkers < 1 {
		nWorkers = 1
	}

	ratio := f.TreeRatio()
	method := f.Method()

	logger := f.logger
	if logger == nil {
		logger = slog.Default()
	}

	var g errgroup.Group
	g.SetLimit(nWorkers)

	for i := range f.Trees {
		i := i
		g.Go(func() error {
			rs := rand.New(rand.NewSource(seeds[i]))
			inx, inBag := sample.BootstrapInBag(rs, src.Len())

			clf := tree.NewClassifier(tree.FeatureRatio(ratio), tree.RandState(rs.Int63()))
			if err := clf.FitInx(src, inx); err != nil {
				return tracer.Mask(err)
			}
			f.Trees[i] = clf

			if oob != nil {
				oob.update(src, inBag, clf)
			}

			depth, leaves := clf.Depth(), clf.NumLeaves()
			logger.Debug("fitted tree", "method", method, "tree", i, "depth", depth, "leaves", leaves)
			f.metrics.ObserveTree(method, depth, leaves)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return tracer.Mask(err)
	}

	if oob != nil {
		f.ConfusionMatrix = oob.compute(src)
		f.Accuracy = f.ConfusionMatrix.Accuracy()
		f.metrics.SetAccuracy(method, "oob", f.Accuracy)
	}

	return nil
}

// Query returns the majority vote of the trees. A tied vote is Positive.
func (f *Classifier) Query(r data.Record) data.Label {
	votes := 0
	for _, t := range f.Trees {
		votes += t.Query(r).Vote()
	}
	return voteLabel(votes)
}

func voteLabel(votes int) data.Label {
	if votes >= 0 {
		return data.Positive
	}
	return data.Negative
}

// Predict returns the predicted label for each record. Records are
// labeled concurrently.
func (f *Classifier) Predict(records []data.Record) []data.Label {
	return iter.Map(records, func(r *data.Record) data.Label {
		return f.Query(*r)
	})
}

// VarImp returns importance scores for the model, the mean of the tree
// scores.
func (f *Classifier) VarImp() []float64 {
	imp := make([]float64, f.nFeatures)

	for _, t := range f.Trees {
		for inx, importance := range t.VarImp() {
			imp[inx] += importance / float64(len(f.Trees))
		}
	}

	return imp
}

type oobCtr struct {
	mu     sync.Mutex
	votes  []int // summed votes per example
	nVoted []int // trees that had the example out of bag
}

func newOOBCtr(nExample int) *oobCtr {
	return &oobCtr{
		votes:  make([]int, nExample),
		nVoted: make([]int, nExample),
	}
}

// accumulate oob predictions for a tree
func (o *oobCtr) update(src *data.Dataset, inBag []bool, t *tree.Classifier) {
	inx := lo.Filter(lo.Range(len(inBag)), func(i int, _ int) bool {
		return !inBag[i]
	})

	pred := t.PredictInx(src, inx)

	o.mu.Lock()
	defer o.mu.Unlock()
	for i, sampleInx := range inx {
		o.votes[sampleInx] += pred[i].Vote()
		o.nVoted[sampleInx]++
	}
}

// compute the confusion matrix over examples that were out of bag for at
// least one tree
func (o *oobCtr) compute(src *data.Dataset) eval.Matrix {
	var m eval.Matrix
	for i, n := range o.nVoted {
		if n == 0 {
			continue
		}
		m.Add(voteLabel(o.votes[i]), src.Record(i).Label())
	}
	return m
}
