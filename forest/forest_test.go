package forest

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/wlattner/dtree/data"
	"github.com/wlattner/dtree/eval"
	"github.com/wlattner/dtree/internal/metrics"
)

// thresholdData labels a record Positive when attribute 0 is at least 2,
// attributes 1 and 2 are noise.
func thresholdData(t testing.TB, n int, seed int64) *data.Dataset {
	r := rand.New(rand.NewSource(seed))

	records := make([]data.Record, n)
	for i := range records {
		a := r.Intn(4)
		l := data.Negative
		if a >= 2 {
			l = data.Positive
		}
		records[i] = data.NewRecord(l, a, r.Intn(3), r.Intn(5))
	}

	d, err := data.New(records)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	return d
}

func accuracy(c eval.Classifier, d *data.Dataset) float64 {
	return eval.Test(c, d).Accuracy()
}

func TestBaggingFitPredict(t *testing.T) {
	d := thresholdData(t, 200, 1)

	clf := NewBagging(NumTrees(10), Seed(1))
	if err := clf.Fit(d); err != nil {
		t.Fatal("unexpected error:", err)
	}

	if len(clf.Trees) != 10 {
		t.Error("expected 10 trees, got:", len(clf.Trees))
	}
	if clf.TreeRatio() != 1 {
		t.Error("expected bagging members to use ratio 1, got:", clf.TreeRatio())
	}

	test := thresholdData(t, 100, 2)
	if acc := accuracy(clf, test); acc < 0.98 {
		t.Errorf("expected accuracy on held out data to be at least 0.98, got: %f", acc)
	}
}

func TestRandomForestFitPredict(t *testing.T) {
	d := thresholdData(t, 200, 3)

	clf := NewRandomForest(NumTrees(25), FeatureRatio(0.67), NumWorkers(4), Seed(5))
	if err := clf.Fit(d); err != nil {
		t.Fatal("unexpected error:", err)
	}

	if acc := accuracy(clf, d); acc < 0.9 {
		t.Errorf("expected training accuracy to be at least 0.9, got: %f", acc)
	}

	imp := clf.VarImp()
	if imp[0] <= imp[1] || imp[0] <= imp[2] {
		t.Error("expected attribute 0 to be the most important, got:", imp)
	}
}

func TestConstantAttributeMajority(t *testing.T) {
	records := make([]data.Record, 100)
	for i := range records {
		l := data.Positive
		if i%10 == 0 {
			l = data.Negative
		}
		records[i] = data.NewRecord(l, 7)
	}
	d, _ := data.New(records)

	clf := NewBagging(NumTrees(5), Seed(11))
	if err := clf.Fit(d); err != nil {
		t.Fatal("unexpected error:", err)
	}

	for _, r := range records {
		if l := clf.Query(r); l != data.Positive {
			t.Fatal("expected majority Positive for every record, got:", l)
		}
	}
}

func TestTieVotesPositive(t *testing.T) {
	if voteLabel(0) != data.Positive {
		t.Error("expected tied vote to be Positive")
	}
	if voteLabel(-1) != data.Negative {
		t.Error("expected negative vote sum to be Negative")
	}
}

func TestTreeRatioClamp(t *testing.T) {
	clf := NewRandomForest(FeatureRatio(0.2))
	if clf.TreeRatio() != 0.2 {
		t.Error("expected ratio 0.2, got:", clf.TreeRatio())
	}

	clf = NewRandomForest(FeatureRatio(3))
	if clf.TreeRatio() != 1 {
		t.Error("expected ratio clamped to 1, got:", clf.TreeRatio())
	}

	clf = NewRandomForest(FeatureRatio(0.2), LegacyRatioClamp())
	if clf.TreeRatio() != 1 {
		t.Error("expected legacy clamp to raise ratio to 1, got:", clf.TreeRatio())
	}

	clf = NewBagging(FeatureRatio(0.2))
	if clf.TreeRatio() != 1 {
		t.Error("expected bagging to ignore feature ratio, got:", clf.TreeRatio())
	}
}

func TestSeedReproducible(t *testing.T) {
	d := thresholdData(t, 150, 4)

	a := NewRandomForest(NumTrees(8), FeatureRatio(0.5), Seed(42), NumWorkers(1))
	b := NewRandomForest(NumTrees(8), FeatureRatio(0.5), Seed(42), NumWorkers(4))
	a.Fit(d)
	b.Fit(d)

	for i := range a.Trees {
		if a.Trees[i].Depth() != b.Trees[i].Depth() || a.Trees[i].NumLeaves() != b.Trees[i].NumLeaves() {
			t.Error("tree", i, "differs between fits with the same seed")
		}
	}

	pa, pb := a.Predict(d.Records()), b.Predict(d.Records())
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatal("predictions differ at", i)
		}
	}
}

func TestOOB(t *testing.T) {
	d := thresholdData(t, 200, 6)
	m := metrics.New()

	clf := NewBagging(NumTrees(20), Seed(3), ComputeOOB(), Metrics(m), NumWorkers(2))
	if err := clf.Fit(d); err != nil {
		t.Fatal("unexpected error:", err)
	}

	if clf.ConfusionMatrix.Total() == 0 || clf.ConfusionMatrix.Total() > d.Len() {
		t.Error("unexpected number of out of bag examples:", clf.ConfusionMatrix.Total())
	}
	if clf.Accuracy < 0.95 {
		t.Errorf("expected out of bag accuracy to be at least 0.95, got: %f", clf.Accuracy)
	}

	if v := testutil.ToFloat64(m.TreesBuilt.WithLabelValues("bag")); v != 20 {
		t.Error("expected 20 trees recorded, got:", v)
	}
	if v := testutil.ToFloat64(m.Accuracy.WithLabelValues("bag", "oob")); v != clf.Accuracy {
		t.Error("expected recorded oob accuracy", clf.Accuracy, "got:", v)
	}
}

func TestNumTreesInvalid(t *testing.T) {
	d := thresholdData(t, 10, 1)
	err := NewBagging(NumTrees(0)).Fit(d)
	if !errors.Is(err, ErrNumTrees) {
		t.Error("expected ErrNumTrees, got:", err)
	}
}

func BenchmarkForestFit(b *testing.B) {
	d := thresholdData(b, 500, 1)
	for i := 0; i < b.N; i++ {
		clf := NewRandomForest(NumTrees(10))
		clf.Fit(d)
	}
}

func BenchmarkForestPredict(b *testing.B) {
	d := thresholdData(b, 500, 1)
	clf := NewRandomForest(NumTrees(10))
	clf.Fit(d)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = clf.Predict(d.Records())
	}
}
