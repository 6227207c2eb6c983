package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/xh3b4sd/tracer"

	"github.com/wlattner/dtree/data"
	"github.com/wlattner/dtree/eval"
	"github.com/wlattner/dtree/forest"
	"github.com/wlattner/dtree/internal/config"
	"github.com/wlattner/dtree/internal/metrics"
	"github.com/wlattner/dtree/tree"
)

// Model wraps the classifier selected on the command line.
type Model struct {
	Method   string
	Tree     *tree.Classifier
	Ensemble *forest.Classifier
	VarNames []string
	Measure  eval.Measure
	fitTime  time.Duration
	nSample  int
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func newModel(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *Model {
	return &Model{Method: cfg.Method, cfg: cfg, logger: logger, metrics: m}
}

func (m *Model) classifier() eval.Classifier {
	if m.Tree != nil {
		return m.Tree
	}
	return m.Ensemble
}

func (m *Model) Fit(d *data.Dataset, varNames []string) error {
	start := time.Now()

	switch m.Method {
	case "tree":
		m.Tree = tree.NewClassifier()
		if err := m.Tree.FitDataset(d); err != nil {
			return tracer.Mask(err)
		}
		m.metrics.ObserveTree(m.Method, m.Tree.Depth(), m.Tree.NumLeaves())
	default:
		opts := []forest.Option{
			forest.NumTrees(m.cfg.Trees),
			forest.FeatureRatio(m.cfg.FeatureRatio),
			forest.NumWorkers(m.cfg.Workers),
			forest.Logger(m.logger),
			forest.Metrics(m.metrics),
		}
		if m.cfg.LegacyClamp {
			opts = append(opts, forest.LegacyRatioClamp())
		}
		if m.cfg.OOB {
			opts = append(opts, forest.ComputeOOB())
		}
		if m.cfg.Seed != 0 {
			opts = append(opts, forest.Seed(m.cfg.Seed))
		}

		if m.Method == "bag" {
			m.Ensemble = forest.NewBagging(opts...)
		} else {
			m.Ensemble = forest.NewRandomForest(opts...)
		}
		if err := m.Ensemble.Fit(d); err != nil {
			return tracer.Mask(err)
		}
	}

	m.fitTime = time.Since(start)
	m.metrics.ObserveFit(m.Method, m.fitTime)
	m.VarNames = varNames
	m.nSample = d.Len()

	return nil
}

// Test scores the fitted model on d.
func (m *Model) Test(d *data.Dataset) eval.Measure {
	m.Measure = eval.Test(m.classifier(), d).Measure()
	m.metrics.SetAccuracy(m.Method, "test", m.Measure.Accuracy)
	return m.Measure
}

func (m *Model) Predict(records []data.Record) []string {
	pred := make([]string, len(records))
	if m.Ensemble != nil {
		for i, l := range m.Ensemble.Predict(records) {
			pred[i] = l.String()
		}
		return pred
	}

	for i, l := range m.Tree.Predict(records) {
		pred[i] = l.String()
	}
	return pred
}

func (m *Model) VarImp() []float64 {
	if m.Ensemble != nil {
		return m.Ensemble.VarImp()
	}
	return m.Tree.VarImp()
}

func (m *Model) Report(w io.Writer) error {
	// generic stuff
	switch m.Method {
	case "tree":
		fmt.Fprintf(w, "Fit tree of depth %d with %d leaves using %d examples in %.2f seconds\n",
			m.Tree.Depth(), m.Tree.NumLeaves(), m.nSample, m.fitTime.Seconds())
	default:
		fmt.Fprintf(w, "Fit %d trees (%s) using %d examples in %.2f seconds\n",
			m.Ensemble.NTrees, m.Method, m.nSample, m.fitTime.Seconds())
	}
	fmt.Fprintf(w, "\n")

	m.ReportVarImp(w, 20)

	if m.Ensemble != nil && m.cfg.OOB {
		m.reportOOB(w)
	}

	return m.Measure.Report(w, m.cfg.Full)
}

func (m *Model) reportOOB(w io.Writer) {
	cm := m.Ensemble.ConfusionMatrix

	fmt.Fprintf(w, "Out of Bag Confusion Matrix\n")
	fmt.Fprintf(w, "---------------------------\n")
	fmt.Fprintf(w, "%-14s %-14s %-14s\n", "", data.Positive, data.Negative)
	fmt.Fprintf(w, "%-14s %-14d %-14d\n", data.Positive, cm.TP, cm.FP)
	fmt.Fprintf(w, "%-14s %-14d %-14d\n", data.Negative, cm.FN, cm.TN)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Overall Accuracy: %.2f%%\n", 100.0*m.Ensemble.Accuracy)
	fmt.Fprintf(w, "\n")
}

func (m *Model) SaveVarImp(w io.Writer) error {
	writer := csv.NewWriter(w)

	for i, score := range m.VarImp() {
		err := writer.Write([]string{m.VarNames[i], strconv.FormatFloat(score, 'f', -1, 64)})
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func (m *Model) ReportVarImp(w io.Writer, maxVars int) {
	fmt.Fprintf(w, "Variable Importance\n")
	fmt.Fprintf(w, "-------------------\n")

	varImp := m.VarImp()
	varNames := make([]string, len(m.VarNames))
	copy(varNames, m.VarNames) // don't sort the orig.
	sortByImportance(varImp, varNames)

	// only show top n
	if maxVars > len(varImp) {
		maxVars = len(varImp)
	}

	for i, imp := range varImp[:maxVars] {
		fmt.Fprintf(w, "%-15s: %-10.2f\n", varNames[i], imp)
	}

	fmt.Fprintf(w, "\n")
}

type varImpSort struct {
	varName []string
	imp     []float64
}

func (v varImpSort) Len() int {
	return len(v.imp)
}

func (v varImpSort) Less(i, j int) bool {
	return v.imp[i] < v.imp[j]
}

func (v varImpSort) Swap(i, j int) {
	v.imp[i], v.imp[j] = v.imp[j], v.imp[i]
	v.varName[i], v.varName[j] = v.varName[j], v.varName[i]
}

func sortByImportance(imp []float64, names []string) {
	sort.Sort(sort.Reverse(varImpSort{imp: imp, varName: names}))
}
