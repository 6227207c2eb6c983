package eval

import (
	"fmt"
	"io"
)

// Measure holds the standard rates derived from a confusion matrix. Rates
// with an empty denominator are NaN.
type Measure struct {
	Matrix
	P, N int // actual positives and negatives

	Accuracy    float64
	ErrorRate   float64
	Sensitivity float64
	Specificity float64
	Precision   float64
	Recall      float64
}

// Measure derives the rates of m.
func (m Matrix) Measure() Measure {
	r := Measure{
		Matrix: m,
		P:      m.TP + m.FN,
		N:      m.TN + m.FP,
	}

	all := float64(r.P + r.N)
	r.Accuracy = float64(m.TP+m.TN) / all
	r.ErrorRate = float64(m.FP+m.FN) / all
	r.Sensitivity = float64(m.TP) / float64(r.P)
	r.Specificity = float64(m.TN) / float64(r.N)
	r.Precision = float64(m.TP) / float64(m.TP+m.FP)
	r.Recall = r.Sensitivity

	return r
}

// F is the F-beta score, weighting recall beta times as much as precision.
func (r Measure) F(beta float64) float64 {
	b2 := beta * beta
	return (1 + b2) * r.Precision * r.Recall / (b2*r.Precision + r.Recall)
}

// Report writes the measure to w. The short form lists the confusion matrix
// counts only.
func (r Measure) Report(w io.Writer, full bool) error {
	if !full {
		_, err := fmt.Fprintf(w, "%d\n%d\n%d\n%d\n", r.TP, r.TN, r.FP, r.FN)
		return err
	}

	rows := []struct {
		name string
		v    float64
	}{
		{"Accuracy", r.Accuracy},
		{"Error Rate", r.ErrorRate},
		{"Sensitivity", r.Sensitivity},
		{"Specificity", r.Specificity},
		{"Precision", r.Precision},
		{"Recall", r.Recall},
		{"F-1 Score", r.F(1)},
		{"F-0.5 Score", r.F(0.5)},
		{"F-2 Score", r.F(2)},
	}

	fmt.Fprintf(w, "Test Measures\n")
	fmt.Fprintf(w, "-------------\n")
	fmt.Fprintf(w, "%-15s: %d\n", "True Positive", r.TP)
	fmt.Fprintf(w, "%-15s: %d\n", "True Negative", r.TN)
	fmt.Fprintf(w, "%-15s: %d\n", "False Positive", r.FP)
	fmt.Fprintf(w, "%-15s: %d\n", "False Negative", r.FN)
	for _, row := range rows {
		fmt.Fprintf(w, "%-15s: %.3f\n", row.name, row.v)
	}

	fmt.Fprintf(w, "\n")
	for i, row := range rows {
		if i > 0 {
			fmt.Fprintf(w, " & ")
		}
		fmt.Fprintf(w, "%.3f", row.v)
	}
	_, err := fmt.Fprintf(w, "\n")
	return err
}
