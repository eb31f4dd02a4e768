// Package engine scores how faithfully an attribution method explains a
// trained model's predictions over a feature matrix. The whole pipeline is
// pure: the model is read-only and every perturbed matrix is an
// independent copy.
package engine

import (
	"math"

	"github.com/jemsbhai/explainiverse-studio/dataset"
)

// Evaluate produces one faithfulness score in [0,1] for the given
// explainer and metric keys. Unknown explainer keys fall back to the
// identity transform; unknown metric keys fall back to the mean of the
// attribution vector. A frame with zero columns scores 0.0 outright.
func Evaluate(m Model, task TaskType, frame *dataset.Frame, explainer, metric string) (float64, error) {
	n := frame.NumCols()
	if n == 0 {
		return 0, nil
	}
	rows := frame.NumRows()

	attr := applyExplainer(rawAttributions(m, n), explainer)
	top := topKIndices(attr)

	cols := frame.ColumnValues()
	means := columnMeans(cols, rows)

	base, err := signals(m, task, cols, rows)
	if err != nil {
		return 0, err
	}

	removed := fillColumns(cols, means, func(j int) bool { return top[j] })
	removedSignal, err := signals(m, task, removed, rows)
	if err != nil {
		return 0, err
	}

	kept := fillColumns(cols, means, func(j int) bool { return !top[j] })
	keptSignal, err := signals(m, task, kept, rows)
	if err != nil {
		return 0, err
	}

	var score float64
	switch metric {
	case "comprehensiveness":
		drops := make([]float64, rows)
		for i := range drops {
			drops[i] = math.Max(base[i]-removedSignal[i], 0)
		}
		score = mean(drops)
	case "sufficiency":
		gaps := make([]float64, rows)
		for i := range gaps {
			gaps[i] = math.Abs(base[i] - keptSignal[i])
		}
		score = 1 - mean(gaps)
	case "faithfulness_correlation":
		impacts := make([]float64, n)
		for j := 0; j < n; j++ {
			ablated := fillColumns(cols, means, func(col int) bool { return col == j })
			sig, err := signals(m, task, ablated, rows)
			if err != nil {
				return 0, err
			}
			diffs := make([]float64, rows)
			for i := range diffs {
				diffs[i] = math.Abs(base[i] - sig[i])
			}
			impacts[j] = mean(diffs)
		}
		if stddev(impacts) == 0 || stddev(attr) == 0 {
			score = 0
		} else {
			score = (pearson(attr, impacts) + 1) / 2
		}
	default:
		score = mean(attr)
	}

	return clamp01(score), nil
}
