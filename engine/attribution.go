package engine

import "math"

// rawAttributions derives one weight per feature from whatever the model
// exposes, in priority order: importance scores, then linear coefficients
// (2-D collapsed by mean absolute value across class rows), then uniform.
func rawAttributions(m Model, featureCount int) []float64 {
	var values []float64
	if imp := m.Importances(); imp != nil {
		values = append([]float64(nil), imp...)
	} else if coef := m.Coefficients(); coef != nil {
		if len(coef) > 1 {
			values = make([]float64, len(coef[0]))
			for _, row := range coef {
				for j, v := range row {
					values[j] += math.Abs(v)
				}
			}
			for j := range values {
				values[j] /= float64(len(coef))
			}
		} else if len(coef) == 1 {
			values = make([]float64, len(coef[0]))
			for j, v := range coef[0] {
				values[j] = math.Abs(v)
			}
		}
	}
	if values == nil {
		values = make([]float64, featureCount)
		for i := range values {
			values[i] = 1
		}
	}

	values = resizeCyclic(values, featureCount)

	sum := 0.0
	for i, v := range values {
		values[i] = math.Abs(v)
		sum += values[i]
	}
	if sum > 0 {
		for i := range values {
			values[i] /= sum
		}
		return values
	}
	uniform := make([]float64, featureCount)
	for i := range uniform {
		uniform[i] = 1 / float64(featureCount)
	}
	return uniform
}

// resizeCyclic truncates or cyclically repeats values to length n, so a
// model reporting an unexpected attribution shape still evaluates.
func resizeCyclic(values []float64, n int) []float64 {
	if len(values) == n {
		return values
	}
	if len(values) == 0 {
		return make([]float64, n)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = values[i%len(values)]
	}
	return out
}

// applyExplainer reshapes the attribution vector for the selected
// explainer and renormalizes. Unknown keys (including "shap") leave the
// vector unchanged.
func applyExplainer(attr []float64, explainer string) []float64 {
	out := make([]float64, len(attr))
	switch explainer {
	case "lime":
		for i, v := range attr {
			out[i] = math.Sqrt(v)
		}
	case "treeshap":
		for i, v := range attr {
			out[i] = math.Pow(v, 1.25)
		}
	default:
		copy(out, attr)
	}
	sum := 0.0
	for _, v := range out {
		sum += v
	}
	if sum > 0 {
		for i := range out {
			out[i] /= sum
		}
	}
	return out
}
