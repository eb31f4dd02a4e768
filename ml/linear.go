package ml

import (
	"errors"
	"math"
)

const (
	gradientEpochs = 1000
	gradientRate   = 0.1
)

// LinearModel is a least-squares fit producing point predictions and a
// single row of linear coefficients.
type LinearModel struct {
	weights []float64
	bias    float64
}

func TrainLinear(features [][]float64, targets []float64) (*LinearModel, error) {
	if len(features) == 0 || len(targets) == 0 {
		return nil, errors.New("features or targets empty")
	}
	if len(features) != len(targets) {
		return nil, errors.New("features and targets size mismatch")
	}

	scaler := fitScaler(features)
	scaled := scaler.apply(features)
	n := len(features[0])

	weights := make([]float64, n)
	bias := 0.0
	for epoch := 0; epoch < gradientEpochs; epoch++ {
		gradW := make([]float64, n)
		gradB := 0.0
		for i, row := range scaled {
			pred := bias + dot(weights, row)
			diff := pred - targets[i]
			for j, v := range row {
				gradW[j] += diff * v
			}
			gradB += diff
		}
		scale := gradientRate / float64(len(scaled))
		for j := range weights {
			weights[j] -= scale * gradW[j]
		}
		bias -= scale * gradB
	}

	rawWeights, rawBias := scaler.unscale(weights, bias)
	return &LinearModel{weights: rawWeights, bias: rawBias}, nil
}

func (m *LinearModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.weights) {
		return 0, errors.New("feature length mismatch")
	}
	return m.bias + dot(m.weights, features), nil
}

func (m *LinearModel) PredictProba(features []float64) []float64 {
	return nil
}

func (m *LinearModel) Importances() []float64 {
	return nil
}

func (m *LinearModel) Coefficients() [][]float64 {
	return [][]float64{append([]float64(nil), m.weights...)}
}

// LogisticModel is a one-vs-rest logistic fit. Binary problems keep a
// single coefficient row, multiclass problems one row per class.
type LogisticModel struct {
	weights    [][]float64 // one row per scoring head
	biases     []float64
	classCount int
}

func TrainLogistic(features [][]float64, labels []int, classCount int) (*LogisticModel, error) {
	if len(features) == 0 || len(labels) == 0 {
		return nil, errors.New("features or labels empty")
	}
	if len(features) != len(labels) {
		return nil, errors.New("features and labels size mismatch")
	}
	if classCount < 2 {
		return nil, errors.New("classCount must be at least 2")
	}

	scaler := fitScaler(features)
	scaled := scaler.apply(features)
	n := len(features[0])

	heads := classCount
	if classCount == 2 {
		heads = 1
	}

	weights := make([][]float64, heads)
	biases := make([]float64, heads)
	for h := 0; h < heads; h++ {
		target := h
		if heads == 1 {
			target = 1
		}
		w := make([]float64, n)
		b := 0.0
		for epoch := 0; epoch < gradientEpochs; epoch++ {
			gradW := make([]float64, n)
			gradB := 0.0
			for i, row := range scaled {
				y := 0.0
				if labels[i] == target {
					y = 1
				}
				p := sigmoid(b + dot(w, row))
				diff := p - y
				for j, v := range row {
					gradW[j] += diff * v
				}
				gradB += diff
			}
			scale := gradientRate / float64(len(scaled))
			for j := range w {
				w[j] -= scale * gradW[j]
			}
			b -= scale * gradB
		}
		weights[h], biases[h] = scaler.unscale(w, b)
	}

	return &LogisticModel{weights: weights, biases: biases, classCount: classCount}, nil
}

func (m *LogisticModel) scores(features []float64) []float64 {
	if m.classCount == 2 {
		p := sigmoid(m.biases[0] + dot(m.weights[0], features))
		return []float64{1 - p, p}
	}
	probs := make([]float64, m.classCount)
	sum := 0.0
	for h := range m.weights {
		probs[h] = sigmoid(m.biases[h] + dot(m.weights[h], features))
		sum += probs[h]
	}
	if sum > 0 {
		for i := range probs {
			probs[i] /= sum
		}
	}
	return probs
}

// Predict returns the most probable class index.
func (m *LogisticModel) Predict(features []float64) (float64, error) {
	if len(features) != len(m.weights[0]) {
		return 0, errors.New("feature length mismatch")
	}
	probs := m.scores(features)
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return float64(best), nil
}

func (m *LogisticModel) PredictProba(features []float64) []float64 {
	if len(features) != len(m.weights[0]) {
		return nil
	}
	return m.scores(features)
}

func (m *LogisticModel) Importances() []float64 {
	return nil
}

func (m *LogisticModel) Coefficients() [][]float64 {
	out := make([][]float64, len(m.weights))
	for i, row := range m.weights {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// scaler standardizes features during gradient descent; fitted weights are
// folded back into raw feature space so coefficients stay interpretable.
type scaler struct {
	means []float64
	stds  []float64
}

func fitScaler(features [][]float64) *scaler {
	n := len(features[0])
	means := make([]float64, n)
	stds := make([]float64, n)
	for j := 0; j < n; j++ {
		sum := 0.0
		for _, row := range features {
			sum += row[j]
		}
		means[j] = sum / float64(len(features))
		varSum := 0.0
		for _, row := range features {
			d := row[j] - means[j]
			varSum += d * d
		}
		stds[j] = math.Sqrt(varSum / float64(len(features)))
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	return &scaler{means: means, stds: stds}
}

func (s *scaler) apply(features [][]float64) [][]float64 {
	out := make([][]float64, len(features))
	for i, row := range features {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.means[j]) / s.stds[j]
		}
		out[i] = scaled
	}
	return out
}

func (s *scaler) unscale(weights []float64, bias float64) ([]float64, float64) {
	raw := make([]float64, len(weights))
	rawBias := bias
	for j, w := range weights {
		raw[j] = w / s.stds[j]
		rawBias -= w * s.means[j] / s.stds[j]
	}
	return raw, rawBias
}
