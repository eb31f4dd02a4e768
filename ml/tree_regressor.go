package ml

import (
	"errors"
	"math"
)

// TreeRegressor mirrors TreeClassifier with variance-reduction splits and
// mean-value leaves.
type TreeRegressor struct {
	nodes       []treeNode
	importances []float64
}

func TrainTreeRegressor(features [][]float64, targets []float64, maxDepth int) (*TreeRegressor, error) {
	if len(features) == 0 || len(targets) == 0 {
		return nil, errors.New("features or targets empty")
	}
	if len(features) != len(targets) {
		return nil, errors.New("features and targets size mismatch")
	}
	if maxDepth <= 0 {
		maxDepth = 3
	}

	t := &TreeRegressor{importances: make([]float64, len(features[0]))}
	t.build(features, targets, 0, maxDepth, len(features))
	normalizeInPlace(t.importances)
	return t, nil
}

func (t *TreeRegressor) build(features [][]float64, targets []float64, depth, maxDepth, total int) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{})

	if depth >= maxDepth || variance(targets) == 0 {
		t.nodes[idx] = regLeaf(meanOf(targets))
		return idx
	}

	bestFeature, threshold, ok := findBestVarianceSplit(features, targets)
	if !ok {
		t.nodes[idx] = regLeaf(meanOf(targets))
		return idx
	}

	leftFeatures, leftTargets, rightFeatures, rightTargets := splitTargets(features, targets, bestFeature, threshold)
	if len(leftTargets) == 0 || len(rightTargets) == 0 {
		t.nodes[idx] = regLeaf(meanOf(targets))
		return idx
	}

	gain := variance(targets) - weightedVariance(leftTargets, rightTargets)
	t.importances[bestFeature] += gain * float64(len(targets)) / float64(total)

	left := t.build(leftFeatures, leftTargets, depth+1, maxDepth, total)
	right := t.build(rightFeatures, rightTargets, depth+1, maxDepth, total)

	t.nodes[idx] = treeNode{
		FeatureIdx: bestFeature,
		Threshold:  threshold,
		LeftChild:  left,
		RightChild: right,
	}
	return idx
}

func regLeaf(value float64) treeNode {
	return treeNode{
		FeatureIdx: -1,
		LeftChild:  -1,
		RightChild: -1,
		Value:      value,
		IsLeaf:     true,
	}
}

func (t *TreeRegressor) Predict(features []float64) (float64, error) {
	if len(t.nodes) == 0 {
		return 0, errors.New("model not trained")
	}
	idx := 0
	for {
		node := &t.nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(t.nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func (t *TreeRegressor) PredictProba(features []float64) []float64 {
	return nil
}

func (t *TreeRegressor) Importances() []float64 {
	return append([]float64(nil), t.importances...)
}

func (t *TreeRegressor) Coefficients() [][]float64 {
	return nil
}

func findBestVarianceSplit(features [][]float64, targets []float64) (int, float64, bool) {
	featureCount := len(features[0])
	bestFeature := -1
	bestThreshold := 0.0
	bestVariance := math.MaxFloat64

	for featureIdx := 0; featureIdx < featureCount; featureIdx++ {
		values := make([]float64, len(features))
		for i := range features {
			values[i] = features[i][featureIdx]
		}
		threshold := median(values)
		_, leftTargets, _, rightTargets := splitTargets(features, targets, featureIdx, threshold)
		if len(leftTargets) == 0 || len(rightTargets) == 0 {
			continue
		}
		v := weightedVariance(leftTargets, rightTargets)
		if v < bestVariance {
			bestVariance = v
			bestFeature = featureIdx
			bestThreshold = threshold
		}
	}
	if bestFeature == -1 {
		return -1, 0, false
	}
	return bestFeature, bestThreshold, true
}

func splitTargets(features [][]float64, targets []float64, featureIdx int, threshold float64) ([][]float64, []float64, [][]float64, []float64) {
	leftFeatures := make([][]float64, 0)
	leftTargets := make([]float64, 0)
	rightFeatures := make([][]float64, 0)
	rightTargets := make([]float64, 0)
	for i, feature := range features {
		if feature[featureIdx] <= threshold {
			leftFeatures = append(leftFeatures, feature)
			leftTargets = append(leftTargets, targets[i])
		} else {
			rightFeatures = append(rightFeatures, feature)
			rightTargets = append(rightTargets, targets[i])
		}
	}
	return leftFeatures, leftTargets, rightFeatures, rightTargets
}

func weightedVariance(left, right []float64) float64 {
	lw := float64(len(left))
	rw := float64(len(right))
	total := lw + rw
	return (lw/total)*variance(left) + (rw/total)*variance(right)
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := meanOf(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
