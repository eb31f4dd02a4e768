package ml

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"sort"
)

type treeNode struct {
	FeatureIdx int       `json:"feature_idx"`
	Threshold  float64   `json:"threshold"`
	LeftChild  int       `json:"left_child"`
	RightChild int       `json:"right_child"`
	Dist       []float64 `json:"dist,omitempty"`
	Value      float64   `json:"value"`
	IsLeaf     bool      `json:"is_leaf"`
}

// TreeClassifier is a single CART-style decision tree with per-leaf class
// distributions and gini-gain feature importances.
type TreeClassifier struct {
	nodes       []treeNode
	importances []float64
	classCount  int
}

func TrainTreeClassifier(features [][]float64, labels []int, classCount, maxDepth int) (*TreeClassifier, error) {
	if len(features) == 0 || len(labels) == 0 {
		return nil, errors.New("features or labels empty")
	}
	if len(features) != len(labels) {
		return nil, errors.New("features and labels size mismatch")
	}
	if classCount <= 0 {
		return nil, errors.New("classCount must be positive")
	}
	if maxDepth <= 0 {
		maxDepth = 3
	}

	t := &TreeClassifier{
		importances: make([]float64, len(features[0])),
		classCount:  classCount,
	}
	t.build(features, labels, 0, maxDepth, len(features))
	normalizeInPlace(t.importances)
	return t, nil
}

func (t *TreeClassifier) build(features [][]float64, labels []int, depth, maxDepth, total int) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{})

	if depth >= maxDepth || isPure(labels) {
		t.nodes[idx] = leafNode(t.classDist(labels))
		return idx
	}

	bestFeature, threshold, ok := findBestSplit(features, labels)
	if !ok {
		t.nodes[idx] = leafNode(t.classDist(labels))
		return idx
	}

	leftFeatures, leftLabels, rightFeatures, rightLabels := splitData(features, labels, bestFeature, threshold)
	if len(leftLabels) == 0 || len(rightLabels) == 0 {
		t.nodes[idx] = leafNode(t.classDist(labels))
		return idx
	}

	gain := gini(labels) - weightedGini(leftLabels, rightLabels)
	t.importances[bestFeature] += gain * float64(len(labels)) / float64(total)

	left := t.build(leftFeatures, leftLabels, depth+1, maxDepth, total)
	right := t.build(rightFeatures, rightLabels, depth+1, maxDepth, total)

	t.nodes[idx] = treeNode{
		FeatureIdx: bestFeature,
		Threshold:  threshold,
		LeftChild:  left,
		RightChild: right,
	}
	return idx
}

func (t *TreeClassifier) classDist(labels []int) []float64 {
	dist := make([]float64, t.classCount)
	for _, label := range labels {
		if label >= 0 && label < t.classCount {
			dist[label]++
		}
	}
	if len(labels) > 0 {
		for i := range dist {
			dist[i] /= float64(len(labels))
		}
	}
	return dist
}

func leafNode(dist []float64) treeNode {
	return treeNode{
		FeatureIdx: -1,
		LeftChild:  -1,
		RightChild: -1,
		Dist:       dist,
		IsLeaf:     true,
	}
}

func (t *TreeClassifier) leaf(features []float64) (*treeNode, error) {
	if len(t.nodes) == 0 {
		return nil, errors.New("model not trained")
	}
	idx := 0
	for {
		node := &t.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return nil, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(t.nodes) {
			return nil, errors.New("invalid tree state")
		}
	}
}

// Predict returns the majority class index of the reached leaf.
func (t *TreeClassifier) Predict(features []float64) (float64, error) {
	node, err := t.leaf(features)
	if err != nil {
		return 0, err
	}
	best := 0
	for i, p := range node.Dist {
		if p > node.Dist[best] {
			best = i
		}
	}
	return float64(best), nil
}

func (t *TreeClassifier) PredictProba(features []float64) []float64 {
	node, err := t.leaf(features)
	if err != nil {
		return nil
	}
	return append([]float64(nil), node.Dist...)
}

func (t *TreeClassifier) Importances() []float64 {
	return append([]float64(nil), t.importances...)
}

func (t *TreeClassifier) Coefficients() [][]float64 {
	return nil
}

type treeArtifact struct {
	Nodes       []treeNode `json:"nodes"`
	Importances []float64  `json:"importances"`
	ClassCount  int        `json:"class_count"`
}

func (t *TreeClassifier) Save(path string) error {
	if len(t.nodes) == 0 {
		return errors.New("model not trained")
	}
	payload, err := json.Marshal(treeArtifact{Nodes: t.nodes, Importances: t.importances, ClassCount: t.classCount})
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

func (t *TreeClassifier) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var artifact treeArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return err
	}
	t.nodes = artifact.Nodes
	t.importances = artifact.Importances
	t.classCount = artifact.ClassCount
	return nil
}

func findBestSplit(features [][]float64, labels []int) (int, float64, bool) {
	featureCount := len(features[0])
	bestFeature := -1
	bestThreshold := 0.0
	bestImpurity := math.MaxFloat64

	for featureIdx := 0; featureIdx < featureCount; featureIdx++ {
		values := make([]float64, len(features))
		for i := range features {
			values[i] = features[i][featureIdx]
		}
		threshold := median(values)
		leftLabels, rightLabels := splitLabels(features, labels, featureIdx, threshold)
		if len(leftLabels) == 0 || len(rightLabels) == 0 {
			continue
		}
		impurity := weightedGini(leftLabels, rightLabels)
		if impurity < bestImpurity {
			bestImpurity = impurity
			bestFeature = featureIdx
			bestThreshold = threshold
		}
	}
	if bestFeature == -1 {
		return -1, 0, false
	}
	return bestFeature, bestThreshold, true
}

func splitData(features [][]float64, labels []int, featureIdx int, threshold float64) ([][]float64, []int, [][]float64, []int) {
	leftFeatures := make([][]float64, 0)
	leftLabels := make([]int, 0)
	rightFeatures := make([][]float64, 0)
	rightLabels := make([]int, 0)
	for i, feature := range features {
		if feature[featureIdx] <= threshold {
			leftFeatures = append(leftFeatures, feature)
			leftLabels = append(leftLabels, labels[i])
		} else {
			rightFeatures = append(rightFeatures, feature)
			rightLabels = append(rightLabels, labels[i])
		}
	}
	return leftFeatures, leftLabels, rightFeatures, rightLabels
}

func splitLabels(features [][]float64, labels []int, featureIdx int, threshold float64) ([]int, []int) {
	leftLabels := make([]int, 0)
	rightLabels := make([]int, 0)
	for i, feature := range features {
		if feature[featureIdx] <= threshold {
			leftLabels = append(leftLabels, labels[i])
		} else {
			rightLabels = append(rightLabels, labels[i])
		}
	}
	return leftLabels, rightLabels
}

func weightedGini(leftLabels, rightLabels []int) float64 {
	leftWeight := float64(len(leftLabels))
	rightWeight := float64(len(rightLabels))
	total := leftWeight + rightWeight
	return (leftWeight/total)*gini(leftLabels) + (rightWeight/total)*gini(rightLabels)
}

func gini(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	counts := make(map[int]int)
	for _, label := range labels {
		counts[label]++
	}
	impurity := 1.0
	for _, count := range counts {
		prob := float64(count) / float64(len(labels))
		impurity -= prob * prob
	}
	return impurity
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func isPure(labels []int) bool {
	if len(labels) == 0 {
		return true
	}
	first := labels[0]
	for _, label := range labels[1:] {
		if label != first {
			return false
		}
	}
	return true
}

func normalizeInPlace(values []float64) {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range values {
		values[i] /= sum
	}
}
