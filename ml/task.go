package ml

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"github.com/jemsbhai/explainiverse-studio/engine"
)

// classificationUniqueLimit is the heuristic cutoff for numeric targets:
// few distinct integer values means a class label in disguise.
const classificationUniqueLimit = 20

// InferTask decides the task type from the raw target column.
func InferTask(cells []string) engine.TaskType {
	unique := make(map[float64]bool)
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return engine.TaskClassification
		}
		if v != math.Trunc(v) {
			return engine.TaskRegression
		}
		unique[v] = true
	}
	if len(unique) <= classificationUniqueLimit {
		return engine.TaskClassification
	}
	return engine.TaskRegression
}

// EncodeLabels maps raw target cells to class indices over the sorted set
// of distinct values.
func EncodeLabels(cells []string) ([]int, []string, error) {
	seen := make(map[string]bool)
	for _, cell := range cells {
		if cell == "" {
			return nil, nil, errors.New("target column contains missing values")
		}
		seen[cell] = true
	}
	classes := make([]string, 0, len(seen))
	for value := range seen {
		classes = append(classes, value)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, value := range classes {
		index[value] = i
	}
	labels := make([]int, len(cells))
	for i, cell := range cells {
		labels[i] = index[cell]
	}
	return labels, classes, nil
}

// NumericTargets parses the target column for regression.
func NumericTargets(cells []string) ([]float64, error) {
	targets := make([]float64, len(cells))
	for i, cell := range cells {
		if cell == "" {
			return nil, errors.New("target column contains missing values")
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.New("target column is not numeric: " + cell)
		}
		targets[i] = v
	}
	return targets, nil
}

// Train dispatches on the requested model type, falling back to the tree
// family for unknown keys.
func Train(modelType string, task engine.TaskType, features [][]float64, labels []int, classCount int, targets []float64) (engine.Model, error) {
	if task == engine.TaskClassification {
		if modelType == "logistic_regression" {
			return TrainLogistic(features, labels, classCount)
		}
		return TrainTreeClassifier(features, labels, classCount, 5)
	}
	if modelType == "linear_regression" {
		return TrainLinear(features, targets)
	}
	return TrainTreeRegressor(features, targets, 5)
}
