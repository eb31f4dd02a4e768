package ml

import (
	"math"
	"path/filepath"
	"testing"
)

func TestTreeClassifierTrainPredict(t *testing.T) {
	features := [][]float64{
		{0.1, 0.2},
		{0.2, 0.1},
		{0.9, 0.8},
		{0.8, 0.9},
	}
	labels := []int{0, 0, 1, 1}

	model, err := TrainTreeClassifier(features, labels, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	label, err := model.Predict([]float64{0.15, 0.15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if label != 0 {
		t.Fatalf("expected label 0, got %f", label)
	}

	probs := model.PredictProba([]float64{0.85, 0.85})
	if len(probs) != 2 {
		t.Fatalf("expected 2 class probabilities, got %v", probs)
	}
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities sum to %f", sum)
	}
	if probs[1] <= probs[0] {
		t.Fatalf("expected class 1 to dominate: %v", probs)
	}
}

func TestTreeClassifierImportances(t *testing.T) {
	// Only the first feature separates the classes.
	features := [][]float64{
		{0, 5}, {0.1, 5}, {0.2, 5},
		{1, 5}, {0.9, 5}, {0.8, 5},
	}
	labels := []int{0, 0, 0, 1, 1, 1}

	model, err := TrainTreeClassifier(features, labels, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	imp := model.Importances()
	if len(imp) != 2 {
		t.Fatalf("expected 2 importances, got %v", imp)
	}
	if imp[0] <= imp[1] {
		t.Fatalf("expected feature 0 to dominate: %v", imp)
	}
	sum := imp[0] + imp[1]
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("importances sum to %f", sum)
	}
}

func TestTreeClassifierSaveLoad(t *testing.T) {
	features := [][]float64{{0, 0}, {1, 1}}
	labels := []int{0, 1}
	model, err := TrainTreeClassifier(features, labels, 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "tree.json")
	if err := model.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := &TreeClassifier{}
	if err := loaded.Load(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want, _ := model.Predict([]float64{0.9, 0.9})
	got, err := loaded.Predict([]float64{0.9, 0.9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("loaded model disagrees: %f vs %f", got, want)
	}
}

func TestTreeRegressor(t *testing.T) {
	features := [][]float64{{0}, {1}, {2}, {10}, {11}, {12}}
	targets := []float64{1, 1, 1, 9, 9, 9}

	model, err := TrainTreeRegressor(features, targets, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	low, err := model.Predict([]float64{0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	high, err := model.Predict([]float64{11.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(low-1) > 1e-9 || math.Abs(high-9) > 1e-9 {
		t.Fatalf("expected leaf means 1 and 9, got %f and %f", low, high)
	}
	if model.PredictProba([]float64{0.5}) != nil {
		t.Fatal("regressor must not expose probabilities")
	}
	imp := model.Importances()
	if len(imp) != 1 || imp[0] != 1 {
		t.Fatalf("expected all importance on the only feature: %v", imp)
	}
}

func TestTreeClassifierUntrained(t *testing.T) {
	model := &TreeClassifier{}
	if _, err := model.Predict([]float64{1}); err == nil {
		t.Fatal("expected error for untrained model")
	}
}
