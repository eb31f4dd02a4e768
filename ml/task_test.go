package ml

import (
	"fmt"
	"testing"

	"github.com/jemsbhai/explainiverse-studio/engine"
)

func TestInferTask(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
		want  engine.TaskType
	}{
		{"strings", []string{"yes", "no", "yes"}, engine.TaskClassification},
		{"small ints", []string{"0", "1", "2", "1", "0"}, engine.TaskClassification},
		{"floats", []string{"1.5", "2.7", "3.1"}, engine.TaskRegression},
	}
	for _, tc := range cases {
		if got := InferTask(tc.cells); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}

	// More than 20 distinct integers reads as a continuous target.
	many := make([]string, 30)
	for i := range many {
		many[i] = fmt.Sprintf("%d", i)
	}
	if got := InferTask(many); got != engine.TaskRegression {
		t.Fatalf("many ints: got %s, want regression", got)
	}
}

func TestEncodeLabels(t *testing.T) {
	labels, classes, err := EncodeLabels([]string{"cat", "dog", "cat", "bird"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(classes) != 3 || classes[0] != "bird" || classes[1] != "cat" || classes[2] != "dog" {
		t.Fatalf("expected sorted classes, got %v", classes)
	}
	want := []int{1, 2, 1, 0}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("unexpected labels: %v", labels)
		}
	}

	if _, _, err := EncodeLabels([]string{"a", "", "b"}); err == nil {
		t.Fatal("expected error for missing target values")
	}
}

func TestNumericTargets(t *testing.T) {
	targets, err := NumericTargets([]string{"1.5", "2", "-3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if targets[0] != 1.5 || targets[2] != -3 {
		t.Fatalf("unexpected targets: %v", targets)
	}
	if _, err := NumericTargets([]string{"1", "oops"}); err == nil {
		t.Fatal("expected error for non-numeric target")
	}
}

func TestTrainDispatch(t *testing.T) {
	features := [][]float64{{0}, {1}, {2}, {3}}
	labels := []int{0, 0, 1, 1}
	targets := []float64{0, 1, 2, 3}

	model, err := Train("logistic_regression", engine.TaskClassification, features, labels, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.(*LogisticModel); !ok {
		t.Fatalf("expected logistic model, got %T", model)
	}

	model, err = Train("random_forest", engine.TaskClassification, features, labels, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.(*TreeClassifier); !ok {
		t.Fatalf("expected tree classifier, got %T", model)
	}

	model, err = Train("linear_regression", engine.TaskRegression, features, nil, 0, targets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.(*LinearModel); !ok {
		t.Fatalf("expected linear model, got %T", model)
	}

	// Unknown keys fall back to the tree family.
	model, err = Train("mystery", engine.TaskRegression, features, nil, 0, targets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := model.(*TreeRegressor); !ok {
		t.Fatalf("expected tree regressor, got %T", model)
	}
}
