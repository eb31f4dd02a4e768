package catalog

import "testing"

func TestCompatibleExplainers(t *testing.T) {
	forTree := CompatibleExplainers("random_forest")
	if len(forTree) != 3 {
		t.Fatalf("expected all explainers for random_forest, got %d", len(forTree))
	}

	forLinear := CompatibleExplainers("linear_regression")
	for _, item := range forLinear {
		if item.Key == "treeshap" {
			t.Fatal("treeshap must not match linear models")
		}
	}
	if len(forLinear) != 2 {
		t.Fatalf("expected 2 explainers for linear_regression, got %d", len(forLinear))
	}

	// Unknown types still match the "any" wildcard entries.
	forUnknown := CompatibleExplainers("mystery")
	if len(forUnknown) != 2 {
		t.Fatalf("expected wildcard matches for unknown type, got %d", len(forUnknown))
	}
}

func TestMetricsRegistry(t *testing.T) {
	keys := map[string]bool{}
	for _, m := range Metrics() {
		keys[m.Key] = true
	}
	for _, want := range []string{"comprehensiveness", "sufficiency", "faithfulness_correlation"} {
		if !keys[want] {
			t.Fatalf("missing metric %s", want)
		}
	}
}
