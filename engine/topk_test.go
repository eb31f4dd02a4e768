package engine

import "testing"

func TestTopKBound(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{1, 1}, {2, 2}, {3, 3}, {4, 3}, {10, 3},
	}
	for _, tc := range cases {
		attr := make([]float64, tc.n)
		for i := range attr {
			attr[i] = float64(i + 1)
		}
		top := topKIndices(attr)
		if len(top) != tc.want {
			t.Fatalf("n=%d: got %d indices, want %d", tc.n, len(top), tc.want)
		}
	}
}

func TestTopKSmallFeatureSetIsFullSet(t *testing.T) {
	top := topKIndices([]float64{0.7, 0.3})
	if !top[0] || !top[1] {
		t.Fatalf("expected full index set, got %v", top)
	}
}

func TestTopKDistinctValues(t *testing.T) {
	top := topKIndices([]float64{0.1, 0.4, 0.05, 0.3, 0.15})
	for _, idx := range []int{1, 3, 4} {
		if !top[idx] {
			t.Fatalf("expected index %d in top set %v", idx, top)
		}
	}
}

func TestTopKTieBreakPrefersLargerIndex(t *testing.T) {
	top := topKIndices([]float64{0.2, 0.2, 0.2, 0.2, 0.2})
	for _, idx := range []int{4, 3, 2} {
		if !top[idx] {
			t.Fatalf("expected index %d in top set %v", idx, top)
		}
	}
	if top[0] || top[1] {
		t.Fatalf("unexpected low indices in top set %v", top)
	}
}
