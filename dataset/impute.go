package dataset

import (
	"math"
	"sort"
)

// ImputeMedians replaces NaN cells with the column median, computed over
// the non-missing values. An all-NaN column is filled with zeros.
func ImputeMedians(f *Frame) {
	for i := range f.columns {
		col := &f.columns[i]
		median, ok := columnMedian(col.Values)
		if !ok {
			median = 0
		}
		for j, v := range col.Values {
			if math.IsNaN(v) {
				col.Values[j] = median
			}
		}
	}
}

func columnMedian(values []float64) (float64, bool) {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return 0, false
	}
	sort.Float64s(present)
	mid := len(present) / 2
	if len(present)%2 == 0 {
		return (present[mid-1] + present[mid]) / 2, true
	}
	return present[mid], true
}
