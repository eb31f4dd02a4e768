package engine

// fillColumns copies the matrix, replacing every column selected by pick
// with the column's precomputed mean in all rows.
func fillColumns(cols [][]float64, means []float64, pick func(int) bool) [][]float64 {
	out := make([][]float64, len(cols))
	for j, col := range cols {
		copied := make([]float64, len(col))
		if pick(j) {
			for i := range copied {
				copied[i] = means[j]
			}
		} else {
			copy(copied, col)
		}
		out[j] = copied
	}
	return out
}

func columnMeans(cols [][]float64, rows int) []float64 {
	means := make([]float64, len(cols))
	if rows == 0 {
		return means
	}
	for j, col := range cols {
		sum := 0.0
		for _, v := range col {
			sum += v
		}
		means[j] = sum / float64(rows)
	}
	return means
}
