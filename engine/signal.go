package engine

// signals maps the model over every row of a column-major matrix, one
// scalar per row. Classification with probability support uses the max
// class probability; everything else uses the point prediction.
func signals(m Model, task TaskType, cols [][]float64, rows int) ([]float64, error) {
	out := make([]float64, rows)
	row := make([]float64, len(cols))
	for i := 0; i < rows; i++ {
		for j := range cols {
			row[j] = cols[j][i]
		}
		if task == TaskClassification {
			if probs := m.PredictProba(row); probs != nil {
				out[i] = maxValue(probs)
				continue
			}
		}
		pred, err := m.Predict(row)
		if err != nil {
			return nil, err
		}
		out[i] = pred
	}
	return out, nil
}

func maxValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
