package engine

// TaskType tells the signal function how to interpret model output.
type TaskType string

const (
	TaskClassification TaskType = "classification"
	TaskRegression     TaskType = "regression"
)

// Model is the read-only boundary to a trained model. Capabilities are
// fixed at construction: PredictProba, Importances and Coefficients return
// nil when the model does not support them. Predict must always work; a
// model unable to produce any output violates the caller contract and its
// error is propagated.
type Model interface {
	Predict(row []float64) (float64, error)
	PredictProba(row []float64) []float64
	Importances() []float64
	Coefficients() [][]float64
}
