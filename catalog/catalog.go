// Package catalog holds the static registry of explainers and metrics and
// which model families each explainer supports. The registry is advisory:
// evaluation itself accepts any key and falls back permissively.
package catalog

type ExplainerItem struct {
	Key                 string   `json:"key"`
	Label               string   `json:"label"`
	Description         string   `json:"description"`
	SupportedModelTypes []string `json:"supported_model_types"`
}

type MetricItem struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var explainers = []ExplainerItem{
	{
		Key:                 "lime",
		Label:               "LIME",
		Description:         "Local surrogate explanations for single predictions.",
		SupportedModelTypes: []string{"random_forest", "logistic_regression", "linear_regression", "any"},
	},
	{
		Key:                 "shap",
		Label:               "KernelSHAP",
		Description:         "Model-agnostic Shapley approximation for feature effects.",
		SupportedModelTypes: []string{"random_forest", "logistic_regression", "linear_regression", "any"},
	},
	{
		Key:                 "treeshap",
		Label:               "TreeSHAP",
		Description:         "Fast SHAP variant specialized for tree-based models.",
		SupportedModelTypes: []string{"random_forest"},
	},
}

var metrics = []MetricItem{
	{
		Key:         "comprehensiveness",
		Label:       "Comprehensiveness",
		Description: "Prediction drop after removing top-ranked features.",
	},
	{
		Key:         "sufficiency",
		Label:       "Sufficiency",
		Description: "Prediction retained when keeping top-ranked features only.",
	},
	{
		Key:         "faithfulness_correlation",
		Label:       "Faithfulness Correlation",
		Description: "Correlation between attribution ranks and perturbation impacts.",
	},
}

func Explainers() []ExplainerItem {
	return append([]ExplainerItem(nil), explainers...)
}

func Metrics() []MetricItem {
	return append([]MetricItem(nil), metrics...)
}

// CompatibleExplainers filters the registry by model type; the "any"
// wildcard matches every type.
func CompatibleExplainers(modelType string) []ExplainerItem {
	out := make([]ExplainerItem, 0, len(explainers))
	for _, item := range explainers {
		for _, supported := range item.SupportedModelTypes {
			if supported == "any" || supported == modelType {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
