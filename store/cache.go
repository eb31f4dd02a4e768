package store

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ScoreCache memoizes evaluation scores. Evaluation is deterministic for a
// given (dataset, model, explainer, metric) tuple, so a hit is always
// valid until the model is retrained.
type ScoreCache struct {
	cache *lru.Cache[string, float64]
}

func NewScoreCache(size int) (*ScoreCache, error) {
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return nil, err
	}
	return &ScoreCache{cache: cache}, nil
}

func scoreKey(datasetID, modelID, explainer, metric string) string {
	return datasetID + "|" + modelID + "|" + explainer + "|" + metric
}

func (c *ScoreCache) Get(datasetID, modelID, explainer, metric string) (float64, bool) {
	return c.cache.Get(scoreKey(datasetID, modelID, explainer, metric))
}

func (c *ScoreCache) Put(datasetID, modelID, explainer, metric string, score float64) {
	c.cache.Add(scoreKey(datasetID, modelID, explainer, metric), score)
}

// Purge drops every cached score.
func (c *ScoreCache) Purge() {
	c.cache.Purge()
}

// InvalidateModel drops every cached score for one model.
func (c *ScoreCache) InvalidateModel(modelID string) {
	needle := "|" + modelID + "|"
	for _, key := range c.cache.Keys() {
		if strings.Contains(key, needle) {
			c.cache.Remove(key)
		}
	}
}
