package risk

import "context"

// Scorer is the boundary to the classification model. Implementations may
// shell out to a model runtime, call an in-process model, or reach a remote
// inference service; the orchestrator only depends on this interface.
type Scorer interface {
	Score(ctx context.Context, features FeatureVector) (*PredictionResult, error)
}
