// Package intent classifies free-text utterances into symbolic intents using
// a two-tier scheme: a deterministic keyword rule tier and a model-backed
// primary tier, composed by Tiered with explicit precedence. Both tiers are
// independently testable without a live generation service.
package intent

import (
	"context"

	"github.com/hupe1980/matchday/core"
)

// Classifier maps an utterance to an intent.
type Classifier interface {
	Classify(ctx context.Context, utterance string) (core.Intent, error)
}
