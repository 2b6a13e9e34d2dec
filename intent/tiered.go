package intent

import (
	"context"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/logging"
)

// Tiered composes the rule tier and a primary classifier with explicit
// precedence:
//
//  1. Temporal/liveness keyword cues (live → current_match, next/schedule →
//     next_series) win outright; they are more reliable than the generative
//     tier for this distinction.
//  2. Otherwise the primary classifier's output is used when it is a known
//     intent.
//  3. Unrecognized primary output falls back to the full keyword table.
//  4. Still nothing → fusion_summary.
//
// A primary-tier error never fails the turn: classification defaults to
// fusion_summary.
type Tiered struct {
	primary Classifier
	rules   *RuleClassifier
	logger  logging.Logger
}

var _ Classifier = (*Tiered)(nil)

// TieredOptions configure a Tiered classifier.
type TieredOptions struct {
	Logger logging.Logger
}

// NewTiered builds the two-tier classifier around a primary tier.
func NewTiered(primary Classifier, optFns ...func(o *TieredOptions)) *Tiered {
	opts := TieredOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Tiered{primary: primary, rules: NewRuleClassifier(), logger: opts.Logger}
}

// Classify implements Classifier and never returns an error.
func (t *Tiered) Classify(ctx context.Context, utterance string) (core.Intent, error) {
	if intent, ok := t.rules.TemporalOverride(utterance); ok {
		return intent, nil
	}

	primary, err := t.primary.Classify(ctx, utterance)
	if err != nil {
		t.logger.Warn("primary intent classification failed, defaulting to fusion", "error", err)
		return core.IntentFusionSummary, nil
	}
	if primary.Known() {
		return primary, nil
	}

	fallback, _ := t.rules.Classify(ctx, utterance)
	if fallback != core.IntentUnknown {
		return fallback, nil
	}

	t.logger.Warn("unknown intent, defaulting to fusion", "utterance", utterance)
	return core.IntentFusionSummary, nil
}
