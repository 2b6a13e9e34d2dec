package intent

import (
	"context"
	"strings"

	"github.com/hupe1980/matchday/core"
)

// rule associates an intent with trigger words (matched on word boundaries)
// and trigger phrases (matched as substrings).
type rule struct {
	intent  core.Intent
	words   []string
	phrases []string
}

// rules is evaluated top to bottom; the first match wins. Liveness and
// scheduling cues come first because temporal words are a stronger signal
// than topic words appearing in the same query.
var rules = []rule{
	{
		intent:  core.IntentCurrentMatch,
		words:   []string{"live", "current"},
		phrases: []string{"right now", "playing now", "today match", "today's match"},
	},
	{
		intent: core.IntentNextSeries,
		words:  []string{"next", "upcoming", "future", "fixtures", "schedule"},
	},
	{
		intent: core.IntentMatchInfo,
		words:  []string{"match", "game", "play", "score", "venue"},
	},
	{
		intent: core.IntentWeatherInfo,
		words:  []string{"weather", "rain", "temp", "temperature", "forecast", "humid"},
	},
	{
		intent: core.IntentTravelInfo,
		words:  []string{"travel", "bus", "airport", "train", "distance", "transport", "reach"},
	},
	{
		intent:  core.IntentCityInfo,
		words:   []string{"city", "place", "restaurant", "attractions"},
		phrases: []string{"things to do"},
	},
	{
		intent:  core.IntentMatchSummary,
		phrases: []string{"match summary", "summary of", "summarize match", "full summary"},
	},
	{
		intent:  core.IntentChitchat,
		words:   []string{"hi", "hello", "hey", "yo"},
		phrases: []string{"how are you", "what's up"},
	},
}

// RuleClassifier is the deterministic keyword tier. It never errors; an
// utterance matching no rule classifies as IntentUnknown.
type RuleClassifier struct{}

var _ Classifier = (*RuleClassifier)(nil)

// NewRuleClassifier constructs the keyword tier.
func NewRuleClassifier() *RuleClassifier { return &RuleClassifier{} }

// Classify implements Classifier.
func (c *RuleClassifier) Classify(_ context.Context, utterance string) (core.Intent, error) {
	q := strings.ToLower(utterance)
	words := wordSet(q)
	for _, r := range rules {
		if r.matches(q, words) {
			return r.intent, nil
		}
	}
	return core.IntentUnknown, nil
}

// TemporalOverride checks only the liveness/schedule tiers. It is applied
// before and after the primary classifier: these cues take precedence over
// whatever the generative tier returns.
func (c *RuleClassifier) TemporalOverride(utterance string) (core.Intent, bool) {
	q := strings.ToLower(utterance)
	words := wordSet(q)
	for _, r := range rules[:2] {
		if r.matches(q, words) {
			return r.intent, true
		}
	}
	return core.IntentUnknown, false
}

func (r rule) matches(q string, words map[string]bool) bool {
	for _, w := range r.words {
		if words[w] {
			return true
		}
	}
	for _, p := range r.phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

// wordSet tokenizes on non-letter boundaries so short keywords like "hi"
// cannot fire from inside longer words.
func wordSet(q string) map[string]bool {
	set := map[string]bool{}
	word := strings.Builder{}
	flush := func() {
		if word.Len() > 0 {
			set[word.String()] = true
			word.Reset()
		}
	}
	for _, r := range q {
		if (r >= 'a' && r <= 'z') || r == '\'' {
			word.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return set
}
