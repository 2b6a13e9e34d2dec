package intent

import (
	"context"
	"strings"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/model"
)

// classifySystemPrompt instructs the generation service to answer with
// exactly one bare intent keyword.
const classifySystemPrompt = `You are a friendly sports conversation assistant that classifies user intent.
Your job is to understand what the user means, even if they speak casually.

Available intents:
1. match_info - questions about matches, teams, players, dates, or venues.
2. city_info - questions about the city, local attractions, or nearby places.
3. weather_info - questions about temperature, rain, or match-day weather.
4. travel_info - questions about transport, distance, or how to reach a venue.
5. fusion_summary - when the user asks for a full report, summary, or combined view.
6. chitchat - greetings, jokes, or casual talk unrelated to sports.

Output rules:
- Respond with only one of these exact intents.
- Never explain or add text, just output the intent keyword.`

// ModelClassifier is the primary, generative tier. It asks the model for a
// single intent keyword at low temperature and sanitizes the reply down to
// letters and underscores.
type ModelClassifier struct {
	model model.Model
}

var _ Classifier = (*ModelClassifier)(nil)

// NewModelClassifier constructs the generative tier around a model handle.
func NewModelClassifier(m model.Model) *ModelClassifier {
	return &ModelClassifier{model: m}
}

// Classify implements Classifier. The returned intent may be outside the
// known set; callers decide how to treat unrecognized output.
func (c *ModelClassifier) Classify(ctx context.Context, utterance string) (core.Intent, error) {
	reply, err := c.model.Generate(ctx, model.Request{
		System:      classifySystemPrompt,
		Prompt:      strings.TrimSpace(utterance),
		Temperature: 0.2,
		MaxTokens:   15,
	})
	if err != nil {
		return core.IntentUnknown, err
	}
	return core.Intent(sanitize(reply)), nil
}

// sanitize lowercases and strips everything but letters and underscores so
// stray punctuation or quoting from the model cannot leak into the intent.
func sanitize(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || r == '_' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
