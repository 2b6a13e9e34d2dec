package intent

import (
	"context"
	"testing"

	"github.com/hupe1980/matchday/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleClassifier_Classify(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      core.Intent
	}{
		{"live cue", "who is playing live", core.IntentCurrentMatch},
		{"current cue", "current match score please", core.IntentCurrentMatch},
		{"right now phrase", "is india playing right now", core.IntentCurrentMatch},
		{"next beats match", "next match for India", core.IntentNextSeries},
		{"schedule", "show me the schedule", core.IntentNextSeries},
		{"upcoming", "any upcoming games for pakistan", core.IntentNextSeries},
		{"match", "where is the match", core.IntentMatchInfo},
		{"venue", "which venue", core.IntentMatchInfo},
		{"weather word", "weather in Hyderabad", core.IntentWeatherInfo},
		{"rain", "will it rain there", core.IntentWeatherInfo},
		{"travel", "how do I reach the stadium", core.IntentTravelInfo},
		{"airport", "nearest airport to the venue", core.IntentTravelInfo},
		{"city", "tell me about the city", core.IntentCityInfo},
		{"things to do", "things to do near the ground", core.IntentCityInfo},
		{"summary phrase", "give me a full summary", core.IntentMatchSummary},
		{"greeting", "hi", core.IntentChitchat},
		{"how are you", "how are you", core.IntentChitchat},
		{"no rule", "tell me something", core.IntentUnknown},
		{"empty", "", core.IntentUnknown},
	}
	c := NewRuleClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Classify(context.Background(), tt.utterance)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleClassifier_WordBoundaries(t *testing.T) {
	c := NewRuleClassifier()

	// "hi" inside "Hyderabad" must not read as a greeting, and the weather
	// keyword has to win over any place-name noise.
	got, err := c.Classify(context.Background(), "weather in Hyderabad")
	require.NoError(t, err)
	assert.Equal(t, core.IntentWeatherInfo, got)

	// "bus" inside "business" must not trigger travel.
	got, err = c.Classify(context.Background(), "business hours of the museum")
	require.NoError(t, err)
	assert.Equal(t, core.IntentUnknown, got)
}

func TestRuleClassifier_TemporalOverride(t *testing.T) {
	c := NewRuleClassifier()

	intent, ok := c.TemporalOverride("is the match live")
	assert.True(t, ok)
	assert.Equal(t, core.IntentCurrentMatch, intent)

	intent, ok = c.TemporalOverride("upcoming fixtures for England")
	assert.True(t, ok)
	assert.Equal(t, core.IntentNextSeries, intent)

	// topical words alone never trigger the override
	_, ok = c.TemporalOverride("weather in Chennai")
	assert.False(t, ok)
	_, ok = c.TemporalOverride("where is the match")
	assert.False(t, ok)
}
