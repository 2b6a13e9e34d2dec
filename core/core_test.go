package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentKnown(t *testing.T) {
	assert.True(t, IntentWeatherInfo.Known())
	assert.True(t, IntentFusionSummary.Known())
	assert.False(t, IntentUnknown.Known())
	assert.False(t, Intent("sunny_vibes").Known())
}

func TestDomainResultFailed(t *testing.T) {
	ok := DomainResult{Summary: "all good"}
	assert.False(t, ok.Failed())

	failed := SoftFail(KindMissingContext, "which city?")
	assert.True(t, failed.Failed())
	assert.Equal(t, KindMissingContext, failed.Kind)
	assert.Equal(t, "which city?", failed.Summary)
}
