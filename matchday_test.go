package matchday

import (
	"context"
	"testing"

	"github.com/hupe1980/matchday/config"
	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/internal/testutil"
	"github.com/hupe1980/matchday/model"
	"github.com/hupe1980/matchday/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatchday(t *testing.T) (*Matchday, *testutil.StubMatchProvider) {
	t.Helper()
	cfg := config.Default()
	cfg.Session.Backend = "memory"

	match := testutil.TestMatch
	matches := &testutil.StubMatchProvider{Match: &match}

	md, err := New(cfg, func(o *Options) {
		o.Model = model.NewMockModel("test")
		o.Matches = matches
		o.Weather = &testutil.StubWeatherProvider{}
		o.Cities = &testutil.StubCityProvider{}
		o.Travel = &testutil.StubTravelProvider{}
	})
	require.NoError(t, err)
	return md, matches
}

func TestNew_DispatchEndToEnd(t *testing.T) {
	md, _ := newTestMatchday(t)

	turn := md.Dispatch(context.Background(), "s1", "live score for India")
	require.False(t, turn.Result.Failed())
	assert.Equal(t, core.IntentCurrentMatch, turn.Intent)
	assert.Equal(t, router.TargetLive, turn.Target)

	// the resolved location carries over into the next turn
	turn = md.Dispatch(context.Background(), "s1", "what's the weather there")
	require.False(t, turn.Result.Failed())
	assert.Equal(t, "Kolkata", turn.Result.Fields.City)
}

func TestNew_UnknownBackendsRejected(t *testing.T) {
	cfg := config.Default()
	cfg.Session.Backend = "redis"
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Session.Backend = "memory"
	cfg.Model.Provider = "llama"
	_, err = New(cfg)
	assert.Error(t, err)
}
