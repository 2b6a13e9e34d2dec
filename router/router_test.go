package router

import (
	"context"
	"testing"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/fusion"
	"github.com/hupe1980/matchday/handler"
	"github.com/hupe1980/matchday/intent"
	"github.com/hupe1980/matchday/internal/testutil"
	"github.com/hupe1980/matchday/model"
	"github.com/hupe1980/matchday/provider"
	"github.com/hupe1980/matchday/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		intent core.Intent
		want   Target
	}{
		{core.IntentChitchat, TargetChitchat},
		{core.IntentCurrentMatch, TargetLive},
		{core.IntentNextMatch, TargetMatch},
		{core.IntentMatchInfo, TargetMatch},
		{core.IntentNextSeries, TargetSchedule},
		{core.IntentScheduleMatch, TargetSchedule},
		{core.IntentCityInfo, TargetCity},
		{core.IntentWeatherInfo, TargetWeather},
		{core.IntentTravelInfo, TargetTravel},
		{core.IntentFusionSummary, TargetFusion},
		{core.IntentMatchSummary, TargetFusion},
		{core.IntentUnknown, TargetFusion},
		{core.Intent("made_up"), TargetFusion},
	}
	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.intent))
		})
	}
}

type routerFixture struct {
	matches *testutil.StubMatchProvider
	weather *testutil.StubWeatherProvider
	cities  *testutil.StubCityProvider
	travel  *testutil.StubTravelProvider
	model   *model.MockModel
	store   *session.InMemoryStore
	router  *Router
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	match := testutil.TestMatch
	f := &routerFixture{
		matches: &testutil.StubMatchProvider{Match: &match, ScheduleMatches: []provider.Match{match}},
		weather: &testutil.StubWeatherProvider{},
		cities:  &testutil.StubCityProvider{},
		travel:  &testutil.StubTravelProvider{},
		model:   model.NewMockModel("test"),
		store:   session.NewInMemoryStore(),
	}

	matchHandler := handler.NewMatchHandler(f.matches, f.model, f.store)
	weatherHandler := handler.NewWeatherHandler(f.weather, f.model, f.store)
	cityHandler := handler.NewCityHandler(f.cities, f.model, f.store)
	travelHandler := handler.NewTravelHandler(f.travel, f.model, f.store)

	agg := fusion.New(f.matches, []handler.Handler{matchHandler, weatherHandler, cityHandler, travelHandler}, f.model, f.store)

	f.router = New(intent.NewRuleClassifier(), matchHandler, cityHandler, weatherHandler, travelHandler, agg)
	return f
}

func TestRouter_Dispatch_TraceStates(t *testing.T) {
	f := newRouterFixture(t)

	turn := f.router.Dispatch(context.Background(), "s1", "hello")

	assert.Equal(t, []State{StateStart, StateClassified, StateDispatched, StateDone}, turn.Trace)
	assert.Equal(t, core.IntentChitchat, turn.Intent)
	assert.Equal(t, TargetChitchat, turn.Target)
}

func TestRouter_Dispatch_ChitchatTouchesNothing(t *testing.T) {
	f := newRouterFixture(t)

	turn := f.router.Dispatch(context.Background(), "s1", "hi there!")

	assert.Equal(t, "Hey! How can I help you today?", turn.Result.Summary)
	assert.Zero(t, f.matches.Calls())
	assert.Zero(t, f.weather.Calls())
	assert.Zero(t, f.cities.Calls())
	assert.Zero(t, f.travel.Calls())
	assert.Empty(t, f.model.Calls())

	m, err := f.store.GetAll("s1")
	require.NoError(t, err)
	assert.Empty(t, m, "chitchat leaves the session untouched")
}

func TestRouter_Dispatch_WeatherThenTravelRoundTrip(t *testing.T) {
	f := newRouterFixture(t)

	// first turn resolves and remembers the city
	turn := f.router.Dispatch(context.Background(), "s1", "what's the weather in Hyderabad")
	require.False(t, turn.Result.Failed())
	assert.Equal(t, TargetWeather, turn.Target)

	// follow-up has no city of its own; the stored one carries over
	turn = f.router.Dispatch(context.Background(), "s1", "how do I reach the stadium")
	require.False(t, turn.Result.Failed())
	assert.Equal(t, TargetTravel, turn.Target)
	assert.Equal(t, "Hyderabad", turn.Result.Fields.City)
}

func TestRouter_Dispatch_SchedulePersistsForFollowUp(t *testing.T) {
	f := newRouterFixture(t)

	turn := f.router.Dispatch(context.Background(), "s1", "next match for India")
	require.False(t, turn.Result.Failed())
	assert.Equal(t, TargetSchedule, turn.Target)

	// "weather there" now resolves against the fixture's host city
	turn = f.router.Dispatch(context.Background(), "s1", "what's the weather there")
	require.False(t, turn.Result.Failed())
	assert.Equal(t, "Kolkata", turn.Result.Fields.City)
}

func TestRouter_Dispatch_LiveGoesToLivePath(t *testing.T) {
	f := newRouterFixture(t)

	turn := f.router.Dispatch(context.Background(), "s1", "live score for India")

	require.False(t, turn.Result.Failed())
	assert.Equal(t, TargetLive, turn.Target)
	assert.Equal(t, 1, f.matches.LiveCalls)
	assert.Zero(t, f.matches.NextCalls)
}

func TestRouter_Dispatch_UnknownFallsToFusion(t *testing.T) {
	f := newRouterFixture(t)

	turn := f.router.Dispatch(context.Background(), "s1", "tell me everything about India's trip")

	assert.Equal(t, TargetFusion, turn.Target)
	require.False(t, turn.Result.Failed())
	raw, ok := turn.Result.Raw.(fusion.Result)
	require.True(t, ok)
	assert.Equal(t, "India", raw.Team)
}

func TestCannedReply(t *testing.T) {
	assert.Equal(t, "I'm doing great! What's up?", cannedReply("hey, how are you?"))
	assert.Equal(t, "Hey! How can I help you today?", cannedReply("Hello!"))
	assert.Equal(t, "Hi! Need match info, weather, or travel guidance?", cannedReply("thanks"))
}
