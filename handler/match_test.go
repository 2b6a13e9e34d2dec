package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/internal/testutil"
	"github.com/hupe1980/matchday/model"
	"github.com/hupe1980/matchday/provider"
	"github.com/hupe1980/matchday/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchHandler_Handle(t *testing.T) {
	match := testutil.TestMatch
	matches := &testutil.StubMatchProvider{Match: &match}
	m := model.NewMockModel("test")
	m.AddRule("India", "India face Australia at Eden Gardens on 12 September.")
	store := session.NewInMemoryStore()

	h := NewMatchHandler(matches, m, store)
	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "match for India"})

	require.False(t, res.Failed())
	assert.Equal(t, "India face Australia at Eden Gardens on 12 September.", res.Summary)
	assert.Equal(t, core.Fields{Team: "India", City: "Kolkata", Venue: "Eden Gardens"}, res.Fields)
	assert.Equal(t, 1, matches.NextCalls)

	// resolved entities and summary are persisted for later turns
	team, _ := store.Get("s1", core.KeyTeam)
	city, _ := store.Get("s1", core.KeyCity)
	venue, _ := store.Get("s1", core.KeyVenue)
	summary, _ := store.Get("s1", core.KeySportsSummary)
	assert.Equal(t, "India", team)
	assert.Equal(t, "Kolkata", city)
	assert.Equal(t, "Eden Gardens", venue)
	assert.NotEmpty(t, summary)
}

func TestMatchHandler_TeamFromSession(t *testing.T) {
	match := testutil.TestMatch
	matches := &testutil.StubMatchProvider{Match: &match}
	store := session.NewInMemoryStore()
	require.NoError(t, store.Set("s1", core.KeyTeam, "India"))

	h := NewMatchHandler(matches, model.NewMockModel("test"), store)
	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "when is the game"})

	assert.False(t, res.Failed())
	assert.Equal(t, "India", res.Fields.Team)
}

func TestMatchHandler_UnrecognizedTeam(t *testing.T) {
	matches := &testutil.StubMatchProvider{}
	h := NewMatchHandler(matches, model.NewMockModel("test"), session.NewInMemoryStore())

	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "when is the game"})

	assert.True(t, res.Failed())
	assert.Equal(t, core.KindUnrecognizedTeam, res.Kind)
	assert.Contains(t, res.Summary, "couldn't recognize that team")
	assert.Zero(t, matches.Calls(), "no provider call without a team")
}

func TestMatchHandler_ProviderFailure(t *testing.T) {
	matches := &testutil.StubMatchProvider{Err: errors.New("upstream 500")}
	store := session.NewInMemoryStore()

	h := NewMatchHandler(matches, model.NewMockModel("test"), store)
	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "next game for Australia"})

	assert.True(t, res.Failed())
	assert.Equal(t, core.KindProviderFailure, res.Kind)
	assert.Contains(t, res.Summary, "Australia")

	// nothing persisted on failure
	team, _ := store.Get("s1", core.KeyTeam)
	assert.Equal(t, "", team)
}

func TestMatchHandler_HandleLive(t *testing.T) {
	match := testutil.TestMatch
	match.Status = "1st Innings"
	matches := &testutil.StubMatchProvider{Match: &match}

	h := NewMatchHandler(matches, model.NewMockModel("test"), session.NewInMemoryStore())
	res := h.HandleLive(context.Background(), Request{SessionID: "s1", Utterance: "live score for India"})

	assert.False(t, res.Failed())
	assert.Equal(t, 1, matches.LiveCalls)
	assert.Zero(t, matches.NextCalls)
}

func TestMatchHandler_HandleSchedule(t *testing.T) {
	matches := &testutil.StubMatchProvider{
		ScheduleMatches: []provider.Match{
			testutil.TestMatch,
			{HomeTeam: "India", AwayTeam: "England", Date: "2026-09-20T09:00:00Z", Venue: "Lord's", City: "London", Format: "Test"},
		},
	}
	m := model.NewMockModel("test")
	store := session.NewInMemoryStore()

	h := NewMatchHandler(matches, m, store)
	res := h.HandleSchedule(context.Background(), Request{SessionID: "s1", Utterance: "next match for India"})

	require.False(t, res.Failed())
	assert.Contains(t, res.Summary, "Upcoming matches for India")
	assert.Contains(t, res.Summary, "Eden Gardens")
	assert.Contains(t, res.Summary, "Lord's")
	assert.Empty(t, m.Calls(), "schedule listing is deterministic, no generation call")

	// first fixture's location is remembered for follow-up questions
	city, _ := store.Get("s1", core.KeyCity)
	venue, _ := store.Get("s1", core.KeyVenue)
	assert.Equal(t, "Kolkata", city)
	assert.Equal(t, "Eden Gardens", venue)
}

func TestMatchHandler_HandleSchedule_Empty(t *testing.T) {
	matches := &testutil.StubMatchProvider{}
	h := NewMatchHandler(matches, model.NewMockModel("test"), session.NewInMemoryStore())

	res := h.HandleSchedule(context.Background(), Request{SessionID: "s1", Utterance: "fixtures for Nepal"})

	assert.True(t, res.Failed())
	assert.Equal(t, core.KindProviderFailure, res.Kind)
}
