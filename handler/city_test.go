package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/internal/testutil"
	"github.com/hupe1980/matchday/model"
	"github.com/hupe1980/matchday/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityHandler_CityFromUtterance(t *testing.T) {
	cities := &testutil.StubCityProvider{}
	m := model.NewMockModel("test")
	m.AddRule("Kolkata", "Kolkata is known for its colonial architecture and street food.")
	store := session.NewInMemoryStore()

	h := NewCityHandler(cities, m, store)
	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "tell me about Kolkata"})

	require.False(t, res.Failed())
	assert.Equal(t, "Kolkata", res.Fields.City)
	assert.Equal(t, 1, cities.Calls())

	city, _ := store.Get("s1", core.KeyCity)
	summary, _ := store.Get("s1", core.KeyCitySummary)
	assert.Equal(t, "Kolkata", city)
	assert.NotEmpty(t, summary)
}

func TestCityHandler_VenueFromSession(t *testing.T) {
	cities := &testutil.StubCityProvider{}
	store := session.NewInMemoryStore()
	require.NoError(t, store.Set("s1", core.KeyCity, "Kolkata"))
	require.NoError(t, store.Set("s1", core.KeyVenue, "Eden Gardens"))

	h := NewCityHandler(cities, model.NewMockModel("test"), store)
	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "what is the city like"})

	require.False(t, res.Failed())
	assert.Equal(t, "Kolkata", res.Fields.City)
	assert.Equal(t, "Eden Gardens", res.Fields.Venue)
}

func TestCityHandler_MissingCityAsksBack(t *testing.T) {
	cities := &testutil.StubCityProvider{}
	h := NewCityHandler(cities, model.NewMockModel("test"), session.NewInMemoryStore())

	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "what is the city like"})

	assert.True(t, res.Failed())
	assert.Equal(t, core.KindMissingContext, res.Kind)
	assert.Zero(t, cities.Calls())
}

func TestCityHandler_ProviderFailure(t *testing.T) {
	cities := &testutil.StubCityProvider{Err: errors.New("wiki timeout")}
	h := NewCityHandler(cities, model.NewMockModel("test"), session.NewInMemoryStore())

	res := h.Handle(context.Background(), Request{SessionID: "s1", City: "Mumbai"})

	assert.True(t, res.Failed())
	assert.Equal(t, core.KindProviderFailure, res.Kind)
	assert.Contains(t, res.Summary, "Mumbai")
}
