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

func TestWeatherHandler_CityFromUtterance(t *testing.T) {
	weather := &testutil.StubWeatherProvider{}
	m := model.NewMockModel("test")
	m.AddRule("Hyderabad", "Warm and humid in Hyderabad, around 31 degrees.")
	store := session.NewInMemoryStore()

	h := NewWeatherHandler(weather, m, store)
	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "what's the weather in Hyderabad"})

	require.False(t, res.Failed())
	assert.Equal(t, "Hyderabad", res.Fields.City)
	assert.Equal(t, 1, weather.Calls())

	city, _ := store.Get("s1", core.KeyCity)
	summary, _ := store.Get("s1", core.KeyWeatherSummary)
	assert.Equal(t, "Hyderabad", city)
	assert.NotEmpty(t, summary)
}

func TestWeatherHandler_CityFromSession(t *testing.T) {
	weather := &testutil.StubWeatherProvider{}
	store := session.NewInMemoryStore()
	require.NoError(t, store.Set("s1", core.KeyCity, "Kolkata"))

	h := NewWeatherHandler(weather, model.NewMockModel("test"), store)
	// "there" is not a city; the remembered one is used instead
	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "what's the weather there"})

	require.False(t, res.Failed())
	assert.Equal(t, "Kolkata", res.Fields.City)
}

func TestWeatherHandler_MissingCityAsksBack(t *testing.T) {
	weather := &testutil.StubWeatherProvider{}
	h := NewWeatherHandler(weather, model.NewMockModel("test"), session.NewInMemoryStore())

	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "will it rain"})

	assert.True(t, res.Failed())
	assert.Equal(t, core.KindMissingContext, res.Kind)
	assert.Contains(t, res.Summary, "which city")
	assert.Zero(t, weather.Calls(), "no provider call without a city")
}

func TestWeatherHandler_ProviderFailure(t *testing.T) {
	weather := &testutil.StubWeatherProvider{Err: errors.New("api down")}
	h := NewWeatherHandler(weather, model.NewMockModel("test"), session.NewInMemoryStore())

	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "weather in Chennai"})

	assert.True(t, res.Failed())
	assert.Equal(t, core.KindProviderFailure, res.Kind)
	assert.Contains(t, res.Summary, "Chennai")
}

func TestWeatherHandler_SpellingCorrection(t *testing.T) {
	weather := &testutil.StubWeatherProvider{}
	m := model.NewMockModel("test")
	m.AddRule("Hydrabad", "Hyderabad")
	store := session.NewInMemoryStore()

	h := NewWeatherHandler(weather, m, store, func(o *WeatherOptions) {
		o.CorrectSpelling = true
	})
	res := h.Handle(context.Background(), Request{SessionID: "s1", Utterance: "weather in Hydrabad"})

	require.False(t, res.Failed())
	assert.Equal(t, "Hyderabad", res.Fields.City)
}
