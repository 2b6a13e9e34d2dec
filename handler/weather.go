package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/internal/util"
	"github.com/hupe1980/matchday/logging"
	"github.com/hupe1980/matchday/model"
	"github.com/hupe1980/matchday/provider"
)

const weatherSystemPrompt = `You are a friendly, concise meteorologist summarizing real-time weather data in a conversational tone.`

const weatherPromptTmpl = `Current weather for {{.city}} in JSON:

{{.weather_data}}

Summarize the conditions in two or three sentences, mentioning temperature,
how it feels, humidity and wind. Use ONLY the JSON provided.`

// WeatherHandler answers weather questions for a city resolved from the
// utterance, the request override or session context.
type WeatherHandler struct {
	weather provider.WeatherProvider
	model   model.Model
	store   core.Store
	logger  logging.Logger

	correctSpelling bool
}

var _ Handler = (*WeatherHandler)(nil)

// WeatherOptions configure a WeatherHandler.
type WeatherOptions struct {
	Logger logging.Logger
	// CorrectSpelling runs city names through the model once before the
	// provider call to fix obvious typos.
	CorrectSpelling bool
}

// NewWeatherHandler wires the weather handler to its provider, model and store.
func NewWeatherHandler(weather provider.WeatherProvider, m model.Model, store core.Store, optFns ...func(o *WeatherOptions)) *WeatherHandler {
	opts := WeatherOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &WeatherHandler{
		weather:         weather,
		model:           m,
		store:           store,
		logger:          opts.Logger,
		correctSpelling: opts.CorrectSpelling,
	}
}

// Name implements Handler.
func (h *WeatherHandler) Name() string { return "weather" }

// Handle implements Handler.
func (h *WeatherHandler) Handle(ctx context.Context, req Request) core.DomainResult {
	city := req.City
	if city == "" {
		city = extractPlace(weatherCityRe, req.Utterance)
	}
	if city == "" {
		city, _ = h.store.Get(req.SessionID, core.KeyCity)
	}
	if city == "" {
		return core.SoftFail(core.KindMissingContext,
			"Could you tell me which city you want the weather for?")
	}

	if h.correctSpelling {
		city = h.correctCity(ctx, city)
	}

	weather, err := h.weather.Current(ctx, city)
	if err != nil {
		h.logger.Warn("weather lookup failed", "city", city, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			fmt.Sprintf("Sorry, I couldn't find the current weather for %s.", city))
	}

	raw, _ := json.MarshalIndent(weather, "", "  ")
	prompt, err := util.RenderTemplate(weatherPromptTmpl, map[string]any{
		"city":         city,
		"weather_data": string(raw),
	})
	if err != nil {
		return core.SoftFail(core.KindProviderFailure, "Something went wrong while fetching the weather.")
	}

	summary, err := h.model.Generate(ctx, model.Request{
		System:      weatherSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   220,
	})
	if err != nil {
		h.logger.Warn("weather summary generation failed", "city", city, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			fmt.Sprintf("Sorry, I couldn't summarize the weather for %s right now.", city))
	}

	h.persist(req.SessionID, city, summary)

	return core.DomainResult{
		Summary: summary,
		Raw:     weather,
		Fields:  core.Fields{City: city},
	}
}

// correctCity asks the model to fix a misspelled city name; on any failure
// the original spelling is kept.
func (h *WeatherHandler) correctCity(ctx context.Context, city string) string {
	corrected, err := h.model.Generate(ctx, model.Request{
		Prompt: fmt.Sprintf(
			"The user entered the city %q. If it's misspelled, reply with the corrected city name. Otherwise repeat it unchanged. Respond with only the city name.",
			city),
		MaxTokens: 10,
	})
	corrected = strings.TrimSpace(corrected)
	// a usable reply is a bare city name, not a sentence
	if err != nil || corrected == "" || strings.Contains(corrected, "\n") || len(strings.Fields(corrected)) > 3 {
		return city
	}
	return titleCase(corrected)
}

func (h *WeatherHandler) persist(sessionID, city, summary string) {
	if err := h.store.Set(sessionID, core.KeyCity, city); err != nil {
		h.logger.Warn("persisting city failed", "session_id", sessionID, "error", err)
	}
	if err := h.store.Set(sessionID, core.KeyWeatherSummary, summary); err != nil {
		h.logger.Warn("persisting weather summary failed", "session_id", sessionID, "error", err)
	}
}
