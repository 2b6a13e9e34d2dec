package handler

import (
	"context"
	"fmt"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/internal/util"
	"github.com/hupe1980/matchday/logging"
	"github.com/hupe1980/matchday/model"
	"github.com/hupe1980/matchday/provider"
)

const citySystemPrompt = `You are a professional travel guide for sports fans visiting a host city.
Be friendly and factual; do not invent landmarks that are not in the data.`

const cityPromptTmpl = `Give a helpful summary for the city {{.city}}{{if .venue}} and the venue {{.venue}}{{end}}.

Include:
- cultural or historical highlights
- important places or attractions
- travel tips

DATA:
{{.data}}`

// CityHandler answers city/venue background questions.
type CityHandler struct {
	cities provider.CityProvider
	model  model.Model
	store  core.Store
	logger logging.Logger
}

var _ Handler = (*CityHandler)(nil)

// CityOptions configure a CityHandler.
type CityOptions struct {
	Logger logging.Logger
}

// NewCityHandler wires the city handler to its provider, model and store.
func NewCityHandler(cities provider.CityProvider, m model.Model, store core.Store, optFns ...func(o *CityOptions)) *CityHandler {
	opts := CityOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &CityHandler{cities: cities, model: m, store: store, logger: opts.Logger}
}

// Name implements Handler.
func (h *CityHandler) Name() string { return "city" }

// Handle implements Handler.
func (h *CityHandler) Handle(ctx context.Context, req Request) core.DomainResult {
	city := req.City
	if city == "" {
		city = extractPlace(cityTopicRe, req.Utterance)
	}
	if city == "" {
		city, _ = h.store.Get(req.SessionID, core.KeyCity)
	}
	if city == "" {
		return core.SoftFail(core.KindMissingContext, "Which city do you want to explore?")
	}

	venue := req.Venue
	if venue == "" {
		venue, _ = h.store.Get(req.SessionID, core.KeyVenue)
	}

	info, err := h.cities.CityInfo(ctx, city, venue)
	if err != nil {
		h.logger.Warn("city lookup failed", "city", city, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			fmt.Sprintf("Sorry, I couldn't find background information for %s.", city))
	}

	data := info.CitySummary
	if info.TouristInfo != "" {
		data += "\n\n" + info.TouristInfo
	}
	if info.VenueSummary != "" {
		data += "\n\nVenue: " + info.VenueSummary
	}

	prompt, err := util.RenderTemplate(cityPromptTmpl, map[string]any{
		"city":  city,
		"venue": venue,
		"data":  data,
	})
	if err != nil {
		return core.SoftFail(core.KindProviderFailure, "Something went wrong while preparing the city guide.")
	}

	summary, err := h.model.Generate(ctx, model.Request{
		System:      citySystemPrompt,
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   500,
	})
	if err != nil {
		h.logger.Warn("city summary generation failed", "city", city, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			fmt.Sprintf("Sorry, I couldn't put together a guide for %s right now.", city))
	}

	h.persist(req.SessionID, city, venue, summary)

	return core.DomainResult{
		Summary: summary,
		Raw:     info,
		Fields:  core.Fields{City: city, Venue: venue},
	}
}

func (h *CityHandler) persist(sessionID, city, venue, summary string) {
	if err := h.store.Set(sessionID, core.KeyCity, city); err != nil {
		h.logger.Warn("persisting city failed", "session_id", sessionID, "error", err)
	}
	if venue != "" {
		if err := h.store.Set(sessionID, core.KeyVenue, venue); err != nil {
			h.logger.Warn("persisting venue failed", "session_id", sessionID, "error", err)
		}
	}
	if err := h.store.Set(sessionID, core.KeyCitySummary, summary); err != nil {
		h.logger.Warn("persisting city summary failed", "session_id", sessionID, "error", err)
	}
}
