package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/internal/util"
	"github.com/hupe1980/matchday/logging"
	"github.com/hupe1980/matchday/model"
	"github.com/hupe1980/matchday/provider"
)

const travelSystemPrompt = `You are a helpful travel assistant. Summarize transport data clearly in markdown format with concise tables when possible.`

const travelPromptTmpl = `Venue: {{default "Unknown Venue" .venue}}
City: {{default "Unknown City" .city}}

Transport options in JSON:

{{.travel_data}}

List the nearest options per category with distances, then recommend how to
reach the venue. Use ONLY the JSON provided.`

// TravelHandler answers how-to-reach questions for a venue/city pair.
type TravelHandler struct {
	travel provider.TravelProvider
	model  model.Model
	store  core.Store
	logger logging.Logger
}

var _ Handler = (*TravelHandler)(nil)

// TravelOptions configure a TravelHandler.
type TravelOptions struct {
	Logger logging.Logger
}

// NewTravelHandler wires the travel handler to its provider, model and store.
func NewTravelHandler(travel provider.TravelProvider, m model.Model, store core.Store, optFns ...func(o *TravelOptions)) *TravelHandler {
	opts := TravelOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &TravelHandler{travel: travel, model: m, store: store, logger: opts.Logger}
}

// Name implements Handler.
func (h *TravelHandler) Name() string { return "travel" }

// Handle implements Handler.
func (h *TravelHandler) Handle(ctx context.Context, req Request) core.DomainResult {
	city := req.City
	if city == "" {
		city = extractPlace(travelCityRe, req.Utterance)
	}
	if city == "" {
		city, _ = h.store.Get(req.SessionID, core.KeyCity)
	}

	venue := req.Venue
	if venue == "" {
		venue = extractPlace(travelVenueRe, req.Utterance)
	}
	if venue == "" {
		venue, _ = h.store.Get(req.SessionID, core.KeyVenue)
	}

	if city == "" && venue == "" {
		return core.SoftFail(core.KindMissingContext,
			"Could you tell me which city or stadium you want travel information for?")
	}

	info, err := h.travel.TravelInfo(ctx, city, venue)
	if err != nil {
		h.logger.Warn("travel lookup failed", "city", city, "venue", venue, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			fmt.Sprintf("Sorry, I couldn't find transport options around %s right now.", firstNonEmpty(venue, city)))
	}

	raw, _ := json.MarshalIndent(info, "", "  ")
	prompt, err := util.RenderTemplate(travelPromptTmpl, map[string]any{
		"city":        city,
		"venue":       venue,
		"travel_data": string(raw),
	})
	if err != nil {
		return core.SoftFail(core.KindProviderFailure, "Something went wrong while fetching travel information.")
	}

	summary, err := h.model.Generate(ctx, model.Request{
		System:      travelSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   350,
	})
	if err != nil {
		h.logger.Warn("travel summary generation failed", "city", city, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			fmt.Sprintf("Sorry, I couldn't summarize travel options for %s right now.", firstNonEmpty(venue, city)))
	}

	h.persist(req.SessionID, city, venue, summary)

	return core.DomainResult{
		Summary: summary,
		Raw:     info,
		Fields:  core.Fields{City: city, Venue: venue},
	}
}

func (h *TravelHandler) persist(sessionID, city, venue, summary string) {
	if city != "" {
		if err := h.store.Set(sessionID, core.KeyCity, city); err != nil {
			h.logger.Warn("persisting city failed", "session_id", sessionID, "error", err)
		}
	}
	if venue != "" {
		if err := h.store.Set(sessionID, core.KeyVenue, venue); err != nil {
			h.logger.Warn("persisting venue failed", "session_id", sessionID, "error", err)
		}
	}
	if err := h.store.Set(sessionID, core.KeyTravelSummary, summary); err != nil {
		h.logger.Warn("persisting travel summary failed", "session_id", sessionID, "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return "your destination"
}
