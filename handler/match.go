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
	"github.com/hupe1980/matchday/team"
)

const matchSystemPrompt = `You are the Global Sports Intelligence Agent.
You MUST NOT fabricate dates, teams, venues, formats, or match info.
Use ONLY the JSON provided. If any field is missing, state "Not available".`

const matchPromptTmpl = `Team: {{.team}}

Here is the upcoming match in JSON:

{{.match_data}}

Write a clear, short human summary covering teams, date, venue, city and format.
Use ONLY the JSON provided. No extra facts.`

// MatchHandler answers match questions: the default next-match path plus the
// live-match and schedule sub-paths the router selects on finer intents.
type MatchHandler struct {
	matches provider.MatchProvider
	model   model.Model
	store   core.Store
	logger  logging.Logger
}

var _ Handler = (*MatchHandler)(nil)

// MatchOptions configure a MatchHandler.
type MatchOptions struct {
	Logger logging.Logger
}

// NewMatchHandler wires the match handler to its provider, model and store.
func NewMatchHandler(matches provider.MatchProvider, m model.Model, store core.Store, optFns ...func(o *MatchOptions)) *MatchHandler {
	opts := MatchOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &MatchHandler{matches: matches, model: m, store: store, logger: opts.Logger}
}

// Name implements Handler.
func (h *MatchHandler) Name() string { return "match" }

// resolveTeam resolves the canonical team: explicit override, then alias
// extraction from the utterance, then session context.
func (h *MatchHandler) resolveTeam(req Request) string {
	if req.Team != "" {
		return req.Team
	}
	if t, ok := team.Normalize(req.Utterance); ok {
		return t
	}
	remembered, err := h.store.Get(req.SessionID, core.KeyTeam)
	if err != nil {
		h.logger.Warn("team lookup from session failed", "session_id", req.SessionID, "error", err)
		return ""
	}
	return remembered
}

func unrecognizedTeam() core.DomainResult {
	examples := strings.Join(team.Canonical()[:4], ", ")
	return core.SoftFail(core.KindUnrecognizedTeam,
		fmt.Sprintf("I couldn't recognize that team. Try one of: %s, ...", examples))
}

// Handle implements Handler with the next-match path.
func (h *MatchHandler) Handle(ctx context.Context, req Request) core.DomainResult {
	return h.summarizeMatch(ctx, req, h.matches.NextMatch)
}

// HandleLive answers current/live match questions.
func (h *MatchHandler) HandleLive(ctx context.Context, req Request) core.DomainResult {
	return h.summarizeMatch(ctx, req, h.matches.LiveMatch)
}

func (h *MatchHandler) summarizeMatch(ctx context.Context, req Request, fetch func(context.Context, string) (*provider.Match, error)) core.DomainResult {
	teamName := h.resolveTeam(req)
	if teamName == "" {
		return unrecognizedTeam()
	}

	m, err := fetch(ctx, teamName)
	if err != nil {
		h.logger.Warn("match lookup failed", "team", teamName, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			fmt.Sprintf("Sorry, I couldn't find match information for %s right now.", teamName))
	}

	raw, _ := json.MarshalIndent(m, "", "  ")
	prompt, err := util.RenderTemplate(matchPromptTmpl, map[string]any{
		"team":       teamName,
		"match_data": string(raw),
	})
	if err != nil {
		return core.SoftFail(core.KindProviderFailure, "Something went wrong while preparing the match summary.")
	}

	summary, err := h.model.Generate(ctx, model.Request{
		System:      matchSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		h.logger.Warn("match summary generation failed", "team", teamName, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			fmt.Sprintf("Sorry, I couldn't summarize the match for %s right now.", teamName))
	}

	h.persist(req.SessionID, teamName, m.City, m.Venue, summary)

	return core.DomainResult{
		Summary: summary,
		Raw:     m,
		Fields:  core.Fields{Team: teamName, City: m.City, Venue: m.Venue},
	}
}

// HandleSchedule answers next-series/schedule questions with a deterministic
// fixture listing; no generation call is needed for tabular output.
func (h *MatchHandler) HandleSchedule(ctx context.Context, req Request) core.DomainResult {
	teamName := h.resolveTeam(req)
	if teamName == "" {
		return unrecognizedTeam()
	}

	schedule, err := h.matches.Schedule(ctx, teamName, 3)
	if err != nil || len(schedule) == 0 {
		h.logger.Warn("schedule lookup failed", "team", teamName, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			fmt.Sprintf("Sorry, I couldn't find an upcoming schedule for %s.", teamName))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Upcoming matches for %s:\n", teamName)
	for _, m := range schedule {
		fmt.Fprintf(&sb, "- %s vs %s on %s at %s, %s (%s)\n",
			m.HomeTeam, m.AwayTeam, m.Date, m.Venue, m.City, m.Format)
	}
	summary := strings.TrimRight(sb.String(), "\n")

	first := schedule[0]
	h.persist(req.SessionID, teamName, first.City, first.Venue, summary)

	return core.DomainResult{
		Summary: summary,
		Raw:     schedule,
		Fields:  core.Fields{Team: teamName, City: first.City, Venue: first.Venue},
	}
}

func (h *MatchHandler) persist(sessionID, teamName, city, venue, summary string) {
	for key, value := range map[string]string{
		core.KeyTeam:          teamName,
		core.KeyCity:          city,
		core.KeyVenue:         venue,
		core.KeySportsSummary: summary,
	} {
		if value == "" {
			continue
		}
		if err := h.store.Set(sessionID, key, value); err != nil {
			h.logger.Warn("persisting match context failed", "session_id", sessionID, "key", key, "error", err)
		}
	}
}
