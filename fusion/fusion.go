// Package fusion implements the aggregation path: it resolves the subject
// team, anchors on the team's next match to derive city and venue, fans out
// to all four domain handlers concurrently, and synthesizes one narrative
// answer from the merged session context.
package fusion

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/handler"
	"github.com/hupe1980/matchday/logging"
	"github.com/hupe1980/matchday/model"
	"github.com/hupe1980/matchday/provider"
	"github.com/hupe1980/matchday/team"
)

const fusionSystemPrompt = `You are an expert AI travel and sports assistant.
Using the context below, write a detailed yet natural report covering:
- Match overview (teams, venue, date)
- City background and highlights
- Weather and comfort tips
- Travel accessibility and recommended transport
Close with a friendly tourist suggestion. Use ONLY the supplied context;
if a section has no data, say so briefly instead of inventing facts.`

const defaultBranchTimeout = 30 * time.Second

// Result carries the fusion-specific detail alongside the narrative answer.
type Result struct {
	Team        string            `json:"team"`
	Match       *provider.Match   `json:"match_info"`
	Mode        string            `json:"mode"` // CONTEXT or FRESH
	ContextUsed []string          `json:"context_used"`
	Branches    map[string]string `json:"branches"` // handler name -> error kind or "ok"
}

// Aggregator owns the fan-out/fan-in across the domain handlers. Each branch
// runs under its own timeout and soft failures are collected, not fatal: a
// slow or failing branch costs one section of the report, never the turn.
type Aggregator struct {
	matches  provider.MatchProvider
	handlers []handler.Handler
	model    model.Model
	store    core.Store
	logger   logging.Logger

	branchTimeout time.Duration
}

// Options configure an Aggregator.
type Options struct {
	Logger logging.Logger
	// BranchTimeout bounds each concurrent handler invocation.
	BranchTimeout time.Duration
}

// New wires the aggregator to the anchor match provider, the four domain
// handlers, the generation model and the session store.
func New(matches provider.MatchProvider, handlers []handler.Handler, m model.Model, store core.Store, optFns ...func(o *Options)) *Aggregator {
	opts := Options{Logger: logging.NoOpLogger{}, BranchTimeout: defaultBranchTimeout}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Aggregator{
		matches:       matches,
		handlers:      handlers,
		model:         m,
		store:         store,
		logger:        opts.Logger,
		branchTimeout: opts.BranchTimeout,
	}
}

// Run executes one fusion turn. Terminal soft failures (no team, no anchor
// match) are returned before any handler fan-out happens.
func (a *Aggregator) Run(ctx context.Context, sessionID, utterance string) core.DomainResult {
	contextData, err := a.store.GetAll(sessionID)
	if err != nil {
		a.logger.Warn("loading session context failed", "session_id", sessionID, "error", err)
		contextData = map[string]string{}
	}

	// Subject resolution: utterance first, then remembered team.
	teamName, ok := team.Normalize(utterance)
	if !ok {
		teamName = contextData[core.KeyTeam]
	}
	if teamName == "" {
		return core.SoftFail(core.KindNoTeamDetected,
			"I couldn't tell which team you mean. Try asking about a specific team, e.g., \"next match for Bangladesh\".")
	}

	// Anchor fact: the next match fixes city and venue for every branch.
	// Failure here is fatal for the turn; no domain handlers are invoked.
	anchor, err := a.matches.NextMatch(ctx, teamName)
	if err != nil {
		a.logger.Warn("anchor match lookup failed", "team", teamName, "error", err)
		return core.SoftFail(core.KindNoMatchInfo,
			fmt.Sprintf("Sorry, I couldn't find an upcoming match for %s, so I can't build the full report.", teamName))
	}

	mode := "FRESH"
	if len(contextData) > 0 {
		mode = "CONTEXT"
	}
	a.logger.Info("running fusion fan-out", "team", teamName, "city", anchor.City, "mode", mode)

	branches := a.fanOut(ctx, handler.Request{
		SessionID: sessionID,
		Utterance: utterance,
		Team:      teamName,
		City:      anchor.City,
		Venue:     anchor.Venue,
	})

	// Mode controls persistence only, never what was fetched.
	if mode == "CONTEXT" {
		a.persistEntities(sessionID, teamName, anchor.City, anchor.Venue)
	}

	snapshot, err := a.store.GetAll(sessionID)
	if err != nil {
		a.logger.Warn("re-reading session context failed", "session_id", sessionID, "error", err)
		snapshot = map[string]string{}
	}

	answer, err := a.synthesize(ctx, utterance, snapshot)
	if err != nil {
		a.logger.Warn("fusion synthesis failed", "team", teamName, "error", err)
		return core.SoftFail(core.KindProviderFailure,
			"Sorry, I couldn't put the full report together right now.")
	}

	a.persistTurn(sessionID, utterance, answer)

	return core.DomainResult{
		Summary: answer,
		Raw: Result{
			Team:        teamName,
			Match:       anchor,
			Mode:        mode,
			ContextUsed: sortedKeys(snapshot),
			Branches:    branches,
		},
		Fields: core.Fields{Team: teamName, City: anchor.City, Venue: anchor.Venue},
	}
}

// fanOut invokes every handler concurrently and joins before returning.
// Branch outcomes are collected as data; one failing branch never aborts the
// others.
func (a *Aggregator) fanOut(ctx context.Context, req handler.Request) map[string]string {
	var g errgroup.Group
	results := make([]core.DomainResult, len(a.handlers))

	for i, h := range a.handlers {
		g.Go(func() error {
			branchCtx, cancel := context.WithTimeout(ctx, a.branchTimeout)
			defer cancel()
			results[i] = h.Handle(branchCtx, req)
			return nil
		})
	}
	// Branches only report via results, so the join cannot error.
	_ = g.Wait()

	outcomes := make(map[string]string, len(a.handlers))
	for i, h := range a.handlers {
		if results[i].Failed() {
			a.logger.Warn("fusion branch soft-failed", "handler", h.Name(), "kind", string(results[i].Kind))
			outcomes[h.Name()] = string(results[i].Kind)
			continue
		}
		outcomes[h.Name()] = "ok"
	}
	return outcomes
}

// synthesize concatenates all non-empty context values into one block and
// asks the model for the final narrative.
func (a *Aggregator) synthesize(ctx context.Context, utterance string, snapshot map[string]string) (string, error) {
	var sb strings.Builder
	for _, key := range sortedKeys(snapshot) {
		value := snapshot[key]
		if value == "" {
			continue
		}
		fmt.Fprintf(&sb, "### %s CONTEXT\n%s\n\n", strings.ToUpper(key), value)
	}

	prompt := fmt.Sprintf("CONTEXT:\n%s\nUSER QUESTION:\n%s\n\nFollow the structure from the system instructions and keep the answer clean, concise and readable.", sb.String(), utterance)

	return a.model.Generate(ctx, model.Request{
		System:      fusionSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   800,
	})
}

func (a *Aggregator) persistEntities(sessionID, teamName, city, venue string) {
	for key, value := range map[string]string{
		core.KeyTeam:  teamName,
		core.KeyCity:  city,
		core.KeyVenue: venue,
	} {
		if value == "" {
			continue
		}
		if err := a.store.Set(sessionID, key, value); err != nil {
			a.logger.Warn("persisting fusion context failed", "session_id", sessionID, "key", key, "error", err)
		}
	}
}

func (a *Aggregator) persistTurn(sessionID, question, answer string) {
	if err := a.store.Set(sessionID, core.KeyLastAnswer, answer); err != nil {
		a.logger.Warn("persisting last answer failed", "session_id", sessionID, "error", err)
	}
	if err := a.store.Set(sessionID, core.KeyLastQuestion, question); err != nil {
		a.logger.Warn("persisting last question failed", "session_id", sessionID, "error", err)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
