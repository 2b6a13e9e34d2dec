// Package router dispatches one conversational turn: it classifies the
// utterance, selects exactly one domain handler (or the fusion aggregator)
// from an explicit transition table, executes it, and returns the result.
// The table is a plain function over intents so routing is unit-testable
// without any execution engine.
package router

import (
	"context"
	"strings"

	"github.com/hupe1980/matchday/core"
	"github.com/hupe1980/matchday/fusion"
	"github.com/hupe1980/matchday/handler"
	"github.com/hupe1980/matchday/intent"
	"github.com/hupe1980/matchday/logging"
)

// State is a phase of the per-turn state machine. A turn traverses
// Start → Classified → Dispatched → Done exactly once; Done is terminal.
type State string

const (
	StateStart      State = "start"
	StateClassified State = "classified"
	StateDispatched State = "dispatched"
	StateDone       State = "done"
)

// Target identifies which handler a routed intent selects.
type Target string

const (
	TargetChitchat Target = "chitchat"
	TargetMatch    Target = "match"
	TargetLive     Target = "match_live"
	TargetSchedule Target = "match_schedule"
	TargetCity     Target = "city"
	TargetWeather  Target = "weather"
	TargetTravel   Target = "travel"
	TargetFusion   Target = "fusion"
)

// Route is the transition table from intent to handler target. Any intent
// outside the known set falls through to fusion.
func Route(i core.Intent) Target {
	switch i {
	case core.IntentChitchat:
		return TargetChitchat
	case core.IntentCurrentMatch:
		return TargetLive
	case core.IntentNextMatch, core.IntentMatchInfo:
		return TargetMatch
	case core.IntentNextSeries, core.IntentScheduleMatch:
		return TargetSchedule
	case core.IntentCityInfo:
		return TargetCity
	case core.IntentWeatherInfo:
		return TargetWeather
	case core.IntentTravelInfo:
		return TargetTravel
	default:
		return TargetFusion
	}
}

// Turn is the record of one full traversal of the state machine.
type Turn struct {
	SessionID string
	Utterance string
	Intent    core.Intent
	Target    Target
	Result    core.DomainResult
	Trace     []State
}

// Router wires the classifier to the handlers and the fusion aggregator.
type Router struct {
	classifier intent.Classifier
	match      *handler.MatchHandler
	city       handler.Handler
	weather    handler.Handler
	travel     handler.Handler
	fusion     *fusion.Aggregator
	logger     logging.Logger
}

// Options configure a Router.
type Options struct {
	Logger logging.Logger
}

// New constructs a Router over the given components.
func New(
	classifier intent.Classifier,
	match *handler.MatchHandler,
	city, weather, travel handler.Handler,
	aggregator *fusion.Aggregator,
	optFns ...func(o *Options),
) *Router {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{
		classifier: classifier,
		match:      match,
		city:       city,
		weather:    weather,
		travel:     travel,
		fusion:     aggregator,
		logger:     opts.Logger,
	}
}

// Dispatch runs one turn to completion. It never returns an error: every
// failure mode surfaces as a soft result with a user-facing summary.
func (r *Router) Dispatch(ctx context.Context, sessionID, utterance string) Turn {
	turn := Turn{SessionID: sessionID, Utterance: utterance, Trace: []State{StateStart}}

	detected, err := r.classifier.Classify(ctx, utterance)
	if err != nil {
		// Tiered classifiers recover internally; a bare classifier may not.
		r.logger.Warn("classification failed, defaulting to fusion", "error", err)
		detected = core.IntentFusionSummary
	}
	turn.Intent = detected
	turn.Trace = append(turn.Trace, StateClassified)

	turn.Target = Route(detected)
	r.logger.Info("dispatching turn", "session_id", sessionID, "intent", string(detected), "target", string(turn.Target))
	turn.Trace = append(turn.Trace, StateDispatched)

	req := handler.Request{SessionID: sessionID, Utterance: utterance}
	switch turn.Target {
	case TargetChitchat:
		turn.Result = core.DomainResult{Summary: cannedReply(utterance)}
	case TargetLive:
		turn.Result = r.match.HandleLive(ctx, req)
	case TargetMatch:
		turn.Result = r.match.Handle(ctx, req)
	case TargetSchedule:
		turn.Result = r.match.HandleSchedule(ctx, req)
	case TargetCity:
		turn.Result = r.city.Handle(ctx, req)
	case TargetWeather:
		turn.Result = r.weather.Handle(ctx, req)
	case TargetTravel:
		turn.Result = r.travel.Handle(ctx, req)
	default:
		turn.Result = r.fusion.Run(ctx, sessionID, utterance)
	}

	turn.Trace = append(turn.Trace, StateDone)
	return turn
}

// cannedReply answers chitchat without touching any provider or the store.
func cannedReply(utterance string) string {
	q := strings.ToLower(utterance)
	if strings.Contains(q, "how are you") {
		return "I'm doing great! What's up?"
	}
	for _, greeting := range []string{"hi", "hello", "hey", "yo"} {
		for _, word := range strings.Fields(q) {
			if strings.Trim(word, "!.,?") == greeting {
				return "Hey! How can I help you today?"
			}
		}
	}
	return "Hi! Need match info, weather, or travel guidance?"
}
