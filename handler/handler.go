// Package handler implements the four domain handlers of the dispatcher:
// match, city, weather and travel. Every handler follows the same shape:
// resolve required entities (utterance, then session context, then a
// clarifying question), call its data provider, summarize through the
// generation model, persist resolved entities plus the summary, and return a
// core.DomainResult. Provider and model failures surface as soft failures,
// never as errors past the handler boundary.
package handler

import (
	"context"
	"regexp"
	"strings"

	"github.com/hupe1980/matchday/core"
)

// Request is the input to one handler invocation. Team, City and Venue are
// explicit overrides: when set (e.g. by the fusion aggregator after anchor
// resolution) they take precedence over utterance extraction and session
// context.
type Request struct {
	SessionID string
	Utterance string
	Team      string
	City      string
	Venue     string
}

// Handler answers one domain question per invocation.
type Handler interface {
	Name() string
	Handle(ctx context.Context, req Request) core.DomainResult
}

var (
	weatherCityRe = regexp.MustCompile(`(?i)weather\s+(?:in|at)\s+([a-zA-Z ]+)`)
	cityTopicRe   = regexp.MustCompile(`(?i)(?:about|in|visit|explore)\s+([a-zA-Z ]+)`)
	travelCityRe  = regexp.MustCompile(`(?i)(?:to|in)\s+([a-zA-Z ]+)`)
	travelVenueRe = regexp.MustCompile(`(?i)(?:at|near)\s+([a-zA-Z ]+)`)
)

// stopwords are pronouns/adverbs that a location regex may capture but that
// never name a place ("weather there", "travel in the morning").
var stopwords = map[string]bool{
	"there": true, "here": true, "that": true, "this": true,
	"today": true, "tomorrow": true, "the": true, "it": true,
}

// extractPlace applies re to the utterance and returns a title-cased place
// name, or "" when nothing usable matched.
func extractPlace(re *regexp.Regexp, utterance string) string {
	m := re.FindStringSubmatch(utterance)
	if m == nil {
		return ""
	}
	fields := strings.Fields(m[1])
	// trailing temporal words ride along in captures like "in cape town today"
	for len(fields) > 0 && stopwords[strings.ToLower(fields[len(fields)-1])] {
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 0 || stopwords[strings.ToLower(fields[0])] {
		return ""
	}
	return titleCase(strings.Join(fields, " "))
}

func titleCase(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}
