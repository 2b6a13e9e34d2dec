package core

// ErrorKind classifies a soft failure carried inside a DomainResult.
// An empty kind means the handler succeeded.
type ErrorKind string

const (
	// KindMissingContext means a required entity (city, venue, team) was
	// neither in the utterance nor in session context. The summary is a
	// clarifying question, not an apology.
	KindMissingContext ErrorKind = "missing_context"
	// KindUnrecognizedTeam means the alias table could not resolve a team.
	KindUnrecognizedTeam ErrorKind = "unrecognized_team"
	// KindNoTeamDetected is the fusion-specific variant: no team in the
	// utterance and none remembered for the session.
	KindNoTeamDetected ErrorKind = "no_team_detected"
	// KindNoMatchInfo means the anchor match lookup failed, which is fatal
	// for a fusion turn.
	KindNoMatchInfo ErrorKind = "no_match_info"
	// KindProviderFailure means an upstream data provider errored or
	// returned nothing usable.
	KindProviderFailure ErrorKind = "provider_failure"
)

// Fields holds the entities a handler resolved while answering, so callers
// (router, fusion) can persist them for later turns.
type Fields struct {
	Team  string `json:"team,omitempty"`
	City  string `json:"city,omitempty"`
	Venue string `json:"venue,omitempty"`
}

// DomainResult is the uniform shape every domain handler returns. A non-empty
// Kind marks a soft failure: Summary is still a complete user-facing reply
// (apology or clarification) and the turn proceeds normally.
type DomainResult struct {
	Summary string    `json:"summary"`
	Kind    ErrorKind `json:"error,omitempty"`
	Raw     any       `json:"raw,omitempty"`
	Fields  Fields    `json:"extracted_fields"`
}

// Failed reports whether the result carries a soft failure.
func (r DomainResult) Failed() bool { return r.Kind != "" }

// SoftFail builds a DomainResult for the given kind with a user-facing summary.
func SoftFail(kind ErrorKind, summary string) DomainResult {
	return DomainResult{Summary: summary, Kind: kind}
}
