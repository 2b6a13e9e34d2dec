package core

// Intent is the symbolic category a classifier assigns to an utterance.
//
// The set is closed-ish: classifiers may emit free text, and the router maps
// anything it does not recognize to IntentFusionSummary rather than failing
// the turn.
type Intent string

const (
	// IntentMatchInfo covers questions about matches, teams, dates or venues.
	IntentMatchInfo Intent = "match_info"
	// IntentCityInfo covers questions about the host city and attractions.
	IntentCityInfo Intent = "city_info"
	// IntentWeatherInfo covers temperature, rain and match-day weather.
	IntentWeatherInfo Intent = "weather_info"
	// IntentTravelInfo covers transport, distance and reaching the venue.
	IntentTravelInfo Intent = "travel_info"
	// IntentFusionSummary requests a combined report across all domains.
	IntentFusionSummary Intent = "fusion_summary"
	// IntentChitchat is greetings and casual talk unrelated to sports.
	IntentChitchat Intent = "chitchat"

	// Finer-grained sub-intents resolved by the rule tier.
	IntentCurrentMatch  Intent = "current_match"
	IntentNextMatch     Intent = "next_match"
	IntentNextSeries    Intent = "next_series"
	IntentScheduleMatch Intent = "schedule_match"
	IntentMatchSummary  Intent = "match_summary"

	// IntentUnknown is emitted when no tier produced a usable intent.
	IntentUnknown Intent = "unknown"
)

// knownIntents is the set a model classifier is allowed to return verbatim.
var knownIntents = map[Intent]bool{
	IntentMatchInfo:     true,
	IntentCityInfo:      true,
	IntentWeatherInfo:   true,
	IntentTravelInfo:    true,
	IntentFusionSummary: true,
	IntentChitchat:      true,
	IntentCurrentMatch:  true,
	IntentNextMatch:     true,
	IntentNextSeries:    true,
	IntentScheduleMatch: true,
	IntentMatchSummary:  true,
}

// Known reports whether the intent is a member of the recognized set.
func (i Intent) Known() bool { return knownIntents[i] }
