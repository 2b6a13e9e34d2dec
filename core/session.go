package core

// Conventional session context keys. The key set is open; these are the ones
// the dispatcher itself reads and writes.
const (
	KeyCity           = "city"
	KeyVenue          = "venue"
	KeyTeam           = "team"
	KeyLastAnswer     = "last_answer"
	KeyLastQuestion   = "last_question"
	KeySportsSummary  = "sports_summary"
	KeyWeatherSummary = "weather_summary"
	KeyCitySummary    = "city_summary"
	KeyTravelSummary  = "travel_summary"
)

// Store persists flat per-session key/value context across turns.
//
// Contract:
//   - Sessions are created implicitly on first Set.
//   - Get returns "" (and a nil error) for absent sessions or keys; callers
//     treat the empty string as "unknown".
//   - GetAll returns a copy; mutating it does not affect the store.
//   - Clear removes the whole session mapping; clearing an absent session
//     is a no-op.
//   - Mutations for one session id must be atomic with respect to each
//     other: two concurrent Sets may order arbitrarily (last write wins per
//     key) but must never discard each other's keys.
type Store interface {
	Get(sessionID, key string) (string, error)
	Set(sessionID, key, value string) error
	GetAll(sessionID string) (map[string]string, error)
	Clear(sessionID string) error
}
