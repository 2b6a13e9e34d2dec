// Package provider defines the narrow data-provider contracts the dispatcher
// consumes, along with the normalized records they return. Concrete HTTP
// clients live in subpackages (sportmonks, openweather, wikipedia,
// azuremaps); handlers and tests depend only on the interfaces here.
package provider

import "context"

// Match is a normalized cricket fixture.
type Match struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Venue    string `json:"venue"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Format   string `json:"format"`
}

// Weather is a current-conditions snapshot for one city.
type Weather struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Condition   string  `json:"condition"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// CityInfo bundles encyclopedic summaries for a host city and optional venue.
type CityInfo struct {
	City         string `json:"city"`
	Venue        string `json:"venue,omitempty"`
	CitySummary  string `json:"city_summary"`
	VenueSummary string `json:"venue_summary,omitempty"`
	TouristInfo  string `json:"tourist_info"`
}

// TransportOption is one transport hub near a venue.
type TransportOption struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	DistanceKM float64 `json:"distance_km"`
}

// TravelInfo lists transport hubs around a venue plus a maps link.
type TravelInfo struct {
	City             string            `json:"city"`
	Venue            string            `json:"venue"`
	TransportOptions []TransportOption `json:"transport_options"`
	MapsLink         string            `json:"maps_link"`
}

// MatchProvider serves fixture lookups for a canonical team name.
// Implementations perform a single attempt; a nil error with a nil Match is
// never returned.
type MatchProvider interface {
	// NextMatch returns the team's next scheduled fixture.
	NextMatch(ctx context.Context, team string) (*Match, error)
	// LiveMatch returns the team's in-play fixture, if any.
	LiveMatch(ctx context.Context, team string) (*Match, error)
	// Schedule returns up to limit upcoming fixtures, soonest first.
	Schedule(ctx context.Context, team string, limit int) ([]Match, error)
}

// WeatherProvider serves current weather for a city.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (*Weather, error)
}

// CityProvider serves encyclopedic city and venue background.
type CityProvider interface {
	CityInfo(ctx context.Context, city, venue string) (*CityInfo, error)
}

// TravelProvider serves transport options around a venue.
type TravelProvider interface {
	TravelInfo(ctx context.Context, city, venue string) (*TravelInfo, error)
}
