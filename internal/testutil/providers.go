// Package testutil provides canned provider stubs shared by handler, fusion
// and router tests. All stubs count their calls under a mutex so concurrent
// fan-out tests can assert call totals safely.
package testutil

import (
	"context"
	"sync"

	"github.com/hupe1980/matchday/provider"
)

// TestMatch is a fixture used across tests.
var TestMatch = provider.Match{
	HomeTeam: "India",
	AwayTeam: "Australia",
	Date:     "2026-09-12T09:00:00Z",
	Status:   "NS",
	Venue:    "Eden Gardens",
	City:     "Kolkata",
	Country:  "India",
	Format:   "ODI",
}

// TestWeather is a fixture used across tests.
var TestWeather = provider.Weather{
	City:        "Kolkata",
	Temperature: 31.5,
	FeelsLike:   35.0,
	Condition:   "Partly cloudy",
	Humidity:    74,
	WindSpeed:   3.2,
}

// StubMatchProvider returns canned fixtures and counts calls.
type StubMatchProvider struct {
	mu sync.Mutex

	Match           *provider.Match
	ScheduleMatches []provider.Match
	Err             error

	NextCalls     int
	LiveCalls     int
	ScheduleCalls int
}

var _ provider.MatchProvider = (*StubMatchProvider)(nil)

func (s *StubMatchProvider) NextMatch(_ context.Context, _ string) (*provider.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NextCalls++
	return s.Match, s.Err
}

func (s *StubMatchProvider) LiveMatch(_ context.Context, _ string) (*provider.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LiveCalls++
	return s.Match, s.Err
}

func (s *StubMatchProvider) Schedule(_ context.Context, _ string, _ int) ([]provider.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ScheduleCalls++
	return s.ScheduleMatches, s.Err
}

// Calls returns the total number of provider calls of any kind.
func (s *StubMatchProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.NextCalls + s.LiveCalls + s.ScheduleCalls
}

// StubWeatherProvider returns a canned weather snapshot and counts calls.
type StubWeatherProvider struct {
	mu sync.Mutex

	Weather *provider.Weather
	Err     error
	Count   int
}

var _ provider.WeatherProvider = (*StubWeatherProvider)(nil)

func (s *StubWeatherProvider) Current(_ context.Context, city string) (*provider.Weather, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Count++
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Weather != nil {
		return s.Weather, nil
	}
	w := TestWeather
	w.City = city
	return &w, nil
}

// Calls returns the number of Current calls.
func (s *StubWeatherProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Count
}

// StubCityProvider returns canned city background and counts calls.
type StubCityProvider struct {
	mu sync.Mutex

	Err   error
	Count int
}

var _ provider.CityProvider = (*StubCityProvider)(nil)

func (s *StubCityProvider) CityInfo(_ context.Context, city, venue string) (*provider.CityInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Count++
	if s.Err != nil {
		return nil, s.Err
	}
	return &provider.CityInfo{
		City:        city,
		Venue:       venue,
		CitySummary: city + " is a major city with a long cricketing history.",
		TouristInfo: "Museums, riverfront walks and famous street food.",
	}, nil
}

// Calls returns the number of CityInfo calls.
func (s *StubCityProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Count
}

// StubTravelProvider returns canned transport options and counts calls.
type StubTravelProvider struct {
	mu sync.Mutex

	Err   error
	Count int
}

var _ provider.TravelProvider = (*StubTravelProvider)(nil)

func (s *StubTravelProvider) TravelInfo(_ context.Context, city, venue string) (*provider.TravelInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Count++
	if s.Err != nil {
		return nil, s.Err
	}
	return &provider.TravelInfo{
		City:  city,
		Venue: venue,
		TransportOptions: []provider.TransportOption{
			{Type: "airport", Name: "City International Airport", Address: "Airport Rd", DistanceKM: 9.5},
			{Type: "train station", Name: "Central Station", Address: "Station Sq", DistanceKM: 2.1},
		},
		MapsLink: "https://www.bing.com/maps?q=" + venue,
	}, nil
}

// Calls returns the number of TravelInfo calls.
func (s *StubTravelProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Count
}
