// Package sportmonks implements provider.MatchProvider against the
// SportMonks cricket fixtures API (v2.0).
package sportmonks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/matchday/logging"
	"github.com/hupe1980/matchday/provider"
)

const defaultBaseURL = "https://cricket.sportmonks.com/api/v2.0"

// liveStatuses are the fixture statuses treated as in-play.
var liveStatuses = map[string]bool{
	"LIVE":        true,
	"INPLAY":      true,
	"1ST INNINGS": true,
	"2ND INNINGS": true,
	"STUMPS":      true,
}

// Options configure the SportMonks client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     logging.Logger
	PageLimit  int
}

// Client is an HTTP client for the SportMonks fixtures endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
	pageLimit  int
}

var _ provider.MatchProvider = (*Client)(nil)

// New constructs a Client with optional overrides.
func New(apiKey string, optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 12 * time.Second},
		Logger:     logging.NoOpLogger{},
		PageLimit:  150,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		pageLimit:  opts.PageLimit,
	}
}

// fixture mirrors the subset of the SportMonks fixture payload we read.
type fixture struct {
	StartingAt  string    `json:"starting_at"`
	Status      string    `json:"status"`
	LocalTeam   namedElem `json:"localteam"`
	VisitorTeam namedElem `json:"visitorteam"`
	Venue       venueElem `json:"venue"`
	League      typedElem `json:"league"`
	Stage       typedElem `json:"stage"`
}

type namedElem struct {
	Name string `json:"name"`
}

type typedElem struct {
	Type string `json:"type"`
}

type venueElem struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country struct {
		Name string `json:"name"`
	} `json:"country"`
}

// NextMatch implements provider.MatchProvider.
func (c *Client) NextMatch(ctx context.Context, team string) (*provider.Match, error) {
	fixtures, err := c.fetchFixtures(ctx, map[string]string{"filter[status]": "NS", "sort": "starting_at"})
	if err != nil {
		return nil, err
	}
	matches := filterByTeam(fixtures, team)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no upcoming matches found for %s", team)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].StartingAt < matches[j].StartingAt })
	m := buildMatch(matches[0])
	return &m, nil
}

// LiveMatch implements provider.MatchProvider.
func (c *Client) LiveMatch(ctx context.Context, team string) (*provider.Match, error) {
	fixtures, err := c.fetchFixtures(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, f := range filterByTeam(fixtures, team) {
		if liveStatuses[strings.ToUpper(f.Status)] {
			m := buildMatch(f)
			return &m, nil
		}
	}
	return nil, fmt.Errorf("no live match found for %s", team)
}

// Schedule implements provider.MatchProvider.
func (c *Client) Schedule(ctx context.Context, team string, limit int) ([]provider.Match, error) {
	fixtures, err := c.fetchFixtures(ctx, map[string]string{"sort": "starting_at"})
	if err != nil {
		return nil, err
	}
	var out []provider.Match
	for _, f := range filterByTeam(fixtures, team) {
		out = append(out, buildMatch(f))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no schedule found for %s", team)
	}
	return out, nil
}

func (c *Client) fetchFixtures(ctx context.Context, extra map[string]string) ([]fixture, error) {
	q := url.Values{}
	q.Set("api_token", c.apiKey)
	q.Set("include", "venue.country,localteam,visitorteam,league,stage")
	q.Set("page[limit]", fmt.Sprintf("%d", c.pageLimit))
	for k, v := range extra {
		q.Set(k, v)
	}

	reqURL := c.baseURL + "/fixtures?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sportmonks request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("sportmonks api error", "status", resp.StatusCode)
		return nil, fmt.Errorf("sportmonks api error %d", resp.StatusCode)
	}

	var payload struct {
		Data []fixture `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("no fixture data returned")
	}
	return payload.Data, nil
}

func filterByTeam(fixtures []fixture, team string) []fixture {
	want := strings.ToLower(team)
	var out []fixture
	for _, f := range fixtures {
		local := strings.ToLower(f.LocalTeam.Name)
		visitor := strings.ToLower(f.VisitorTeam.Name)
		if strings.Contains(local, want) || strings.Contains(visitor, want) {
			out = append(out, f)
		}
	}
	return out
}

// buildMatch converts a raw fixture into the normalized match record.
func buildMatch(f fixture) provider.Match {
	format := f.League.Type
	if format == "" {
		format = f.Stage.Type
	}
	if format == "" {
		format = "Unknown"
	}
	return provider.Match{
		HomeTeam: f.LocalTeam.Name,
		AwayTeam: f.VisitorTeam.Name,
		Date:     f.StartingAt,
		Status:   f.Status,
		Venue:    f.Venue.Name,
		City:     f.Venue.City,
		Country:  f.Venue.Country.Name,
		Format:   format,
	}
}
