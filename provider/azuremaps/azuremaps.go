// Package azuremaps implements provider.TravelProvider using the Azure Maps
// search APIs: the venue is geocoded first, then transport hubs within a
// 10 km radius are collected per category.
package azuremaps

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/hupe1980/matchday/logging"
	"github.com/hupe1980/matchday/provider"
)

const (
	defaultBaseURL = "https://atlas.microsoft.com"

	searchRadiusMeters = 10000
	resultsPerCategory = 5
)

// categories are the transport hub kinds searched around the venue.
var categories = []string{"airport", "bus station", "train station", "ferry terminal"}

// Options configure the Azure Maps client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Client is an HTTP client for the Azure Maps search endpoints.
type Client struct {
	subscriptionKey string
	baseURL         string
	httpClient      *http.Client
	logger          logging.Logger
}

var _ provider.TravelProvider = (*Client)(nil)

// New constructs a Client with optional overrides.
func New(subscriptionKey string, optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{
		subscriptionKey: subscriptionKey,
		baseURL:         opts.BaseURL,
		httpClient:      opts.HTTPClient,
		logger:          opts.Logger,
	}
}

type position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type searchResult struct {
	Position position `json:"position"`
	Poi      struct {
		Name string `json:"name"`
	} `json:"poi"`
	Address struct {
		FreeformAddress string `json:"freeformAddress"`
	} `json:"address"`
}

// TravelInfo implements provider.TravelProvider.
func (c *Client) TravelInfo(ctx context.Context, city, venue string) (*provider.TravelInfo, error) {
	venuePos, err := c.geocode(ctx, fmt.Sprintf("%s, %s", venue, city))
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var options []provider.TransportOption
	for _, category := range categories {
		results, err := c.poiSearch(ctx, category, venuePos)
		if err != nil {
			// One failed category does not sink the lookup.
			c.logger.Warn("poi category search failed", "category", category, "error", err)
			continue
		}
		for _, r := range results {
			if r.Poi.Name == "" || seen[r.Poi.Name] {
				continue
			}
			seen[r.Poi.Name] = true
			options = append(options, provider.TransportOption{
				Type:       category,
				Name:       r.Poi.Name,
				Address:    r.Address.FreeformAddress,
				DistanceKM: haversineKM(venuePos, r.Position),
			})
		}
	}

	return &provider.TravelInfo{
		City:             city,
		Venue:            venue,
		TransportOptions: options,
		MapsLink:         "https://www.bing.com/maps?q=" + url.QueryEscape(venue+" "+city),
	}, nil
}

func (c *Client) geocode(ctx context.Context, query string) (position, error) {
	q := url.Values{}
	q.Set("api-version", "1.0")
	q.Set("subscription-key", c.subscriptionKey)
	q.Set("query", query)

	var payload struct {
		Results []searchResult `json:"results"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/search/address/json?"+q.Encode(), &payload); err != nil {
		return position{}, fmt.Errorf("venue geocode failed: %w", err)
	}
	if len(payload.Results) == 0 {
		return position{}, fmt.Errorf("no coordinates found for %s", query)
	}
	pos := payload.Results[0].Position
	if pos.Lat == 0 && pos.Lon == 0 {
		return position{}, fmt.Errorf("invalid coordinates for %s", query)
	}
	return pos, nil
}

func (c *Client) poiSearch(ctx context.Context, category string, around position) ([]searchResult, error) {
	q := url.Values{}
	q.Set("api-version", "1.0")
	q.Set("subscription-key", c.subscriptionKey)
	q.Set("query", category)
	q.Set("lat", fmt.Sprintf("%f", around.Lat))
	q.Set("lon", fmt.Sprintf("%f", around.Lon))
	q.Set("limit", fmt.Sprintf("%d", resultsPerCategory))
	q.Set("radius", fmt.Sprintf("%d", searchRadiusMeters))

	var payload struct {
		Results []searchResult `json:"results"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/search/poi/category/json?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("azure maps request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("azure maps api error %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// haversineKM returns the great-circle distance between two positions,
// rounded to one decimal.
func haversineKM(a, b position) float64 {
	const earthRadiusKM = 6371.0
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	d := 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
	return math.Round(d*10) / 10
}
