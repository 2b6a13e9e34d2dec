// Package wikipedia implements provider.CityProvider on top of the
// Wikipedia REST summary API, with a search fallback for titles that do not
// resolve directly.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hupe1980/matchday/logging"
	"github.com/hupe1980/matchday/provider"
)

const (
	defaultBaseURL   = "https://en.wikipedia.org"
	defaultUserAgent = "matchday/1.0 (contact: team@example.com)"

	citySummaryLimit    = 600
	touristSummaryLimit = 400
)

// Options configure the Wikipedia client.
type Options struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Logger     logging.Logger
}

// Client fetches page summaries for cities, venues and tourism topics.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     logging.Logger
}

var _ provider.CityProvider = (*Client)(nil)

// New constructs a Client with optional overrides.
func New(optFns ...func(o *Options)) *Client {
	opts := Options{
		BaseURL:    defaultBaseURL,
		UserAgent:  defaultUserAgent,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Client{
		baseURL:    opts.BaseURL,
		userAgent:  opts.UserAgent,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// CityInfo implements provider.CityProvider. Venue may be empty.
func (c *Client) CityInfo(ctx context.Context, city, venue string) (*provider.CityInfo, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("no city provided")
	}

	citySummary := c.summaryWithFallback(ctx, city)
	if citySummary == "" {
		return nil, fmt.Errorf("no city data available for %s", city)
	}

	info := &provider.CityInfo{
		City:        city,
		Venue:       venue,
		CitySummary: citySummary,
		TouristInfo: c.touristHighlights(ctx, city),
	}
	if venue != "" {
		info.VenueSummary = c.summaryWithFallback(ctx, venue)
	}
	return info, nil
}

// summaryWithFallback tries the direct summary endpoint, then the search API
// to resolve the best-matching title.
func (c *Client) summaryWithFallback(ctx context.Context, topic string) string {
	if text := c.summary(ctx, topic); text != "" {
		return truncate(text, citySummaryLimit)
	}

	title, err := c.search(ctx, topic)
	if err != nil || title == "" {
		c.logger.Warn("wikipedia lookup failed", "topic", topic)
		return ""
	}
	return truncate(c.summary(ctx, title), citySummaryLimit)
}

// touristHighlights combines summaries of the city's tourism pages; falls
// back to a generic line when none resolve.
func (c *Client) touristHighlights(ctx context.Context, city string) string {
	topics := []string{
		"Tourism_in_" + city,
		"List_of_tourist_attractions_in_" + city,
	}
	var snippets []string
	for _, topic := range topics {
		text := c.summary(ctx, topic)
		if text == "" || strings.Contains(strings.ToLower(text), "may refer to") {
			continue
		}
		snippets = append(snippets, truncate(text, touristSummaryLimit))
	}
	if len(snippets) > 0 {
		return strings.Join(snippets, " ")
	}
	return fmt.Sprintf("Visitors to %s can enjoy its cultural attractions, museums, parks and local food experiences.", city)
}

func (c *Client) summary(ctx context.Context, topic string) string {
	endpoint := c.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(strings.TrimSpace(topic))
	var payload struct {
		Extract string `json:"extract"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return ""
	}
	return payload.Extract
}

func (c *Client) search(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", query)
	q.Set("format", "json")

	var payload struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/w/api.php?"+q.Encode(), &payload); err != nil {
		return "", err
	}
	if len(payload.Query.Search) == 0 {
		return "", fmt.Errorf("no search results for %s", query)
	}
	return payload.Query.Search[0].Title, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia api error %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
