// Package archidekt retrieves deck catalogs from the Archidekt API.
package archidekt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jarnr/preconceive/internal/metrics"
)

const (
	siteURL = "https://archidekt.com"

	// DefaultBaseURL is the deck listing endpoint.
	DefaultBaseURL = siteURL + "/api/decks/v3/"

	// DefaultTimeout bounds each page request.
	DefaultTimeout = 15 * time.Second

	// MaxPages caps pagination; a listing longer than this is returned
	// partially rather than fetched in full.
	MaxPages = 10

	// PreconSize is the deck size that marks a catalog member.
	PreconSize = 100

	userAgent = "preconceive/1.0 (+https://archidekt.com/)"
)

// Polite request spacing against the upstream API.
var defaultRateLimit = rate.Every(100 * time.Millisecond)

// Client fetches paginated deck listings with rate limiting.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

// ClientOptions configures the Archidekt client.
type ClientOptions struct {
	// BaseURL overrides the listing endpoint (used by tests).
	BaseURL string

	// Timeout for each page request (default: 15 seconds).
	Timeout time.Duration

	// RateLimit controls request spacing (default: 10 req/second).
	RateLimit rate.Limit

	// HTTPClient allows a custom HTTP client.
	HTTPClient *http.Client
}

// NewClient creates a new Archidekt API client.
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = DefaultBaseURL
	}
	if options.Timeout == 0 {
		options.Timeout = DefaultTimeout
	}
	if options.RateLimit == 0 {
		options.RateLimit = defaultRateLimit
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: options.Timeout,
		}
	}

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(options.RateLimit, 1),
		baseURL:    options.BaseURL,
		userAgent:  userAgent,
	}
}

// FetchAllDecks retrieves the complete deck catalog for one owner,
// following pagination until the listing is exhausted or MaxPages is
// reached. Only decks of PreconSize cards are returned. Any HTTP-level
// failure aborts the whole fetch.
func (c *Client) FetchAllDecks(ctx context.Context, owner string) ([]Deck, Termination, error) {
	next := c.listURL(owner)

	var decks []Deck
	for page := 0; page < MaxPages; page++ {
		p, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, TerminationExhausted, fmt.Errorf("fetch decks for %s: %w", owner, err)
		}

		for _, d := range p.decks() {
			if d.Size == PreconSize {
				decks = append(decks, d)
			}
		}

		next = strings.TrimSpace(p.Next)
		if next == "" {
			return decks, TerminationExhausted, nil
		}
	}

	log.Printf("archidekt: page limit (%d) reached for %s, returning partial catalog", MaxPages, owner)
	return decks, TerminationPageLimit, nil
}

// listURL builds the first-page listing URL for an owner.
func (c *Client) listURL(owner string) string {
	return c.baseURL + "?ownerUsername=" + url.QueryEscape(owner)
}

// fetchPage performs a single rate-limited page request.
func (c *Client) fetchPage(ctx context.Context, pageURL string) (*deckPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	metrics.UpstreamRequests.Inc()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamErrors.Inc()
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrors.Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			URL:        pageURL,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var page deckPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return &page, nil
}
