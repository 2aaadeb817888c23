// Package picker selects one random precon deck from an owner's catalog,
// optionally constrained by color identity.
package picker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/jarnr/preconceive/internal/archidekt"
	"github.com/jarnr/preconceive/internal/catalog"
	"github.com/jarnr/preconceive/internal/metrics"
	"github.com/jarnr/preconceive/internal/mtg/colors"
)

const (
	// DefaultOwner is the owner queried when a request names none.
	DefaultOwner = "Archidekt_Precons"

	// placeholderTitle substitutes for a blank or missing deck name.
	placeholderTitle = "Untitled deck"
)

// AllowedOwners is the fixed allow-list of owner usernames that may be
// queried. It also bounds the catalog cache key space.
var AllowedOwners = map[string]bool{
	DefaultOwner: true,
}

// Filter modes for color matching.
const (
	FilterExact  = "exact"
	FilterSubset = "subset"
)

// Sentinel errors for the non-validation failure classes.
var (
	// ErrEmptyCatalog means the owner's catalog has no eligible decks.
	ErrEmptyCatalog = errors.New("no decks found")

	// ErrMissingID means the chosen record has no resolvable deck URL.
	// Catalog membership should rule this out, so it signals a bug.
	ErrMissingID = errors.New("chosen deck missing id")
)

// ValidationError reports a rejected request parameter.
type ValidationError struct {
	Param  string
	Reason string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// Fetcher retrieves the complete deck catalog for one owner.
type Fetcher interface {
	FetchAllDecks(ctx context.Context, owner string) ([]archidekt.Deck, archidekt.Termination, error)
}

// Request holds the raw pick parameters. Empty fields take their defaults.
type Request struct {
	Owner  string
	Filter string
	Colors string
}

// Result is the display projection of the chosen deck.
type Result struct {
	URL    string   `json:"url"`
	Title  string   `json:"title"`
	Image  string   `json:"image,omitempty"`
	Colors []string `json:"colors"`
}

// Service runs the selection pipeline: validate, fetch (through the
// cache), filter by color, pick uniformly at random and project.
type Service struct {
	fetcher Fetcher
	cache   *catalog.Cache

	// intN is rand.IntN unless a test substitutes it.
	intN func(int) int
}

// NewService creates a picker service backed by the given fetcher and cache.
func NewService(fetcher Fetcher, cache *catalog.Cache) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		intN:    rand.IntN,
	}
}

// Pick validates the request, obtains the owner's catalog and returns one
// randomly chosen deck matching the color criteria. A color filter that
// matches nothing falls back to the full catalog rather than failing.
func (s *Service) Pick(ctx context.Context, req Request) (*Result, error) {
	owner := req.Owner
	if owner == "" {
		owner = DefaultOwner
	}
	if !AllowedOwners[owner] {
		return nil, &ValidationError{Param: "username", Reason: "unknown owner"}
	}

	filter := strings.ToLower(req.Filter)
	if filter == "" {
		filter = FilterSubset
	}
	if filter != FilterExact && filter != FilterSubset {
		return nil, &ValidationError{Param: "filter_type", Reason: "must be \"exact\" or \"subset\""}
	}

	colorsParam := req.Colors
	if colorsParam == "" {
		colorsParam = "WUBRG"
	}
	requested, err := colors.ParseSet(colorsParam)
	if err != nil {
		return nil, &ValidationError{Param: "colors", Reason: err.Error()}
	}

	decks, err := s.catalogDecks(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(decks) == 0 {
		return nil, ErrEmptyCatalog
	}

	pool := filterByColors(decks, filter, requested)
	if len(pool) == 0 {
		// Advisory filter: an over-constrained request still yields a
		// deck from the full catalog.
		metrics.PickFallbacks.Inc()
		pool = decks
	}

	chosen := pool[s.intN(len(pool))]
	result, err := project(chosen)
	if err != nil {
		return nil, err
	}

	metrics.Picks.Inc()
	return result, nil
}

// catalogDecks returns the owner's catalog, from cache when fresh.
func (s *Service) catalogDecks(ctx context.Context, owner string) ([]archidekt.Deck, error) {
	if snap, ok := s.cache.Get(owner); ok {
		metrics.CacheHits.Inc()
		return snap.Decks, nil
	}
	metrics.CacheMisses.Inc()

	decks, term, err := s.fetcher.FetchAllDecks(ctx, owner)
	if err != nil {
		return nil, err
	}
	if term == archidekt.TerminationPageLimit {
		log.Printf("picker: caching partial catalog for %s (%s)", owner, term)
	}

	s.cache.Put(owner, decks)
	return decks, nil
}

// filterByColors keeps the decks whose color identity matches the request.
func filterByColors(decks []archidekt.Deck, filter string, requested colors.Set) []archidekt.Deck {
	var pool []archidekt.Deck
	for _, d := range decks {
		identity := colors.NewSet(colors.Classify(d.Colors))

		var match bool
		switch filter {
		case FilterExact:
			match = identity.Equal(requested)
		case FilterSubset:
			match = identity.SubsetOf(requested)
		}
		if match {
			pool = append(pool, d)
		}
	}
	return pool
}

// project builds the display payload for the chosen deck.
func project(d archidekt.Deck) (*Result, error) {
	url := d.URL()
	if url == "" {
		return nil, ErrMissingID
	}

	title := strings.TrimSpace(d.Name)
	if title == "" {
		title = placeholderTitle
	}

	ordered := colors.Order(colors.Classify(d.Colors))
	if ordered == nil {
		// Colorless decks serialize as an empty list, not null.
		ordered = []string{}
	}

	return &Result{
		URL:    url,
		Title:  title,
		Image:  d.Featured,
		Colors: ordered,
	}, nil
}
