package archidekt

import (
	"encoding/json"
	"fmt"
)

// Deck is one deck record from the Archidekt deck listing. Only the fields
// the picker needs are decoded; the colors field is kept raw because its
// value shape is owned by the color classifier.
type Deck struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Featured string          `json:"featured,omitempty"`
	Colors   json.RawMessage `json:"colors,omitempty"`
	Size     int             `json:"size"`
}

// URL returns the canonical deck page URL, or an empty string when the
// record has no usable id.
func (d Deck) URL() string {
	if d.ID <= 0 {
		return ""
	}
	return fmt.Sprintf("%s/decks/%d", siteURL, d.ID)
}

// deckPage is one page of the paginated deck listing. Older API shapes use
// "decks" instead of "results" for the page contents.
type deckPage struct {
	Next    string `json:"next"`
	Results []Deck `json:"results"`
	Decks   []Deck `json:"decks"`
}

// decks returns the page contents regardless of which key carried them.
func (p *deckPage) decks() []Deck {
	if len(p.Results) > 0 {
		return p.Results
	}
	return p.Decks
}

// Termination describes why pagination stopped.
type Termination int

const (
	// TerminationExhausted means the listing reported no further page.
	TerminationExhausted Termination = iota

	// TerminationPageLimit means the page ceiling was reached and the
	// returned catalog is partial.
	TerminationPageLimit
)

// String returns a human-readable name for the termination state.
func (t Termination) String() string {
	switch t {
	case TerminationExhausted:
		return "exhausted"
	case TerminationPageLimit:
		return "page-limit-reached"
	default:
		return fmt.Sprintf("Termination(%d)", int(t))
	}
}

// APIError represents a non-success HTTP response from the Archidekt API.
type APIError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("archidekt API error (HTTP %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("archidekt API error (HTTP %d) fetching %s", e.StatusCode, e.URL)
}
