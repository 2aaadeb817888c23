package archidekt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

// testClient builds a client against a test server with no request spacing.
func testClient(baseURL string) *Client {
	return NewClient(ClientOptions{
		BaseURL:   baseURL,
		RateLimit: rate.Inf,
	})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(ClientOptions{})

	if client.httpClient == nil {
		t.Error("httpClient is nil")
	}
	if client.limiter == nil {
		t.Error("limiter is nil")
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.userAgent == "" {
		t.Error("userAgent is empty")
	}
}

func TestFetchAllDecks_Pagination(t *testing.T) {
	// Three pages linked via next; one undersized deck mixed in.
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("User-Agent = %q, want %q", ua, userAgent)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("Accept = %q, want application/json", accept)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "2":
			fmt.Fprintf(w, `{"results":[{"id":3,"name":"Deck 3","size":100},{"id":4,"name":"Tiny","size":60}],"next":%q}`, server.URL+"/?page=3")
		case "3":
			fmt.Fprint(w, `{"results":[{"id":5,"name":"Deck 5","size":100}],"next":null}`)
		default:
			if owner := r.URL.Query().Get("ownerUsername"); owner != "Archidekt_Precons" {
				t.Errorf("ownerUsername = %q, want Archidekt_Precons", owner)
			}
			fmt.Fprintf(w, `{"results":[{"id":1,"name":"Deck 1","size":100},{"id":2,"name":"Deck 2","size":100}],"next":%q}`, server.URL+"/?page=2")
		}
	}))
	defer server.Close()

	client := testClient(server.URL + "/")
	decks, term, err := client.FetchAllDecks(context.Background(), "Archidekt_Precons")
	if err != nil {
		t.Fatalf("FetchAllDecks failed: %v", err)
	}
	if term != TerminationExhausted {
		t.Errorf("termination = %v, want %v", term, TerminationExhausted)
	}

	wantIDs := []int{1, 2, 3, 5}
	if len(decks) != len(wantIDs) {
		t.Fatalf("got %d decks, want %d", len(decks), len(wantIDs))
	}
	for i, id := range wantIDs {
		if decks[i].ID != id {
			t.Errorf("decks[%d].ID = %d, want %d (page order must be preserved)", i, decks[i].ID, id)
		}
	}
}

func TestFetchAllDecks_DecksKeyFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"decks":[{"id":7,"name":"Old shape","size":100}],"next":null}`)
	}))
	defer server.Close()

	client := testClient(server.URL + "/")
	decks, _, err := client.FetchAllDecks(context.Background(), "Archidekt_Precons")
	if err != nil {
		t.Fatalf("FetchAllDecks failed: %v", err)
	}
	if len(decks) != 1 || decks[0].ID != 7 {
		t.Errorf("got %v, want the single deck from the decks key", decks)
	}
}

func TestFetchAllDecks_PageLimit(t *testing.T) {
	// Every page links to another; pagination must stop at MaxPages and
	// keep what it accumulated.
	requests := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"results":[{"id":%d,"size":100}],"next":%q}`, requests, server.URL+"/")
	}))
	defer server.Close()

	client := testClient(server.URL + "/")
	decks, term, err := client.FetchAllDecks(context.Background(), "Archidekt_Precons")
	if err != nil {
		t.Fatalf("FetchAllDecks failed: %v", err)
	}
	if requests != MaxPages {
		t.Errorf("made %d requests, want %d", requests, MaxPages)
	}
	if len(decks) != MaxPages {
		t.Errorf("got %d decks, want %d", len(decks), MaxPages)
	}
	if term != TerminationPageLimit {
		t.Errorf("termination = %v, want %v", term, TerminationPageLimit)
	}
}

func TestFetchAllDecks_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := testClient(server.URL + "/")
	_, _, err := client.FetchAllDecks(context.Background(), "Archidekt_Precons")
	if err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusInternalServerError)
	}
}

func TestFetchAllDecks_ErrorMidPagination(t *testing.T) {
	// A failure on page two aborts the whole fetch; no partial results.
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			http.Error(w, "gone", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"results":[{"id":1,"size":100}],"next":%q}`, server.URL+"/?page=2")
	}))
	defer server.Close()

	client := testClient(server.URL + "/")
	decks, _, err := client.FetchAllDecks(context.Background(), "Archidekt_Precons")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if decks != nil {
		t.Errorf("expected no partial results on error, got %v", decks)
	}
}

func TestDeck_URL(t *testing.T) {
	tests := []struct {
		name string
		deck Deck
		want string
	}{
		{"valid id", Deck{ID: 12345}, "https://archidekt.com/decks/12345"},
		{"missing id", Deck{}, ""},
		{"negative id", Deck{ID: -1}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.deck.URL(); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTermination_String(t *testing.T) {
	if got := TerminationExhausted.String(); got != "exhausted" {
		t.Errorf("TerminationExhausted.String() = %q", got)
	}
	if got := TerminationPageLimit.String(); got != "page-limit-reached" {
		t.Errorf("TerminationPageLimit.String() = %q", got)
	}
}
