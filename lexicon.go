package navlang

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Entry is one lexicon record for a root word.
type Entry struct {
	// Root is the dictionary form.
	Root string
	// POS is the part of speech of this reading. Homonymous roots have
	// one entry per reading.
	POS PartOfSpeech
	// Gloss is the base meaning.
	Gloss string
	// Frequency is an occurrence count used as a disambiguation fallback.
	Frequency int
	// Transitive applies to verb entries.
	Transitive bool
	// Subtype refines particle entries (vocative, question, conjunction).
	Subtype string
}

// Lexicon is the external dictionary collaborator. Lookup returns every
// reading of a root, or an empty slice for an unknown root. A lookup must
// not block indefinitely; the analyzer treats an error or timeout as
// "unknown word", never as a fatal condition.
type Lexicon interface {
	Lookup(ctx context.Context, root string) ([]Entry, error)
}

// MapLexicon is an in-memory Lexicon backed by a plain map. It is
// read-only after loading and safe for concurrent lookups.
type MapLexicon struct {
	entries map[string][]Entry
}

// NewMapLexicon returns an empty in-memory lexicon.
func NewMapLexicon() *MapLexicon {
	return &MapLexicon{entries: make(map[string][]Entry)}
}

// Add registers a reading for a root. Readings are returned in insertion
// order, so loaders define the deterministic candidate order.
func (m *MapLexicon) Add(e Entry) {
	m.entries[e.Root] = append(m.entries[e.Root], e)
}

// Len returns the number of distinct roots.
func (m *MapLexicon) Len() int {
	return len(m.entries)
}

// Lookup implements Lexicon.
func (m *MapLexicon) Lookup(_ context.Context, root string) ([]Entry, error) {
	return m.entries[root], nil
}

// HTTPLexicon queries a remote dictionary service:
//
//	GET <base>?root=<root>  →  JSON array of entries
//
// A non-200 response, transport error or timeout yields
// ErrLexiconUnavailable, which the analyzer degrades to unknown words for
// the affected tokens.
type HTTPLexicon struct {
	Base   string
	Client *http.Client
}

// NewHTTPLexicon returns a client for the dictionary service at base with
// the given per-lookup timeout.
func NewHTTPLexicon(base string, timeout time.Duration) *HTTPLexicon {
	return &HTTPLexicon{
		Base:   base,
		Client: &http.Client{Timeout: timeout},
	}
}

// httpEntry is the wire form of an Entry.
type httpEntry struct {
	Root       string `json:"root"`
	POS        string `json:"pos"`
	Gloss      string `json:"gloss"`
	Frequency  int    `json:"frequency"`
	Transitive bool   `json:"transitive"`
	Subtype    string `json:"subtype"`
}

// Lookup implements Lexicon.
func (h *HTTPLexicon) Lookup(ctx context.Context, root string) ([]Entry, error) {
	u := h.Base + "?root=" + url.QueryEscape(root)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLexiconUnavailable, resp.StatusCode)
	}
	var wire []httpEntry
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLexiconUnavailable, err)
	}
	out := make([]Entry, 0, len(wire))
	for _, e := range wire {
		out = append(out, Entry{
			Root:       e.Root,
			POS:        parsePOS(e.POS),
			Gloss:      e.Gloss,
			Frequency:  e.Frequency,
			Transitive: e.Transitive,
			Subtype:    e.Subtype,
		})
	}
	return out, nil
}

// parsePOS maps a part-of-speech code or name to the enum. Single-letter
// codes follow the lexicon file format.
func parsePOS(s string) PartOfSpeech {
	switch s {
	case "n", "noun":
		return POSNoun
	case "pn", "pronoun":
		return POSPronoun
	case "v", "verb":
		return POSVerb
	case "adj", "adjective":
		return POSAdjective
	case "num", "number":
		return POSNumber
	case "part", "particle":
		return POSParticle
	case "adp", "adposition":
		return POSAdposition
	default:
		return POSUnknown
	}
}
