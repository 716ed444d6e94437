package navlang

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapLexiconLookup(t *testing.T) {
	lex := NewMapLexicon()
	lex.Add(Entry{Root: "lew", POS: POSNoun, Gloss: "cover"})
	lex.Add(Entry{Root: "lew", POS: POSAdjective, Gloss: "covered"})

	es, err := lex.Lookup(context.Background(), "lew")
	require.NoError(t, err)
	require.Len(t, es, 2)
	// readings keep insertion order
	assert.Equal(t, POSNoun, es[0].POS)
	assert.Equal(t, POSAdjective, es[1].POS)

	es, err = lex.Lookup(context.Background(), "absent")
	require.NoError(t, err)
	assert.Empty(t, es)
}

func TestHTTPLexiconLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kame", r.URL.Query().Get("root"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"root":"kame","pos":"v","gloss":"see","frequency":320,"transitive":true}]`))
	}))
	defer srv.Close()

	lex := NewHTTPLexicon(srv.URL, time.Second)
	es, err := lex.Lookup(context.Background(), "kame")
	require.NoError(t, err)
	require.Len(t, es, 1)
	assert.Equal(t, Entry{
		Root: "kame", POS: POSVerb, Gloss: "see", Frequency: 320, Transitive: true,
	}, es[0])
}

func TestHTTPLexiconUnavailable(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		lex := NewHTTPLexicon(srv.URL, time.Second)
		_, err := lex.Lookup(context.Background(), "kame")
		assert.ErrorIs(t, err, ErrLexiconUnavailable)
	})

	t.Run("bad payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		lex := NewHTTPLexicon(srv.URL, time.Second)
		_, err := lex.Lookup(context.Background(), "kame")
		assert.ErrorIs(t, err, ErrLexiconUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		lex := NewHTTPLexicon(srv.URL, 20*time.Millisecond)
		_, err := lex.Lookup(context.Background(), "kame")
		assert.ErrorIs(t, err, ErrLexiconUnavailable)
	})

	t.Run("unreachable", func(t *testing.T) {
		lex := NewHTTPLexicon("http://127.0.0.1:1", 100*time.Millisecond)
		_, err := lex.Lookup(context.Background(), "kame")
		assert.ErrorIs(t, err, ErrLexiconUnavailable)
	})
}
