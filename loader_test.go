package navlang

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataDir = "data"

func TestLoadDataDir(t *testing.T) {
	g, lex, err := LoadDataDir(dataDir)
	require.NoError(t, err)

	assert.Equal(t, "1", g.Version)
	// the shipped table mirrors the built-in grammar rule for rule
	assert.Len(t, g.Rules(), len(DefaultGrammar().Rules()))
	assert.Greater(t, lex.Len(), 50)

	entries, err := lex.Lookup(context.Background(), "kame")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, POSVerb, entries[0].POS)
	assert.True(t, entries[0].Transitive)

	entries, err = lex.Lookup(context.Background(), "ma")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "vocative", entries[0].Subtype)
}

// TestLoadedDataMatchesBuiltinGrammar runs the reference sentence through
// an analyzer built entirely from the data files.
func TestLoadedDataMatchesBuiltinGrammar(t *testing.T) {
	g, lex, err := LoadDataDir(dataDir)
	require.NoError(t, err)
	a, err := New(g, lex)
	require.NoError(t, err)

	an, err := a.AnalyzeSentence(context.Background(), "Oel ngati kameie")
	require.NoError(t, err)
	require.Empty(t, an.Issues)
	require.Len(t, an.Clauses, 1)
	assert.Equal(t, 2, an.Clauses[0].Root)
	assert.Equal(t, "oe", an.Words[0].Root)
	assert.Equal(t, "nga", an.Words[1].Root)
	assert.Equal(t, "kame", an.Words[2].Root)
}

func TestLoadGrammarIrregulars(t *testing.T) {
	g, err := LoadGrammar(filepath.Join(dataDir, "morphemes.nvi"))
	require.NoError(t, err)

	lookup := lookupFrom(newTestLexicon())
	ds := g.Decompose("ngeyä", lookup)
	require.Len(t, ds, 1)
	assert.Equal(t, "nga", ds[0].Root)
	assert.Equal(t, CaseGenitive, ds[0].Features.Case)
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGrammarErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing fields", "ti|suffix|case:patientive\n"},
		{"bad attachment", "ti|circumfix|case:patientive|n,pn|voweldiph|\n"},
		{"bad feature", "ti|suffix|sparkle:yes|n,pn|voweldiph|\n"},
		{"bad pos", "ti|suffix|case:patientive|xyz|voweldiph|\n"},
		{"bad condition", "ti|suffix|case:patientive|n,pn|whenever|\n"},
		{"dangling irregular", "irreg:ngeyä|nga|yä\n"},
		{"empty table", "! nothing here\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "morphemes.nvi", tt.content)
			_, err := LoadGrammar(path)
			assert.ErrorIs(t, err, ErrGrammar)
		})
	}

	_, err := LoadGrammar(filepath.Join(t.TempDir(), "absent.nvi"))
	assert.ErrorIs(t, err, ErrGrammar)
}

func TestLoadLexiconErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing fields", "tute|n\n"},
		{"bad pos", "tute|zz|person|10|\n"},
		{"bad frequency", "tute|n|person|lots|\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "lexicon.nvi", tt.content)
			_, err := LoadLexicon(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadLexiconFlags(t *testing.T) {
	path := writeTemp(t, "lexicon.nvi", `
! comment
taron|v|hunt|400|vtr
ma|part|vocative marker|300|vocative
tute|n|person|600|
`)
	lex, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, 3, lex.Len())

	es, _ := lex.Lookup(context.Background(), "taron")
	require.Len(t, es, 1)
	assert.True(t, es[0].Transitive)

	es, _ = lex.Lookup(context.Background(), "ma")
	require.Len(t, es, 1)
	assert.Equal(t, "vocative", es[0].Subtype)

	es, _ = lex.Lookup(context.Background(), "tute")
	require.Len(t, es, 1)
	assert.Equal(t, 600, es[0].Frequency)
	assert.False(t, es[0].Transitive)
}
