package navlang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLexicon builds the lexicon used across the package tests. It is
// code-built so the unit tests do not depend on the data files; the loader
// tests cover those.
func newTestLexicon() *MapLexicon {
	lex := NewMapLexicon()
	for _, e := range []Entry{
		{Root: "oe", POS: POSPronoun, Gloss: "I", Frequency: 950},
		{Root: "nga", POS: POSPronoun, Gloss: "you", Frequency: 900},
		{Root: "po", POS: POSPronoun, Gloss: "he, she", Frequency: 700},
		{Root: "ayoe", POS: POSPronoun, Gloss: "we (exclusive)", Frequency: 180},
		{Root: "kame", POS: POSVerb, Gloss: "see, see into", Frequency: 320, Transitive: true},
		{Root: "taron", POS: POSVerb, Gloss: "hunt", Frequency: 400, Transitive: true},
		{Root: "tul", POS: POSVerb, Gloss: "run", Frequency: 260},
		{Root: "hahaw", POS: POSVerb, Gloss: "sleep", Frequency: 180},
		{Root: "lu", POS: POSVerb, Gloss: "be", Frequency: 990},
		{Root: "tute", POS: POSNoun, Gloss: "person", Frequency: 600},
		{Root: "tsmukan", POS: POSNoun, Gloss: "brother", Frequency: 210},
		{Root: "utral", POS: POSNoun, Gloss: "tree", Frequency: 170},
		{Root: "kilvan", POS: POSNoun, Gloss: "river", Frequency: 140},
		{Root: "swizaw", POS: POSNoun, Gloss: "arrow", Frequency: 90},
		{Root: "ikran", POS: POSNoun, Gloss: "banshee", Frequency: 230},
		{Root: "kelku", POS: POSNoun, Gloss: "home, house", Frequency: 260},
		{Root: "lor", POS: POSAdjective, Gloss: "beautiful", Frequency: 160},
		{Root: "ma", POS: POSParticle, Gloss: "vocative marker", Frequency: 300, Subtype: "vocative"},
		{Root: "srak", POS: POSParticle, Gloss: "question marker", Frequency: 180, Subtype: "question"},
		{Root: "ulte", POS: POSParticle, Gloss: "and (clausal)", Frequency: 260, Subtype: "conjunction"},
		{Root: "mì", POS: POSAdposition, Gloss: "in", Frequency: 280},
		{Root: "mune", POS: POSNumber, Gloss: "two", Frequency: 100},
	} {
		lex.Add(e)
	}
	return lex
}

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := New(DefaultGrammar(), newTestLexicon())
	require.NoError(t, err)
	return a
}

func TestNewRequiresGrammar(t *testing.T) {
	_, err := New(nil, newTestLexicon())
	assert.ErrorIs(t, err, ErrGrammar)

	_, err = New(&Grammar{}, newTestLexicon())
	assert.ErrorIs(t, err, ErrGrammar)
}

// TestAnalyzeSentenceExample is the reference scenario: "Oel ngati kameie"
// (I see you). Oel is the agentive pronoun oe, ngati the patientive
// pronoun nga, kameie the verb kame with the positive-affect infix — a
// finite verb rooting the single clause.
func TestAnalyzeSentenceExample(t *testing.T) {
	a := newTestAnalyzer(t)
	an, err := a.AnalyzeSentence(context.Background(), "Oel ngati kameie")
	require.NoError(t, err)
	require.Len(t, an.Words, 3)
	assert.False(t, an.Verbless)
	assert.Empty(t, an.Issues)

	oel := an.Words[0]
	assert.Equal(t, POSPronoun, oel.POS)
	assert.Equal(t, "oe", oel.Root)
	assert.Equal(t, CaseAgentive, oel.Features.Case)

	ngati := an.Words[1]
	assert.Equal(t, POSPronoun, ngati.POS)
	assert.Equal(t, "nga", ngati.Root)
	assert.Equal(t, CasePatientive, ngati.Features.Case)

	kameie := an.Words[2]
	assert.Equal(t, POSVerb, kameie.POS)
	assert.Equal(t, "kame", kameie.Root)
	assert.Equal(t, AffectPositive, kameie.Features.Affect)
	assert.True(t, kameie.Finite())

	require.Len(t, an.Clauses, 1)
	assert.Equal(t, 2, an.Clauses[0].Root)
	assert.Contains(t, an.Edges, DependencyEdge{Head: 2, Dependent: 0, Relation: RelSubject})
	assert.Contains(t, an.Edges, DependencyEdge{Head: 2, Dependent: 1, Relation: RelObject})
}

func TestAnalyzeSentenceUnknownWordDoesNotAbort(t *testing.T) {
	a := newTestAnalyzer(t)
	an, err := a.AnalyzeSentence(context.Background(), "Oel fnulvek kameie")
	require.NoError(t, err)
	require.Len(t, an.Words, 3)

	assert.True(t, an.Words[1].Unresolved)
	require.Len(t, an.Issues, 1)
	assert.Equal(t, IssueUnknownWord, an.Issues[0].Kind)
	assert.Equal(t, 1, an.Issues[0].Position)
	assert.Equal(t, "fnulvek", an.Issues[0].Token)

	// the rest of the sentence is still analyzed
	assert.Contains(t, an.Edges, DependencyEdge{Head: 2, Dependent: 0, Relation: RelSubject})
	assert.Contains(t, an.Edges, DependencyEdge{Head: 2, Dependent: 1, Relation: RelUnknown})
}

func TestAnalyzeSentenceMalformedToken(t *testing.T) {
	a := newTestAnalyzer(t)
	an, err := a.AnalyzeSentence(context.Background(), "oel jberg kameie")
	require.NoError(t, err)
	require.Len(t, an.Issues, 1)
	assert.Equal(t, IssueMalformedToken, an.Issues[0].Kind)
	assert.True(t, an.Words[1].Unresolved)
}

type failingLexicon struct{}

func (failingLexicon) Lookup(context.Context, string) ([]Entry, error) {
	return nil, ErrLexiconUnavailable
}

func TestAnalyzeSentenceLexiconOutageDegrades(t *testing.T) {
	a, err := New(DefaultGrammar(), failingLexicon{})
	require.NoError(t, err)

	an, err := a.AnalyzeSentence(context.Background(), "oe tul")
	require.NoError(t, err)
	require.Len(t, an.Issues, 2)
	for _, is := range an.Issues {
		assert.Equal(t, IssueLexiconUnavailable, is.Kind)
	}
	assert.True(t, an.Verbless)
}

func TestAnalyzeSentenceCancellation(t *testing.T) {
	a := newTestAnalyzer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.AnalyzeSentence(ctx, "oel ngati kameie")
	assert.ErrorIs(t, err, context.Canceled)
}
