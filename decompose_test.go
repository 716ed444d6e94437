package navlang

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookupFrom adapts an in-memory lexicon to the decomposer's lookup hook.
func lookupFrom(lex *MapLexicon) RootLookup {
	return func(root string) []Entry {
		es, _ := lex.Lookup(context.Background(), root)
		return es
	}
}

func TestDecomposeBareRoot(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	ds := g.Decompose("tute", lookup)
	require.Len(t, ds, 1)
	assert.Equal(t, "tute", ds[0].Root)
	assert.Equal(t, POSNoun, ds[0].POS)
	assert.Empty(t, ds[0].Morphemes)
	assert.Equal(t, CaseSubjective, ds[0].Features.Case)
}

func TestDecomposeCaseSuffixes(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	tests := []struct {
		token  string
		root   string
		caseOf Case
	}{
		{"Oel", "oe", CaseAgentive},        // -l after vowel
		{"utralìl", "utral", CaseAgentive}, // -ìl after consonant
		{"ngati", "nga", CasePatientive},   // -ti after vowel
		{"utralit", "utral", CasePatientive},
		{"swizawt", "swizaw", CasePatientive}, // -t after diphthong
		{"tuteru", "tute", CaseDative},
		{"tsmukanur", "tsmukan", CaseDative},
		{"swizawr", "swizaw", CaseDative},
		{"tuteri", "tute", CaseTopical},
		{"utralìri", "utral", CaseTopical},
		{"tsmukanä", "tsmukan", CaseGenitive},
	}
	for _, tt := range tests {
		ds := g.Decompose(tt.token, lookup)
		require.Len(t, ds, 1, "token %q", tt.token)
		assert.Equal(t, tt.root, ds[0].Root, "token %q", tt.token)
		assert.Equal(t, tt.caseOf, ds[0].Features.Case, "token %q", tt.token)
	}
}

func TestDecomposeAllomorphConditions(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	// -it requires a consonant-final stem; swizaw ends in a diphthong and
	// takes -t instead, so "swizawit" must not parse.
	assert.Empty(t, g.Decompose("swizawit", lookup))
	// -l requires a vowel-final stem.
	assert.Empty(t, g.Decompose("utrall", lookup))
}

func TestDecomposeInfixes(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	tests := []struct {
		token  string
		root   string
		tense  TenseAspect
		affect Affect
		finite bool
	}{
		{"kameie", "kame", TensePresent, AffectPositive, true},
		{"teraron", "taron", AspectImperfective, AffectNeutral, true},
		{"tamaron", "taron", TensePast, AffectNeutral, true},
		{"tusaron", "taron", ParticipleActive, AffectNeutral, false},
		{"tìmul", "tul", TenseRecentPast, AffectNeutral, true},
		{"tìrmul", "tul", TenseRecentPastImperfective, AffectNeutral, true},
		{"tasyaron", "taron", TenseFutureIntent, AffectNeutral, true},
		{"tilvul", "tul", MoodPerfectiveSubjunctive, AffectNeutral, true},
	}
	for _, tt := range tests {
		ds := g.Decompose(tt.token, lookup)
		require.Len(t, ds, 1, "token %q", tt.token)
		d := ds[0]
		assert.Equal(t, tt.root, d.Root, "token %q", tt.token)
		assert.Equal(t, POSVerb, d.POS)
		assert.Equal(t, tt.tense, d.Features.Tense, "token %q", tt.token)
		assert.Equal(t, tt.affect, d.Features.Affect, "token %q", tt.token)
		assert.Equal(t, tt.finite, d.Finite(), "token %q", tt.token)
	}
}

func TestDecomposeBothInfixSlots(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	// t·er·ar·ei·on: imperfective in slot one, positive affect in slot two.
	ds := g.Decompose("terareion", lookup)
	require.Len(t, ds, 1)
	assert.Equal(t, "taron", ds[0].Root)
	assert.Equal(t, AspectImperfective, ds[0].Features.Tense)
	assert.Equal(t, AffectPositive, ds[0].Features.Affect)
	assert.Len(t, ds[0].Morphemes, 2)
}

func TestDecomposeNumberPrefixLenition(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	tests := []struct {
		token  string
		root   string
		number Number
	}{
		{"mesute", "tute", NumberDual},       // me + tute, t lenites to s
		{"ayhilvan", "kilvan", NumberPlural}, // ay + kilvan, k lenites to h
		{"pxeswizaw", "swizaw", NumberTrial}, // s is not lenitable
		{"meutral", "utral", NumberDual},     // vowel-initial host
	}
	for _, tt := range tests {
		ds := g.Decompose(tt.token, lookup)
		require.Len(t, ds, 1, "token %q", tt.token)
		assert.Equal(t, tt.root, ds[0].Root, "token %q", tt.token)
		assert.Equal(t, tt.number, ds[0].Features.Number, "token %q", tt.token)
	}
}

func TestDecomposePrefixAndSuffix(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	// me + sute + ti: dual patientive.
	ds := g.Decompose("mesuteti", lookup)
	require.Len(t, ds, 1)
	assert.Equal(t, "tute", ds[0].Root)
	assert.Equal(t, NumberDual, ds[0].Features.Number)
	assert.Equal(t, CasePatientive, ds[0].Features.Case)
	assert.Len(t, ds[0].Morphemes, 2)
}

func TestDecomposeIrregularGenitive(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	ds := g.Decompose("ngeyä", lookup)
	require.Len(t, ds, 1)
	d := ds[0]
	assert.Equal(t, "nga", d.Root)
	assert.Equal(t, POSPronoun, d.POS)
	assert.Equal(t, CaseGenitive, d.Features.Case)
	assert.Equal(t, "ngeyä", d.Irregular)
	assert.Equal(t, "ngeyä", d.Reassemble())
}

func TestDecomposeEncliticAdposition(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	ds := g.Decompose("utralmì", lookup)
	require.Len(t, ds, 1)
	assert.Equal(t, "utral", ds[0].Root)
	assert.Equal(t, "mì", ds[0].Features.Adposition)
}

func TestDecomposeAttributiveAdjective(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	ds := g.Decompose("lora", lookup)
	require.Len(t, ds, 1)
	assert.Equal(t, "lor", ds[0].Root)
	assert.Equal(t, AttribNounFollows, ds[0].Features.Attrib)

	ds = g.Decompose("alor", lookup)
	require.Len(t, ds, 1)
	assert.Equal(t, "lor", ds[0].Root)
	assert.Equal(t, AttribNounPrecedes, ds[0].Features.Attrib)
}

func TestDecomposeHomonymousReadings(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	// ayoe is both a lexicalized pronoun and ay+oe; both readings survive
	// decomposition, in canonical order (fewer morphemes first).
	ds := g.Decompose("ayoe", lookup)
	require.Len(t, ds, 2)
	assert.Equal(t, "ayoe", ds[0].Root)
	assert.Empty(t, ds[0].Morphemes)
	assert.Equal(t, "oe", ds[1].Root)
	assert.Equal(t, NumberPlural, ds[1].Features.Number)
}

func TestDecomposeUnknownWord(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	assert.Empty(t, g.Decompose("fnulvek", lookup))
	assert.Empty(t, g.Decompose("zzz", lookup))
}

func TestDecomposeCaseRulesRejectVerbs(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	// tul is a verb; the agentive -l must not be stripped from "tul" even
	// though "tu" would be a phonologically valid stem.
	ds := g.Decompose("tul", lookup)
	require.Len(t, ds, 1)
	assert.Equal(t, POSVerb, ds[0].POS)
	assert.Empty(t, ds[0].Morphemes)
}

// TestDecomposeRoundTrip checks the structural invariant: reassembling any
// emitted decomposition reproduces the lowercased input token exactly.
func TestDecomposeRoundTrip(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	corpus := []string{
		"Oel", "ngati", "kameie", "tute", "mesute", "ayhilvan", "pxeswizaw",
		"meutral", "teraron", "tusaron", "tamaron", "terareion", "ngeyä",
		"oeyä", "tuteru", "tsmukanur", "swizawt", "utralìl", "utralìri",
		"mesuteti", "utralmì", "lora", "alor", "ayoe", "tìrmul", "tasyaron",
	}
	for _, token := range corpus {
		ds := g.Decompose(token, lookup)
		require.NotEmpty(t, ds, "token %q", token)
		for i := range ds {
			assert.Equal(t, strings.ToLower(token), ds[i].Reassemble(),
				"token %q root %q", token, ds[i].Root)
		}
	}
}

// TestDecomposeDeterministic runs the decomposer repeatedly over the same
// token and requires bit-identical candidate lists each time.
func TestDecomposeDeterministic(t *testing.T) {
	g := DefaultGrammar()
	lookup := lookupFrom(newTestLexicon())

	for _, token := range []string{"ayoe", "kameie", "mesute", "ngati"} {
		first := g.Decompose(token, lookup)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, g.Decompose(token, lookup), "token %q", token)
		}
	}
}
