package navlang

// WordForm is a surface token with its stable sentence position.
type WordForm struct {
	Text     string
	Position int
}

// FeatureBundle is the set of grammatical features resolved for one word.
// Zero values are the unmarked defaults: subjective case, singular number,
// present tense, neutral affect.
type FeatureBundle struct {
	Case       Case
	Number     Number
	Tense      TenseAspect
	Affect     Affect
	Derivation Derivation
	Attrib     AttribPosition
	Adposition string
}

// Decomposition is one candidate parse of a word form: the root, the
// ordered morphemes applied to it, and the resulting features. Several
// decompositions may coexist for a token until the resolver picks one.
type Decomposition struct {
	// Surface is the original token, lowercased.
	Surface string
	// Root is the lexicon root left after stripping all morphemes.
	Root string
	// POS is the part of speech of the root's lexicon entry.
	POS PartOfSpeech
	// Gloss is the base meaning from the lexicon.
	Gloss string
	// Morphemes lists the applied rules in attachment order
	// (prefix, infix-1, infix-2, suffix).
	Morphemes []*MorphemeRule
	// Features is the feature bundle the morphemes produce.
	Features FeatureBundle
	// Frequency is the lexicon occurrence count, used as a tie-break.
	Frequency int
	// Transitive is carried from verb lexicon entries.
	Transitive bool
	// Subtype is carried from particle lexicon entries (vocative, question).
	Subtype string
	// Irregular holds the suppletive surface form when the decomposition
	// came from the irregular table; reassembly returns it verbatim since
	// suppletion replaces regular affixation.
	Irregular string
	// Unresolved marks the zero-length decomposition of an unknown word.
	Unresolved bool
}

// Reassemble rebuilds the surface form from root and morphemes in
// attachment order. For every decomposition the decomposer emits,
// Reassemble(d) == d.Surface (the round-trip invariant).
func (d *Decomposition) Reassemble() string {
	if d.Unresolved {
		return d.Surface
	}
	if d.Irregular != "" {
		return d.Irregular
	}
	return applyMorphemes(d.Root, d.Morphemes)
}

// Finite reports whether the decomposition is a finite verb: a verb not
// carrying participial marking. Unmarked tense is the finite present.
func (d *Decomposition) Finite() bool {
	return d.POS == POSVerb && !d.Features.Tense.Participle()
}

// TaggedWord is the single chosen decomposition for a word form.
type TaggedWord struct {
	Form WordForm
	Decomposition
}

// DependencyEdge is a grammatical relation between two words, identified
// by sentence position.
type DependencyEdge struct {
	Head      int
	Dependent int
	Relation  Relation
}

// ClauseTree is one dependency tree rooted at a finite verb. A sentence
// with several finite verbs yields several independent clause trees.
type ClauseTree struct {
	Root  int
	Edges []DependencyEdge
}

// SentenceAnalysis is the immutable result of analyzing one sentence. The
// analyzer holds no reference to it once returned.
type SentenceAnalysis struct {
	// Text is the raw input sentence.
	Text string
	// Words are the tagged words in sentence order.
	Words []TaggedWord
	// Edges is the full dependency edge set across all clauses.
	Edges []DependencyEdge
	// Clauses are the per-verb dependency trees.
	Clauses []ClauseTree
	// Verbless is set when no finite verb was found. This is a recognized
	// classification, not an error.
	Verbless bool
	// Issues lists per-token problems (unknown or malformed tokens,
	// lexicon outages). A non-empty list does not abort the sentence.
	Issues []TokenIssue
}

// BatchResult is the output of the batch entry point: one analysis or
// error per input sentence, in input order, plus the part-of-speech tally
// across all successfully analyzed words.
type BatchResult struct {
	// ID identifies the batch run.
	ID string
	// Analyses holds one entry per input sentence, in input order. An
	// entry is nil exactly when the corresponding Errs entry is non-nil.
	Analyses []*SentenceAnalysis
	// Errs holds per-sentence error markers, in input order.
	Errs []error
	// POSTally counts resolved words by part of speech across the batch.
	POSTally map[PartOfSpeech]int
}
