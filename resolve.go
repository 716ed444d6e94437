package navlang

import "sort"

// SentenceContext carries what the resolver may consult: the words of the
// sentence resolved so far, in order, up to but not including the current
// position.
type SentenceContext struct {
	Resolved []TaggedWord
	Position int
}

// prev returns the immediately preceding resolved word, or nil at the
// sentence start.
func (c *SentenceContext) prev() *TaggedWord {
	if c == nil || len(c.Resolved) == 0 {
		return nil
	}
	return &c.Resolved[len(c.Resolved)-1]
}

// transitiveVerbSeen reports whether a transitive verb has already been
// resolved in the sentence.
func (c *SentenceContext) transitiveVerbSeen() bool {
	if c == nil {
		return false
	}
	for i := range c.Resolved {
		w := &c.Resolved[i]
		if w.POS == POSVerb && w.Transitive {
			return true
		}
	}
	return false
}

// Resolve narrows a set of candidate decompositions to exactly one, using
// ranked tie-breaks:
//
//  1. prefer a part of speech consistent with the adjacent already-resolved
//     function words (vocative particle, adposition, leading attributive
//     adjective, genitive, number word);
//  2. prefer the decomposition inferring fewer morphemes;
//  3. prefer features compatible with a transitive verb already found in
//     the sentence (core argument cases);
//  4. prefer the lexically most frequent candidate;
//  5. fall back to the first candidate in the canonical ordering.
//
// The fallback makes resolution total and deterministic; an empty
// candidate set is the only error and signals an internal invariant
// violation in the caller.
func Resolve(candidates []Decomposition, sctx *SentenceContext) (Decomposition, error) {
	if len(candidates) == 0 {
		return Decomposition{}, ErrAmbiguityExhausted
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}

	cands := make([]Decomposition, len(candidates))
	copy(cands, candidates)
	sort.SliceStable(cands, func(i, j int) bool {
		return canonicalLess(&cands[i], &cands[j])
	})

	keep := func(pred func(*Decomposition) bool) {
		var kept []Decomposition
		for i := range cands {
			if pred(&cands[i]) {
				kept = append(kept, cands[i])
			}
		}
		if len(kept) > 0 {
			cands = kept
		}
	}

	// (1) positional consistency with adjacent resolved function words
	if prev := sctx.prev(); prev != nil {
		if want, restrict := expectedAfter(prev); restrict {
			keep(func(d *Decomposition) bool { return want.Has(d.POS) })
		}
	}

	// (2) fewer inferred morphemes
	minMorphs := len(cands[0].Morphemes)
	for i := range cands {
		if n := len(cands[i].Morphemes); n < minMorphs {
			minMorphs = n
		}
	}
	keep(func(d *Decomposition) bool { return len(d.Morphemes) == minMorphs })

	// (3) compatibility with a transitive verb's case frame
	if sctx.transitiveVerbSeen() {
		keep(func(d *Decomposition) bool {
			if d.POS != POSNoun && d.POS != POSPronoun {
				return false
			}
			return d.Features.Case == CaseAgentive || d.Features.Case == CasePatientive
		})
	}

	// (4) lexical frequency
	maxFreq := cands[0].Frequency
	for i := range cands {
		if cands[i].Frequency > maxFreq {
			maxFreq = cands[i].Frequency
		}
	}
	keep(func(d *Decomposition) bool { return d.Frequency == maxFreq })

	// (5) canonical ordering fallback: cands is already sorted
	return cands[0], nil
}

// expectedAfter returns the parts of speech a function word selects for on
// the following token, and whether it selects at all.
func expectedAfter(prev *TaggedWord) (POSSet, bool) {
	switch {
	case prev.POS == POSParticle && prev.Subtype == "vocative":
		return nominals, true
	case prev.POS == POSAdposition:
		return nominals, true
	case prev.POS == POSAdjective && prev.Features.Attrib == AttribNounFollows:
		return nominals, true
	case (prev.POS == POSNoun || prev.POS == POSPronoun) && prev.Features.Case == CaseGenitive:
		return NewPOSSet(POSNoun), true
	case prev.POS == POSNumber:
		return NewPOSSet(POSNoun), true
	}
	return 0, false
}
