package navlang

import (
	"sort"
	"strings"
)

// RootLookup resolves a root candidate to its lexicon readings. The
// analyzer builds one per sentence, bound to the request context, memoized
// and recording lexicon outages; tests can pass a plain closure over a
// map.
type RootLookup func(root string) []Entry

// Decompose produces every plausible decomposition of a surface token
// against the morpheme table: recognized suffixes are stripped from the
// right, recognized prefixes from the left, and the remaining span is
// scanned for infixes in the two legal verb slots. A decomposition is kept
// only if the leftover root has a lexicon reading, every matched rule
// applies to that reading's part of speech, and reassembling the morphemes
// reproduces the token exactly.
//
// Homonymous roots deliberately yield multiple decompositions; an empty
// result means the token is an unknown word, which the caller records
// without failing the sentence.
func (g *Grammar) Decompose(token string, lookup RootLookup) []Decomposition {
	surface := strings.ToLower(token)
	var out []Decomposition
	seen := make(map[string]bool)

	add := func(root string, rules []*MorphemeRule, irregular string) {
		for _, e := range lookup(root) {
			applicable := true
			for _, r := range rules {
				if !r.AppliesTo.Has(e.POS) {
					applicable = false
					break
				}
			}
			if !applicable {
				continue
			}
			d := Decomposition{
				Surface:    surface,
				Root:       root,
				POS:        e.POS,
				Gloss:      e.Gloss,
				Morphemes:  rules,
				Features:   bundleFeatures(rules),
				Frequency:  e.Frequency,
				Transitive: e.Transitive,
				Subtype:    e.Subtype,
				Irregular:  irregular,
			}
			// Round-trip invariant: whatever we claim was stripped must
			// rebuild the original token.
			if d.Reassemble() != surface {
				continue
			}
			key := fingerprint(&d)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, d)
		}
	}

	// Suppletive forms match the whole token exactly.
	if irr, ok := g.irregulars[surface]; ok {
		add(irr.Root, []*MorphemeRule{irr.Rule}, surface)
	}

	// The token may be a bare root.
	add(surface, nil, "")

	// Strip one case/attributive/adposition suffix from the right, then
	// one number/attributive prefix from the left, reversing lenition
	// under the leniting number prefixes.
	type span struct {
		stem  string
		rules []*MorphemeRule
	}
	spans := []span{{surface, nil}}
	for _, r := range g.suffixes {
		if !strings.HasSuffix(surface, r.Surface) {
			continue
		}
		stem := surface[:len(surface)-len(r.Surface)]
		if stem == "" || !r.Cond.holds(stem) {
			continue
		}
		spans = append(spans, span{stem, []*MorphemeRule{r}})
	}
	for _, sp := range spans {
		if len(sp.rules) > 0 {
			add(sp.stem, sp.rules, "")
		}
		for _, r := range g.prefixes {
			if !strings.HasPrefix(sp.stem, r.Surface) {
				continue
			}
			rest := sp.stem[len(r.Surface):]
			if rest == "" {
				continue
			}
			hosts := []string{rest}
			if r.Lenites {
				hosts = unleniteCandidates(rest)
			}
			for _, host := range hosts {
				rules := make([]*MorphemeRule, 0, len(sp.rules)+1)
				rules = append(rules, r)
				rules = append(rules, sp.rules...)
				add(host, rules, "")
			}
		}
	}

	// Scan the token for verb infixes: at most one per slot. Candidate
	// extraction is generous; the reassembly check rejects removals that
	// did not come from a legal insertion point.
	infix1Opts := append([]*MorphemeRule{nil}, g.infix1...)
	infix2Opts := append([]*MorphemeRule{nil}, g.infix2...)
	for _, f2 := range infix2Opts {
		for _, mid := range stripInfix(surface, f2) {
			for _, f1 := range infix1Opts {
				if f1 == nil && f2 == nil {
					continue // bare root handled above
				}
				for _, root := range stripInfix(mid, f1) {
					var rules []*MorphemeRule
					if f1 != nil {
						rules = append(rules, f1)
					}
					if f2 != nil {
						rules = append(rules, f2)
					}
					add(root, rules, "")
				}
			}
		}
	}

	// Canonical ordering keeps the resolver's fallback deterministic.
	sort.SliceStable(out, func(i, j int) bool {
		return canonicalLess(&out[i], &out[j])
	})
	return out
}

// stripInfix returns every string obtained by removing one occurrence of
// the rule's surface from s. A nil rule is the "no infix in this slot"
// option and returns s unchanged.
func stripInfix(s string, r *MorphemeRule) []string {
	if r == nil {
		return []string{s}
	}
	sub := r.Surface
	var out []string
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			out = append(out, s[:i]+s[i+len(sub):])
		}
	}
	return out
}

// bundleFeatures folds the features encoded by each matched rule into one
// bundle. Unset fields keep their unmarked zero values.
func bundleFeatures(rules []*MorphemeRule) FeatureBundle {
	var f FeatureBundle
	for _, r := range rules {
		switch r.Feature.Class {
		case FeatCase:
			f.Case = r.Feature.Case
		case FeatNumber:
			f.Number = r.Feature.Number
		case FeatTenseAspect:
			f.Tense = r.Feature.Tense
		case FeatAffect:
			f.Affect = r.Feature.Affect
		case FeatDerivation:
			f.Derivation = r.Feature.Derivation
		case FeatAttributive:
			f.Attrib = r.Feature.Attrib
		case FeatAdposition:
			f.Adposition = r.Feature.Adposition
		}
	}
	return f
}

// fingerprint identifies a decomposition for deduplication: the same root,
// reading and rule sequence can be reached by more than one search path.
func fingerprint(d *Decomposition) string {
	var b strings.Builder
	b.WriteString(d.Root)
	b.WriteByte('|')
	b.WriteString(d.POS.String())
	b.WriteByte('|')
	b.WriteString(d.Gloss)
	for _, r := range d.Morphemes {
		b.WriteByte('|')
		b.WriteString(r.Attachment.String())
		b.WriteByte(':')
		b.WriteString(r.Surface)
	}
	return b.String()
}

// canonicalLess is the stable, pre-defined ordering of decompositions:
// part-of-speech enum order first, then fewer morphemes, then root, then
// the morpheme sequence. The resolver's last-resort fallback picks the
// first candidate under this ordering.
func canonicalLess(a, b *Decomposition) bool {
	if a.POS != b.POS {
		return a.POS < b.POS
	}
	if len(a.Morphemes) != len(b.Morphemes) {
		return len(a.Morphemes) < len(b.Morphemes)
	}
	if a.Root != b.Root {
		return a.Root < b.Root
	}
	return fingerprint(a) < fingerprint(b)
}
