package navlang

// Assemble builds the dependency structure for a resolved sentence.
// Na'vi marks grammatical relations on the noun, not by position, so the
// tree is driven by case features: every finite verb roots its own clause
// tree, nouns and pronouns attach to their clause verb with the relation
// their case encodes, genitives attach to the nearest noun, and
// adjectives, adpositions, numbers and particles attach to the word they
// govern or agree with.
//
// A sentence with several finite verbs is split into independent clause
// trees rather than forced under an invented coordination relation. A
// sentence with no finite verb is flagged verbless — a recognized
// classification, not an error — and only noun-internal relations are
// resolved.
func Assemble(words []TaggedWord) (clauses []ClauseTree, edges []DependencyEdge, verbless bool) {
	var verbs []int
	for i := range words {
		if words[i].Finite() {
			verbs = append(verbs, i)
		}
	}
	verbless = len(verbs) == 0

	// clauseOf assigns a word to the nearest finite verb; equidistant
	// words join the preceding verb's clause.
	clauseOf := func(i int) int {
		best, bestDist := 0, int(^uint(0)>>1)
		for k, v := range verbs {
			d := v - i
			if d < 0 {
				d = -d
			}
			if d < bestDist {
				best, bestDist = k, d
			}
		}
		return best
	}

	isNominal := func(i int) bool {
		p := words[i].POS
		return p == POSNoun || p == POSPronoun
	}
	nearestNominal := func(from, dir int) int {
		for j := from + dir; j >= 0 && j < len(words); j += dir {
			if isNominal(j) {
				return j
			}
		}
		return -1
	}
	nearestNominalEither := func(from int) int {
		back, fwd := nearestNominal(from, -1), nearestNominal(from, +1)
		switch {
		case back < 0:
			return fwd
		case fwd < 0:
			return back
		case from-back <= fwd-from:
			return back
		default:
			return fwd
		}
	}

	addEdge := func(head, dep int, rel Relation) {
		edges = append(edges, DependencyEdge{Head: head, Dependent: dep, Relation: rel})
	}

	for i := range words {
		w := &words[i]
		if w.Finite() {
			continue // clause roots have no incoming edge
		}
		clauseVerb := -1
		if !verbless {
			clauseVerb = verbs[clauseOf(i)]
		}

		switch {
		case w.Unresolved:
			if clauseVerb >= 0 {
				addEdge(clauseVerb, i, RelUnknown)
			}

		case isNominal(i):
			if w.Features.Case == CaseGenitive {
				// Genitives modify a noun, preferring the nearest
				// preceding one. A preceding genitive is never a valid
				// head: stacked genitives would attach to each other and
				// detach from the clause. The forward search may land on
				// one, so "oeyä tsmukanä kelku" chains left to right; a
				// genitive with no noun at all falls back to the verb so
				// the tree stays connected.
				h := -1
				for j := i - 1; j >= 0; j-- {
					if isNominal(j) && words[j].Features.Case != CaseGenitive {
						h = j
						break
					}
				}
				if h < 0 {
					h = nearestNominal(i, +1)
				}
				if h >= 0 {
					addEdge(h, i, RelGenitive)
				} else if clauseVerb >= 0 {
					addEdge(clauseVerb, i, RelGenitive)
				}
				continue
			}
			if clauseVerb < 0 {
				continue // verbless: core relations stay unresolved
			}
			if w.Features.Adposition != "" {
				addEdge(clauseVerb, i, RelOblique)
				continue
			}
			addEdge(clauseVerb, i, RelationForCase(w.Features.Case))

		case w.POS == POSVerb:
			// Non-finite (participial) verb: attributive on a noun.
			if h := nearestNominalEither(i); h >= 0 {
				addEdge(h, i, RelModifier)
			} else if clauseVerb >= 0 {
				addEdge(clauseVerb, i, RelModifier)
			}

		case w.POS == POSAdjective:
			h := -1
			switch w.Features.Attrib {
			case AttribNounFollows:
				h = nearestNominal(i, +1)
			case AttribNounPrecedes:
				h = nearestNominal(i, -1)
			default:
				h = nearestNominalEither(i)
			}
			if h < 0 {
				h = clauseVerb
			}
			if h >= 0 {
				addEdge(h, i, RelModifier)
			}

		case w.POS == POSAdposition:
			// Free adpositions precede the noun they govern.
			h := nearestNominal(i, +1)
			if h < 0 {
				h = nearestNominal(i, -1)
			}
			if h < 0 {
				h = clauseVerb
			}
			if h >= 0 {
				addEdge(h, i, RelAdposition)
			}

		case w.POS == POSNumber:
			h := nearestNominalEither(i)
			if h < 0 {
				h = clauseVerb
			}
			if h >= 0 {
				addEdge(h, i, RelModifier)
			}

		case w.POS == POSParticle:
			if w.Subtype == "vocative" {
				if h := nearestNominal(i, +1); h >= 0 {
					addEdge(h, i, RelVocative)
					continue
				}
			}
			if clauseVerb >= 0 {
				addEdge(clauseVerb, i, RelParticle)
			}

		default:
			if clauseVerb >= 0 {
				addEdge(clauseVerb, i, RelModifier)
			}
		}
	}

	if !verbless {
		clauses = make([]ClauseTree, len(verbs))
		for k, v := range verbs {
			clauses[k].Root = v
		}
		for _, e := range edges {
			k := clauseOf(e.Dependent)
			clauses[k].Edges = append(clauses[k].Edges, e)
		}
	}
	return clauses, edges, verbless
}
