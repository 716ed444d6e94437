package navlang

import "strings"

// Attachment is where a morpheme attaches to its host. Verbs have exactly
// two legal infix slots: before the vowel of the penultimate syllable and
// before the vowel of the final syllable.
type Attachment uint8

const (
	AttachPrefix Attachment = iota
	AttachInfix1
	AttachInfix2
	AttachSuffix
)

func (a Attachment) String() string {
	switch a {
	case AttachPrefix:
		return "prefix"
	case AttachInfix1:
		return "infix-1"
	case AttachInfix2:
		return "infix-2"
	default:
		return "suffix"
	}
}

// FeatureClass discriminates what grammatical feature a morpheme encodes.
type FeatureClass uint8

const (
	FeatCase FeatureClass = iota
	FeatNumber
	FeatTenseAspect
	FeatAffect
	FeatDerivation
	FeatAttributive
	FeatAdposition
)

// Feature is the single grammatical feature encoded by a morpheme rule.
// Exactly one of the value fields is meaningful, selected by Class.
type Feature struct {
	Class      FeatureClass
	Case       Case
	Number     Number
	Tense      TenseAspect
	Affect     Affect
	Derivation Derivation
	Attrib     AttribPosition
	Adposition string
}

// phonoCond restricts a suffix allomorph to hosts with a particular final
// sound, e.g. the patientive is -ti after a vowel but -it after a consonant.
type phonoCond uint8

const (
	condAny phonoCond = iota
	condVowel
	condConsonant
	condVowelOrDiphthong
	condDiphthong
	condNotVowel
	condVowelNotOU
	condConsOrOU
)

func (c phonoCond) holds(stem string) bool {
	vowel := EndsWithVowel(stem)
	diph := EndsWithDiphthong(stem)
	switch c {
	case condVowel:
		return vowel
	case condConsonant:
		return !vowel && !diph
	case condVowelOrDiphthong:
		return vowel || diph
	case condDiphthong:
		return diph
	case condNotVowel:
		return !vowel
	case condVowelNotOU:
		return vowel && !strings.HasSuffix(stem, "o") && !strings.HasSuffix(stem, "u")
	case condConsOrOU:
		return !vowel || strings.HasSuffix(stem, "o") || strings.HasSuffix(stem, "u")
	default:
		return true
	}
}

// MorphemeRule describes one recognized affix, infix or case ending.
// Rules are created once at grammar load time and never mutated.
type MorphemeRule struct {
	// Surface is the written form of the morpheme.
	Surface string
	// Gloss is a short human-readable label.
	Gloss string
	// Attachment is the attachment class.
	Attachment Attachment
	// AppliesTo restricts the parts of speech the rule may attach to.
	AppliesTo POSSet
	// Feature is the grammatical feature the rule encodes.
	Feature Feature
	// Cond restricts suffix allomorphs by the host's final sound.
	Cond phonoCond
	// Lenites marks prefixes that mutate the host's initial consonant.
	Lenites bool
}

// irregularForm is a suppletive surface form, such as the pronoun genitives
// (nga → ngeyä), that replaces regular affixation for one root and rule.
type irregularForm struct {
	Surface string
	Root    string
	Rule    *MorphemeRule
}

// Grammar is the process-wide, read-only morpheme table. It is fully
// constructed before being handed to any analysis worker and is shared by
// all concurrent analyses without locking.
type Grammar struct {
	Version string

	prefixes []*MorphemeRule
	suffixes []*MorphemeRule
	infix1   []*MorphemeRule
	infix2   []*MorphemeRule

	// irregulars maps an exact surface form to its suppletive analysis.
	irregulars map[string]irregularForm
}

// Rules returns every rule in the table, grouped by attachment class in
// prefix, infix-1, infix-2, suffix order.
func (g *Grammar) Rules() []*MorphemeRule {
	out := make([]*MorphemeRule, 0,
		len(g.prefixes)+len(g.infix1)+len(g.infix2)+len(g.suffixes))
	out = append(out, g.prefixes...)
	out = append(out, g.infix1...)
	out = append(out, g.infix2...)
	out = append(out, g.suffixes...)
	return out
}

func (g *Grammar) addRule(r *MorphemeRule) {
	switch r.Attachment {
	case AttachPrefix:
		g.prefixes = append(g.prefixes, r)
	case AttachInfix1:
		g.infix1 = append(g.infix1, r)
	case AttachInfix2:
		g.infix2 = append(g.infix2, r)
	default:
		g.suffixes = append(g.suffixes, r)
	}
}

func (g *Grammar) addIrregular(surface, root string, rule *MorphemeRule) {
	g.irregulars[surface] = irregularForm{Surface: surface, Root: root, Rule: rule}
}

// findRule returns the first rule with the given attachment class and
// surface, used by the loader to attach irregular forms to their rule.
func (g *Grammar) findRule(attachment Attachment, surface string) *MorphemeRule {
	for _, r := range g.Rules() {
		if r.Attachment == attachment && r.Surface == surface {
			return r
		}
	}
	return nil
}

// nominals is the applicability mask shared by all case and number rules.
var nominals = NewPOSSet(POSNoun, POSPronoun)

// DefaultGrammar builds the published Na'vi morpheme table. The same table
// ships as data/morphemes.nvi for the file loader; this constructor keeps
// tests independent of data files.
func DefaultGrammar() *Grammar {
	g := &Grammar{
		Version:    "1",
		irregulars: make(map[string]irregularForm),
	}

	caseRule := func(surface string, c Case, cond phonoCond) *MorphemeRule {
		r := &MorphemeRule{
			Surface:    surface,
			Gloss:      c.String(),
			Attachment: AttachSuffix,
			AppliesTo:  nominals,
			Feature:    Feature{Class: FeatCase, Case: c},
			Cond:       cond,
		}
		g.addRule(r)
		return r
	}

	// Case endings with their phonologically conditioned allomorphs.
	caseRule("l", CaseAgentive, condVowel)
	caseRule("ìl", CaseAgentive, condNotVowel) // consonant- and diphthong-final
	caseRule("ti", CasePatientive, condVowelOrDiphthong)
	caseRule("it", CasePatientive, condConsonant)
	caseRule("t", CasePatientive, condDiphthong)
	caseRule("ru", CaseDative, condVowelOrDiphthong)
	caseRule("ur", CaseDative, condConsonant)
	caseRule("r", CaseDative, condDiphthong)
	genYae := caseRule("yä", CaseGenitive, condVowelNotOU)
	caseRule("ä", CaseGenitive, condConsOrOU)
	caseRule("ri", CaseTopical, condVowelOrDiphthong)
	caseRule("ìri", CaseTopical, condConsonant)

	// Number prefixes; all three trigger lenition on the host.
	numberRule := func(surface string, n Number) {
		g.addRule(&MorphemeRule{
			Surface:    surface,
			Gloss:      n.String(),
			Attachment: AttachPrefix,
			AppliesTo:  nominals,
			Feature:    Feature{Class: FeatNumber, Number: n},
			Lenites:    true,
		})
	}
	numberRule("me", NumberDual)
	numberRule("pxe", NumberTrial)
	numberRule("ay", NumberPlural)

	// First-slot verb infixes: tense, aspect, mood and valence derivation.
	verbs := NewPOSSet(POSVerb)
	infix1 := func(surface, gloss string, feat Feature) {
		g.addRule(&MorphemeRule{
			Surface:    surface,
			Gloss:      gloss,
			Attachment: AttachInfix1,
			AppliesTo:  verbs,
			Feature:    feat,
		})
	}
	infix1("am", "past", Feature{Class: FeatTenseAspect, Tense: TensePast})
	infix1("ìm", "recent past", Feature{Class: FeatTenseAspect, Tense: TenseRecentPast})
	infix1("ay", "future", Feature{Class: FeatTenseAspect, Tense: TenseFuture})
	infix1("ìy", "near future", Feature{Class: FeatTenseAspect, Tense: TenseNearFuture})
	infix1("ol", "perfective", Feature{Class: FeatTenseAspect, Tense: AspectPerfective})
	infix1("er", "imperfective", Feature{Class: FeatTenseAspect, Tense: AspectImperfective})
	infix1("iv", "subjunctive", Feature{Class: FeatTenseAspect, Tense: MoodSubjunctive})
	infix1("us", "active participle", Feature{Class: FeatTenseAspect, Tense: ParticipleActive})
	infix1("awn", "passive participle", Feature{Class: FeatTenseAspect, Tense: ParticiplePassive})
	infix1("äp", "reflexive", Feature{Class: FeatDerivation, Derivation: DerivationReflexive})
	infix1("eyk", "causative", Feature{Class: FeatDerivation, Derivation: DerivationCausative})

	// Combined first-slot infixes fuse tense with aspect, intent or mood.
	infix1("arm", "past imperfective", Feature{Class: FeatTenseAspect, Tense: TensePastImperfective})
	infix1("alm", "past perfective", Feature{Class: FeatTenseAspect, Tense: TensePastPerfective})
	infix1("ìrm", "recent past imperfective", Feature{Class: FeatTenseAspect, Tense: TenseRecentPastImperfective})
	infix1("ìlm", "recent past perfective", Feature{Class: FeatTenseAspect, Tense: TenseRecentPastPerfective})
	infix1("ary", "future imperfective", Feature{Class: FeatTenseAspect, Tense: TenseFutureImperfective})
	infix1("aly", "future perfective", Feature{Class: FeatTenseAspect, Tense: TenseFuturePerfective})
	infix1("ìry", "near future imperfective", Feature{Class: FeatTenseAspect, Tense: TenseNearFutureImperfective})
	infix1("ìly", "near future perfective", Feature{Class: FeatTenseAspect, Tense: TenseNearFuturePerfective})
	infix1("asy", "future intentional", Feature{Class: FeatTenseAspect, Tense: TenseFutureIntent})
	infix1("ìsy", "near future intentional", Feature{Class: FeatTenseAspect, Tense: TenseNearFutureIntent})
	infix1("imv", "past subjunctive", Feature{Class: FeatTenseAspect, Tense: MoodPastSubjunctive})
	infix1("iyev", "future subjunctive", Feature{Class: FeatTenseAspect, Tense: MoodFutureSubjunctive})
	infix1("ìyev", "future subjunctive", Feature{Class: FeatTenseAspect, Tense: MoodFutureSubjunctive})
	infix1("ilv", "perfective subjunctive", Feature{Class: FeatTenseAspect, Tense: MoodPerfectiveSubjunctive})
	infix1("irv", "imperfective subjunctive", Feature{Class: FeatTenseAspect, Tense: MoodImperfectiveSubjunctive})

	// Second-slot verb infixes: affect and evidentiality.
	infix2 := func(surface, gloss string, a Affect) {
		g.addRule(&MorphemeRule{
			Surface:    surface,
			Gloss:      gloss,
			Attachment: AttachInfix2,
			AppliesTo:  verbs,
			Feature:    Feature{Class: FeatAffect, Affect: a},
		})
	}
	infix2("ei", "positive affect", AffectPositive)
	infix2("äng", "negative affect", AffectNegative)
	infix2("uy", "formal", AffectFormal)
	infix2("ats", "inferential", AffectInferential)

	// Attributive adjective marking; the -a faces the noun.
	adjectives := NewPOSSet(POSAdjective)
	g.addRule(&MorphemeRule{
		Surface:    "a",
		Gloss:      "attributive (noun follows)",
		Attachment: AttachSuffix,
		AppliesTo:  adjectives,
		Feature:    Feature{Class: FeatAttributive, Attrib: AttribNounFollows},
	})
	g.addRule(&MorphemeRule{
		Surface:    "a",
		Gloss:      "attributive (noun precedes)",
		Attachment: AttachPrefix,
		AppliesTo:  adjectives,
		Feature:    Feature{Class: FeatAttributive, Attrib: AttribNounPrecedes},
	})

	// Enclitic adpositions on nouns and pronouns.
	adp := func(surface, gloss string) {
		g.addRule(&MorphemeRule{
			Surface:    surface,
			Gloss:      gloss,
			Attachment: AttachSuffix,
			AppliesTo:  nominals,
			Feature:    Feature{Class: FeatAdposition, Adposition: surface},
		})
	}
	adp("mì", "in")
	adp("ne", "to, towards")
	adp("ta", "from")
	adp("hu", "with")
	adp("fa", "by means of")
	adp("ka", "across")

	// Suppletive pronoun genitives replace regular -ä/-yä affixation.
	for form, root := range map[string]string{
		"oeyä":   "oe",
		"ngeyä":  "nga",
		"peyä":   "po",
		"feyä":   "fo",
		"fkeyä":  "fko",
		"sneyä":  "sno",
		"tseyä":  "tsaw",
		"moeyä":  "moe",
		"pxoeyä": "pxoe",
		"ayoeyä": "ayoe",
	} {
		g.addIrregular(form, root, genYae)
	}

	return g
}

// applyMorphemes reassembles a surface form from a root and a rule set.
// Infixes are inserted at offsets computed on the bare root, later slot
// first so the earlier offset stays valid; a leniting prefix mutates the
// host before concatenation; suffixes are appended. This is the inverse
// the decomposer's round-trip check verifies against.
func applyMorphemes(root string, rules []*MorphemeRule) string {
	var in1, in2 *MorphemeRule
	var prefixes, suffixes []*MorphemeRule
	for _, r := range rules {
		switch r.Attachment {
		case AttachInfix1:
			in1 = r
		case AttachInfix2:
			in2 = r
		case AttachPrefix:
			prefixes = append(prefixes, r)
		default:
			suffixes = append(suffixes, r)
		}
	}

	form := root
	if in2 != nil {
		p := infixPoint(root, AttachInfix2)
		form = form[:p] + in2.Surface + form[p:]
	}
	if in1 != nil {
		p := infixPoint(root, AttachInfix1)
		form = form[:p] + in1.Surface + form[p:]
	}
	for _, r := range prefixes {
		if r.Lenites {
			form = Lenite(form)
		}
		form = r.Surface + form
	}
	for _, r := range suffixes {
		form += r.Surface
	}
	return form
}
