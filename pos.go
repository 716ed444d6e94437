package navlang

// PartOfSpeech is the closed set of grammatical categories recognized by
// the analyzer. The order of the constants defines the canonical ordering
// used as the final disambiguation fallback, so it must stay stable.
type PartOfSpeech uint8

const (
	POSUnknown PartOfSpeech = iota
	POSNoun
	POSPronoun
	POSVerb
	POSAdjective
	POSNumber
	POSParticle
	POSAdposition
)

func (p PartOfSpeech) String() string {
	switch p {
	case POSNoun:
		return "noun"
	case POSPronoun:
		return "pronoun"
	case POSVerb:
		return "verb"
	case POSAdjective:
		return "adjective"
	case POSNumber:
		return "number"
	case POSParticle:
		return "particle"
	case POSAdposition:
		return "adposition"
	default:
		return "unknown"
	}
}

// POSSet is a bitmask over PartOfSpeech values, used for the applicability
// field of morpheme rules.
type POSSet uint16

// NewPOSSet builds a set from the given parts of speech.
func NewPOSSet(parts ...PartOfSpeech) POSSet {
	var s POSSet
	for _, p := range parts {
		s |= 1 << p
	}
	return s
}

// Has reports whether p is a member of the set.
func (s POSSet) Has(p PartOfSpeech) bool {
	return s&(1<<p) != 0
}

// Case is the grammatical case of a noun or pronoun. The zero value is the
// unmarked subjective case.
type Case uint8

const (
	CaseSubjective Case = iota
	CaseAgentive
	CasePatientive
	CaseDative
	CaseGenitive
	CaseTopical
)

// AllCases lists every case value, in enum order.
var AllCases = []Case{
	CaseSubjective, CaseAgentive, CasePatientive,
	CaseDative, CaseGenitive, CaseTopical,
}

func (c Case) String() string {
	switch c {
	case CaseAgentive:
		return "agentive"
	case CasePatientive:
		return "patientive"
	case CaseDative:
		return "dative"
	case CaseGenitive:
		return "genitive"
	case CaseTopical:
		return "topical"
	default:
		return "subjective"
	}
}

// Number is the grammatical number of a noun or pronoun. The zero value is
// singular (no prefix).
type Number uint8

const (
	NumberSingular Number = iota
	NumberDual
	NumberTrial
	NumberPlural
)

func (n Number) String() string {
	switch n {
	case NumberDual:
		return "dual"
	case NumberTrial:
		return "trial"
	case NumberPlural:
		return "plural"
	default:
		return "singular"
	}
}

// TenseAspect is the value carried by a first-slot verb infix. The zero
// value is the unmarked present.
type TenseAspect uint8

const (
	TensePresent TenseAspect = iota
	TensePast
	TenseRecentPast
	TenseFuture
	TenseNearFuture
	AspectPerfective
	AspectImperfective
	MoodSubjunctive
	TensePastImperfective
	TensePastPerfective
	TenseRecentPastImperfective
	TenseRecentPastPerfective
	TenseFutureImperfective
	TenseFuturePerfective
	TenseNearFutureImperfective
	TenseNearFuturePerfective
	TenseFutureIntent
	TenseNearFutureIntent
	MoodPastSubjunctive
	MoodFutureSubjunctive
	MoodPerfectiveSubjunctive
	MoodImperfectiveSubjunctive
	ParticipleActive
	ParticiplePassive
)

func (t TenseAspect) String() string {
	switch t {
	case TensePast:
		return "past"
	case TenseRecentPast:
		return "recent past"
	case TenseFuture:
		return "future"
	case TenseNearFuture:
		return "near future"
	case AspectPerfective:
		return "perfective"
	case AspectImperfective:
		return "imperfective"
	case MoodSubjunctive:
		return "subjunctive"
	case TensePastImperfective:
		return "past imperfective"
	case TensePastPerfective:
		return "past perfective"
	case TenseRecentPastImperfective:
		return "recent past imperfective"
	case TenseRecentPastPerfective:
		return "recent past perfective"
	case TenseFutureImperfective:
		return "future imperfective"
	case TenseFuturePerfective:
		return "future perfective"
	case TenseNearFutureImperfective:
		return "near future imperfective"
	case TenseNearFuturePerfective:
		return "near future perfective"
	case TenseFutureIntent:
		return "future intentional"
	case TenseNearFutureIntent:
		return "near future intentional"
	case MoodPastSubjunctive:
		return "past subjunctive"
	case MoodFutureSubjunctive:
		return "future subjunctive"
	case MoodPerfectiveSubjunctive:
		return "perfective subjunctive"
	case MoodImperfectiveSubjunctive:
		return "imperfective subjunctive"
	case ParticipleActive:
		return "active participle"
	case ParticiplePassive:
		return "passive participle"
	default:
		return "present"
	}
}

// Participle reports whether the value is a participial marking. A verb
// carrying a participle infix is non-finite and cannot root a clause.
func (t TenseAspect) Participle() bool {
	return t == ParticipleActive || t == ParticiplePassive
}

// Affect is the value carried by a second-slot verb infix (speaker attitude
// and evidentiality). The zero value is neutral.
type Affect uint8

const (
	AffectNeutral Affect = iota
	AffectPositive
	AffectNegative
	AffectFormal
	AffectInferential
)

func (a Affect) String() string {
	switch a {
	case AffectPositive:
		return "positive"
	case AffectNegative:
		return "negative"
	case AffectFormal:
		return "formal"
	case AffectInferential:
		return "inferential"
	default:
		return "neutral"
	}
}

// Derivation is a valence-changing first-slot infix.
type Derivation uint8

const (
	DerivationNone Derivation = iota
	DerivationReflexive
	DerivationCausative
)

func (d Derivation) String() string {
	switch d {
	case DerivationReflexive:
		return "reflexive"
	case DerivationCausative:
		return "causative"
	default:
		return "none"
	}
}

// AttribPosition records which side of an attributive adjective faces its
// noun: the -a suffix points at a following noun, the a- prefix at a
// preceding one.
type AttribPosition uint8

const (
	AttribNone AttribPosition = iota
	AttribNounFollows
	AttribNounPrecedes
)

// Relation is a dependency-edge label.
type Relation uint8

const (
	RelRoot Relation = iota
	RelSubject
	RelObject
	RelOblique
	RelGenitive
	RelModifier
	RelTopic
	RelVocative
	RelAdposition
	RelParticle
	RelUnknown
)

func (r Relation) String() string {
	switch r {
	case RelRoot:
		return "root"
	case RelSubject:
		return "subject"
	case RelObject:
		return "direct-object"
	case RelOblique:
		return "oblique"
	case RelGenitive:
		return "genitive"
	case RelModifier:
		return "modifier"
	case RelTopic:
		return "topic"
	case RelVocative:
		return "vocative"
	case RelAdposition:
		return "adposition"
	case RelParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// RelationForCase maps a resolved noun case to the relation the noun bears
// toward its clause verb. The agentive (transitive agent) and the unmarked
// subjective (intransitive subject) both surface as the subject relation.
func RelationForCase(c Case) Relation {
	switch c {
	case CaseSubjective, CaseAgentive:
		return RelSubject
	case CasePatientive:
		return RelObject
	case CaseDative:
		return RelOblique
	case CaseGenitive:
		return RelGenitive
	case CaseTopical:
		return RelTopic
	default:
		return RelModifier
	}
}
