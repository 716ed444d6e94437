package navlang

import "errors"

// Sentinel errors for the analysis pipeline. Per-token conditions are
// recorded as TokenIssues on the sentence result rather than aborting it;
// only a failure to load the grammar table is fatal to the process.
var (
	// ErrUnknownWord marks a token with no lexicon candidate and no valid
	// decomposition.
	ErrUnknownWord = errors.New("unknown word")

	// ErrMalformedToken marks a token containing characters outside the
	// Na'vi phonemic inventory.
	ErrMalformedToken = errors.New("malformed token")

	// ErrLexiconUnavailable marks a failed or timed-out lexicon lookup.
	// Affected tokens degrade to unknown words.
	ErrLexiconUnavailable = errors.New("lexicon unavailable")

	// ErrAmbiguityExhausted is an internal invariant violation: the
	// tie-break chain ended without a winner. The canonical-ordering
	// fallback makes this unreachable; it is surfaced for diagnostics.
	ErrAmbiguityExhausted = errors.New("ambiguous resolution exhausted")

	// ErrGrammar reports corrupt or missing static grammar data.
	ErrGrammar = errors.New("invalid grammar data")
)

// IssueKind classifies a per-token analysis issue.
type IssueKind uint8

const (
	IssueUnknownWord IssueKind = iota
	IssueMalformedToken
	IssueLexiconUnavailable
)

func (k IssueKind) String() string {
	switch k {
	case IssueMalformedToken:
		return "malformed_token"
	case IssueLexiconUnavailable:
		return "lexicon_unavailable"
	default:
		return "unknown_word"
	}
}

// TokenIssue records a non-fatal problem with a single token. Issues are
// reported alongside successful analyses in the sentence result.
type TokenIssue struct {
	Position int
	Token    string
	Kind     IssueKind
	Detail   string
}

func (i TokenIssue) Error() string {
	if i.Detail != "" {
		return i.Kind.String() + ": " + i.Detail
	}
	return i.Kind.String() + ": " + i.Token
}
