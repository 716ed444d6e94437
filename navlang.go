// Package navlang analyzes sentences in the Na'vi constructed language:
// it decomposes surface words into root + morphemes against the published
// case/affix/infix grammar, resolves each token to a single tagged
// analysis, and assembles a dependency structure from case marking rather
// than word position.
//
// The morpheme table and lexicon are read-only after construction and
// shared by all concurrent analyses; everything else is scoped to a single
// sentence.
package navlang

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Analyzer holds the process-wide grammar and lexicon and provides the
// public analysis API. It is safe for concurrent use.
type Analyzer struct {
	grammar *Grammar
	lexicon Lexicon
	log     zerolog.Logger
	workers int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

// WithWorkers bounds the batch worker pool. Values below one fall back to
// the available parallelism.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// New returns an Analyzer over the given grammar and lexicon. The grammar
// must be fully loaded: analysis cannot proceed without it, so a nil or
// empty table is the one fatal construction error.
func New(grammar *Grammar, lexicon Lexicon, opts ...Option) (*Analyzer, error) {
	if grammar == nil || len(grammar.Rules()) == 0 {
		return nil, fmt.Errorf("%w: empty morpheme table", ErrGrammar)
	}
	if lexicon == nil {
		lexicon = NewMapLexicon()
	}
	a := &Analyzer{
		grammar: grammar,
		lexicon: lexicon,
		log:     zerolog.Nop(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Grammar returns the analyzer's morpheme table.
func (a *Analyzer) Grammar() *Grammar { return a.grammar }

// rootLookup builds the per-sentence root resolver: bound to ctx,
// memoized, and degrading lexicon failures to "unavailable" instead of
// propagating them.
func (a *Analyzer) rootLookup(ctx context.Context, unavailable *bool) RootLookup {
	memo := make(map[string][]Entry)
	return func(root string) []Entry {
		if es, ok := memo[root]; ok {
			return es
		}
		es, err := a.lexicon.Lookup(ctx, root)
		if err != nil {
			a.log.Debug().Err(err).Str("root", root).Msg("lexicon lookup failed")
			*unavailable = true
			es = nil
		}
		memo[root] = es
		return es
	}
}

// Decompose returns every plausible decomposition of a single token.
func (a *Analyzer) Decompose(ctx context.Context, token string) []Decomposition {
	var unavailable bool
	return a.grammar.Decompose(token, a.rootLookup(ctx, &unavailable))
}

// AnalyzeSentence runs the full pipeline on one sentence: tokenize, look
// up and decompose each token (lookups dispatched concurrently), resolve
// left to right, assemble the dependency structure. Per-token problems are
// recorded on the result; the only errors returned are cancellation and
// internal invariant violations.
func (a *Analyzer) AnalyzeSentence(ctx context.Context, text string) (*SentenceAnalysis, error) {
	tokens := Tokenize(text)
	n := len(tokens)
	cands := make([][]Decomposition, n)
	issueSlots := make([]*TokenIssue, n)

	g, gctx := errgroup.WithContext(ctx)
	for i, tok := range tokens {
		i, tok := i, tok
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := CheckToken(tok); err != nil {
				issueSlots[i] = &TokenIssue{
					Position: i,
					Token:    tok,
					Kind:     IssueMalformedToken,
					Detail:   err.Error(),
				}
				return nil
			}
			var unavailable bool
			cands[i] = a.grammar.Decompose(tok, a.rootLookup(gctx, &unavailable))
			if len(cands[i]) == 0 {
				kind := IssueUnknownWord
				if unavailable {
					kind = IssueLexiconUnavailable
				}
				issueSlots[i] = &TokenIssue{Position: i, Token: tok, Kind: kind}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Resolution is sequential: earlier choices feed later tie-breaks.
	words := make([]TaggedWord, n)
	var issues []TokenIssue
	for i, tok := range tokens {
		form := WordForm{Text: tok, Position: i}
		if issueSlots[i] != nil {
			issues = append(issues, *issueSlots[i])
			words[i] = TaggedWord{
				Form:          form,
				Decomposition: Decomposition{Surface: strings.ToLower(tok), Unresolved: true},
			}
			continue
		}
		chosen, err := Resolve(cands[i], &SentenceContext{Resolved: words[:i], Position: i})
		if err != nil {
			return nil, fmt.Errorf("token %d %q: %w", i, tok, err)
		}
		words[i] = TaggedWord{Form: form, Decomposition: chosen}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clauses, edges, verbless := Assemble(words)
	return &SentenceAnalysis{
		Text:     text,
		Words:    words,
		Edges:    edges,
		Clauses:  clauses,
		Verbless: verbless,
		Issues:   issues,
	}, nil
}
