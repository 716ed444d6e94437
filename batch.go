package navlang

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AnalyzeBatch analyzes an ordered sequence of sentences concurrently on a
// worker pool bounded by the analyzer's worker count. Sentences share only
// the read-only grammar and lexicon, so no coordination is needed beyond
// the pool itself; results keep input order regardless of completion
// order. Per-sentence failures land in Errs without aborting the batch;
// cancellation aborts the whole call.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, sentences []string) (*BatchResult, error) {
	res := &BatchResult{
		ID:       uuid.NewString(),
		Analyses: make([]*SentenceAnalysis, len(sentences)),
		Errs:     make([]error, len(sentences)),
		POSTally: make(map[PartOfSpeech]int),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, s := range sentences {
		i, s := i, s
		g.Go(func() error {
			an, err := a.AnalyzeSentence(gctx, s)
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				res.Errs[i] = err
				return nil
			}
			res.Analyses[i] = an
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, an := range res.Analyses {
		if an == nil {
			continue
		}
		for i := range an.Words {
			if an.Words[i].Unresolved {
				continue
			}
			res.POSTally[an.Words[i].POS]++
		}
	}

	a.log.Debug().
		Str("batch", res.ID).
		Int("sentences", len(sentences)).
		Msg("batch analyzed")
	return res, nil
}
