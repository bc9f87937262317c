package transcript

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ProcessBatch processes independent transcripts with at most limit running
// at once. Results keep input order. The first error cancels the rest.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputs []Input, limit int) ([]*Result, error) {
	results := make([]*Result, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		g.Go(func() error {
			res, err := p.Process(gctx, in)
			if err != nil {
				return fmt.Errorf("transcript %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
