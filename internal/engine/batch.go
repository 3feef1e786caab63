// internal/engine/batch.go
package engine

import (
	"context"

	"jobseeker-scoring/internal/models"

	"golang.org/x/sync/errgroup"
)

const DefaultBatchConcurrency = 4

// BatchResult is the outcome of refreshing one user. Exactly one of Result and
// Err is set.
type BatchResult struct {
	UserID string
	Result *models.ScoreResult
	Err    error
}

// UpdateMany refreshes users in parallel, at most concurrency at a time.
// Per-user failures are reported in the results; results keep input order.
func (e *Engine) UpdateMany(ctx context.Context, userIDs []string, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(userIDs))
	var g errgroup.Group
	g.SetLimit(concurrency)

	for i, id := range userIDs {
		g.Go(func() error {
			results[i].UserID = id
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			res, err := e.Update(ctx, id)
			results[i].Result = res
			results[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	e.logger.Info("batch score refresh finished", map[string]interface{}{
		"users":       len(userIDs),
		"failed":      failed,
		"concurrency": concurrency,
	})
	return results
}
