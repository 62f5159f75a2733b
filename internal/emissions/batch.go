package emissions

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/carbonpilot/carbonpilot/internal/logging"
)

// Batch concurrency limits.
const (
	// DefaultWorkers is the worker count used when the caller passes 0.
	DefaultWorkers = 8
	// MaxWorkers bounds the concurrency a caller can request.
	MaxWorkers = 64
)

// ErrTooManyWorkers is returned when the requested worker count exceeds MaxWorkers.
var ErrTooManyWorkers = fmt.Errorf("worker count must be <= %d", MaxWorkers)

// CalculateBatch applies Calculate to every record concurrently. Records are
// independent, so results are computed in parallel and returned in input
// order. The only error sources are an invalid worker count or context
// cancellation; individual calculations cannot fail.
func (c *Calculator) CalculateBatch(ctx context.Context, records []ActivityRecord, workers int) ([]CalculationResult, error) {
	if workers == 0 {
		workers = DefaultWorkers
	}
	if workers < 0 || workers > MaxWorkers {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyWorkers, workers)
	}

	results := make([]CalculationResult, len(records))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i := range records {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.Calculate(ctx, records[i])
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Info().
		Str("component", "emissions").
		Int("records", len(records)).
		Msg("batch calculation complete")

	return results, nil
}
