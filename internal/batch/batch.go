// Package batch runs one operation over many inputs (files to hash, files
// to convert) with bounded concurrency.
package batch

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when no concurrency option is given.
const DefaultConcurrency = 4

// Processor runs a function over a list of items using errgroup.
type Processor struct {
	concurrency     int
	logger          *slog.Logger
	continueOnError bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithConcurrency sets the maximum number of items processed at once.
// Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-item debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithContinueOnError keeps processing the remaining items after a failure.
// Failures are then reported per item through Outcome.Err.
func WithContinueOnError(b bool) Option {
	return func(p *Processor) {
		p.continueOnError = b
	}
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Concurrency returns the configured concurrency limit.
func (p *Processor) Concurrency() int {
	return p.concurrency
}

// Outcome is the result of processing one item.
type Outcome[T any] struct {
	Item  string
	Value T
	Err   error
}

// Run applies fn to every item and returns the outcomes in input order.
//
// Unless WithContinueOnError is set, the first error cancels the context
// passed to the remaining calls and is returned. Outcomes of items that
// completed before the failure are still returned.
func Run[T any](ctx context.Context, p *Processor, items []string, fn func(ctx context.Context, item string) (T, error)) ([]Outcome[T], error) {
	p.logger.Debug("starting batch", "items", len(items), "concurrency", p.concurrency)
	start := time.Now()

	outcomes := make([]Outcome[T], len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, item := range items {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				outcomes[i] = Outcome[T]{Item: item, Err: gctx.Err()}
				return gctx.Err()
			default:
			}

			p.logger.Debug("processing item", "item", item, "index", i+1, "total", len(items))

			v, err := fn(gctx, item)
			outcomes[i] = Outcome[T]{Item: item, Value: v, Err: err}
			if err != nil {
				p.logger.Warn("item failed", "item", item, "error", err)
				if p.continueOnError {
					return nil
				}
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	p.logger.Debug("batch complete", "items", len(items), "elapsed", time.Since(start))
	return outcomes, err
}
