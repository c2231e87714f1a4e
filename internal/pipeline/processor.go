package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// DefaultConcurrency is the number of pages processed at once when no
// WithConcurrency option is given.
const DefaultConcurrency = 4

// PagePair is one reference page and the hypothesis page it is compared to.
type PagePair struct {
	Ref string
	Hyp string
}

// PageProcessor handles concurrent processing of page pairs.
// It uses errgroup to manage goroutines and respect concurrency limits.
type PageProcessor struct {
	// pipelineFactory creates a new pipeline for each page.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of pages processed at once.
	concurrency int

	// logger is used for processor-level logging.
	logger *slog.Logger
}

// ProcessorOption configures a PageProcessor.
type ProcessorOption func(*PageProcessor)

// WithProcessorLogger sets a custom logger for page processing.
func WithProcessorLogger(logger *slog.Logger) ProcessorOption {
	return func(pp *PageProcessor) {
		pp.logger = logger
	}
}

// WithConcurrency sets the maximum number of pages processed at once.
// Non-positive values keep the default.
func WithConcurrency(n int) ProcessorOption {
	return func(pp *PageProcessor) {
		if n > 0 {
			pp.concurrency = n
		}
	}
}

// NewPageProcessor creates a new PageProcessor.
// pipelineFactory is called once per page so pipeline state never leaks
// between pages.
func NewPageProcessor(pipelineFactory func() *Pipeline, opts ...ProcessorOption) *PageProcessor {
	pp := &PageProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(pp)
	}
	if pp.logger == nil {
		pp.logger = slog.Default()
	}
	return pp
}

// Process runs the page pipeline over every pair and returns the partial
// results in page order. Result i belongs to pairs[i] and has page index i+1.
//
// Results are written to pre-allocated slots, one per page, so their order
// does not depend on completion order.
//
// The first step failure or context cancellation stops the run; results
// are only returned when every page succeeded.
func (pp *PageProcessor) Process(ctx context.Context, pairs []PagePair) ([]*model.PageResult, error) {
	pp.logger.Info("processing pages",
		"pages", len(pairs),
		"concurrency", pp.concurrency,
	)
	start := time.Now()

	results := make([]*model.PageResult, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pp.concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			page := model.NewPageResult(i+1, pair.Ref, pair.Hyp)
			if err := pp.pipelineFactory().Execute(ctx, page); err != nil {
				return err
			}

			// The character alignment is only needed while classifying.
			page.CharEdits = nil
			results[i] = page

			pp.logger.Debug("page processed",
				"page", page.Index,
				"char_errors", page.Summary.CharEdits(),
				"word_errors", len(page.Errors),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	pp.logger.Info("pages processed",
		"pages", len(pairs),
		"elapsed", time.Since(start),
	)
	return results, nil
}
