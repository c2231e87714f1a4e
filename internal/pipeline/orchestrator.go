package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/klarakrnjic/Transcribus-project/internal/classify"
	"github.com/klarakrnjic/Transcribus-project/internal/document"
	"github.com/klarakrnjic/Transcribus-project/internal/model"
	"github.com/klarakrnjic/Transcribus-project/internal/pages"
)

// DocumentReader loads a document from a path.
type DocumentReader interface {
	Read(path string) (model.Document, error)
}

// TextNormalizer rewrites page text before alignment.
type TextNormalizer interface {
	Normalize(text string) string
}

// Orchestrator compares a reference and a hypothesis document page by page.
type Orchestrator struct {
	reader     DocumentReader
	splitter   pages.Splitter
	normalizer TextNormalizer
	classifier *classify.Classifier
	workers    int
	logger     *slog.Logger
	now        func() time.Time
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithReader replaces the document reader.
func WithReader(r DocumentReader) OrchestratorOption {
	return func(o *Orchestrator) {
		o.reader = r
	}
}

// WithSplitter replaces the page splitter used for unpaged documents.
func WithSplitter(s pages.Splitter) OrchestratorOption {
	return func(o *Orchestrator) {
		o.splitter = s
	}
}

// WithNormalizer enables page normalization. Pages are normalized on the
// orchestrator goroutine, so the normalizer need not be concurrency safe.
func WithNormalizer(n TextNormalizer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.normalizer = n
	}
}

// WithClassifier replaces the default classifier.
func WithClassifier(c *classify.Classifier) OrchestratorOption {
	return func(o *Orchestrator) {
		o.classifier = c
	}
}

// WithWorkers sets the number of pages processed concurrently.
func WithWorkers(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithOrchestratorLogger sets the logger shared by the orchestrator,
// the page processor and every page pipeline.
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// NewOrchestrator creates an Orchestrator with default collaborators:
// the document reader, the default regex splitter, no normalization and
// the default classifier thresholds.
func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		reader:     document.NewReader(),
		splitter:   pages.NewDefaultSplitter(),
		classifier: classify.New(classify.DefaultThresholds()),
		workers:    DefaultConcurrency,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Run reads both documents and analyzes them.
//
// If either document is missing, Run returns the empty result set together
// with an error wrapping ErrMissingInput, so callers can still emit a
// well-formed report.
func (o *Orchestrator) Run(ctx context.Context, refPath, hypPath string) (*model.Result, error) {
	ref, err := o.reader.Read(refPath)
	if err != nil {
		return o.emptyResult(refPath, hypPath), o.inputError(err)
	}
	hyp, err := o.reader.Read(hypPath)
	if err != nil {
		return o.emptyResult(refPath, hypPath), o.inputError(err)
	}
	return o.Analyze(ctx, ref, hyp)
}

// Analyze compares two loaded documents.
//
// Only the first min(len(refPages), len(hypPages)) pages are compared.
// Surplus pages on either side are ignored.
func (o *Orchestrator) Analyze(ctx context.Context, ref, hyp model.Document) (*model.Result, error) {
	result := o.emptyResult(ref.Path, hyp.Path)

	refPages := o.paginate(ref)
	hypPages := o.paginate(hyp)
	n := min(len(refPages), len(hypPages))

	result.RefPages = len(refPages)
	result.HypPages = len(hypPages)
	result.ProcessedPages = n

	if len(refPages) != len(hypPages) {
		o.logger.Debug("ignoring surplus pages",
			"ref_pages", len(refPages),
			"hyp_pages", len(hypPages),
			"processed", n,
		)
	}

	pairs := make([]PagePair, n)
	for i := range n {
		pairs[i] = PagePair{Ref: o.normalize(refPages[i]), Hyp: o.normalize(hypPages[i])}
	}

	processor := NewPageProcessor(
		func() *Pipeline {
			return NewPagePipeline(o.classifier, WithLogger(o.logger))
		},
		WithConcurrency(o.workers),
		WithProcessorLogger(o.logger),
	)

	partials, err := processor.Process(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("failed to process pages: %w", err)
	}
	for _, p := range partials {
		result.Merge(p)
	}

	o.logger.Info("analysis complete",
		"run_id", result.RunID,
		"pages", n,
		"errors", len(result.Errors),
	)
	return result, nil
}

// paginate returns the pages of doc, splitting its text when the document
// carries no page structure of its own.
func (o *Orchestrator) paginate(doc model.Document) []string {
	if doc.IsPaged() {
		return doc.Pages
	}
	return o.splitter.Split(doc.Text)
}

// normalize applies the optional normalizer.
func (o *Orchestrator) normalize(text string) string {
	if o.normalizer == nil {
		return text
	}
	return o.normalizer.Normalize(text)
}

// emptyResult returns an empty result stamped with run metadata.
func (o *Orchestrator) emptyResult(refPath, hypPath string) *model.Result {
	result := model.NewResult()
	result.RunID = uuid.NewString()
	result.Reference = refPath
	result.Hypothesis = hypPath
	result.CreatedAt = o.now()
	return result
}

// inputError wraps a reader failure, marking missing files as ErrMissingInput.
func (o *Orchestrator) inputError(err error) error {
	if errors.Is(err, document.ErrNotFound) {
		o.logger.Error("input document not found", "error", err)
		return fmt.Errorf("%w: %w", ErrMissingInput, err)
	}
	return err
}
