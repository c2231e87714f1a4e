package pipeline

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/klarakrnjic/Transcribus-project/internal/align"
	"github.com/klarakrnjic/Transcribus-project/internal/classify"
	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// CharStep aligns the page character by character and counts
// substitutions, deletions and insertions.
type CharStep struct {
	classifier *classify.Classifier
}

// NewCharStep creates a CharStep.
func NewCharStep(c *classify.Classifier) *CharStep {
	return &CharStep{classifier: c}
}

// Name implements Step.
func (s *CharStep) Name() string {
	return "chars"
}

// Do implements Step.
func (s *CharStep) Do(_ context.Context, page *model.PageResult) error {
	edits := align.Chars(page.Ref, page.Hyp)
	stats, subs := s.classifier.Chars(edits)

	page.CharEdits = edits
	page.Stats.Merge(stats)
	page.Substitutions.Merge(subs)

	counts := align.Count(edits)
	page.Summary.RefChars = utf8.RuneCountInString(page.Ref)
	page.Summary.HypChars = utf8.RuneCountInString(page.Hyp)
	page.Summary.Matches = counts.Matches
	page.Summary.Substitutions = counts.Substitutions
	page.Summary.Deletions = counts.Deletions
	page.Summary.Insertions = counts.Insertions
	return nil
}

// WordStep aligns the page word by word, classifies every non-equal block
// and appends it to the page's error log.
type WordStep struct {
	classifier *classify.Classifier
}

// NewWordStep creates a WordStep.
func NewWordStep(c *classify.Classifier) *WordStep {
	return &WordStep{classifier: c}
}

// Name implements Step.
func (s *WordStep) Name() string {
	return "words"
}

// Do implements Step.
func (s *WordStep) Do(_ context.Context, page *model.PageResult) error {
	refWords := strings.Fields(page.Ref)
	hypWords := strings.Fields(page.Hyp)
	edits := align.Words(refWords, hypWords)

	page.WordEdits = edits
	for _, e := range edits {
		if e.IsEqual() {
			continue
		}
		category := s.classifier.Word(e)
		page.Stats.Add(category, 1)
		page.Errors = append(page.Errors, model.ErrorRecord{
			Page:       page.Index,
			RefContext: strings.Join(e.Ref, " "),
			HypContext: strings.Join(e.Hyp, " "),
			Op:         e.Op,
			Category:   category,
		})
	}

	page.Summary.RefWords = len(refWords)
	page.Summary.HypWords = len(hypWords)
	page.Summary.WordDistance = align.Distance(refWords, hypWords)
	return nil
}

// NewPagePipeline returns the standard per-page pipeline.
func NewPagePipeline(c *classify.Classifier, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddSteps(NewCharStep(c), NewWordStep(c))
	return p
}
