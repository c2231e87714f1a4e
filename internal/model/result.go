package model

import "time"

// ErrorRecord is one entry of the word-level error log.
type ErrorRecord struct {
	// Page is the 1-based page index.
	Page int `json:"page"`

	// RefContext is the reference side of the block, tokens joined by one space.
	RefContext string `json:"ref_context"`

	// HypContext is the hypothesis side of the block, tokens joined by one space.
	HypContext string `json:"hyp_context"`

	// Op is the raw opcode of the block.
	Op Operation `json:"error_type"`

	// Category is the classifier's bucket, CategoryNone if unclassified.
	Category Category `json:"category"`
}

// PageSummary holds the raw per-page counts from which error rates are derived.
type PageSummary struct {
	Page          int `json:"page"`
	RefChars      int `json:"ref_chars"`
	HypChars      int `json:"hyp_chars"`
	RefWords      int `json:"ref_words"`
	HypWords      int `json:"hyp_words"`
	Matches       int `json:"matches"`
	Substitutions int `json:"substitutions"`
	Deletions     int `json:"deletions"`
	Insertions    int `json:"insertions"`

	// WordDistance is the token-level edit distance between the pages.
	WordDistance int `json:"word_distance"`
}

// CharEdits returns the character edit distance of the page.
func (p PageSummary) CharEdits() int {
	return p.Substitutions + p.Deletions + p.Insertions
}

// CER returns the character error rate in percent.
// A page with an empty reference has a CER of 0.
func (p PageSummary) CER() float64 {
	if p.RefChars == 0 {
		return 0
	}
	return float64(p.CharEdits()) / float64(p.RefChars) * 100
}

// WER returns the word error rate in percent.
// A page with an empty reference has a WER of 0.
func (p PageSummary) WER() float64 {
	if p.RefWords == 0 {
		return 0
	}
	return float64(p.WordDistance) / float64(p.RefWords) * 100
}

// PageResult is the partial result of processing one page.
// It is owned by the goroutine processing the page until it is merged.
type PageResult struct {
	// Index is the 1-based page index.
	Index int

	// Ref and Hyp are the page texts being compared.
	Ref string
	Hyp string

	// CharEdits is the character alignment, discarded after classification.
	CharEdits []CharEdit

	// WordEdits is the word alignment.
	WordEdits []WordEdit

	Stats         Stats
	Substitutions *SubstitutionCounter
	Errors        []ErrorRecord
	Summary       PageSummary
}

// NewPageResult creates an empty partial result for the 1-based page index.
func NewPageResult(index int, ref, hyp string) *PageResult {
	return &PageResult{
		Index:         index,
		Ref:           ref,
		Hyp:           hyp,
		Substitutions: NewSubstitutionCounter(),
		Errors:        []ErrorRecord{},
		Summary:       PageSummary{Page: index},
	}
}

// Result accumulates the statistics of one run over a document pair.
// After the run it is handed read-only to the report writers.
type Result struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id,omitempty"`

	// Reference and Hypothesis are the input paths.
	Reference  string `json:"reference,omitempty"`
	Hypothesis string `json:"hypothesis,omitempty"`

	// CreatedAt is when the run started.
	CreatedAt time.Time `json:"created_at"`

	// RefPages and HypPages are the page counts found in each document.
	RefPages int `json:"ref_pages"`
	HypPages int `json:"hyp_pages"`

	// ProcessedPages is min(RefPages, HypPages).
	ProcessedPages int `json:"processed_pages"`

	Stats         Stats                `json:"error_counts"`
	Substitutions *SubstitutionCounter `json:"substitutions"`
	Errors        []ErrorRecord        `json:"errors"`
	Pages         []PageSummary        `json:"pages"`
}

// NewResult returns an empty result set.
func NewResult() *Result {
	return &Result{
		CreatedAt:     time.Now(),
		Substitutions: NewSubstitutionCounter(),
		Errors:        []ErrorRecord{},
		Pages:         []PageSummary{},
	}
}

// Merge adds a page's partial result to the run.
// Pages must be merged in page order to keep the error log ordered.
func (r *Result) Merge(page *PageResult) {
	r.Stats.Merge(page.Stats)
	r.Substitutions.Merge(page.Substitutions)
	r.Errors = append(r.Errors, page.Errors...)
	r.Pages = append(r.Pages, page.Summary)
}

// TotalCharsRef returns the derived reference-side character error total.
func (r *Result) TotalCharsRef() int {
	return r.Stats.TotalCharsRef()
}

// TotalCharsHyp returns the derived hypothesis-side character error total.
func (r *Result) TotalCharsHyp() int {
	return r.Stats.TotalCharsHyp()
}

// IsEmpty reports whether no page was processed.
func (r *Result) IsEmpty() bool {
	return r.ProcessedPages == 0
}
