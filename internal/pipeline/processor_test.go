package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/klarakrnjic/Transcribus-project/internal/classify"
	"github.com/klarakrnjic/Transcribus-project/internal/log"
	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

func TestNewPageProcessor(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		pp := NewPageProcessor(func() *Pipeline { return New() })
		if pp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, pp.concurrency)
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		pp := NewPageProcessor(func() *Pipeline { return New() }, WithConcurrency(7))
		if pp.concurrency != 7 {
			t.Errorf("expected concurrency 7, got %d", pp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		pp := NewPageProcessor(func() *Pipeline { return New() }, WithConcurrency(0))
		if pp.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency, got %d", pp.concurrency)
		}
	})
}

func TestPageProcessorProcess(t *testing.T) {
	t.Parallel()

	t.Run("keeps page order", func(t *testing.T) {
		t.Parallel()

		pairs := make([]PagePair, 20)
		for i := range pairs {
			pairs[i] = PagePair{Ref: fmt.Sprintf("stranica %d", i), Hyp: fmt.Sprintf("stranica %d", i)}
		}

		c := classify.New(classify.DefaultThresholds())
		pp := NewPageProcessor(
			func() *Pipeline { return NewPagePipeline(c, WithLogger(log.Discard())) },
			WithConcurrency(5),
			WithProcessorLogger(log.Discard()),
		)

		results, err := pp.Process(t.Context(), pairs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, r := range results {
			if r.Index != i+1 {
				t.Errorf("result %d has index %d", i, r.Index)
			}
			if r.Ref != pairs[i].Ref {
				t.Errorf("result %d holds page %q", i, r.Ref)
			}
			if r.CharEdits != nil {
				t.Errorf("result %d should drop its character alignment", i)
			}
		}
	})

	t.Run("creates one pipeline per page", func(t *testing.T) {
		t.Parallel()

		var created atomic.Int32
		pp := NewPageProcessor(func() *Pipeline {
			created.Add(1)
			return New(WithLogger(log.Discard()))
		}, WithProcessorLogger(log.Discard()))

		if _, err := pp.Process(t.Context(), make([]PagePair, 6)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Load() != 6 {
			t.Errorf("expected 6 pipelines, got %d", created.Load())
		}
	})

	t.Run("returns step failure", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		pp := NewPageProcessor(func() *Pipeline {
			p := New(WithLogger(log.Discard()))
			p.AddStep(&mockStep{name: "fail", doFunc: func(_ context.Context, page *model.PageResult) error {
				if page.Index == 3 {
					return errBoom
				}
				return nil
			}})
			return p
		}, WithProcessorLogger(log.Discard()))

		results, err := pp.Process(t.Context(), make([]PagePair, 5))
		if !errors.Is(err, errBoom) {
			t.Errorf("expected errBoom, got %v", err)
		}
		if results != nil {
			t.Error("expected no results on failure")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		pp := NewPageProcessor(func() *Pipeline { return New() }, WithProcessorLogger(log.Discard()))
		results, err := pp.Process(t.Context(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})
}
