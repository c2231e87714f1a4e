package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/klarakrnjic/Transcribus-project/internal/log"
	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, page *model.PageResult) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, page *model.PageResult) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, page)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))
		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

func TestPipelineSteps(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "first"})
	p.AddSteps(&mockStep{name: "second"}, &mockStep{name: "third"})

	names := p.StepNames()
	want := []string{"first", "second", "third"}
	if len(names) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{name: name, doFunc: func(context.Context, *model.PageResult) error {
				order = append(order, name)
				return nil
			}}
		}

		p := New(WithLogger(log.Discard()))
		p.AddSteps(record("a"), record("b"))
		if err := p.Execute(t.Context(), model.NewPageResult(1, "", "")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 2 || order[0] != "a" || order[1] != "b" {
			t.Errorf("unexpected order %v", order)
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{name: "fail", doFunc: func(context.Context, *model.PageResult) error { return errBoom }}
		after := &mockStep{name: "after"}

		p := New(WithLogger(log.Discard()))
		p.AddSteps(failing, after)

		if err := p.Execute(t.Context(), model.NewPageResult(1, "", "")); !errors.Is(err, errBoom) {
			t.Errorf("expected errBoom, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("step after failure should not run")
		}
	})

	t.Run("continues on error when configured", func(t *testing.T) {
		t.Parallel()

		failing := &mockStep{name: "fail", doFunc: func(context.Context, *model.PageResult) error { return errBoom }}
		after := &mockStep{name: "after"}

		p := New(WithLogger(log.Discard()), WithContinueOnError(true))
		p.AddSteps(failing, after)

		if err := p.Execute(t.Context(), model.NewPageResult(1, "", "")); !errors.Is(err, errBoom) {
			t.Errorf("expected first error to be returned, got %v", err)
		}
		if after.callCount != 1 {
			t.Error("step after failure should run")
		}
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		step := &mockStep{name: "never"}
		p := New(WithLogger(log.Discard()))
		p.AddStep(step)

		if err := p.Execute(ctx, model.NewPageResult(1, "", "")); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not run after cancellation")
		}
	})
}
