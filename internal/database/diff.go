package database

import (
	"context"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// CategoryDelta is the change of one category between two runs.
type CategoryDelta struct {
	Category model.Category
	From     int
	To       int
}

// Delta returns To - From.
func (d CategoryDelta) Delta() int {
	return d.To - d.From
}

// RunDiff compares the counts of two runs.
type RunDiff struct {
	From   RunRecord
	To     RunRecord
	Deltas []CategoryDelta

	// SameInputs reports whether both runs compared identical documents.
	SameInputs bool
}

// Changed returns the deltas that are not zero.
func (d *RunDiff) Changed() []CategoryDelta {
	var out []CategoryDelta
	for _, delta := range d.Deltas {
		if delta.Delta() != 0 {
			out = append(out, delta)
		}
	}
	return out
}

// DiffRuns compares run from with run to, category by category.
// Both IDs may be unique prefixes.
func (h *HistoryDB) DiffRuns(ctx context.Context, from, to string) (*RunDiff, error) {
	a, err := h.GetRecord(ctx, from)
	if err != nil {
		return nil, err
	}
	b, err := h.GetRecord(ctx, to)
	if err != nil {
		return nil, err
	}
	return Diff(a, b), nil
}

// Diff compares two run records.
func Diff(from, to RunRecord) *RunDiff {
	d := &RunDiff{
		From:       from,
		To:         to,
		Deltas:     make([]CategoryDelta, 0, len(model.Categories)),
		SameInputs: from.RefHash != "" && from.RefHash == to.RefHash && from.HypHash == to.HypHash,
	}
	for _, c := range model.Categories {
		d.Deltas = append(d.Deltas, CategoryDelta{
			Category: c,
			From:     from.Stats.Count(c),
			To:       to.Stats.Count(c),
		})
	}
	return d
}
