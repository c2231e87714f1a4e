package align

import (
	"reflect"
	"strings"
	"testing"

	"github.com/klarakrnjic/Transcribus-project/internal/model"
)

// TestWords tests the opcode blocks of the word aligner.
// Expected blocks follow difflib's SequenceMatcher over the joined strings.
func TestWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  string
		hyp  string
		want []model.WordEdit
	}{
		{
			name: "identical",
			ref:  "a b c",
			hyp:  "a b c",
			want: []model.WordEdit{
				{Ref: []string{"a", "b", "c"}, Hyp: []string{"a", "b", "c"}, Op: model.OpMatch},
			},
		},
		{
			name: "both empty",
			ref:  "",
			hyp:  "",
			want: []model.WordEdit{},
		},
		{
			name: "empty reference",
			ref:  "",
			hyp:  "novo",
			want: []model.WordEdit{
				{Ref: []string{}, Hyp: []string{"novo"}, Op: model.OpInsert},
			},
		},
		{
			name: "whole word replaced",
			ref:  "dom je lijep",
			hyp:  "kuca je lijep",
			want: []model.WordEdit{
				{Ref: []string{"dom"}, Hyp: []string{"kuca"}, Op: model.OpSubstitute},
				{Ref: []string{"je", "lijep"}, Hyp: []string{"je", "lijep"}, Op: model.OpMatch},
			},
		},
		{
			name: "word deleted",
			ref:  "dom i kuca",
			hyp:  "dom kuca",
			want: []model.WordEdit{
				{Ref: []string{"dom"}, Hyp: []string{"dom"}, Op: model.OpMatch},
				{Ref: []string{"i"}, Hyp: []string{}, Op: model.OpDelete},
				{Ref: []string{"kuca"}, Hyp: []string{"kuca"}, Op: model.OpMatch},
			},
		},
		{
			name: "expansion splits inside the token",
			ref:  "ovo je kralj",
			hyp:  "ovo je kraljevstvo",
			want: []model.WordEdit{
				{Ref: []string{"ovo", "je", "kralj"}, Hyp: []string{"ovo", "je", "kralj"}, Op: model.OpMatch},
				{Ref: []string{}, Hyp: []string{"evstvo"}, Op: model.OpInsert},
			},
		},
		{
			name: "merge shows up as a deleted space",
			ref:  "do mu kuca",
			hyp:  "domu kuca",
			want: []model.WordEdit{
				{Ref: []string{"do"}, Hyp: []string{"do"}, Op: model.OpMatch},
				{Ref: []string{}, Hyp: []string{}, Op: model.OpDelete},
				{Ref: []string{"mu", "kuca"}, Hyp: []string{"mu", "kuca"}, Op: model.OpMatch},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Words(strings.Fields(tt.ref), strings.Fields(tt.hyp))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d blocks, got %d: %+v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i].Op != tt.want[i].Op {
					t.Errorf("block %d: op %v, want %v", i, got[i].Op, tt.want[i].Op)
				}
				if !sameWords(got[i].Ref, tt.want[i].Ref) || !sameWords(got[i].Hyp, tt.want[i].Hyp) {
					t.Errorf("block %d: got %q/%q, want %q/%q", i, got[i].Ref, got[i].Hyp, tt.want[i].Ref, tt.want[i].Hyp)
				}
			}
		})
	}
}

// sameWords compares token slices treating nil and empty as equal.
func sameWords(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// TestWordsCoverBothSides checks that the blocks partition both joined
// strings: concatenating every block's tokens gives back the tokens of each
// side with the separators removed.
func TestWordsCoverBothSides(t *testing.T) {
	t.Parallel()

	ref := strings.Fields(strings.Repeat("i tada reče kralj svojim slugama da pođu u grad ", 8))
	hyp := strings.Fields(strings.Repeat("i tada rece kraljevstvo svojim sluga ma da pođu ugrad ", 8))

	var gotRef, gotHyp strings.Builder
	for _, e := range Words(ref, hyp) {
		gotRef.WriteString(strings.Join(e.Ref, ""))
		gotHyp.WriteString(strings.Join(e.Hyp, ""))
	}

	if gotRef.String() != strings.Join(ref, "") {
		t.Error("reference blocks do not cover the reference")
	}
	if gotHyp.String() != strings.Join(hyp, "") {
		t.Error("hypothesis blocks do not cover the hypothesis")
	}
}

// TestWordsDeterministic checks that the same input gives the same blocks.
func TestWordsDeterministic(t *testing.T) {
	t.Parallel()

	ref := strings.Fields("ana ima anu a ana nema")
	hyp := strings.Fields("ana imaanu aana nema")

	first := Words(ref, hyp)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(first, Words(ref, hyp)) {
			t.Fatal("word alignment is not deterministic")
		}
	}
}
