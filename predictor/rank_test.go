package predictor

import (
	"math"
	"testing"
)

func TestRank(t *testing.T) {
	preds := []Prediction{
		{Label: "LABEL_0", Score: 0.5},
		{Label: "LABEL_2", Score: 0.3},
		{Label: "LABEL_4", Score: 0.2},
	}
	scores, err := Rank(preds)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	want := []RawScore{{0, 0.5}, {2, 0.3}, {4, 0.2}}
	for i, s := range scores {
		if s != want[i] {
			t.Errorf("Rank()[%d] = %+v, want %+v", i, s, want[i])
		}
	}
}

func TestRank_MalformedLabel(t *testing.T) {
	preds := []Prediction{
		{Label: "LABEL_0", Score: 0.5},
		{Label: "broken", Score: 0.3},
	}
	if _, err := Rank(preds); err == nil {
		t.Fatal("Rank() expected error for malformed label")
	}
}

func TestTopK(t *testing.T) {
	tests := []struct {
		name    string
		scores  []RawScore
		k       int
		wantIDs []int
	}{
		{
			name: "four classes keep top three",
			scores: []RawScore{
				{ClassID: 0, Score: 0.5},
				{ClassID: 2, Score: 0.3},
				{ClassID: 4, Score: 0.2},
				{ClassID: 7, Score: 0.05},
			},
			k:       3,
			wantIDs: []int{0, 2, 4},
		},
		{
			name: "unsorted input is ranked",
			scores: []RawScore{
				{ClassID: 1, Score: 0.1},
				{ClassID: 2, Score: 0.7},
				{ClassID: 3, Score: 0.2},
			},
			k:       3,
			wantIDs: []int{2, 3, 1},
		},
		{
			name: "fewer classes than k",
			scores: []RawScore{
				{ClassID: 1, Score: 0.9},
				{ClassID: 3, Score: 0.1},
			},
			k:       3,
			wantIDs: []int{1, 3},
		},
		{
			name: "ties keep model output order",
			scores: []RawScore{
				{ClassID: 5, Score: 0.25},
				{ClassID: 1, Score: 0.25},
				{ClassID: 9, Score: 0.25},
				{ClassID: 0, Score: 0.25},
			},
			k:       3,
			wantIDs: []int{5, 1, 9},
		},
		{
			name:    "empty input",
			scores:  nil,
			k:       3,
			wantIDs: nil,
		},
		{
			name:    "non-positive k",
			scores:  []RawScore{{ClassID: 0, Score: 1}},
			k:       0,
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopK(tt.scores, tt.k)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("TopK() returned %d entries, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ClassID != id {
					t.Errorf("TopK()[%d].ClassID = %d, want %d", i, got[i].ClassID, id)
				}
			}
		})
	}
}

func TestTopK_DoesNotMutateInput(t *testing.T) {
	scores := []RawScore{
		{ClassID: 1, Score: 0.1},
		{ClassID: 2, Score: 0.9},
	}
	TopK(scores, 1)
	if scores[0].ClassID != 1 || scores[1].ClassID != 2 {
		t.Errorf("TopK() mutated its input: %+v", scores)
	}
}

func TestPercentages(t *testing.T) {
	tests := []struct {
		name   string
		scores []RawScore
		want   []float64
	}{
		{
			name: "top three of the reference scenario",
			scores: []RawScore{
				{ClassID: 0, Score: 0.5},
				{ClassID: 2, Score: 0.3},
				{ClassID: 4, Score: 0.2},
			},
			want: []float64{50.0, 30.0, 20.0},
		},
		{
			name: "two classes",
			scores: []RawScore{
				{ClassID: 1, Score: 0.9},
				{ClassID: 3, Score: 0.1},
			},
			want: []float64{90.0, 10.0},
		},
		{
			name: "zero sum yields zero, not NaN",
			scores: []RawScore{
				{ClassID: 0, Score: 0},
				{ClassID: 1, Score: 0},
				{ClassID: 2, Score: 0},
			},
			want: []float64{0, 0, 0},
		},
		{
			name:   "empty input",
			scores: nil,
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentages(tt.scores)
			if len(got) != len(tt.want) {
				t.Fatalf("Percentages() returned %d entries, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if math.IsNaN(got[i]) {
					t.Fatalf("Percentages()[%d] is NaN", i)
				}
				if math.Abs(got[i]-want) > 1e-4 {
					t.Errorf("Percentages()[%d] = %v, want %v", i, got[i], want)
				}
			}
		})
	}
}

func TestPercentages_SumTo100(t *testing.T) {
	scores := []RawScore{
		{ClassID: 0, Score: 0.123},
		{ClassID: 1, Score: 0.456},
		{ClassID: 2, Score: 0.00701},
	}
	got := Percentages(scores)
	var sum float64
	for _, p := range got {
		sum += p
	}
	if math.Abs(sum-100.0) > 1e-6 {
		t.Errorf("Percentages() sum = %v, want 100.0", sum)
	}
}
