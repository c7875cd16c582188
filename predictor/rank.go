package predictor

import "sort"

// Rank converts raw model output into class scores. It fails on the first
// malformed label so the caller can surface one prediction error instead of
// rendering a partial result.
func Rank(preds []Prediction) ([]RawScore, error) {
	scores := make([]RawScore, 0, len(preds))
	for _, p := range preds {
		id, err := ParseClassID(p.Label)
		if err != nil {
			return nil, err
		}
		scores = append(scores, RawScore{ClassID: id, Score: p.Score})
	}
	return scores, nil
}

// TopK returns the k highest scores in descending order. The sort is stable:
// equal scores keep their original model output order. When fewer than k
// scores exist all of them are returned.
func TopK(scores []RawScore, k int) []RawScore {
	if k <= 0 {
		return nil
	}
	sorted := make([]RawScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > k {
		sorted = sorted[:k]
	}
	return sorted
}

// Percentages rescales the given scores so they sum to 100. A non-positive
// sum yields 0 for every entry, never NaN.
func Percentages(scores []RawScore) []float64 {
	out := make([]float64, len(scores))
	var sum float64
	for _, s := range scores {
		sum += float64(s.Score)
	}
	if sum <= 0 {
		return out
	}
	for i, s := range scores {
		out[i] = float64(s.Score) / sum * 100
	}
	return out
}
