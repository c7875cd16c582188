package predictor

import (
	"fmt"
	"strconv"
	"strings"
)

// Prediction is one (label, score) pair as returned by the model, in model
// output order. The label encodes the class id as an underscore-delimited
// integer suffix, e.g. "LABEL_7".
type Prediction struct {
	Label string  `json:"label"`
	Score float32 `json:"score"`
}

// RawScore pairs a parsed class id with its probability.
type RawScore struct {
	ClassID int
	Score   float32
}

// ParseClassID extracts the integer class id from a model label such as
// "LABEL_12". The token after the last underscore must be an integer.
func ParseClassID(label string) (int, error) {
	idx := strings.LastIndexByte(label, '_')
	if idx < 0 || idx == len(label)-1 {
		return 0, fmt.Errorf("label %q does not encode a class id", label)
	}
	id, err := strconv.Atoi(label[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("label %q does not encode a class id: %w", label, err)
	}
	return id, nil
}
