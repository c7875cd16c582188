package predictor

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText applies NFKC normalization, trims surrounding whitespace and
// collapses internal whitespace runs to single spaces.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	fields := strings.Fields(normed)
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, " ")
}
