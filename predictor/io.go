package predictor

import (
	"fmt"
	"os"
	"strings"
)

// ParseTextFile reads a plain-text file and returns its non-empty trimmed
// lines, one prediction input per line.
func ParseTextFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return SplitNonEmptyLines(string(data)), nil
}

// SplitNonEmptyLines splits text on newlines and drops blank lines.
func SplitNonEmptyLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
