package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Pipeline pairs the encoder with the model's label mapping. It is read-only
// after construction; the handle can be shared freely once loaded.
type Pipeline struct {
	enc    *Encoder
	labels map[int]string
	logger *slog.Logger
}

// NewPipeline constructs the inference pipeline from the model directory.
// This call blocks while the ONNX session is created.
func NewPipeline(cfg Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.ApplyDefaults()
	enc, err := NewEncoder(EncoderConfig{
		OrtDLL:        cfg.OrtDLL,
		ModelPath:     cfg.ModelFile(),
		TokenizerPath: cfg.TokenizerFile(),
		MaxSeqLen:     cfg.MaxSeqLen,
	})
	if err != nil {
		return nil, err
	}
	labels, err := loadID2Label(cfg.ModelConfigFile())
	if err != nil {
		logger.Warn("model config unreadable, falling back to LABEL_<id>", "error", err)
		labels = nil
	}
	return &Pipeline{enc: enc, labels: labels, logger: logger}, nil
}

// Close releases the underlying ONNX resources.
func (p *Pipeline) Close() error {
	if p == nil {
		return nil
	}
	return p.enc.Close()
}

// Predict classifies the given text and returns one (label, score) pair per
// class in model output order. The text must be non-empty after trimming.
func (p *Pipeline) Predict(_ context.Context, text string) ([]Prediction, error) {
	normalized := NormalizeText(text)
	if normalized == "" {
		return nil, errors.New("input text is empty")
	}
	scores, err := p.enc.Encode(normalized)
	if err != nil {
		return nil, err
	}
	preds := make([]Prediction, len(scores))
	for i, score := range scores {
		preds[i] = Prediction{Label: p.labelFor(i), Score: score}
	}
	return preds, nil
}

func (p *Pipeline) labelFor(classID int) string {
	if label, ok := p.labels[classID]; ok {
		return label
	}
	return fmt.Sprintf("LABEL_%d", classID)
}

// modelConfig is the fragment of the exporter's config.json we consume.
type modelConfig struct {
	ID2Label map[string]string `json:"id2label"`
}

func loadID2Label(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model config: %w", err)
	}
	var mc modelConfig
	if err := json.Unmarshal(data, &mc); err != nil {
		return nil, fmt.Errorf("decode model config: %w", err)
	}
	labels := make(map[int]string, len(mc.ID2Label))
	for key, label := range mc.ID2Label {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("model config id2label key %q: %w", key, err)
		}
		labels[id] = label
	}
	return labels, nil
}
