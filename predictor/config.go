package predictor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const defaultConfigFile = "config.json"

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	// ModelDir contains model.onnx, tokenizer.json and the exporter's
	// config.json with the id2label mapping.
	ModelDir string `json:"modelDir"`
	// OrtDLL optionally points at the ONNX Runtime shared library.
	OrtDLL    string `json:"ortDll"`
	MaxSeqLen int    `json:"maxSeqLen"`
	// ImageDir contains one image per class plus the logo and app icon.
	ImageDir string `json:"imageDir"`
	// WarmupMillis paces the splash progress bar around the blocking load.
	WarmupMillis int `json:"warmupMillis"`
}

// ApplyDefaults populates zero values with the reference layout.
func (c *Config) ApplyDefaults() {
	if c.ModelDir == "" {
		c.ModelDir = "best_model"
	}
	if c.MaxSeqLen <= 0 {
		c.MaxSeqLen = 128
	}
	if c.ImageDir == "" {
		c.ImageDir = "emoji_images"
	}
	if c.WarmupMillis < 0 {
		c.WarmupMillis = 0
	}
}

// ModelFile returns the path of the ONNX model inside ModelDir.
func (c Config) ModelFile() string { return filepath.Join(c.ModelDir, "model.onnx") }

// TokenizerFile returns the path of the HuggingFace tokenizer definition.
func (c Config) TokenizerFile() string { return filepath.Join(c.ModelDir, "tokenizer.json") }

// ModelConfigFile returns the path of the exporter config carrying id2label.
func (c Config) ModelConfigFile() string { return filepath.Join(c.ModelDir, "config.json") }

// WarmupDelay returns WarmupMillis as a duration.
func (c Config) WarmupDelay() time.Duration {
	return time.Duration(c.WarmupMillis) * time.Millisecond
}

// LoadConfig loads configuration from the given path or the default
// config.json. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.WarmupMillis = 500
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	hasWarmup := bytes.Contains(data, []byte(`"warmupMillis"`))
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if !hasWarmup {
		cfg.WarmupMillis = 500
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// EnsureConfig loads config.json, writing the defaults on first run so users
// have a file to edit.
func EnsureConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := SaveConfig(path, cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
