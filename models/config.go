// Package models defines data structures for configuration, pages and summaries.
package models

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the scoring and selection knobs of the pipeline.
type Config struct {
	SimilarityWeight  float64 `yaml:"similarity_weight"`
	ReadabilityWeight float64 `yaml:"readability_weight"`
	CompressionWeight float64 `yaml:"compression_weight"`

	// TargetRatio is the share of filtered sentences each strategy aims for.
	TargetRatio  float64 `yaml:"target_ratio"`
	MinSentences int     `yaml:"min_sentences"`
	MaxSentences int     `yaml:"max_sentences"`

	// Concurrency bounds how many strategies run at once. 1 runs them in order.
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		SimilarityWeight:  0.40,
		ReadabilityWeight: 0.30,
		CompressionWeight: 0.30,
		TargetRatio:       0.60,
		MinSentences:      10,
		MaxSentences:      150,
		Concurrency:       4,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from
// the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.SimilarityWeight < 0 || c.ReadabilityWeight < 0 || c.CompressionWeight < 0 {
		errs = append(errs, errors.New("weights must not be negative"))
	}
	if c.TargetRatio <= 0 || c.TargetRatio > 1 {
		errs = append(errs, fmt.Errorf("target_ratio must be in (0, 1], got %v", c.TargetRatio))
	}
	if c.MinSentences < 1 {
		errs = append(errs, fmt.Errorf("min_sentences must be at least 1, got %d", c.MinSentences))
	}
	if c.MaxSentences < c.MinSentences {
		errs = append(errs, fmt.Errorf("max_sentences (%d) is below min_sentences (%d)", c.MaxSentences, c.MinSentences))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	return errors.Join(errs...)
}

// TargetSentences is round(n * TargetRatio) clamped to [MinSentences, MaxSentences].
// It is computed once per document so every strategy gets the same budget.
func (c Config) TargetSentences(n int) int {
	target := int(math.Round(float64(n) * c.TargetRatio))
	if target < c.MinSentences {
		target = c.MinSentences
	}
	if target > c.MaxSentences {
		target = c.MaxSentences
	}
	return target
}

// RunConfig holds runtime options for a batch digest.
// All values come from CLI flags.
type RunConfig struct {
	Files       []string
	WorkerCount int
}
