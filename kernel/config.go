package kernel

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the kernel's single flat map of recognized configuration keys
// (spec §6). Unrecognized keys are kept verbatim so a newer config file can
// round-trip through an older kernel without losing fields.
type Config struct {
	values map[string]float64
}

// recognizedConfigKeys lists every key spec §6 names, grouped by section,
// together with its default. Keeping them in one table makes it obvious at a
// glance which knob belongs to which component.
var recognizedConfigKeys = map[string]float64{
	// Core
	"budgetDecay":           0.9,
	"budgetThreshold":       0.01,
	"decay":                 0.3,
	"maxPathLength":         32,
	"maxDerivationDepth":    8,
	"beliefCapacity":        8,
	"contradictionThreshold": 0.5,
	"inferenceThreshold":    0.3,
	"questionTimeout":       5000,
	"temporalHorizon":       60,
	"derivationCacheSize":   5000,
	"eventQueueSoftCap":     10000,
	"pathCacheSize":         5000,

	// Derivation weights
	"transitiveInheritanceBudgetFactor":      0.7,
	"transitiveInheritanceActivationFactor":  0.7,
	"similarityFromInheritanceBudgetFactor":  0.6,
	"similarityFromInheritanceActivationFactor": 0.6,
	"propertyInheritanceBudgetFactor":        0.5,
	"similaritySymmetryBudgetFactor":         0.9,
	"inductiveSimilarityBudgetFactor":        0.6,
	"analogyBudgetFactor":                    0.6,
	"implicationActivationFactor":            0.9,
	"implicationBudgetFactor":                0.75,
	"equivalenceBudgetFactor":                0.8,
	"conjunctionActivationFactor":            0.9,
	"conjunctionBudgetFactor":                0.75,
	"transitiveTemporalBudgetFactor":         0.7,

	// Learning
	"learningRate":                      0.1,
	"experienceBufferMaxSize":           1000,
	"patternMinInstances":               5,
	"patternSuccessRateThreshold":       0.8,
	"ruleDisableEffectivenessThreshold": 0.1,
	"ruleEnableEffectivenessThreshold":  0.4,
	"ruleProductivityMinAttempts":       5,

	// Memory
	"importanceDecayFactor":   0.98,
	"importanceActivationWeight": 0.4,
	"importanceQuestionWeight":   0.3,
	"importanceSuccessWeight":    0.2,
	"importanceContextWeight":    0.05,
	"importanceGoalWeight":       0.05,
	"capacity":                   100000,

	// Temporal
	"maxPropagationIterations":          1000,
	"defaultTemporalHorizon":            60,
	"maxTemporalHorizon":                1440,
	"predictionConfidenceThreshold":     0.3,
	"predictionBaseConfidenceMeets":     0.9,
	"predictionBaseConfidenceStarts":    0.8,
	"predictionBaseConfidenceOverlaps":  0.7,
	"predictionBaseConfidenceBefore":    0.4,
	"predictionBaseConfidenceDefault":   0.2,
}

// NewConfig returns a config seeded with every recognized key's default.
func NewConfig() *Config {
	c := &Config{values: make(map[string]float64, len(recognizedConfigKeys))}
	for k, v := range recognizedConfigKeys {
		c.values[k] = v
	}
	return c
}

// Get returns a key's current value, falling back to 0 when unset.
func (c *Config) Get(key string) float64 {
	return c.values[key]
}

// Set assigns a key's value. Unrecognized keys are accepted and kept, the
// same way the meta-learning rule (spec §4.4) writes arbitrary configKeys it
// doesn't otherwise know the meaning of.
func (c *Config) Set(key string, value float64) {
	if c.values == nil {
		c.values = make(map[string]float64)
	}
	c.values[key] = value
}

// IsRecognized reports whether key is one spec §6 names.
func (c *Config) IsRecognized(key string) bool {
	_, ok := recognizedConfigKeys[key]
	return ok
}

// Snapshot returns a copy of the full key/value map, used by saveState.
func (c *Config) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// LoadConfigYAML loads recognized keys from a YAML file, leaving defaults in
// place for anything the file omits.
func LoadConfigYAML(path string) (*Config, error) {
	c := NewConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var values map[string]float64
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	for k, v := range values {
		c.Set(k, v)
	}
	return c, nil
}

// DumpYAML serializes the current config to YAML bytes.
func (c *Config) DumpYAML() ([]byte, error) {
	return yaml.Marshal(c.values)
}
