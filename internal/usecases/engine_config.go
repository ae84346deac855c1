package usecases

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// IntentPatterns is one industry intent with its ordered regex patterns.
// Declaration order in the YAML breaks ties.
type IntentPatterns struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// IndustryConfig declares the recognized intents for one industry.
type IndustryConfig struct {
	Intents []IntentPatterns `yaml:"intents"`
}

// CommonIntent is one cross-industry intent with its training phrase bank.
type CommonIntent struct {
	Name    string   `yaml:"name"`
	Phrases []string `yaml:"phrases"`
}

// EngineConfig is the startup configuration resource: industries and their
// intent patterns, the reply template bank, and the classifier phrase bank.
// Loaded once before traffic is accepted and never mutated afterwards;
// changing it requires a process restart.
type EngineConfig struct {
	Industries     map[string]IndustryConfig    `yaml:"industries"`
	CommonIntents  []CommonIntent               `yaml:"common_intents"`
	Templates      map[string]map[string]string `yaml:"templates"` // industry -> intent -> template
	GlobalFallback string                       `yaml:"global_fallback"`
	SafeReply      string                       `yaml:"safe_reply"`
}

// LoadEngineConfig reads and validates the YAML config resource.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read engine config: %w", err)
	}

	var cfg EngineConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse engine config: %w", err)
	}

	if cfg.GlobalFallback == "" {
		return nil, fmt.Errorf("engine config: global_fallback is required")
	}
	if cfg.SafeReply == "" {
		return nil, fmt.Errorf("engine config: safe_reply is required")
	}
	if len(cfg.CommonIntents) == 0 {
		return nil, fmt.Errorf("engine config: at least one common intent is required")
	}
	for name, ind := range cfg.Industries {
		for _, intent := range ind.Intents {
			if intent.Name == "" {
				return nil, fmt.Errorf("engine config: industry %s has an unnamed intent", name)
			}
		}
	}

	return &cfg, nil
}
