package config

import (
	"fmt"
)

// knownAccents are the accent tags the engine can adapt to.
var knownAccents = map[string]struct{}{
	"american":   {},
	"british":    {},
	"australian": {},
}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Phonetics.validate(); err != nil {
		return fmt.Errorf("phonetics: %w", err)
	}

	return nil
}

func (p *PhoneticsConfig) validate() error {
	if p.DictionaryPath == "" {
		return fmt.Errorf("dictionary_path is required")
	}
	if p.RulesPath == "" {
		return fmt.Errorf("rules_path is required")
	}
	if p.UseML {
		if p.ModelPath == "" || p.CharMapPath == "" || p.PhonemeMapPath == "" {
			return fmt.Errorf("model_path, char_map_path and phoneme_map_path are required when use_ml is enabled")
		}
	}
	if _, ok := knownAccents[p.DefaultAccent]; !ok {
		return fmt.Errorf("unknown default_accent %q", p.DefaultAccent)
	}
	return nil
}
