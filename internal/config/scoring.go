package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"flight-footprint/atlas/internal/airports"
)

// scoringFile mirrors airports.ScoringConfig with optional fields so a YAML
// file only has to name the values it changes.
type scoringFile struct {
	BaseBonus           *int             `yaml:"base_bonus"`
	HubBonus            *int             `yaml:"hub_bonus"`
	HubPassengerDivisor *int64           `yaml:"hub_passenger_divisor"`
	KeywordBonus        *int             `yaml:"keyword_bonus"`
	Keyword             *string          `yaml:"keyword"`
	CapitalBonus        *int             `yaml:"capital_bonus"`
	RegionalPenalty     *int             `yaml:"regional_penalty"`
	RegionalTerms       []string         `yaml:"regional_terms"`
	EligibleTerms       []string         `yaml:"eligible_terms"`
	Hubs                map[string]int64 `yaml:"hubs"`
	ReplaceHubs         bool             `yaml:"replace_hubs"`
}

// LoadScoring returns the default scoring table with the overrides from the
// YAML file at path applied. An empty path returns the defaults.
func LoadScoring(path string) (airports.ScoringConfig, error) {
	cfg := airports.DefaultScoringConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read scoring config: %w", err)
	}
	return ParseScoring(data)
}

// ParseScoring applies YAML overrides to the default scoring table.
// Hub entries are merged into the default table unless replace_hubs is set.
func ParseScoring(data []byte) (airports.ScoringConfig, error) {
	cfg := airports.DefaultScoringConfig()

	var file scoringFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal scoring config: %w", err)
	}

	if file.BaseBonus != nil {
		cfg.BaseBonus = *file.BaseBonus
	}
	if file.HubBonus != nil {
		cfg.HubBonus = *file.HubBonus
	}
	if file.HubPassengerDivisor != nil {
		if *file.HubPassengerDivisor <= 0 {
			return cfg, fmt.Errorf("hub_passenger_divisor must be positive, got %d", *file.HubPassengerDivisor)
		}
		cfg.HubPassengerDivisor = *file.HubPassengerDivisor
	}
	if file.KeywordBonus != nil {
		cfg.KeywordBonus = *file.KeywordBonus
	}
	if file.Keyword != nil {
		cfg.Keyword = *file.Keyword
	}
	if file.CapitalBonus != nil {
		cfg.CapitalBonus = *file.CapitalBonus
	}
	if file.RegionalPenalty != nil {
		cfg.RegionalPenalty = *file.RegionalPenalty
	}
	if file.RegionalTerms != nil {
		cfg.RegionalTerms = file.RegionalTerms
	}
	if file.EligibleTerms != nil {
		cfg.EligibleTerms = file.EligibleTerms
	}

	if file.ReplaceHubs {
		cfg.Hubs = make(map[string]int64, len(file.Hubs))
	}
	for code, passengers := range file.Hubs {
		cfg.Hubs[strings.ToUpper(code)] = passengers
	}

	return cfg, nil
}
