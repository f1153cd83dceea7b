package airports

import (
	"strings"

	"flight-footprint/atlas/internal/models"
)

// ScoringConfig holds every magnitude and term used to score and filter
// airports. The zero value scores nothing; start from DefaultScoringConfig.
type ScoringConfig struct {
	BaseBonus           int
	HubBonus            int
	HubPassengerDivisor int64
	KeywordBonus        int
	Keyword             string
	CapitalBonus        int
	RegionalPenalty     int
	RegionalTerms       []string
	EligibleTerms       []string
	Hubs                map[string]int64
}

// DefaultScoringConfig returns the built-in table. Hub values are annual
// passenger counts.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseBonus:           10,
		HubBonus:            100,
		HubPassengerDivisor: 1_000_000,
		KeywordBonus:        30,
		Keyword:             "international",
		CapitalBonus:        20,
		RegionalPenalty:     10,
		RegionalTerms:       []string{"regional", "municipal", "general"},
		EligibleTerms:       []string{"international", "airport"},
		Hubs: map[string]int64{
			"ATL": 75_704_760,
			"DFW": 62_465_756,
			"DEN": 58_828_552,
			"ORD": 54_020_399,
			"LAX": 48_007_284,
			"CLT": 43_302_230,
			"MCO": 40_351_068,
			"CAN": 40_259_401,
			"LAS": 39_754_366,
			"PHX": 38_834_677,
			"MIA": 37_701_292,
			"IST": 37_178_828,
			"SZX": 36_510_807,
			"HND": 35_897_187,
			"PVG": 32_910_447,
			"IAH": 32_903_444,
			"LHR": 32_820_865,
			"DEL": 37_140_000,
			"CDG": 32_362_306,
			"AMS": 31_588_031,
		},
	}
}

// Score computes the popularity score of a record. It is pure: the same
// record and config always give the same result.
func (c ScoringConfig) Score(a models.AirportRecord) int {
	score := 0
	name := strings.ToLower(a.Name)

	if a.IATACode != "" {
		score += c.BaseBonus
		if passengers, ok := c.Hubs[a.IATACode]; ok {
			score += c.HubBonus
			if c.HubPassengerDivisor > 0 {
				score += int(passengers / c.HubPassengerDivisor)
			}
		}
	}

	if c.Keyword != "" && strings.Contains(name, strings.ToLower(c.Keyword)) {
		score += c.KeywordBonus
	}

	city := strings.ToLower(a.City)
	if city != "" && strings.Contains(strings.ToLower(a.Country), city) {
		score += c.CapitalBonus
	}

	if containsAny(name, c.RegionalTerms) {
		score -= c.RegionalPenalty
	}

	return score
}

// Score scores a record with the default table.
func Score(a models.AirportRecord) int {
	return defaultScoring.Score(a)
}

var defaultScoring = DefaultScoringConfig()

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(lowered, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
