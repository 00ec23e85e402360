package domain

import "time"

type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

type RiskRecord struct {
	Entity                string    `json:"entity"`
	LastActivity          time.Time `json:"last_activity"`
	DaysSinceLastActivity int       `json:"days_since_last_activity"`
	Tier                  RiskTier  `json:"tier"`
}

type ChurnReport struct {
	AsOf       time.Time        `json:"as_of"`
	HighDays   int              `json:"high_days"`
	MediumDays int              `json:"medium_days"`
	Records    []RiskRecord     `json:"records"`
	TierCounts map[RiskTier]int `json:"tier_counts"`
}
