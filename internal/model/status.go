package model

import "time"

type DerivedStatus string

const (
	StatusIn      DerivedStatus = "IN"
	StatusOut     DerivedStatus = "OUT"
	StatusPaused  DerivedStatus = "PAUSED"
	StatusUnknown DerivedStatus = "UNKNOWN"
)

type AggregateStats struct {
	Status         DerivedStatus `json:"status"`
	LastActionTime *time.Time    `json:"last_action_time"`
	FilteredHours  float64       `json:"filtered_hours"`
	TotalMinutes   int64         `json:"total_minutes"`
	SessionCount   int           `json:"session_count"`
}
