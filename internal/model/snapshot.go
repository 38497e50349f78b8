package model

import (
	"time"

	"gorm.io/gorm"
)

// WorkerSnapshot stores the last applied aggregate for a worker.
type WorkerSnapshot struct {
	gorm.Model
	Username       string     `json:"username" gorm:"uniqueIndex;size:191;not null"`
	WindowLabel    string     `json:"window"`
	Status         string     `json:"status"`
	LastActionTime *time.Time `json:"last_action_time"`
	FilteredHours  float64    `json:"filtered_hours"`
	TotalMinutes   int64      `json:"total_minutes"`
	SessionCount   int        `json:"session_count"`
	RefreshedAt    time.Time  `json:"refreshed_at"`
}

func (s WorkerSnapshot) Stats() AggregateStats {
	return AggregateStats{
		Status:         DerivedStatus(s.Status),
		LastActionTime: s.LastActionTime,
		FilteredHours:  s.FilteredHours,
		TotalMinutes:   s.TotalMinutes,
		SessionCount:   s.SessionCount,
	}
}

const (
	ClockOutcomeOK     = "OK"
	ClockOutcomeFailed = "FAILED"
)

// ClockAudit records every clock action forwarded upstream.
type ClockAudit struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Username    string    `json:"username" gorm:"index;size:191"`
	ActionType  string    `json:"action_type"`
	Location    string    `json:"location"`
	RequestedAt time.Time `json:"requested_at"`
	Outcome     string    `json:"outcome"` // OK / FAILED
	Detail      string    `json:"detail"`
	CreatedAt   time.Time `json:"created_at"`
}
