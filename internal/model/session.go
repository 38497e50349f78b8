package model

import "time"

// WorkSession is computed upstream; the gateway only filters and sums it.
type WorkSession struct {
	ID              string    `json:"id"`
	User            string    `json:"user"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int64     `json:"duration_minutes"`
}
