package model

import "time"

type LightReading struct {
	ID         string    `json:"id"`
	Lit        bool      `json:"lit"`
	RecordedAt time.Time `json:"recorded_at"`
}

type WeatherReading struct {
	ID          string    `json:"id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type RFIDScan struct {
	ID         string    `json:"id"`
	UID        string    `json:"uid"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Overview mirrors the grouped /datos payload after normalization.
type Overview struct {
	Weather  []WeatherReading
	Light    []LightReading
	RFID     []RFIDScan
	Workers  []Worker
	Presence []PresenceEvent
}
