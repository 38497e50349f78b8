package model

import "strings"

type Worker struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Password  string            `json:"-"` // PIN, hex-encoded or plain depending on how it was registered
	RFIDToken string            `json:"rfid_token"`
	Role      string            `json:"role"`
	IsAdmin   bool              `json:"is_admin"`
	Schedule  map[string]string `json:"schedule"`
}

func (w Worker) Admin() bool {
	return strings.EqualFold(w.Role, "admin") || w.IsAdmin || strings.EqualFold(w.Username, "admin")
}

// DefaultSchedule is used when a worker has no schedule or is missing days.
var DefaultSchedule = map[string]string{
	"Lunes":     "09:00 - 18:00",
	"Martes":    "09:00 - 18:00",
	"Miércoles": "09:00 - 18:00",
	"Jueves":    "09:00 - 18:00",
	"Viernes":   "09:00 - 15:00",
	"Sábado":    "Descanso",
	"Domingo":   "Descanso",
}

// MergeSchedule fills missing days of s with the default schedule.
func MergeSchedule(s map[string]string) map[string]string {
	out := make(map[string]string, len(DefaultSchedule))
	for k, v := range DefaultSchedule {
		out[k] = v
	}
	for k, v := range s {
		out[k] = v
	}
	return out
}
