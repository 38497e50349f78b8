package model

import "time"

type ActionType string

const (
	ActionEntry      ActionType = "ENTRY"
	ActionExit       ActionType = "EXIT"
	ActionBreakStart ActionType = "BREAK_START"
	ActionBreakEnd   ActionType = "BREAK_END"
	ActionInquiry    ActionType = "INQUIRY" // Salida a consulta médica, no cuenta como trabajo
	ActionUnknown    ActionType = "UNKNOWN"
)

// ClockActions are the actions a worker may submit from the app.
var ClockActions = []ActionType{ActionEntry, ActionExit, ActionBreakStart, ActionBreakEnd, ActionInquiry}

// AccessGrant is tri-state: an absent value is not a denial.
type AccessGrant int8

const (
	GrantUnknown AccessGrant = iota
	GrantAllowed
	GrantDenied
)

func (g AccessGrant) Denied() bool { return g == GrantDenied }

// Ptr renders the grant for JSON output: nil when unknown.
func (g AccessGrant) Ptr() *bool {
	switch g {
	case GrantAllowed:
		v := true
		return &v
	case GrantDenied:
		v := false
		return &v
	}
	return nil
}

type PresenceEvent struct {
	ID            string      `json:"id"`
	User          string      `json:"user"`
	Timestamp     time.Time   `json:"timestamp"`
	ActionType    ActionType  `json:"action_type"`
	WireType      string      `json:"wire_type"` // Valor original (ENTRADA, SALIDA, INTENTO...)
	AccessGranted AccessGrant `json:"-"`
	AuthMethod    string      `json:"auth_method,omitempty"` // TOKEN, PIN, TOKEN+PIN, MANUAL_APP
	Details       string      `json:"details,omitempty"`
}

// ClockRequest is the outbound payload of a clock action.
type ClockRequest struct {
	User       string
	ActionType ActionType
	Location   string
	AuthMethod string
	Timestamp  time.Time
}
