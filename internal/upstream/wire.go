package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

// Wire action types used by the ESP32 API.
const (
	wireEntrada      = "ENTRADA"
	wireSalida       = "SALIDA"
	wireInicioPausa  = "INICIO_PAUSA"
	wireFinPausa     = "FIN_PAUSA"
	wireConsulta     = "CONSULTA"
	wireVueltaMedico = "VUELTA_MEDICO"
)

var actionFromWire = map[string]model.ActionType{
	wireEntrada:      model.ActionEntry,
	wireSalida:       model.ActionExit,
	wireInicioPausa:  model.ActionBreakStart,
	wireFinPausa:     model.ActionBreakEnd,
	wireConsulta:     model.ActionInquiry,
	wireVueltaMedico: model.ActionEntry,
}

var actionToWire = map[model.ActionType]string{
	model.ActionEntry:      wireEntrada,
	model.ActionExit:       wireSalida,
	model.ActionBreakStart: wireInicioPausa,
	model.ActionBreakEnd:   wireFinPausa,
	model.ActionInquiry:    wireConsulta,
}

func ActionFromWire(s string) model.ActionType {
	if a, ok := actionFromWire[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return a
	}
	return model.ActionUnknown
}

func ActionToWire(a model.ActionType) (string, bool) {
	s, ok := actionToWire[a]
	return s, ok
}

// grant decodes accesoPermitido, which arrives as bool, number, string or null.
type grant model.AccessGrant

func (g *grant) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*g = grant(model.GrantUnknown)
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*g = grantOf(v)
	case float64:
		*g = grantOf(v != 0)
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			*g = grant(model.GrantAllowed)
		case "false", "0":
			*g = grant(model.GrantDenied)
		default:
			*g = grant(model.GrantUnknown)
		}
	default:
		*g = grant(model.GrantUnknown)
	}
	return nil
}

func grantOf(b bool) grant {
	if b {
		return grant(model.GrantAllowed)
	}
	return grant(model.GrantDenied)
}

// Timestamps are Java LocalDateTime values: ISO text without zone, RFC3339,
// or the Jackson array form [y, m, d, h, mi, s, nanos]. Zone-less values are
// read in the client location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

func parseTimestamp(b []byte, loc *time.Location) (time.Time, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return time.Time{}, nil
	}
	if b[0] == '[' {
		var parts []int
		if err := json.Unmarshal(b, &parts); err != nil {
			return time.Time{}, fmt.Errorf("timestamp array: %w", err)
		}
		if len(parts) < 3 {
			return time.Time{}, fmt.Errorf("timestamp array too short: %v", parts)
		}
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		return time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], loc), nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return time.Time{}, fmt.Errorf("timestamp: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).In(loc), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

type rawPresence struct {
	ID              string          `json:"id"`
	Usuario         string          `json:"usuario"`
	FechaHora       json.RawMessage `json:"fechaHora"`
	MetodoAuth      string          `json:"metodoAuth"`
	Tipo            string          `json:"tipo"`
	AccesoPermitido grant           `json:"accesoPermitido"`
	Detalles        string          `json:"detalles"`
}

type rawSession struct {
	ID              string          `json:"id"`
	Usuario         string          `json:"usuario"`
	Inicio          json.RawMessage `json:"inicio"`
	Fin             json.RawMessage `json:"fin"`
	DuracionMinutos *int64          `json:"duracionMinutos"`
}

type rawLight struct {
	ID         string          `json:"id"`
	Iluminado  *bool           `json:"iluminado"`
	Iluminadad *bool           `json:"iluminadad"`
	Fecha      json.RawMessage `json:"fecha"`
}

type rawWeather struct {
	ID          string          `json:"id"`
	Temperatura float64         `json:"temperatura"`
	Humedad     float64         `json:"humedad"`
	Fecha       json.RawMessage `json:"fecha"`
}

type rawRFID struct {
	ID    string          `json:"id"`
	UID   string          `json:"uid"`
	Fecha json.RawMessage `json:"fecha"`
}

type rawUser struct {
	ID        string            `json:"id"`
	MongoID   string            `json:"_id"`
	Username  string            `json:"username"`
	Password  string            `json:"password"`
	RFIDToken string            `json:"rfidToken"`
	Rol       string            `json:"rol"`
	IsAdmin   bool              `json:"isAdmin"`
	Admin     bool              `json:"admin"`
	Horario   map[string]string `json:"horario"`
}

type rawOverview struct {
	Meteorologia []rawWeather  `json:"meteorologia"`
	Luz          []rawLight    `json:"luz"`
	RFID         []rawRFID     `json:"rfid"`
	TarjetaRFID  []rawRFID     `json:"tarjetaRFID"`
	Usuarios     []rawUser     `json:"usuarios"`
	Presencia    []rawPresence `json:"presencia"`
}

func (r rawPresence) toModel(loc *time.Location) (model.PresenceEvent, error) {
	ts, err := parseTimestamp(r.FechaHora, loc)
	if err != nil {
		return model.PresenceEvent{}, fmt.Errorf("presence %s: %w", r.ID, err)
	}
	return model.PresenceEvent{
		ID:            r.ID,
		User:          strings.TrimSpace(r.Usuario),
		Timestamp:     ts,
		ActionType:    ActionFromWire(r.Tipo),
		WireType:      r.Tipo,
		AccessGranted: model.AccessGrant(r.AccesoPermitido),
		AuthMethod:    r.MetodoAuth,
		Details:       r.Detalles,
	}, nil
}

func (r rawSession) toModel(loc *time.Location) (model.WorkSession, error) {
	start, err := parseTimestamp(r.Inicio, loc)
	if err != nil {
		return model.WorkSession{}, fmt.Errorf("session %s inicio: %w", r.ID, err)
	}
	end, err := parseTimestamp(r.Fin, loc)
	if err != nil {
		return model.WorkSession{}, fmt.Errorf("session %s fin: %w", r.ID, err)
	}
	var minutes int64
	if r.DuracionMinutos != nil {
		minutes = *r.DuracionMinutos
	}
	return model.WorkSession{ID: r.ID, User: r.Usuario, Start: start, End: end, DurationMinutes: minutes}, nil
}

func (r rawLight) toModel(loc *time.Location) (model.LightReading, error) {
	ts, err := parseTimestamp(r.Fecha, loc)
	if err != nil {
		return model.LightReading{}, fmt.Errorf("luz %s: %w", r.ID, err)
	}
	lit := false
	switch {
	case r.Iluminado != nil:
		lit = *r.Iluminado
	case r.Iluminadad != nil:
		lit = *r.Iluminadad
	}
	return model.LightReading{ID: r.ID, Lit: lit, RecordedAt: ts}, nil
}

func (r rawWeather) toModel(loc *time.Location) (model.WeatherReading, error) {
	ts, err := parseTimestamp(r.Fecha, loc)
	if err != nil {
		return model.WeatherReading{}, fmt.Errorf("meteorologia %s: %w", r.ID, err)
	}
	return model.WeatherReading{ID: r.ID, Temperature: r.Temperatura, Humidity: r.Humedad, RecordedAt: ts}, nil
}

func (r rawRFID) toModel(loc *time.Location) (model.RFIDScan, error) {
	ts, err := parseTimestamp(r.Fecha, loc)
	if err != nil {
		return model.RFIDScan{}, fmt.Errorf("rfid %s: %w", r.ID, err)
	}
	return model.RFIDScan{ID: r.ID, UID: r.UID, RecordedAt: ts}, nil
}

func (r rawUser) toModel() model.Worker {
	id := r.ID
	if id == "" {
		id = r.MongoID
	}
	return model.Worker{
		ID:        id,
		Username:  r.Username,
		Password:  r.Password,
		RFIDToken: r.RFIDToken,
		Role:      r.Rol,
		IsAdmin:   r.IsAdmin || r.Admin,
		Schedule:  r.Horario,
	}
}

// convertAll maps a raw slice; any malformed record fails the whole batch so
// callers never see partially parsed data.
func convertAll[R any, M any](raws []R, conv func(R) (M, error)) ([]M, error) {
	out := make([]M, 0, len(raws))
	for _, r := range raws {
		m, err := conv(r)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// EncodePIN hex-encodes a PIN the way the app registers it: upper-case hex of
// each byte followed by "00".
func EncodePIN(pin string) string {
	var sb strings.Builder
	for i := 0; i < len(pin); i++ {
		fmt.Fprintf(&sb, "%02X", pin[i])
	}
	sb.WriteString("00")
	return sb.String()
}
