package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/observability"
)

// AuthMethodManual is the auth method the ESP32 API stores for app clock actions.
const AuthMethodManual = "MANUAL_APP"

// StatusError is returned when the ESP32 API answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("esp32 api %s status=%d, body=%s", e.Endpoint, e.Status, e.Body)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Location *time.Location
}

func NewClient(baseURL string, timeout time.Duration, loc *time.Location) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		BaseURL:  baseURL,
		Location: loc,
		HTTP: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        20,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// do sends the request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	started := time.Now()
	body, err := c.roundTrip(ctx, endpoint, method, path, query, payload)
	observability.ObserveUpstream(endpoint, started, err)
	return body, err
}

func (c *Client) roundTrip(ctx context.Context, endpoint, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("esp32 api %s: %w", endpoint, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("esp32 api %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("esp32 api %s: read body: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Endpoint: endpoint, Status: resp.StatusCode, Body: string(b)}
	}
	return b, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, out interface{}) error {
	b, err := c.do(ctx, endpoint, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 || bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("esp32 api %s: decode: %w", endpoint, err)
	}
	return nil
}

// FetchPresence returns the full presence log, unfiltered by date.
func (c *Client) FetchPresence(ctx context.Context) ([]model.PresenceEvent, error) {
	var raws []rawPresence
	if err := c.getJSON(ctx, "control-presencia", "/control-presencia", nil, &raws); err != nil {
		return nil, err
	}
	return convertAll(raws, func(r rawPresence) (model.PresenceEvent, error) { return r.toModel(c.Location) })
}

// FetchSessions returns the computed work sessions of a user. The dias
// parameter is only sent for trailing day windows; the ALL and date windows
// fetch everything and filter locally.
func (c *Client) FetchSessions(ctx context.Context, user string, w attendance.Window) ([]model.WorkSession, error) {
	q := url.Values{}
	if n := w.QueryDays(); n > 0 {
		q.Set("dias", strconv.Itoa(n))
	}
	var raws []rawSession
	if err := c.getJSON(ctx, "sesiones", "/sesiones/usuario/"+url.PathEscape(user), q, &raws); err != nil {
		return nil, err
	}
	return convertAll(raws, func(r rawSession) (model.WorkSession, error) { return r.toModel(c.Location) })
}

// FetchOverview returns every collection of /datos. Missing collections
// decode as empty slices.
func (c *Client) FetchOverview(ctx context.Context) (model.Overview, error) {
	var raw rawOverview
	if err := c.getJSON(ctx, "datos", "/datos", nil, &raw); err != nil {
		return model.Overview{}, err
	}

	var out model.Overview
	var err error
	if out.Weather, err = convertAll(raw.Meteorologia, func(r rawWeather) (model.WeatherReading, error) { return r.toModel(c.Location) }); err != nil {
		return model.Overview{}, err
	}
	if out.Light, err = convertAll(raw.Luz, func(r rawLight) (model.LightReading, error) { return r.toModel(c.Location) }); err != nil {
		return model.Overview{}, err
	}
	rfid := raw.RFID
	if len(rfid) == 0 {
		rfid = raw.TarjetaRFID
	}
	if out.RFID, err = convertAll(rfid, func(r rawRFID) (model.RFIDScan, error) { return r.toModel(c.Location) }); err != nil {
		return model.Overview{}, err
	}
	if out.Presence, err = convertAll(raw.Presencia, func(r rawPresence) (model.PresenceEvent, error) { return r.toModel(c.Location) }); err != nil {
		return model.Overview{}, err
	}
	out.Workers = make([]model.Worker, 0, len(raw.Usuarios))
	for _, u := range raw.Usuarios {
		out.Workers = append(out.Workers, u.toModel())
	}
	return out, nil
}

// FetchLatestLight returns the most recent light reading, or nil when none exist.
func (c *Client) FetchLatestLight(ctx context.Context) (*model.LightReading, error) {
	var raws []rawLight
	if err := c.getJSON(ctx, "datos-luz", "/datos/luz", nil, &raws); err != nil {
		return nil, err
	}
	list, err := convertAll(raws, func(r rawLight) (model.LightReading, error) { return r.toModel(c.Location) })
	if err != nil || len(list) == 0 {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].RecordedAt.After(list[j].RecordedAt) })
	return &list[0], nil
}

// FetchLatestWeather returns the most recent weather reading, or nil when none exist.
func (c *Client) FetchLatestWeather(ctx context.Context) (*model.WeatherReading, error) {
	var raws []rawWeather
	if err := c.getJSON(ctx, "datos-meteorologia", "/datos/meteorologia", nil, &raws); err != nil {
		return nil, err
	}
	list, err := convertAll(raws, func(r rawWeather) (model.WeatherReading, error) { return r.toModel(c.Location) })
	if err != nil || len(list) == 0 {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].RecordedAt.After(list[j].RecordedAt) })
	return &list[0], nil
}

// FetchRFIDScans returns every RFID scan, newest first.
func (c *Client) FetchRFIDScans(ctx context.Context) ([]model.RFIDScan, error) {
	var raws []rawRFID
	if err := c.getJSON(ctx, "datos-rfid", "/datos/rfid", nil, &raws); err != nil {
		return nil, err
	}
	list, err := convertAll(raws, func(r rawRFID) (model.RFIDScan, error) { return r.toModel(c.Location) })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].RecordedAt.After(list[j].RecordedAt) })
	return list, nil
}

type clockPayload struct {
	Usuario    string `json:"usuario"`
	Tipo       string `json:"tipo"`
	Ubicacion  string `json:"ubicacion"`
	MetodoAuth string `json:"metodoAuth"`
	FechaHora  string `json:"fechaHora,omitempty"`
}

// RecordClockAction posts a manual clock action. The response body is the
// plain-text confirmation from the API.
func (c *Client) RecordClockAction(ctx context.Context, req model.ClockRequest) (string, error) {
	tipo, ok := ActionToWire(req.ActionType)
	if !ok {
		return "", fmt.Errorf("action %q cannot be sent upstream", req.ActionType)
	}
	method := req.AuthMethod
	if method == "" {
		method = AuthMethodManual
	}
	p := clockPayload{
		Usuario:    req.User,
		Tipo:       tipo,
		Ubicacion:  req.Location,
		MetodoAuth: method,
	}
	if !req.Timestamp.IsZero() {
		p.FechaHora = req.Timestamp.In(c.Location).Format("2006-01-02T15:04:05")
	}
	b, err := c.do(ctx, "presencia-manual", http.MethodPost, "/presencia/manual", nil, p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type userPayload struct {
	Username  string            `json:"username"`
	Password  string            `json:"password,omitempty"`
	RFIDToken string            `json:"rfidToken,omitempty"`
	Rol       string            `json:"rol,omitempty"`
	Admin     bool              `json:"admin"`
	Horario   map[string]string `json:"horario,omitempty"`
}

func toUserPayload(w model.Worker, pin string) userPayload {
	p := userPayload{
		Username:  w.Username,
		RFIDToken: w.RFIDToken,
		Rol:       w.Role,
		Admin:     w.IsAdmin,
		Horario:   w.Schedule,
	}
	if pin != "" {
		p.Password = EncodePIN(pin)
	}
	return p
}

// RegisterUser creates a worker upstream. The PIN is sent hex-encoded.
func (c *Client) RegisterUser(ctx context.Context, w model.Worker, pin string) (string, error) {
	b, err := c.do(ctx, "usuarios-registrar", http.MethodPost, "/usuarios/registrar", nil, toUserPayload(w, pin))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UpdateUser replaces a worker's profile. An empty pin keeps the stored one.
func (c *Client) UpdateUser(ctx context.Context, id string, w model.Worker, pin string) (string, error) {
	b, err := c.do(ctx, "usuarios-actualizar", http.MethodPut, "/usuarios/"+url.PathEscape(id), nil, toUserPayload(w, pin))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
