package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

var madrid = time.FixedZone("CET", 3600)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", 2*time.Second, madrid)
}

func TestFetchPresence(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/control-presencia", r.URL.Path)
		io.WriteString(w, `[
			{"id":"1","usuario":"Borja","fechaHora":"2024-01-05T09:00:00","tipo":"ENTRADA","metodoAuth":"TOKEN","accesoPermitido":true},
			{"id":"2","usuario":"Borja","fechaHora":[2024,1,5,14,0,0],"tipo":"INTENTO","accesoPermitido":0,"detalles":"PIN incorrecto"}
		]`)
	})

	events, err := c.FetchPresence(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, model.ActionEntry, events[0].ActionType)
	assert.Equal(t, model.GrantAllowed, events[0].AccessGranted)
	assert.Equal(t, "TOKEN", events[0].AuthMethod)
	assert.Equal(t, time.Date(2024, 1, 5, 9, 0, 0, 0, madrid), events[0].Timestamp)

	assert.Equal(t, model.ActionUnknown, events[1].ActionType)
	assert.Equal(t, "INTENTO", events[1].WireType)
	assert.True(t, events[1].AccessGranted.Denied())
	assert.Equal(t, "PIN incorrecto", events[1].Details)
}

func TestFetchPresence_MalformedRecordFailsBatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"1","usuario":"a","fechaHora":"2024-01-05T09:00:00","tipo":"ENTRADA"},{"id":"2","usuario":"a","fechaHora":"garbage","tipo":"SALIDA"}]`)
	})

	events, err := c.FetchPresence(context.Background())
	assert.Error(t, err)
	assert.Nil(t, events)
}

func TestFetchSessions_DiasQuery(t *testing.T) {
	var gotQuery []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sesiones/usuario/Borja", r.URL.Path)
		gotQuery = append(gotQuery, r.URL.RawQuery)
		io.WriteString(w, `[{"id":"s1","usuario":"Borja","inicio":"2024-01-05T09:00:00","fin":"2024-01-05T10:00:00","duracionMinutos":60}]`)
	})
	ctx := context.Background()

	sessions, err := c.FetchSessions(ctx, "Borja", attendance.LastDays(30))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(60), sessions[0].DurationMinutes)

	_, err = c.FetchSessions(ctx, "Borja", attendance.All())
	require.NoError(t, err)
	_, err = c.FetchSessions(ctx, "Borja", attendance.OnDate(time.Date(2024, 1, 5, 0, 0, 0, 0, madrid)))
	require.NoError(t, err)

	assert.Equal(t, []string{"dias=30", "", ""}, gotQuery)
}

func TestFetchOverview_MissingCollections(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"usuarios":[{"id":"u1","username":"admin","rol":"admin"}],"luz":null}`)
	})

	ov, err := c.FetchOverview(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ov.Presence)
	assert.Empty(t, ov.Presence)
	assert.Empty(t, ov.Light)
	assert.Empty(t, ov.Weather)
	require.Len(t, ov.Workers, 1)
	assert.True(t, ov.Workers[0].Admin())
}

func TestFetchLatestLight(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datos/luz", r.URL.Path)
		io.WriteString(w, `[
			{"id":"a","iluminado":false,"fecha":"2024-01-05T08:00:00"},
			{"id":"b","iluminadad":true,"fecha":"2024-01-05T09:00:00"}
		]`)
	})

	l, err := c.FetchLatestLight(context.Background())
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Equal(t, "b", l.ID)
	assert.True(t, l.Lit)
}

func TestFetchLatestWeather_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	wr, err := c.FetchLatestWeather(context.Background())
	require.NoError(t, err)
	assert.Nil(t, wr)
}

func TestNon2xxCarriesStatusAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "mongo down")
	})

	_, err := c.FetchPresence(context.Background())
	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)
	assert.Contains(t, err.Error(), "mongo down")
}

func TestRecordClockAction(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/presencia/manual", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, "Fichaje registrado: INICIO_PAUSA")
	})

	msg, err := c.RecordClockAction(context.Background(), model.ClockRequest{
		User:       "borja",
		ActionType: model.ActionBreakStart,
		Location:   "Oficina",
		Timestamp:  time.Date(2024, 1, 5, 11, 0, 0, 0, madrid),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fichaje registrado: INICIO_PAUSA", msg)
	assert.Equal(t, "borja", got["usuario"])
	assert.Equal(t, "INICIO_PAUSA", got["tipo"])
	assert.Equal(t, "Oficina", got["ubicacion"])
	assert.Equal(t, AuthMethodManual, got["metodoAuth"])
	assert.Equal(t, "2024-01-05T11:00:00", got["fechaHora"])
}

func TestRegisterUser_HexPIN(t *testing.T) {
	var got map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/usuarios/registrar", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		io.WriteString(w, "Usuario 'ana' registrado correctamente.")
	})

	_, err := c.RegisterUser(context.Background(), model.Worker{Username: "ana", RFIDToken: "A1B2"}, "1234")
	require.NoError(t, err)
	assert.Equal(t, "3132333400", got["password"])
	assert.Equal(t, "A1B2", got["rfidToken"])
}

func TestUpdateUser_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.UpdateUser(context.Background(), "missing", model.Worker{Username: "x"}, "")
	assert.True(t, IsNotFound(err))
}
