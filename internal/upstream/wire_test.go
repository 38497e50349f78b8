package upstream

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

func TestGrantDecoding(t *testing.T) {
	cases := map[string]model.AccessGrant{
		`true`:    model.GrantAllowed,
		`false`:   model.GrantDenied,
		`1`:       model.GrantAllowed,
		`0`:       model.GrantDenied,
		`"true"`:  model.GrantAllowed,
		`"false"`: model.GrantDenied,
		`"1"`:     model.GrantAllowed,
		`"0"`:     model.GrantDenied,
		`"maybe"`: model.GrantUnknown,
		`null`:    model.GrantUnknown,
	}
	for in, want := range cases {
		var r rawPresence
		require.NoError(t, json.Unmarshal([]byte(`{"accesoPermitido":`+in+`}`), &r), in)
		assert.Equal(t, want, model.AccessGrant(r.AccesoPermitido), in)
	}

	var absent rawPresence
	require.NoError(t, json.Unmarshal([]byte(`{"usuario":"borja"}`), &absent))
	assert.Equal(t, model.GrantUnknown, model.AccessGrant(absent.AccesoPermitido))
}

func TestParseTimestamp(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	want := time.Date(2024, 1, 5, 9, 30, 15, 0, loc)

	cases := []string{
		`"2024-01-05T09:30:15"`,
		`"2024-01-05 09:30:15"`,
		`"2024-01-05T08:30:15Z"`,
		`[2024,1,5,9,30,15]`,
	}
	for _, in := range cases {
		got, err := parseTimestamp([]byte(in), loc)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s -> %s", in, got)
		assert.Equal(t, 5, got.Day(), in)
	}

	frac, err := parseTimestamp([]byte(`"2024-01-05T09:30:15.123456"`), loc)
	require.NoError(t, err)
	assert.Equal(t, 123456000, frac.Nanosecond())

	short, err := parseTimestamp([]byte(`[2024,1,5]`), loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, loc), short)

	zero, err := parseTimestamp([]byte(`null`), loc)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = parseTimestamp([]byte(`"yesterday"`), loc)
	assert.Error(t, err)
}

func TestActionFromWire(t *testing.T) {
	assert.Equal(t, model.ActionEntry, ActionFromWire("ENTRADA"))
	assert.Equal(t, model.ActionExit, ActionFromWire("salida"))
	assert.Equal(t, model.ActionBreakStart, ActionFromWire("INICIO_PAUSA"))
	assert.Equal(t, model.ActionBreakEnd, ActionFromWire("FIN_PAUSA"))
	assert.Equal(t, model.ActionInquiry, ActionFromWire("CONSULTA"))
	assert.Equal(t, model.ActionEntry, ActionFromWire("VUELTA_MEDICO"))
	assert.Equal(t, model.ActionUnknown, ActionFromWire("INTENTO"))

	tipo, ok := ActionToWire(model.ActionBreakEnd)
	assert.True(t, ok)
	assert.Equal(t, "FIN_PAUSA", tipo)
	_, ok = ActionToWire(model.ActionUnknown)
	assert.False(t, ok)
}

func TestEncodePIN(t *testing.T) {
	assert.Equal(t, "3132333400", EncodePIN("1234"))
	assert.Equal(t, "00", EncodePIN(""))
}
