package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
)

type clockInput struct {
	Username string `validate:"required"`
	Action   string `validate:"oneof=ENTRY EXIT"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(clockInput{Username: "borja", Action: "ENTRY"}))

	err := Struct(clockInput{Action: "DANCE"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
	assert.Contains(t, err.Error(), "Username: field is required")
	assert.Contains(t, err.Error(), "Action: field must satisfy oneof=ENTRY EXIT")
}
