package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

const testSecret = "test-secret"

func directorySource() *fakeSource {
	return &fakeSource{overview: model.Overview{Workers: []model.Worker{
		{ID: "u1", Username: "Borja", Password: "3132333400", Role: "trabajador"},
		{ID: "u2", Username: "jefa", Password: "9999", Role: "admin"},
		{ID: "u3", Username: "admin", Password: "0000"},
	}}}
}

func TestLogin(t *testing.T) {
	u := NewUserUsecase(directorySource(), zap.NewNop(), testSecret, time.Hour)

	res, err := u.Login(context.Background(), "borja", "1234")
	require.NoError(t, err)
	assert.Equal(t, RoleWorker, res.Role)

	token, err := jwt.Parse(res.Token, func(tk *jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "Borja", claims["username"])
	assert.Equal(t, RoleWorker, claims["role"])
}

func TestLogin_PlainPINAndAdminRoles(t *testing.T) {
	u := NewUserUsecase(directorySource(), zap.NewNop(), testSecret, time.Hour)

	res, err := u.Login(context.Background(), "JEFA", "9999")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, res.Role)

	res, err = u.Login(context.Background(), "admin", "0000")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, res.Role)
}

func TestLogin_Rejected(t *testing.T) {
	u := NewUserUsecase(directorySource(), zap.NewNop(), testSecret, time.Hour)

	_, err := u.Login(context.Background(), "borja", "4321")
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized))

	_, err = u.Login(context.Background(), "nobody", "1234")
	assert.True(t, apperror.Is(err, apperror.CodeUnauthorized))

	_, err = u.Login(context.Background(), "borja", "")
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestListWorkers_MergesSchedule(t *testing.T) {
	u := NewUserUsecase(directorySource(), zap.NewNop(), testSecret, time.Hour)

	list, err := u.ListWorkers(context.Background(), "BOR")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "09:00 - 15:00", list[0].Schedule["Viernes"])
}

func TestRegister(t *testing.T) {
	src := directorySource()
	u := NewUserUsecase(src, zap.NewNop(), testSecret, time.Hour)

	_, err := u.Register(context.Background(), UserInput{Username: "carla", PIN: "4455", Role: "admin"})
	require.NoError(t, err)
	require.Len(t, src.registered, 1)
	assert.True(t, src.registered[0].IsAdmin)
	assert.Equal(t, "4455", src.registeredPIN)
	assert.Equal(t, "Descanso", src.registered[0].Schedule["Domingo"])

	_, err = u.Register(context.Background(), UserInput{Username: "dani"})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	_, err = u.Register(context.Background(), UserInput{Username: "dani", PIN: "12ab"})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
	assert.Len(t, src.registered, 1)
}

func TestUpdate(t *testing.T) {
	src := directorySource()
	u := NewUserUsecase(src, zap.NewNop(), testSecret, time.Hour)

	_, err := u.Update(context.Background(), "u1", UserInput{Username: "Borja"})
	require.NoError(t, err)
	assert.Equal(t, "u1", src.updatedID)

	_, err = u.Update(context.Background(), " ", UserInput{Username: "Borja"})
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}
