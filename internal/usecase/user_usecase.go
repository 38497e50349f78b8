package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/upstream"
	"github.com/ElTrompa/ProyectoSP32/internal/validation"
)

const (
	RoleAdmin  = "admin"
	RoleWorker = "trabajador"
)

type UserUsecase struct {
	source    DirectorySource
	log       *zap.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewUserUsecase(source DirectorySource, log *zap.Logger, jwtSecret string, tokenTTL time.Duration) *UserUsecase {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserUsecase{source: source, log: log, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL, now: time.Now}
}

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type LoginResult struct {
	Token  string
	Worker model.Worker
	Role   string
}

func (u *UserUsecase) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if err := validation.Struct(loginInput{Username: username, Password: password}); err != nil {
		return nil, err
	}

	// 1. Look the worker up in the upstream directory
	ov, err := u.source.FetchOverview(ctx)
	if err != nil {
		return nil, upstreamError("no se pudo validar el usuario", err)
	}
	worker, found := findWorker(ov.Workers, username)
	if !found {
		return nil, apperror.Unauthorized("usuario o PIN incorrecto")
	}

	// 2. Compare the PIN, stored either hex-encoded or plain
	if worker.Password != upstream.EncodePIN(password) && worker.Password != password {
		u.log.Info("login rejected", zap.String("username", username))
		return nil, apperror.Unauthorized("usuario o PIN incorrecto")
	}

	// 3. Issue the token
	role := RoleWorker
	if worker.Admin() {
		role = RoleAdmin
	}
	now := u.now()
	claims := jwt.MapClaims{
		"sub":      worker.ID,
		"username": worker.Username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(u.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.jwtSecret)
	if err != nil {
		return nil, apperror.Internal("no se pudo generar el token", err)
	}
	return &LoginResult{Token: token, Worker: worker, Role: role}, nil
}

// ListWorkers returns the directory with complete schedules, filtered by a
// case-insensitive username substring.
func (u *UserUsecase) ListWorkers(ctx context.Context, query string) ([]model.Worker, error) {
	ov, err := u.source.FetchOverview(ctx)
	if err != nil {
		return nil, upstreamError("no se pudo cargar la lista de usuarios", err)
	}
	workers := filterWorkers(ov.Workers, query)
	for i := range workers {
		workers[i].Schedule = model.MergeSchedule(workers[i].Schedule)
	}
	return workers, nil
}

type UserInput struct {
	Username  string            `json:"username" validate:"required"`
	PIN       string            `json:"pin" validate:"omitempty,numeric,min=4,max=8"`
	RFIDToken string            `json:"rfid_token"`
	Role      string            `json:"role" validate:"omitempty,oneof=admin trabajador"`
	IsAdmin   bool              `json:"is_admin"`
	Schedule  map[string]string `json:"schedule"`
}

func (in UserInput) worker() model.Worker {
	role := in.Role
	if role == "" {
		role = RoleWorker
	}
	return model.Worker{
		Username:  strings.TrimSpace(in.Username),
		RFIDToken: in.RFIDToken,
		Role:      role,
		IsAdmin:   in.IsAdmin || role == RoleAdmin,
		Schedule:  model.MergeSchedule(in.Schedule),
	}
}

func (u *UserUsecase) Register(ctx context.Context, in UserInput) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", err
	}
	if in.PIN == "" {
		return "", apperror.Validation("invalid request", "PIN: field is required")
	}
	msg, err := u.source.RegisterUser(ctx, in.worker(), in.PIN)
	if err != nil {
		return "", upstreamError("no se pudo registrar el usuario", err)
	}
	u.log.Info("worker registered", zap.String("username", in.Username))
	return msg, nil
}

// Update replaces a worker profile; an empty PIN keeps the current one.
func (u *UserUsecase) Update(ctx context.Context, id string, in UserInput) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", apperror.Validation("invalid request", "ID: field is required")
	}
	if err := validation.Struct(in); err != nil {
		return "", err
	}
	msg, err := u.source.UpdateUser(ctx, id, in.worker(), in.PIN)
	if err != nil {
		return "", upstreamError("no se pudo actualizar el usuario", err)
	}
	u.log.Info("worker updated", zap.String("id", id), zap.String("username", in.Username))
	return msg, nil
}
