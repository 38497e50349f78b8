package database

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

type staticLister []model.Worker

func (s staticLister) ListWorkers(ctx context.Context, query string) ([]model.Worker, error) {
	return s, nil
}

type recordingRefresher struct {
	mu    sync.Mutex
	users []string
}

func (r *recordingRefresher) Refresh(ctx context.Context, user string, w attendance.Window) (*usecase.Dashboard, error) {
	r.mu.Lock()
	r.users = append(r.users, user)
	r.mu.Unlock()
	if strings.HasPrefix(user, "broken") {
		return nil, errors.New("esp32 down")
	}
	return &usecase.Dashboard{Username: user, Window: w.String()}, nil
}

func TestSeedSnapshots(t *testing.T) {
	workers := staticLister{{Username: "ana"}, {Username: ""}, {Username: "borja"}, {Username: "broken1"}}
	ref := &recordingRefresher{}

	res, err := SeedSnapshots(context.Background(), workers, ref, attendance.LastDays(7), 2, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Seeded)
	assert.Equal(t, []string{"broken1"}, res.Failed)
	assert.ElementsMatch(t, []string{"ana", "borja", "broken1"}, ref.users)
}
