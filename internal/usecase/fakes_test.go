package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/repository"
)

var madrid = time.FixedZone("CET", 3600)

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, madrid)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeSource struct {
	mu       sync.Mutex
	events   []model.PresenceEvent
	sessions []model.WorkSession
	overview model.Overview
	err      error

	// hold, when set, blocks FetchSessions for the matching window.
	hold    map[string]chan struct{}
	started chan string

	presenceCalls atomic.Int32
	clockCalls    atomic.Int32
	clockErr      error
	lastClock     model.ClockRequest
	registered    []model.Worker
	registeredPIN string
	updatedID     string
}

func (f *fakeSource) FetchPresence(ctx context.Context) ([]model.PresenceEvent, error) {
	f.presenceCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.PresenceEvent, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeSource) FetchSessions(ctx context.Context, user string, w attendance.Window) ([]model.WorkSession, error) {
	if f.started != nil {
		f.started <- w.String()
	}
	if ch, ok := f.hold[w.String()]; ok {
		<-ch
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

func (f *fakeSource) RecordClockAction(ctx context.Context, req model.ClockRequest) (string, error) {
	f.clockCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastClock = req
	if f.clockErr != nil {
		return "", f.clockErr
	}
	return "Fichaje registrado", nil
}

func (f *fakeSource) FetchOverview(ctx context.Context) (model.Overview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return model.Overview{}, f.err
	}
	return f.overview, nil
}

func (f *fakeSource) RegisterUser(ctx context.Context, w model.Worker, pin string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.registered = append(f.registered, w)
	f.registeredPIN = pin
	return "Usuario registrado", nil
}

func (f *fakeSource) UpdateUser(ctx context.Context, id string, w model.Worker, pin string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.updatedID = id
	return "Usuario actualizado correctamente", nil
}

func (f *fakeSource) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

var errDown = errors.New("connection refused")

// blockingSnapshots delays Save for one window until release is closed.
type blockingSnapshots struct {
	repository.SnapshotRepository
	window  string
	release chan struct{}
	saving  chan string
}

func (b *blockingSnapshots) Save(s *model.WorkerSnapshot) error {
	if b.saving != nil {
		b.saving <- s.WindowLabel
	}
	if s.WindowLabel == b.window {
		<-b.release
	}
	return b.SnapshotRepository.Save(s)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.WorkerSnapshot{}, &model.ClockAudit{}))
	return db
}

func newDashboardUsecase(t *testing.T, src *fakeSource) (*DashboardUsecase, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	u := NewDashboardUsecase(src, repository.NewSnapshotRepository(db), repository.NewClockAuditRepository(db), zap.NewNop(), madrid)
	return u, db
}
