package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/observability"
	"github.com/ElTrompa/ProyectoSP32/internal/repository"
	"github.com/ElTrompa/ProyectoSP32/internal/validation"
)

// Dashboard is the last applied state of one worker.
type Dashboard struct {
	Username    string
	Window      string
	Stats       model.AggregateStats
	Report      *attendance.Report // nil when restored from a stored snapshot
	Sequence    uint64
	RefreshedAt time.Time
	// Stale marks a copy of the newer state handed back to a superseded
	// refresh. Its Window may differ from the one requested.
	Stale bool
}

type DashboardUsecase struct {
	source    AttendanceSource
	snapshots repository.SnapshotRepository
	audits    repository.ClockAuditRepository
	log       *zap.Logger
	loc       *time.Location
	now       func() time.Time

	mu      sync.Mutex
	issued  map[string]uint64
	applied map[string]*Dashboard
	saving  map[string]*sync.Mutex
	flight  singleflight.Group
}

func NewDashboardUsecase(source AttendanceSource, snapshots repository.SnapshotRepository, audits repository.ClockAuditRepository, log *zap.Logger, loc *time.Location) *DashboardUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardUsecase{
		source:    source,
		snapshots: snapshots,
		audits:    audits,
		log:       log,
		loc:       loc,
		now:       time.Now,
		issued:    make(map[string]uint64),
		applied:   make(map[string]*Dashboard),
		saving:    make(map[string]*sync.Mutex),
	}
}

type refreshInput struct {
	Username string `validate:"required"`
}

// Refresh fetches sessions and presence for user, computes every output and
// applies them unless a more recent refresh for the same worker has already
// been applied. Identical concurrent refreshes share one upstream round trip.
func (u *DashboardUsecase) Refresh(ctx context.Context, user string, w attendance.Window) (*Dashboard, error) {
	user = strings.TrimSpace(user)
	if err := validation.Struct(refreshInput{Username: user}); err != nil {
		observability.RecordRefresh(observability.RefreshInvalid)
		return nil, err
	}

	key := strings.ToLower(user)
	v, err, _ := u.flight.Do(key+"|"+w.String(), func() (interface{}, error) {
		return u.refresh(context.WithoutCancel(ctx), user, key, w)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dashboard), nil
}

func (u *DashboardUsecase) refresh(ctx context.Context, user, key string, w attendance.Window) (*Dashboard, error) {
	seq := u.nextSequence(key)

	var (
		sessions []model.WorkSession
		events   []model.PresenceEvent
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = u.source.FetchSessions(gctx, user, w)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = u.source.FetchPresence(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		observability.RecordRefresh(observability.RefreshFailed)
		u.log.Warn("dashboard refresh failed",
			zap.String("username", user), zap.String("window", w.String()), zap.Error(err))
		return nil, upstreamError("no se pudieron cargar los datos de asistencia", err)
	}

	report := attendance.Compute(user, events, sessions, w, u.loc)
	d := &Dashboard{
		Username:    user,
		Window:      w.String(),
		Stats:       report.Stats,
		Report:      &report,
		Sequence:    seq,
		RefreshedAt: u.now(),
	}

	current, ok := u.apply(key, d)
	if !ok {
		observability.RecordRefresh(observability.RefreshStale)
		u.log.Debug("discarding stale refresh",
			zap.String("username", user), zap.Uint64("sequence", seq), zap.Uint64("applied", current.Sequence))
		stale := *current
		stale.Stale = true
		return &stale, nil
	}
	observability.RecordRefresh(observability.RefreshApplied)

	u.persist(key, d)
	return d, nil
}

// persist writes d as the stored snapshot of key. Writes for one worker are
// serialized and skipped once a newer result has been applied.
func (u *DashboardUsecase) persist(key string, d *Dashboard) {
	u.mu.Lock()
	lock, ok := u.saving[key]
	if !ok {
		lock = &sync.Mutex{}
		u.saving[key] = lock
	}
	u.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	if !u.isApplied(key, d.Sequence) {
		u.log.Debug("skipping superseded snapshot",
			zap.String("username", d.Username), zap.Uint64("sequence", d.Sequence))
		return
	}
	if err := u.snapshots.Save(&model.WorkerSnapshot{
		Username:       key,
		WindowLabel:    d.Window,
		Status:         string(d.Stats.Status),
		LastActionTime: d.Stats.LastActionTime,
		FilteredHours:  d.Stats.FilteredHours,
		TotalMinutes:   d.Stats.TotalMinutes,
		SessionCount:   d.Stats.SessionCount,
		RefreshedAt:    d.RefreshedAt,
	}); err != nil {
		u.log.Error("failed to persist snapshot", zap.String("username", d.Username), zap.Error(err))
	}
}

func (u *DashboardUsecase) isApplied(key string, seq uint64) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	cur, ok := u.applied[key]
	return ok && cur.Sequence == seq
}

func (u *DashboardUsecase) nextSequence(key string) uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.issued[key]++
	return u.issued[key]
}

// apply stores d unless a newer result is already in place. It returns the
// state that is current after the call.
func (u *DashboardUsecase) apply(key string, d *Dashboard) (*Dashboard, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if cur, ok := u.applied[key]; ok && cur.Sequence > d.Sequence {
		return cur, false
	}
	u.applied[key] = d
	return d, true
}

// Current returns the last applied dashboard, falling back to the stored
// snapshot after a restart.
func (u *DashboardUsecase) Current(user string) (*Dashboard, error) {
	key := strings.ToLower(strings.TrimSpace(user))
	if key == "" {
		return nil, apperror.Validation("invalid request", "Username: field is required")
	}

	u.mu.Lock()
	d, ok := u.applied[key]
	u.mu.Unlock()
	if ok {
		return d, nil
	}

	snap, err := u.snapshots.GetByUsername(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("dashboard")
		}
		return nil, apperror.Internal("no se pudo leer el último estado", err)
	}
	return &Dashboard{
		Username:    snap.Username,
		Window:      snap.WindowLabel,
		Stats:       snap.Stats(),
		RefreshedAt: snap.RefreshedAt,
	}, nil
}

// ClockInput is a clock action submitted from the app.
type ClockInput struct {
	Username string           `validate:"required"`
	Action   model.ActionType `validate:"required,oneof=ENTRY EXIT BREAK_START BREAK_END INQUIRY"`
	Location string
	Window   attendance.Window
}

type ClockResult struct {
	Message      string
	Dashboard    *Dashboard
	RefreshError error
}

// Clock forwards a clock action upstream, audits it and, on success,
// refreshes the worker's dashboard with the requested window.
func (u *DashboardUsecase) Clock(ctx context.Context, in ClockInput) (*ClockResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	// 1. Validate before anything leaves the gateway
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Location == "" {
		in.Location = "APP"
	}

	// 2. Forward upstream
	req := model.ClockRequest{
		User:       in.Username,
		ActionType: in.Action,
		Location:   in.Location,
		Timestamp:  u.now(),
	}
	msg, err := u.source.RecordClockAction(ctx, req)

	// 3. Audit
	audit := &model.ClockAudit{
		ID:          uuid.NewString(),
		Username:    in.Username,
		ActionType:  string(in.Action),
		Location:    in.Location,
		RequestedAt: req.Timestamp,
		Outcome:     model.ClockOutcomeOK,
		Detail:      msg,
	}
	if err != nil {
		audit.Outcome = model.ClockOutcomeFailed
		audit.Detail = err.Error()
	}
	if aerr := u.audits.Create(audit); aerr != nil {
		u.log.Error("failed to write clock audit", zap.String("username", in.Username), zap.Error(aerr))
	}
	observability.RecordClock(string(in.Action), audit.Outcome)

	if err != nil {
		u.log.Warn("clock action rejected", zap.String("username", in.Username),
			zap.String("action", string(in.Action)), zap.Error(err))
		return nil, upstreamError("no se pudo registrar el fichaje", err)
	}

	// 4. Refresh derived state
	result := &ClockResult{Message: msg}
	result.Dashboard, result.RefreshError = u.Refresh(ctx, in.Username, in.Window)
	return result, nil
}

// ClockHistory lists the audited clock actions of a worker, newest first.
func (u *DashboardUsecase) ClockHistory(user string, limit int) ([]model.ClockAudit, error) {
	list, err := u.audits.GetHistory(user, limit)
	if err != nil {
		return nil, apperror.Internal("no se pudo leer el historial de fichajes", err)
	}
	return list, nil
}

// Summary counts stored worker states and failed clock actions.
type Summary struct {
	ByStatus     map[string]int64
	FailedClocks int64
}

func (u *DashboardUsecase) Summary() (*Summary, error) {
	counts, err := u.snapshots.CountByStatus()
	if err != nil {
		return nil, apperror.Internal("no se pudo calcular el resumen", err)
	}
	failed, err := u.audits.CountByOutcome(model.ClockOutcomeFailed)
	if err != nil {
		return nil, apperror.Internal("no se pudo calcular el resumen", err)
	}
	return &Summary{ByStatus: counts, FailedClocks: failed}, nil
}
