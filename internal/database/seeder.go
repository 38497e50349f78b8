package database

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

type WorkerLister interface {
	ListWorkers(ctx context.Context, query string) ([]model.Worker, error)
}

type Refresher interface {
	Refresh(ctx context.Context, user string, w attendance.Window) (*usecase.Dashboard, error)
}

type SeedResult struct {
	Seeded int
	Failed []string
}

// SeedSnapshots refreshes every worker of the upstream directory so that the
// snapshot store has a last known state before the API starts serving.
func SeedSnapshots(ctx context.Context, workers WorkerLister, dash Refresher, w attendance.Window, parallel int, log *zap.Logger) (*SeedResult, error) {
	// 1. Load the directory
	list, err := workers.ListWorkers(ctx, "")
	if err != nil {
		return nil, err
	}

	// 2. Refresh each worker, a few at a time
	if parallel <= 0 {
		parallel = 4
	}
	var (
		mu  sync.Mutex
		res SeedResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for _, wk := range list {
		if wk.Username == "" {
			continue
		}
		username := wk.Username
		g.Go(func() error {
			_, err := dash.Refresh(gctx, username, w)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("snapshot seed failed", zap.String("username", username), zap.Error(err))
				res.Failed = append(res.Failed, username)
				return nil
			}
			res.Seeded++
			return nil
		})
	}
	_ = g.Wait()

	log.Info("snapshot seed finished", zap.Int("seeded", res.Seeded), zap.Int("failed", len(res.Failed)))
	return &res, nil
}
