package routes

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ElTrompa/ProyectoSP32/config"
	"github.com/ElTrompa/ProyectoSP32/internal/repository"
	"github.com/ElTrompa/ProyectoSP32/internal/upstream"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

// Deps are the shared collaborators handed to every Setup*Routes function.
type Deps struct {
	Cfg      *config.Config
	DB       *gorm.DB
	Upstream *upstream.Client
	Log      *zap.Logger
	Loc      *time.Location

	dashboard *usecase.DashboardUsecase
}

// Dashboard returns the single dashboard usecase; its in-memory state and
// sequence guard must be shared by every route that touches it.
func (d *Deps) Dashboard() *usecase.DashboardUsecase {
	if d.dashboard == nil {
		d.dashboard = usecase.NewDashboardUsecase(
			d.Upstream,
			repository.NewSnapshotRepository(d.DB),
			repository.NewClockAuditRepository(d.DB),
			d.Log,
			d.Loc,
		)
	}
	return d.dashboard
}
