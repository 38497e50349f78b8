package repository

import (
	"strings"

	"github.com/ElTrompa/ProyectoSP32/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SnapshotRepository interface {
	Save(snapshot *model.WorkerSnapshot) error
	GetByUsername(username string) (*model.WorkerSnapshot, error)
	FindAll() ([]model.WorkerSnapshot, error)
	CountByStatus() (map[string]int64, error)
}

type snapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db}
}

// Save upserts the snapshot keyed by lower-cased username.
func (r *snapshotRepository) Save(snapshot *model.WorkerSnapshot) error {
	snapshot.Username = strings.ToLower(snapshot.Username)
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"window_label", "status", "last_action_time", "filtered_hours",
			"total_minutes", "session_count", "refreshed_at", "updated_at",
		}),
	}).Create(snapshot).Error
}

func (r *snapshotRepository) GetByUsername(username string) (*model.WorkerSnapshot, error) {
	var snapshot model.WorkerSnapshot
	err := r.db.Where("username = ?", strings.ToLower(username)).First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *snapshotRepository) FindAll() ([]model.WorkerSnapshot, error) {
	var list []model.WorkerSnapshot
	err := r.db.Order("username asc").Find(&list).Error
	return list, err
}

// CountByStatus groups the stored snapshots by derived status.
func (r *snapshotRepository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&model.WorkerSnapshot{}).
		Group("status").Select("status, count(*) as count").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		string(model.StatusIn):      0,
		string(model.StatusOut):     0,
		string(model.StatusPaused):  0,
		string(model.StatusUnknown): 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
