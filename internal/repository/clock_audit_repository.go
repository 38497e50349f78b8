package repository

import (
	"strings"

	"github.com/ElTrompa/ProyectoSP32/internal/model"

	"gorm.io/gorm"
)

type ClockAuditRepository interface {
	Create(audit *model.ClockAudit) error
	GetHistory(username string, limit int) ([]model.ClockAudit, error)
	CountByOutcome(outcome string) (int64, error)
}

type clockAuditRepository struct {
	db *gorm.DB
}

func NewClockAuditRepository(db *gorm.DB) ClockAuditRepository {
	return &clockAuditRepository{db}
}

func (r *clockAuditRepository) Create(audit *model.ClockAudit) error {
	audit.Username = strings.ToLower(audit.Username)
	return r.db.Create(audit).Error
}

func (r *clockAuditRepository) GetHistory(username string, limit int) ([]model.ClockAudit, error) {
	var history []model.ClockAudit
	q := r.db.Where("username = ?", strings.ToLower(username)).Order("requested_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&history).Error
	return history, err
}

func (r *clockAuditRepository) CountByOutcome(outcome string) (int64, error) {
	var count int64
	err := r.db.Model(&model.ClockAudit{}).Where("outcome = ?", outcome).Count(&count).Error
	return count, err
}
