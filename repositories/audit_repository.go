package repositories

import (
	"context"

	"github.com/n0cod3develper-byte/Documental/models"

	"gorm.io/gorm"
)

type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Create(_ context.Context, tx *gorm.DB, entry *models.AuditLog) error {
	return useTx(r.db, tx).Create(entry).Error
}

func (r *GormAuditRepository) List(_ context.Context, tx *gorm.DB, in ListAuditLogsInput) ([]models.AuditLog, int64, error) {
	db := useTx(r.db, tx).Model(&models.AuditLog{})

	if in.UserID > 0 {
		db = db.Where("user_id = ?", in.UserID)
	}
	if in.Action != "" {
		db = db.Where("action = ?", in.Action)
	}
	if in.ResourceType != "" {
		db = db.Where("resource_type = ?", in.ResourceType)
	}
	if in.From != nil {
		db = db.Where("created_at >= ?", *in.From)
	}
	if in.To != nil {
		db = db.Where("created_at <= ?", *in.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.AuditLog
	err := db.Order("created_at DESC").
		Offset(in.Offset).Limit(in.Limit).
		Find(&entries).Error
	return entries, total, err
}
