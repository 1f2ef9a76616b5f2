package repositories

import (
	"context"

	"github.com/n0cod3develper-byte/Documental/models"

	"gorm.io/gorm"
)

type GormPermissionRepository struct {
	db *gorm.DB
}

func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// Has reports whether an exact (role, resource, action) grant exists.
func (r *GormPermissionRepository) Has(_ context.Context, tx *gorm.DB, roleID uint, resourceType models.ResourceType, action models.Action) (bool, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.Permission{}).
		Where("role_id = ? AND resource_type = ? AND action = ?", roleID, resourceType, action).
		Count(&count).Error
	return count > 0, err
}
