package repositories

import (
	"context"

	"github.com/n0cod3develper-byte/Documental/models"

	"gorm.io/gorm"
)

type GormRoleRepository struct {
	db *gorm.DB
}

func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

func (r *GormRoleRepository) GetByID(_ context.Context, tx *gorm.DB, roleID uint) (models.Role, error) {
	var role models.Role
	err := useTx(r.db, tx).First(&role, roleID).Error
	return role, err
}

func (r *GormRoleRepository) GetByName(_ context.Context, tx *gorm.DB, name models.RoleName) (models.Role, error) {
	var role models.Role
	err := useTx(r.db, tx).Where("name = ?", name).First(&role).Error
	return role, err
}
