package repositories

import (
	"context"
	"time"

	"github.com/n0cod3develper-byte/Documental/models"

	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) GetByID(_ context.Context, tx *gorm.DB, userID uint) (models.User, error) {
	var user models.User
	err := useTx(r.db, tx).Preload("Role").Preload("Department").First(&user, userID).Error
	return user, err
}

func (r *GormUserRepository) GetByEmail(_ context.Context, tx *gorm.DB, email string) (models.User, error) {
	var user models.User
	err := useTx(r.db, tx).Preload("Role").Preload("Department").Where("email = ?", email).First(&user).Error
	return user, err
}

func (r *GormUserRepository) CountByEmail(_ context.Context, tx *gorm.DB, email string, excludeID uint) (int64, error) {
	db := useTx(r.db, tx).Model(&models.User{}).Where("email = ?", email)
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *GormUserRepository) List(_ context.Context, tx *gorm.DB, in ListUsersInput) ([]models.User, int64, error) {
	db := useTx(r.db, tx).Model(&models.User{})

	if in.Search != "" {
		pattern := "%" + in.Search + "%"
		db = db.Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}
	if in.RoleID > 0 {
		db = db.Where("role_id = ?", in.RoleID)
	}
	if in.DepartmentID > 0 {
		db = db.Where("department_id = ?", in.DepartmentID)
	}
	if in.IsActive != nil {
		db = db.Where("is_active = ?", *in.IsActive)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := db.Preload("Role").Preload("Department").
		Order("created_at DESC").
		Offset(in.Offset).Limit(in.Limit).
		Find(&users).Error
	return users, total, err
}

func (r *GormUserRepository) Create(_ context.Context, tx *gorm.DB, user *models.User) error {
	return useTx(r.db, tx).Create(user).Error
}

func (r *GormUserRepository) UpdateByID(_ context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (r *GormUserRepository) UpdateLastLogin(_ context.Context, tx *gorm.DB, userID uint, at time.Time) error {
	return useTx(r.db, tx).Model(&models.User{}).Where("id = ?", userID).Update("last_login", at).Error
}
