package repositories

import (
	"context"

	"github.com/n0cod3develper-byte/Documental/models"

	"gorm.io/gorm"
)

type GormFolderShareRepository struct {
	db *gorm.DB
}

func NewGormFolderShareRepository(db *gorm.DB) *GormFolderShareRepository {
	return &GormFolderShareRepository{db: db}
}

func (r *GormFolderShareRepository) Exists(_ context.Context, tx *gorm.DB, folderID uint, departmentID uint) (bool, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.FolderShare{}).
		Where("folder_id = ? AND department_id = ?", folderID, departmentID).
		Count(&count).Error
	return count > 0, err
}

// ReplaceForFolder deletes the existing share set and writes the new one.
// Callers wrap it in a transaction so readers never see a partial set.
func (r *GormFolderShareRepository) ReplaceForFolder(_ context.Context, tx *gorm.DB, folderID uint, departmentIDs []uint) error {
	db := useTx(r.db, tx)

	if err := db.Where("folder_id = ?", folderID).Delete(&models.FolderShare{}).Error; err != nil {
		return err
	}

	for _, departmentID := range departmentIDs {
		share := models.FolderShare{FolderID: folderID, DepartmentID: departmentID}
		if err := db.Create(&share).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormFolderShareRepository) DeleteByFolderIDs(_ context.Context, tx *gorm.DB, folderIDs []uint) error {
	if len(folderIDs) == 0 {
		return nil
	}
	return useTx(r.db, tx).Where("folder_id IN ?", folderIDs).Delete(&models.FolderShare{}).Error
}
