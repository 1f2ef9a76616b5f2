package repositories

import (
	"context"

	"github.com/n0cod3develper-byte/Documental/models"

	"gorm.io/gorm"
)

type GormFolderRepository struct {
	db *gorm.DB
}

func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

func withFolderPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Department").Preload("Creator").Preload("Creator.Role").Preload("SharedWith")
}

func (r *GormFolderRepository) GetByID(_ context.Context, tx *gorm.DB, folderID uint, preload bool) (models.Folder, error) {
	db := useTx(r.db, tx)
	if preload {
		db = withFolderPreloads(db)
	}
	var folder models.Folder
	err := db.First(&folder, folderID).Error
	return folder, err
}

func (r *GormFolderRepository) ListRoots(_ context.Context, tx *gorm.DB, departmentID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := withFolderPreloads(useTx(r.db, tx)).
		Where("parent_folder_id IS NULL AND (department_id = ? OR is_public = ?)", departmentID, true).
		Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) ListRootsAll(_ context.Context, tx *gorm.DB, departmentFilter *uint) ([]models.Folder, error) {
	db := withFolderPreloads(useTx(r.db, tx)).Where("parent_folder_id IS NULL")
	if departmentFilter != nil {
		db = db.Where("department_id = ?", *departmentFilter)
	}
	var folders []models.Folder
	err := db.Order("name ASC").Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) ListChildrenAll(_ context.Context, tx *gorm.DB, parentID uint, departmentFilter *uint) ([]models.Folder, error) {
	db := withFolderPreloads(useTx(r.db, tx)).Where("parent_folder_id = ?", parentID)
	if departmentFilter != nil {
		db = db.Where("department_id = ?", *departmentFilter)
	}
	var folders []models.Folder
	err := db.Order("name ASC").Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) ListVisibleChildren(_ context.Context, tx *gorm.DB, parentID uint, departmentID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := withFolderPreloads(useTx(r.db, tx)).
		Where("parent_folder_id = ? AND (department_id = ? OR is_public = ? OR id IN (?))",
			parentID, departmentID, true,
			useTx(r.db, tx).Model(&models.FolderShare{}).Select("folder_id").Where("department_id = ?", departmentID)).
		Order("name ASC").
		Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) ListSharedWithDepartment(_ context.Context, tx *gorm.DB, departmentID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := withFolderPreloads(useTx(r.db, tx)).
		Joins("JOIN folder_shares ON folder_shares.folder_id = folders.id").
		Where("folder_shares.department_id = ?", departmentID).
		Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) CountByNameParentDept(_ context.Context, tx *gorm.DB, name string, parentID *uint, departmentID uint, excludeID uint) (int64, error) {
	db := useTx(r.db, tx).Model(&models.Folder{}).
		Where("name = ? AND department_id = ?", name, departmentID)
	if parentID != nil {
		db = db.Where("parent_folder_id = ?", *parentID)
	} else {
		db = db.Where("parent_folder_id IS NULL")
	}
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *GormFolderRepository) PluckChildIDs(_ context.Context, tx *gorm.DB, parentIDs []uint) ([]uint, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := useTx(r.db, tx).Model(&models.Folder{}).
		Where("parent_folder_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *GormFolderRepository) Create(_ context.Context, tx *gorm.DB, folder *models.Folder) error {
	return useTx(r.db, tx).Omit("SharedWith").Create(folder).Error
}

func (r *GormFolderRepository) UpdateByID(_ context.Context, tx *gorm.DB, folderID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.Folder{}).Where("id = ?", folderID).Updates(updates).Error
}

func (r *GormFolderRepository) DeleteByIDs(_ context.Context, tx *gorm.DB, folderIDs []uint) error {
	if len(folderIDs) == 0 {
		return nil
	}
	return useTx(r.db, tx).Where("id IN ?", folderIDs).Delete(&models.Folder{}).Error
}

func (r *GormFolderRepository) Search(_ context.Context, tx *gorm.DB, in SearchFoldersInput) ([]models.Folder, error) {
	db := useTx(r.db, tx).Model(&models.Folder{}).
		Where("LOWER(name) LIKE LOWER(?)", "%"+in.Query+"%")
	if in.DepartmentID != nil {
		db = db.Where("department_id = ?", *in.DepartmentID)
	}
	if in.CreatedFrom != nil {
		db = db.Where("created_at >= ?", *in.CreatedFrom)
	}
	if in.CreatedTo != nil {
		db = db.Where("created_at <= ?", *in.CreatedTo)
	}

	var folders []models.Folder
	err := db.Preload("Department").Preload("Creator").
		Order("created_at DESC").
		Limit(in.Limit).
		Find(&folders).Error
	return folders, err
}
