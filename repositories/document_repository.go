package repositories

import (
	"context"

	"github.com/n0cod3develper-byte/Documental/models"

	"gorm.io/gorm"
)

type GormDocumentRepository struct {
	db *gorm.DB
}

func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func withDocumentPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Folder").Preload("Folder.Department").Preload("Uploader").Preload("Uploader.Role")
}

func (r *GormDocumentRepository) GetByID(_ context.Context, tx *gorm.DB, documentID uint, preload bool) (models.Document, error) {
	db := useTx(r.db, tx)
	if preload {
		db = withDocumentPreloads(db)
	}
	var document models.Document
	err := db.First(&document, documentID).Error
	return document, err
}

func (r *GormDocumentRepository) List(_ context.Context, tx *gorm.DB, in ListDocumentsInput) ([]models.Document, int64, error) {
	db := useTx(r.db, tx).Model(&models.Document{}).
		Joins("JOIN folders ON folders.id = documents.folder_id")

	if in.FolderID != nil {
		db = db.Where("documents.folder_id = ?", *in.FolderID)
	}
	if in.Search != "" {
		pattern := "%" + in.Search + "%"
		db = db.Where("LOWER(documents.name) LIKE LOWER(?) OR LOWER(documents.original_name) LIKE LOWER(?) OR LOWER(documents.description) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}
	if in.DepartmentID != nil {
		if in.IncludePublic {
			db = db.Where("folders.department_id = ? OR folders.is_public = ?", *in.DepartmentID, true)
		} else {
			db = db.Where("folders.department_id = ?", *in.DepartmentID)
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []models.Document
	err := withDocumentPreloads(db).
		Order("documents.created_at DESC").
		Offset(in.Offset).Limit(in.Limit).
		Find(&documents).Error
	return documents, total, err
}

func (r *GormDocumentRepository) Create(_ context.Context, tx *gorm.DB, document *models.Document) error {
	return useTx(r.db, tx).Create(document).Error
}

func (r *GormDocumentRepository) UpdateByID(_ context.Context, tx *gorm.DB, documentID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.Document{}).Where("id = ?", documentID).Updates(updates).Error
}

func (r *GormDocumentRepository) DeleteByID(_ context.Context, tx *gorm.DB, documentID uint) error {
	return useTx(r.db, tx).Delete(&models.Document{}, documentID).Error
}

func (r *GormDocumentRepository) DeleteByFolderIDs(_ context.Context, tx *gorm.DB, folderIDs []uint) error {
	if len(folderIDs) == 0 {
		return nil
	}
	return useTx(r.db, tx).Where("folder_id IN ?", folderIDs).Delete(&models.Document{}).Error
}

// PluckFilePathsByFolderIDs returns both the stored files and their
// thumbnails so a cascade delete can clean the disk completely.
func (r *GormDocumentRepository) PluckFilePathsByFolderIDs(_ context.Context, tx *gorm.DB, folderIDs []uint) ([]string, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}
	db := useTx(r.db, tx)

	var paths []string
	if err := db.Model(&models.Document{}).
		Where("folder_id IN ?", folderIDs).
		Pluck("file_path", &paths).Error; err != nil {
		return nil, err
	}

	var thumbs []string
	if err := db.Model(&models.Document{}).
		Where("folder_id IN ? AND thumbnail_path <> ''", folderIDs).
		Pluck("thumbnail_path", &thumbs).Error; err != nil {
		return nil, err
	}
	return append(paths, thumbs...), nil
}

func (r *GormDocumentRepository) ListAllFilePaths(_ context.Context, tx *gorm.DB) ([]string, error) {
	db := useTx(r.db, tx)

	var paths []string
	if err := db.Model(&models.Document{}).Pluck("file_path", &paths).Error; err != nil {
		return nil, err
	}

	var thumbs []string
	if err := db.Model(&models.Document{}).
		Where("thumbnail_path <> ''").
		Pluck("thumbnail_path", &thumbs).Error; err != nil {
		return nil, err
	}
	return append(paths, thumbs...), nil
}

func (r *GormDocumentRepository) Search(_ context.Context, tx *gorm.DB, in SearchDocumentsInput) ([]models.Document, error) {
	pattern := "%" + in.Query + "%"
	db := useTx(r.db, tx).Model(&models.Document{}).
		Joins("JOIN folders ON folders.id = documents.folder_id").
		Where("LOWER(documents.name) LIKE LOWER(?) OR LOWER(documents.original_name) LIKE LOWER(?) OR LOWER(documents.description) LIKE LOWER(?)",
			pattern, pattern, pattern)

	if in.DepartmentID != nil {
		db = db.Where("folders.department_id = ?", *in.DepartmentID)
	}
	if in.MimeType != "" {
		db = db.Where("LOWER(documents.mime_type) LIKE LOWER(?)", "%"+in.MimeType+"%")
	}
	if in.CreatedFrom != nil {
		db = db.Where("documents.created_at >= ?", *in.CreatedFrom)
	}
	if in.CreatedTo != nil {
		db = db.Where("documents.created_at <= ?", *in.CreatedTo)
	}

	var documents []models.Document
	err := withDocumentPreloads(db).
		Order("documents.created_at DESC").
		Limit(in.Limit).
		Find(&documents).Error
	return documents, err
}
