package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/n0cod3develper-byte/Documental/config"
	"github.com/n0cod3develper-byte/Documental/logger"
	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"
	"github.com/n0cod3develper-byte/Documental/storage"
	"github.com/n0cod3develper-byte/Documental/utils"

	"gorm.io/gorm"
)

type ListDocumentsInput struct {
	FolderID *uint
	Search   string
	Page     int
	PageSize int
}

type DocumentListOutput struct {
	Documents  []models.Document    `json:"documents"`
	Pagination utils.PaginationData `json:"pagination"`
}

type UploadDocumentInput struct {
	FolderID     uint
	Name         string
	Description  string
	OriginalName string
	FileSize     int64
	MimeType     string
	Reader       io.Reader
}

type UpdateDocumentInput struct {
	Name        *string
	Description *string
}

type DocumentAccessOutput struct {
	Document     models.Document
	AbsPath      string
	ContentType  string
	DownloadName string
}

type DocumentService interface {
	ListDocuments(ctx context.Context, actor models.User, in ListDocumentsInput) (DocumentListOutput, error)
	GetDocument(ctx context.Context, actor models.User, documentID uint) (models.Document, error)
	Upload(ctx context.Context, actor models.User, in UploadDocumentInput) (models.Document, error)
	GetDownloadInfo(ctx context.Context, actor models.User, documentID uint) (DocumentAccessOutput, error)
	GetThumbnailInfo(ctx context.Context, actor models.User, documentID uint) (DocumentAccessOutput, error)
	UpdateDocument(ctx context.Context, actor models.User, documentID uint, in UpdateDocumentInput) (models.Document, error)
	DeleteDocument(ctx context.Context, actor models.User, documentID uint) error
}

type documentService struct {
	folders    repositories.FolderRepository
	documents  repositories.DocumentRepository
	store      storage.Store
	thumbnails storage.Thumbnailer
	resolver   accessResolver
}

func NewDocumentService(
	folders repositories.FolderRepository,
	shares repositories.FolderShareRepository,
	documents repositories.DocumentRepository,
	permissions repositories.PermissionRepository,
	store storage.Store,
	thumbnails storage.Thumbnailer,
) DocumentService {
	return &documentService{
		folders:    folders,
		documents:  documents,
		store:      store,
		thumbnails: thumbnails,
		resolver:   accessResolver{folders: folders, shares: shares, permissions: permissions},
	}
}

func (s *documentService) ListDocuments(ctx context.Context, actor models.User, in ListDocumentsInput) (DocumentListOutput, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDocument, models.ActionRead); err != nil {
		return DocumentListOutput{}, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize < 1 {
		pageSize = config.AppConfig.Pagination.DefaultPageSize
	}
	if pageSize > config.AppConfig.Pagination.MaxPageSize {
		pageSize = config.AppConfig.Pagination.MaxPageSize
	}

	repoIn := repositories.ListDocumentsInput{
		FolderID: in.FolderID,
		Search:   in.Search,
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	}
	// Non-admins are scoped to documents whose folder is in their own
	// department or public; admins see everything.
	if actor.Role.Name != models.RoleAdmin {
		if actor.DepartmentID == nil {
			return DocumentListOutput{}, newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
		}
		repoIn.DepartmentID = actor.DepartmentID
		repoIn.IncludePublic = true
	}

	documents, total, err := s.documents.List(ctx, nil, repoIn)
	if err != nil {
		return DocumentListOutput{}, newAppError(http.StatusInternalServerError, "failed to list documents", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return DocumentListOutput{
		Documents: documents,
		Pagination: utils.PaginationData{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *documentService) GetDocument(ctx context.Context, actor models.User, documentID uint) (models.Document, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDocument, models.ActionRead); err != nil {
		return models.Document{}, err
	}
	return s.loadAccessible(ctx, actor, documentID)
}

// Upload checks the target folder before anything touches disk. The write
// rule mirrors folder creation: department match or public folder; sharing
// grants read visibility only, never upload rights.
func (s *documentService) Upload(ctx context.Context, actor models.User, in UploadDocumentInput) (models.Document, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDocument, models.ActionWrite); err != nil {
		return models.Document{}, err
	}

	if err := validateUpload(in); err != nil {
		return models.Document{}, err
	}

	folder, err := s.folders.GetByID(ctx, nil, in.FolderID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return models.Document{}, newAppError(http.StatusInternalServerError, "failed to query folder", err)
	}

	if !s.resolver.canWriteIntoFolder(actor, folder) {
		return models.Document{}, newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
	}

	extension := strings.ToLower(filepath.Ext(in.OriginalName))
	path, err := s.store.Save(folder.DepartmentID, extension, in.Reader)
	if err != nil {
		return models.Document{}, newAppError(http.StatusInternalServerError, "failed to store file", err)
	}

	name := in.Name
	if name == "" {
		name = in.OriginalName
	}
	document := models.Document{
		Name:         name,
		OriginalName: in.OriginalName,
		FilePath:     path,
		FileSize:     in.FileSize,
		MimeType:     in.MimeType,
		Extension:    extension,
		FolderID:     folder.ID,
		UploadedBy:   actor.ID,
		Description:  in.Description,
	}

	if thumbPath, err := s.thumbnails.Generate(path, in.MimeType); err != nil {
		logger.Debugf("thumbnail generation skipped for %s: %v", path, err)
	} else {
		document.ThumbnailPath = thumbPath
	}

	if err := s.documents.Create(ctx, nil, &document); err != nil {
		// No orphaned files: a failed record means the stored file goes too.
		if removeErr := s.store.Delete(path); removeErr != nil {
			logger.Warnf("failed to remove file %s after create failure: %v", path, removeErr)
		}
		if document.ThumbnailPath != "" {
			_ = s.store.Delete(document.ThumbnailPath)
		}
		return models.Document{}, newAppError(http.StatusInternalServerError, "failed to create document", err)
	}

	created, err := s.documents.GetByID(ctx, nil, document.ID, true)
	if err != nil {
		return document, nil
	}
	return created, nil
}

func (s *documentService) GetDownloadInfo(ctx context.Context, actor models.User, documentID uint) (DocumentAccessOutput, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDocument, models.ActionRead); err != nil {
		return DocumentAccessOutput{}, err
	}

	document, err := s.loadAccessible(ctx, actor, documentID)
	if err != nil {
		return DocumentAccessOutput{}, err
	}

	if !s.store.Exists(document.FilePath) {
		return DocumentAccessOutput{}, newAppError(http.StatusNotFound, "file is missing from storage", nil)
	}

	return DocumentAccessOutput{
		Document:     document,
		AbsPath:      s.store.AbsPath(document.FilePath),
		ContentType:  document.MimeType,
		DownloadName: document.OriginalName,
	}, nil
}

func (s *documentService) GetThumbnailInfo(ctx context.Context, actor models.User, documentID uint) (DocumentAccessOutput, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDocument, models.ActionRead); err != nil {
		return DocumentAccessOutput{}, err
	}

	document, err := s.loadAccessible(ctx, actor, documentID)
	if err != nil {
		return DocumentAccessOutput{}, err
	}

	if document.ThumbnailPath == "" || !s.store.Exists(document.ThumbnailPath) {
		return DocumentAccessOutput{}, newAppError(http.StatusNotFound, "no thumbnail for this document", nil)
	}

	return DocumentAccessOutput{
		Document:     document,
		AbsPath:      s.store.AbsPath(document.ThumbnailPath),
		ContentType:  "image/jpeg",
		DownloadName: document.OriginalName,
	}, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, actor models.User, documentID uint, in UpdateDocumentInput) (models.Document, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDocument, models.ActionWrite); err != nil {
		return models.Document{}, err
	}
	if err := requireRole(actor, models.RoleAdmin, models.RoleManager); err != nil {
		return models.Document{}, err
	}

	document, err := s.loadModifiable(ctx, actor, documentID)
	if err != nil {
		return models.Document{}, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) > 0 {
		if err := s.documents.UpdateByID(ctx, nil, document.ID, updates); err != nil {
			return models.Document{}, newAppError(http.StatusInternalServerError, "failed to update document", err)
		}
	}

	updated, err := s.documents.GetByID(ctx, nil, document.ID, true)
	if err != nil {
		return models.Document{}, newAppError(http.StatusInternalServerError, "failed to reload document", err)
	}
	return updated, nil
}

// DeleteDocument removes the record; the physical file removal is
// best-effort and never blocks the database delete.
func (s *documentService) DeleteDocument(ctx context.Context, actor models.User, documentID uint) error {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDocument, models.ActionDelete); err != nil {
		return err
	}
	if err := requireRole(actor, models.RoleAdmin, models.RoleManager); err != nil {
		return err
	}

	document, err := s.loadModifiable(ctx, actor, documentID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(document.FilePath); err != nil {
		logger.Warnf("failed to remove file %s: %v", document.FilePath, err)
	}
	if document.ThumbnailPath != "" {
		if err := s.store.Delete(document.ThumbnailPath); err != nil {
			logger.Debugf("failed to remove thumbnail %s: %v", document.ThumbnailPath, err)
		}
	}

	if err := s.documents.DeleteByID(ctx, nil, document.ID); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to delete document", err)
	}
	return nil
}

func (s *documentService) loadAccessible(ctx context.Context, actor models.User, documentID uint) (models.Document, error) {
	document, err := s.documents.GetByID(ctx, nil, documentID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, newAppError(http.StatusNotFound, "document not found", nil)
		}
		return models.Document{}, newAppError(http.StatusInternalServerError, "failed to query document", err)
	}

	ok, err := s.resolver.canAccessDocument(ctx, nil, actor, document)
	if err != nil {
		return models.Document{}, newAppError(http.StatusInternalServerError, "failed to check document access", err)
	}
	if !ok {
		return models.Document{}, newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
	}
	return document, nil
}

// loadModifiable is loadAccessible plus the write rule: shares make a
// document visible but never editable or deletable.
func (s *documentService) loadModifiable(ctx context.Context, actor models.User, documentID uint) (models.Document, error) {
	document, err := s.loadAccessible(ctx, actor, documentID)
	if err != nil {
		return models.Document{}, err
	}

	ok, err := s.resolver.canModifyDocument(ctx, nil, actor, document)
	if err != nil {
		return models.Document{}, newAppError(http.StatusInternalServerError, "failed to check document access", err)
	}
	if !ok {
		return models.Document{}, newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
	}
	return document, nil
}

func validateUpload(in UploadDocumentInput) error {
	if in.FileSize <= 0 || in.FileSize > config.AppConfig.Storage.MaxFileSize {
		return newAppError(http.StatusBadRequest, "file size out of bounds", nil)
	}

	extension := strings.ToLower(filepath.Ext(in.OriginalName))
	if !containsString(config.AppConfig.Storage.AllowedExtensions, extension) {
		return newAppError(http.StatusBadRequest, "file extension not allowed", nil)
	}
	if !containsString(config.AppConfig.Storage.AllowedMimeTypes, strings.ToLower(in.MimeType)) {
		return newAppError(http.StatusBadRequest, "file type not allowed", nil)
	}
	return nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
