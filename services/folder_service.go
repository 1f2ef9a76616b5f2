package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/n0cod3develper-byte/Documental/logger"
	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"
	"github.com/n0cod3develper-byte/Documental/storage"

	"gorm.io/gorm"
)

type CreateFolderInput struct {
	Name              string
	ParentFolderID    *uint
	DepartmentID      uint
	IsPublic          bool
	SharedDepartments []uint
}

type UpdateFolderInput struct {
	Name              *string
	IsPublic          *bool
	SharedDepartments *[]uint
}

type FolderDetail struct {
	Folder     models.Folder   `json:"folder"`
	Subfolders []models.Folder `json:"subfolders"`
}

type FolderService interface {
	ListFolders(ctx context.Context, actor models.User, parentID *uint, departmentFilter *uint) ([]models.Folder, error)
	GetFolder(ctx context.Context, actor models.User, folderID uint) (FolderDetail, error)
	CreateFolder(ctx context.Context, actor models.User, in CreateFolderInput) (models.Folder, error)
	UpdateFolder(ctx context.Context, actor models.User, folderID uint, in UpdateFolderInput) (models.Folder, error)
	DeleteFolder(ctx context.Context, actor models.User, folderID uint) error
}

type folderService struct {
	txManager   TxManager
	folders     repositories.FolderRepository
	shares      repositories.FolderShareRepository
	documents   repositories.DocumentRepository
	departments repositories.DepartmentRepository
	store       storage.Store
	resolver    accessResolver
}

func NewFolderService(
	txManager TxManager,
	folders repositories.FolderRepository,
	shares repositories.FolderShareRepository,
	documents repositories.DocumentRepository,
	departments repositories.DepartmentRepository,
	permissions repositories.PermissionRepository,
	store storage.Store,
) FolderService {
	return &folderService{
		txManager:   txManager,
		folders:     folders,
		shares:      shares,
		documents:   documents,
		departments: departments,
		store:       store,
		resolver:    accessResolver{folders: folders, shares: shares, permissions: permissions},
	}
}

func (s *folderService) ListFolders(ctx context.Context, actor models.User, parentID *uint, departmentFilter *uint) ([]models.Folder, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceFolder, models.ActionRead); err != nil {
		return nil, err
	}

	folders, err := s.resolver.listFolders(ctx, nil, actor, parentID, departmentFilter)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to list folders", err)
	}
	return folders, nil
}

func (s *folderService) GetFolder(ctx context.Context, actor models.User, folderID uint) (FolderDetail, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceFolder, models.ActionRead); err != nil {
		return FolderDetail{}, err
	}

	folder, err := s.folders.GetByID(ctx, nil, folderID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FolderDetail{}, newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return FolderDetail{}, newAppError(http.StatusInternalServerError, "failed to query folder", err)
	}

	ok, err := s.resolver.canAccessFolder(ctx, nil, actor, folder)
	if err != nil {
		return FolderDetail{}, newAppError(http.StatusInternalServerError, "failed to check folder access", err)
	}
	if !ok {
		return FolderDetail{}, newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
	}

	subfolders, err := s.folders.ListChildrenAll(ctx, nil, folder.ID, nil)
	if err != nil {
		return FolderDetail{}, newAppError(http.StatusInternalServerError, "failed to list subfolders", err)
	}

	return FolderDetail{Folder: folder, Subfolders: subfolders}, nil
}

func (s *folderService) CreateFolder(ctx context.Context, actor models.User, in CreateFolderInput) (models.Folder, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceFolder, models.ActionWrite); err != nil {
		return models.Folder{}, err
	}
	if err := requireRole(actor, models.RoleAdmin, models.RoleManager); err != nil {
		return models.Folder{}, err
	}

	department, err := s.departments.GetByID(ctx, nil, in.DepartmentID)
	if err != nil || !department.IsActive {
		return models.Folder{}, newAppError(http.StatusBadRequest, "invalid or inactive department", err)
	}

	// Managers are locked to their own department regardless of any other
	// field on the request.
	if actor.Role.Name != models.RoleAdmin {
		if actor.DepartmentID == nil || in.DepartmentID != *actor.DepartmentID {
			return models.Folder{}, newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
		}
	}

	if in.ParentFolderID != nil {
		parent, err := s.folders.GetByID(ctx, nil, *in.ParentFolderID, false)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Folder{}, newAppError(http.StatusNotFound, "parent folder not found", nil)
			}
			return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to query parent folder", err)
		}
		if parent.DepartmentID != in.DepartmentID {
			return models.Folder{}, newAppError(http.StatusBadRequest, "parent folder must belong to the same department", nil)
		}
	}

	count, err := s.folders.CountByNameParentDept(ctx, nil, in.Name, in.ParentFolderID, in.DepartmentID, 0)
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to check for duplicate name", err)
	}
	if count > 0 {
		return models.Folder{}, newAppError(http.StatusConflict, "a folder with that name already exists here", nil)
	}

	folder := models.Folder{
		Name:           in.Name,
		ParentFolderID: in.ParentFolderID,
		DepartmentID:   in.DepartmentID,
		CreatedBy:      actor.ID,
		IsPublic:       in.IsPublic,
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.folders.Create(ctx, tx, &folder); err != nil {
			return err
		}
		if len(in.SharedDepartments) > 0 {
			return s.shares.ReplaceForFolder(ctx, tx, folder.ID, in.SharedDepartments)
		}
		return nil
	})
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to create folder", err)
	}

	created, err := s.folders.GetByID(ctx, nil, folder.ID, true)
	if err != nil {
		return folder, nil
	}
	return created, nil
}

func (s *folderService) UpdateFolder(ctx context.Context, actor models.User, folderID uint, in UpdateFolderInput) (models.Folder, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceFolder, models.ActionWrite); err != nil {
		return models.Folder{}, err
	}
	if err := requireRole(actor, models.RoleAdmin, models.RoleManager); err != nil {
		return models.Folder{}, err
	}

	folder, err := s.folders.GetByID(ctx, nil, folderID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Folder{}, newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to query folder", err)
	}

	if !s.resolver.canModifyFolder(actor, folder) {
		return models.Folder{}, newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
	}

	updates := map[string]interface{}{}

	if in.Name != nil && *in.Name != folder.Name {
		count, err := s.folders.CountByNameParentDept(ctx, nil, *in.Name, folder.ParentFolderID, folder.DepartmentID, folder.ID)
		if err != nil {
			return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to check for duplicate name", err)
		}
		if count > 0 {
			return models.Folder{}, newAppError(http.StatusConflict, "a folder with that name already exists here", nil)
		}
		updates["name"] = *in.Name
	}
	if in.IsPublic != nil {
		updates["is_public"] = *in.IsPublic
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := s.folders.UpdateByID(ctx, tx, folder.ID, updates); err != nil {
				return err
			}
		}
		if in.SharedDepartments != nil {
			// Full replace: the provided list becomes the entire share set.
			return s.shares.ReplaceForFolder(ctx, tx, folder.ID, *in.SharedDepartments)
		}
		return nil
	})
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to update folder", err)
	}

	updated, err := s.folders.GetByID(ctx, nil, folder.ID, true)
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to reload folder", err)
	}
	return updated, nil
}

// DeleteFolder removes the folder and its whole subtree: shares, documents
// and folder rows go in one transaction, physical files afterwards,
// best-effort.
func (s *folderService) DeleteFolder(ctx context.Context, actor models.User, folderID uint) error {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceFolder, models.ActionDelete); err != nil {
		return err
	}
	if err := requireRole(actor, models.RoleAdmin, models.RoleManager); err != nil {
		return err
	}

	folder, err := s.folders.GetByID(ctx, nil, folderID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "failed to query folder", err)
	}

	if !s.resolver.canModifyFolder(actor, folder) {
		return newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
	}

	var filePaths []string
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		subtreeIDs, err := s.collectSubtreeIDs(ctx, tx, folder.ID)
		if err != nil {
			return err
		}

		filePaths, err = s.documents.PluckFilePathsByFolderIDs(ctx, tx, subtreeIDs)
		if err != nil {
			return err
		}

		if err := s.documents.DeleteByFolderIDs(ctx, tx, subtreeIDs); err != nil {
			return err
		}
		if err := s.shares.DeleteByFolderIDs(ctx, tx, subtreeIDs); err != nil {
			return err
		}
		return s.folders.DeleteByIDs(ctx, tx, subtreeIDs)
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to delete folder", err)
	}

	for _, path := range filePaths {
		if err := s.store.Delete(path); err != nil {
			logger.Warnf("failed to remove file %s after folder delete: %v", path, err)
		}
	}
	return nil
}

// collectSubtreeIDs walks the tree breadth-first, returning the folder and
// every descendant.
func (s *folderService) collectSubtreeIDs(ctx context.Context, tx *gorm.DB, rootID uint) ([]uint, error) {
	all := []uint{rootID}
	frontier := []uint{rootID}
	for len(frontier) > 0 {
		children, err := s.folders.PluckChildIDs(ctx, tx, frontier)
		if err != nil {
			return nil, err
		}
		all = append(all, children...)
		frontier = children
	}
	return all, nil
}
