package services

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"

	"gorm.io/gorm"
)

const deniedMessage = "access denied"

// accessResolver is the decision core: it owns the permission-table gate,
// the elementary visibility predicate and the folder listing algorithm.
// All methods are pure read-then-decide; the store is the consistency
// boundary.
type accessResolver struct {
	folders     repositories.FolderRepository
	shares      repositories.FolderShareRepository
	permissions repositories.PermissionRepository
}

// requirePermission consults the static permission table. This check is
// orthogonal to, and runs before, any department or ownership check.
func (r accessResolver) requirePermission(ctx context.Context, tx *gorm.DB, actor models.User, resource models.ResourceType, action models.Action) error {
	ok, err := r.permissions.Has(ctx, tx, actor.RoleID, resource, action)
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to check permissions", err)
	}
	if !ok {
		return newAppError(http.StatusForbidden, deniedMessage, ErrPermissionMissing)
	}
	return nil
}

func requireRole(actor models.User, allowed ...models.RoleName) error {
	for _, role := range allowed {
		if actor.Role.Name == role {
			return nil
		}
	}
	return newAppError(http.StatusForbidden, deniedMessage, ErrRoleNotAllowed)
}

// canAccessFolder is the elementary visibility predicate: Admin always,
// otherwise own department, public flag, or a share to the actor's
// department. Documents inherit this through their owning folder.
func (r accessResolver) canAccessFolder(ctx context.Context, tx *gorm.DB, actor models.User, folder models.Folder) (bool, error) {
	switch actor.Role.Name {
	case models.RoleAdmin:
		return true, nil
	case models.RoleManager, models.RoleUser:
	default:
		// Unknown roles never pass; new roles must be added explicitly.
		return false, nil
	}

	if folder.IsPublic {
		return true, nil
	}
	if actor.DepartmentID == nil {
		return false, nil
	}
	if folder.DepartmentID == *actor.DepartmentID {
		return true, nil
	}
	return r.shares.Exists(ctx, tx, folder.ID, *actor.DepartmentID)
}

// canModifyFolder gates folder mutation (rename, visibility, shares,
// delete). Mutation is an ownership operation: Admin, or the actor's own
// department. Neither a share nor the public flag makes a foreign folder
// mutable.
func (r accessResolver) canModifyFolder(actor models.User, folder models.Folder) bool {
	if actor.Role.Name == models.RoleAdmin {
		return true
	}
	return actor.DepartmentID != nil && folder.DepartmentID == *actor.DepartmentID
}

// canWriteIntoFolder gates document writes inside a folder: Admin, a public
// folder, or the actor's own department. Shares grant read only.
func (r accessResolver) canWriteIntoFolder(actor models.User, folder models.Folder) bool {
	if actor.Role.Name == models.RoleAdmin {
		return true
	}
	if folder.IsPublic {
		return true
	}
	return actor.DepartmentID != nil && folder.DepartmentID == *actor.DepartmentID
}

func (r accessResolver) canModifyDocument(ctx context.Context, tx *gorm.DB, actor models.User, doc models.Document) (bool, error) {
	folder := doc.Folder
	if folder == nil {
		loaded, err := r.folders.GetByID(ctx, tx, doc.FolderID, false)
		if err != nil {
			return false, err
		}
		folder = &loaded
	}
	return r.canWriteIntoFolder(actor, *folder), nil
}

func (r accessResolver) canAccessDocument(ctx context.Context, tx *gorm.DB, actor models.User, doc models.Document) (bool, error) {
	if actor.Role.Name == models.RoleAdmin {
		return true, nil
	}

	folder := doc.Folder
	if folder == nil {
		loaded, err := r.folders.GetByID(ctx, tx, doc.FolderID, false)
		if err != nil {
			return false, err
		}
		folder = &loaded
	}
	return r.canAccessFolder(ctx, tx, actor, *folder)
}

// listFolders resolves the visible folder set for one request.
//
// Admins see everything under the requested parent, optionally narrowed to a
// department. Non-admin child listings apply the visibility predicate per
// child; the parent itself is not re-checked. Non-admin root listings union
// two independent sets: standard roots (own department or public) and every
// folder shared with the actor's department at any depth. Shared subfolders
// surface at root because the viewer has no path through the owning
// department's tree to reach them.
func (r accessResolver) listFolders(ctx context.Context, tx *gorm.DB, actor models.User, parentID *uint, departmentFilter *uint) ([]models.Folder, error) {
	if actor.Role.Name == models.RoleAdmin {
		if parentID != nil {
			return r.folders.ListChildrenAll(ctx, tx, *parentID, departmentFilter)
		}
		return r.folders.ListRootsAll(ctx, tx, departmentFilter)
	}

	if actor.DepartmentID == nil {
		return []models.Folder{}, nil
	}
	departmentID := *actor.DepartmentID

	if parentID != nil {
		return r.folders.ListVisibleChildren(ctx, tx, *parentID, departmentID)
	}

	standardRoots, err := r.folders.ListRoots(ctx, tx, departmentID)
	if err != nil {
		return nil, err
	}
	sharedWithMe, err := r.folders.ListSharedWithDepartment(ctx, tx, departmentID)
	if err != nil {
		return nil, err
	}

	return mergeFolderSets(standardRoots, sharedWithMe), nil
}

// mergeFolderSets deduplicates by folder id, first occurrence wins, and
// sorts case-insensitively by name with the id as tie-breaker so repeated
// listings are order-stable.
func mergeFolderSets(sets ...[]models.Folder) []models.Folder {
	seen := make(map[uint]struct{})
	merged := make([]models.Folder, 0)
	for _, set := range sets {
		for _, folder := range set {
			if _, ok := seen[folder.ID]; ok {
				continue
			}
			seen[folder.ID] = struct{}{}
			merged = append(merged, folder)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		a := strings.ToLower(merged[i].Name)
		b := strings.ToLower(merged[j].Name)
		if a != b {
			return a < b
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}
