package repositories

import (
	"context"
	"time"

	"github.com/n0cod3develper-byte/Documental/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ListUsersInput struct {
	Search       string
	RoleID       uint
	DepartmentID uint
	IsActive     *bool
	Offset       int
	Limit        int
}

type UserRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (models.User, error)
	CountByEmail(ctx context.Context, tx *gorm.DB, email string, excludeID uint) (int64, error)
	List(ctx context.Context, tx *gorm.DB, in ListUsersInput) ([]models.User, int64, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	UpdateByID(ctx context.Context, tx *gorm.DB, userID uint, updates map[string]interface{}) error
	UpdateLastLogin(ctx context.Context, tx *gorm.DB, userID uint, at time.Time) error
}

type RoleRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, roleID uint) (models.Role, error)
	GetByName(ctx context.Context, tx *gorm.DB, name models.RoleName) (models.Role, error)
}

type ListDepartmentsInput struct {
	Search   string
	IsActive *bool
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, departmentID uint) (models.Department, error)
	CountByName(ctx context.Context, tx *gorm.DB, name string, excludeID uint) (int64, error)
	List(ctx context.Context, tx *gorm.DB, in ListDepartmentsInput) ([]models.Department, error)
	Create(ctx context.Context, tx *gorm.DB, department *models.Department) error
	UpdateByID(ctx context.Context, tx *gorm.DB, departmentID uint, updates map[string]interface{}) error
}

type SearchFoldersInput struct {
	Query        string
	DepartmentID *uint
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
}

type FolderRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, folderID uint, preload bool) (models.Folder, error)
	// ListRoots returns root folders owned by the department or public.
	ListRoots(ctx context.Context, tx *gorm.DB, departmentID uint) ([]models.Folder, error)
	// ListRootsAll is the admin view of root folders, optionally narrowed to
	// one department, ignoring visibility entirely.
	ListRootsAll(ctx context.Context, tx *gorm.DB, departmentFilter *uint) ([]models.Folder, error)
	ListChildrenAll(ctx context.Context, tx *gorm.DB, parentID uint, departmentFilter *uint) ([]models.Folder, error)
	// ListVisibleChildren filters children of a parent by the elementary
	// visibility predicate for the given department.
	ListVisibleChildren(ctx context.Context, tx *gorm.DB, parentID uint, departmentID uint) ([]models.Folder, error)
	// ListSharedWithDepartment returns every folder, at any depth, shared
	// with the department.
	ListSharedWithDepartment(ctx context.Context, tx *gorm.DB, departmentID uint) ([]models.Folder, error)
	CountByNameParentDept(ctx context.Context, tx *gorm.DB, name string, parentID *uint, departmentID uint, excludeID uint) (int64, error)
	PluckChildIDs(ctx context.Context, tx *gorm.DB, parentIDs []uint) ([]uint, error)
	Create(ctx context.Context, tx *gorm.DB, folder *models.Folder) error
	UpdateByID(ctx context.Context, tx *gorm.DB, folderID uint, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, folderIDs []uint) error
	Search(ctx context.Context, tx *gorm.DB, in SearchFoldersInput) ([]models.Folder, error)
}

type FolderShareRepository interface {
	Exists(ctx context.Context, tx *gorm.DB, folderID uint, departmentID uint) (bool, error)
	// ReplaceForFolder swaps the full share set: not additive.
	ReplaceForFolder(ctx context.Context, tx *gorm.DB, folderID uint, departmentIDs []uint) error
	DeleteByFolderIDs(ctx context.Context, tx *gorm.DB, folderIDs []uint) error
}

type ListDocumentsInput struct {
	FolderID     *uint
	Search       string
	DepartmentID *uint
	// IncludePublic widens the department scope with public folders; it is
	// false for admin department filtering, where the filter is exact.
	IncludePublic bool
	Offset        int
	Limit         int
}

type SearchDocumentsInput struct {
	Query        string
	DepartmentID *uint
	MimeType     string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
}

type DocumentRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, documentID uint, preload bool) (models.Document, error)
	List(ctx context.Context, tx *gorm.DB, in ListDocumentsInput) ([]models.Document, int64, error)
	Create(ctx context.Context, tx *gorm.DB, document *models.Document) error
	UpdateByID(ctx context.Context, tx *gorm.DB, documentID uint, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, documentID uint) error
	DeleteByFolderIDs(ctx context.Context, tx *gorm.DB, folderIDs []uint) error
	PluckFilePathsByFolderIDs(ctx context.Context, tx *gorm.DB, folderIDs []uint) ([]string, error)
	ListAllFilePaths(ctx context.Context, tx *gorm.DB) ([]string, error)
	Search(ctx context.Context, tx *gorm.DB, in SearchDocumentsInput) ([]models.Document, error)
}

type PermissionRepository interface {
	Has(ctx context.Context, tx *gorm.DB, roleID uint, resourceType models.ResourceType, action models.Action) (bool, error)
}

type ListAuditLogsInput struct {
	UserID       uint
	Action       string
	ResourceType string
	From         *time.Time
	To           *time.Time
	Offset       int
	Limit        int
}

type AuditRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.AuditLog) error
	List(ctx context.Context, tx *gorm.DB, in ListAuditLogsInput) ([]models.AuditLog, int64, error)
}

type Container struct {
	TxManager    TxManager
	Users        UserRepository
	Roles        RoleRepository
	Departments  DepartmentRepository
	Folders      FolderRepository
	FolderShares FolderShareRepository
	Documents    DocumentRepository
	Permissions  PermissionRepository
	Audit        AuditRepository
}
