package services

import (
	"time"

	"github.com/n0cod3develper-byte/Documental/config"
	"github.com/n0cod3develper-byte/Documental/repositories"
	"github.com/n0cod3develper-byte/Documental/storage"
)

type Container struct {
	Auth        AuthService
	Users       UserService
	Departments DepartmentService
	Folders     FolderService
	Documents   DocumentService
	Search      SearchService
	Audit       AuditService
	Cleanup     CleanupService
}

func NewContainer(repos repositories.Container, store storage.Store, thumbnails storage.Thumbnailer) *Container {
	audit := NewAuditService(repos.Audit, repos.Permissions)
	return &Container{
		Auth:        NewAuthService(repos.Users, audit),
		Users:       NewUserService(repos.Users, repos.Roles, repos.Departments, repos.Permissions),
		Departments: NewDepartmentService(repos.Departments, repos.Permissions),
		Folders:     NewFolderService(repos.TxManager, repos.Folders, repos.FolderShares, repos.Documents, repos.Departments, repos.Permissions, store),
		Documents:   NewDocumentService(repos.Folders, repos.FolderShares, repos.Documents, repos.Permissions, store, thumbnails),
		Search:      NewSearchService(repos.Folders, repos.Documents),
		Audit:       audit,
		Cleanup:     NewCleanupService(repos.Documents, store, time.Duration(config.AppConfig.Cleanup.IntervalMinutes)*time.Minute),
	}
}
