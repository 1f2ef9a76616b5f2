package services

import (
	"context"
	"net/http"
	"time"

	"github.com/n0cod3develper-byte/Documental/config"
	"github.com/n0cod3develper-byte/Documental/logger"
	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"
	"github.com/n0cod3develper-byte/Documental/utils"
)

// RequestMeta is the caller context forwarded into audit entries.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type AuditEntry struct {
	UserID       uint
	Action       string
	ResourceType models.ResourceType
	ResourceID   uint
	ResourceName string
	Meta         RequestMeta
}

type AuditQueryInput struct {
	UserID       uint
	Action       string
	ResourceType string
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
}

type AuditListOutput struct {
	Entries    []models.AuditLog    `json:"entries"`
	Pagination utils.PaginationData `json:"pagination"`
}

// AuditService writes as a sink: Record failures are swallowed after logging
// so auditing can never abort the primary operation. List is the admin-only
// read side.
type AuditService interface {
	Record(ctx context.Context, entry AuditEntry)
	List(ctx context.Context, actor models.User, in AuditQueryInput) (AuditListOutput, error)
}

type auditService struct {
	audit    repositories.AuditRepository
	resolver accessResolver
}

func NewAuditService(audit repositories.AuditRepository, permissions repositories.PermissionRepository) AuditService {
	return &auditService{
		audit:    audit,
		resolver: accessResolver{permissions: permissions},
	}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry) {
	row := models.AuditLog{
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: string(entry.ResourceType),
		ResourceID:   entry.ResourceID,
		ResourceName: entry.ResourceName,
		IPAddress:    entry.Meta.IP,
		UserAgent:    entry.Meta.UserAgent,
	}
	if err := s.audit.Create(ctx, nil, &row); err != nil {
		logger.Warnf("audit write failed (action=%s resource=%s id=%d): %v",
			entry.Action, entry.ResourceType, entry.ResourceID, err)
	}
}

func (s *auditService) List(ctx context.Context, actor models.User, in AuditQueryInput) (AuditListOutput, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceAudit, models.ActionRead); err != nil {
		return AuditListOutput{}, err
	}
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return AuditListOutput{}, err
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

	entries, total, err := s.audit.List(ctx, nil, repositories.ListAuditLogsInput{
		UserID:       in.UserID,
		Action:       in.Action,
		ResourceType: in.ResourceType,
		From:         in.From,
		To:           in.To,
		Offset:       (page - 1) * pageSize,
		Limit:        pageSize,
	})
	if err != nil {
		return AuditListOutput{}, newAppError(http.StatusInternalServerError, "failed to list audit entries", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return AuditListOutput{
		Entries: entries,
		Pagination: utils.PaginationData{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}, nil
}
