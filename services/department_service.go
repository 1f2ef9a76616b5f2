package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"

	"gorm.io/gorm"
)

type CreateDepartmentInput struct {
	Name        string
	Description string
}

type UpdateDepartmentInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

type DepartmentService interface {
	ListDepartments(ctx context.Context, actor models.User, search string, isActive *bool) ([]models.Department, error)
	GetDepartment(ctx context.Context, actor models.User, departmentID uint) (models.Department, error)
	CreateDepartment(ctx context.Context, actor models.User, in CreateDepartmentInput) (models.Department, error)
	UpdateDepartment(ctx context.Context, actor models.User, departmentID uint, in UpdateDepartmentInput) (models.Department, error)
	DeleteDepartment(ctx context.Context, actor models.User, departmentID uint) error
}

type departmentService struct {
	departments repositories.DepartmentRepository
	permissions repositories.PermissionRepository
	resolver    accessResolver
}

func NewDepartmentService(departments repositories.DepartmentRepository, permissions repositories.PermissionRepository) DepartmentService {
	return &departmentService{
		departments: departments,
		permissions: permissions,
		resolver:    accessResolver{permissions: permissions},
	}
}

func (s *departmentService) ListDepartments(ctx context.Context, actor models.User, search string, isActive *bool) ([]models.Department, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDepartment, models.ActionRead); err != nil {
		return nil, err
	}

	departments, err := s.departments.List(ctx, nil, repositories.ListDepartmentsInput{
		Search:   search,
		IsActive: isActive,
	})
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to list departments", err)
	}
	return departments, nil
}

func (s *departmentService) GetDepartment(ctx context.Context, actor models.User, departmentID uint) (models.Department, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDepartment, models.ActionRead); err != nil {
		return models.Department{}, err
	}
	return s.load(ctx, departmentID)
}

func (s *departmentService) CreateDepartment(ctx context.Context, actor models.User, in CreateDepartmentInput) (models.Department, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDepartment, models.ActionWrite); err != nil {
		return models.Department{}, err
	}
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return models.Department{}, err
	}
	if in.Name == "" {
		return models.Department{}, newAppError(http.StatusBadRequest, "department name is required", nil)
	}

	count, err := s.departments.CountByName(ctx, nil, in.Name, 0)
	if err != nil {
		return models.Department{}, newAppError(http.StatusInternalServerError, "failed to check department name", err)
	}
	if count > 0 {
		return models.Department{}, newAppError(http.StatusConflict, "a department with this name already exists", nil)
	}

	department := models.Department{
		Name:        in.Name,
		Description: in.Description,
		IsActive:    true,
	}
	if err := s.departments.Create(ctx, nil, &department); err != nil {
		return models.Department{}, newAppError(http.StatusInternalServerError, "failed to create department", err)
	}
	return department, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, actor models.User, departmentID uint, in UpdateDepartmentInput) (models.Department, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDepartment, models.ActionWrite); err != nil {
		return models.Department{}, err
	}
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return models.Department{}, err
	}

	department, err := s.load(ctx, departmentID)
	if err != nil {
		return models.Department{}, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil && *in.Name != department.Name {
		count, err := s.departments.CountByName(ctx, nil, *in.Name, department.ID)
		if err != nil {
			return models.Department{}, newAppError(http.StatusInternalServerError, "failed to check department name", err)
		}
		if count > 0 {
			return models.Department{}, newAppError(http.StatusConflict, "a department with this name already exists", nil)
		}
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}

	if len(updates) > 0 {
		if err := s.departments.UpdateByID(ctx, nil, department.ID, updates); err != nil {
			return models.Department{}, newAppError(http.StatusInternalServerError, "failed to update department", err)
		}
	}
	return s.load(ctx, department.ID)
}

// DeleteDepartment deactivates instead of removing: folders and users keep
// their foreign keys, the department just stops accepting new content.
func (s *departmentService) DeleteDepartment(ctx context.Context, actor models.User, departmentID uint) error {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceDepartment, models.ActionDelete); err != nil {
		return err
	}
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}

	department, err := s.load(ctx, departmentID)
	if err != nil {
		return err
	}

	if err := s.departments.UpdateByID(ctx, nil, department.ID, map[string]interface{}{"is_active": false}); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to deactivate department", err)
	}
	return nil
}

func (s *departmentService) load(ctx context.Context, departmentID uint) (models.Department, error) {
	department, err := s.departments.GetByID(ctx, nil, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Department{}, newAppError(http.StatusNotFound, "department not found", nil)
		}
		return models.Department{}, newAppError(http.StatusInternalServerError, "failed to query department", err)
	}
	return department, nil
}
