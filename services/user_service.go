package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/n0cod3develper-byte/Documental/config"
	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"
	"github.com/n0cod3develper-byte/Documental/utils"

	"gorm.io/gorm"
)

type ListUsersInput struct {
	Search       string
	RoleID       uint
	DepartmentID uint
	IsActive     *bool
	Page         int
	PageSize     int
}

type UserListOutput struct {
	Users      []models.User        `json:"users"`
	Pagination utils.PaginationData `json:"pagination"`
}

type CreateUserInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	RoleID       uint
	DepartmentID *uint
}

type UpdateUserInput struct {
	Email        *string
	Password     *string
	FirstName    *string
	LastName     *string
	RoleID       *uint
	DepartmentID *uint
	ClearDept    bool
	IsActive     *bool
}

type UserService interface {
	ListUsers(ctx context.Context, actor models.User, in ListUsersInput) (UserListOutput, error)
	GetUser(ctx context.Context, actor models.User, userID uint) (models.User, error)
	CreateUser(ctx context.Context, actor models.User, in CreateUserInput) (models.User, error)
	UpdateUser(ctx context.Context, actor models.User, userID uint, in UpdateUserInput) (models.User, error)
	DeactivateUser(ctx context.Context, actor models.User, userID uint) error
}

type userService struct {
	users       repositories.UserRepository
	roles       repositories.RoleRepository
	departments repositories.DepartmentRepository
	resolver    accessResolver
}

func NewUserService(
	users repositories.UserRepository,
	roles repositories.RoleRepository,
	departments repositories.DepartmentRepository,
	permissions repositories.PermissionRepository,
) UserService {
	return &userService{
		users:       users,
		roles:       roles,
		departments: departments,
		resolver:    accessResolver{permissions: permissions},
	}
}

func (s *userService) ListUsers(ctx context.Context, actor models.User, in ListUsersInput) (UserListOutput, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceUser, models.ActionRead); err != nil {
		return UserListOutput{}, err
	}
	if err := requireRole(actor, models.RoleAdmin, models.RoleManager); err != nil {
		return UserListOutput{}, err
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

	repoIn := repositories.ListUsersInput{
		Search:       in.Search,
		RoleID:       in.RoleID,
		DepartmentID: in.DepartmentID,
		IsActive:     in.IsActive,
		Offset:       (page - 1) * pageSize,
		Limit:        pageSize,
	}
	// Managers only see their own department's users.
	if actor.Role.Name == models.RoleManager {
		if actor.DepartmentID == nil {
			return UserListOutput{}, newAppError(http.StatusForbidden, deniedMessage, ErrDepartmentMismatch)
		}
		repoIn.DepartmentID = *actor.DepartmentID
	}

	users, total, err := s.users.List(ctx, nil, repoIn)
	if err != nil {
		return UserListOutput{}, newAppError(http.StatusInternalServerError, "failed to list users", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return UserListOutput{
		Users: users,
		Pagination: utils.PaginationData{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *userService) GetUser(ctx context.Context, actor models.User, userID uint) (models.User, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceUser, models.ActionRead); err != nil {
		return models.User{}, err
	}
	if actor.ID != userID {
		if err := requireRole(actor, models.RoleAdmin, models.RoleManager); err != nil {
			return models.User{}, err
		}
	}
	return s.load(ctx, userID)
}

func (s *userService) CreateUser(ctx context.Context, actor models.User, in CreateUserInput) (models.User, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceUser, models.ActionWrite); err != nil {
		return models.User{}, err
	}
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return models.User{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return models.User{}, newAppError(http.StatusBadRequest, "email, password and name are required", nil)
	}
	if len(in.Password) < 8 {
		return models.User{}, newAppError(http.StatusBadRequest, "password must be at least 8 characters", nil)
	}

	count, err := s.users.CountByEmail(ctx, nil, email, 0)
	if err != nil {
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to check email", err)
	}
	if count > 0 {
		return models.User{}, newAppError(http.StatusConflict, "a user with this email already exists", nil)
	}

	role, err := s.roles.GetByID(ctx, nil, in.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, newAppError(http.StatusBadRequest, "role not found", nil)
		}
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to query role", err)
	}

	if err := s.checkRoleDepartment(ctx, role.Name, in.DepartmentID); err != nil {
		return models.User{}, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to hash password", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		RoleID:       role.ID,
		DepartmentID: in.DepartmentID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, nil, &user); err != nil {
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to create user", err)
	}
	return s.load(ctx, user.ID)
}

func (s *userService) UpdateUser(ctx context.Context, actor models.User, userID uint, in UpdateUserInput) (models.User, error) {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceUser, models.ActionWrite); err != nil {
		return models.User{}, err
	}
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return models.User{}, err
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	updates := map[string]interface{}{}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			count, err := s.users.CountByEmail(ctx, nil, email, user.ID)
			if err != nil {
				return models.User{}, newAppError(http.StatusInternalServerError, "failed to check email", err)
			}
			if count > 0 {
				return models.User{}, newAppError(http.StatusConflict, "a user with this email already exists", nil)
			}
			updates["email"] = email
		}
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return models.User{}, newAppError(http.StatusBadRequest, "password must be at least 8 characters", nil)
		}
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return models.User{}, newAppError(http.StatusInternalServerError, "failed to hash password", err)
		}
		updates["password_hash"] = hash
	}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}

	roleName := user.Role.Name
	if in.RoleID != nil && *in.RoleID != user.RoleID {
		role, err := s.roles.GetByID(ctx, nil, *in.RoleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.User{}, newAppError(http.StatusBadRequest, "role not found", nil)
			}
			return models.User{}, newAppError(http.StatusInternalServerError, "failed to query role", err)
		}
		roleName = role.Name
		updates["role_id"] = role.ID
	}

	departmentID := user.DepartmentID
	if in.ClearDept {
		departmentID = nil
		updates["department_id"] = nil
	} else if in.DepartmentID != nil {
		departmentID = in.DepartmentID
		updates["department_id"] = *in.DepartmentID
	}
	if err := s.checkRoleDepartment(ctx, roleName, departmentID); err != nil {
		return models.User{}, err
	}

	if in.IsActive != nil {
		if !*in.IsActive && user.ID == actor.ID {
			return models.User{}, newAppError(http.StatusBadRequest, "cannot deactivate your own account", nil)
		}
		updates["is_active"] = *in.IsActive
	}

	if len(updates) > 0 {
		if err := s.users.UpdateByID(ctx, nil, user.ID, updates); err != nil {
			return models.User{}, newAppError(http.StatusInternalServerError, "failed to update user", err)
		}
	}
	return s.load(ctx, user.ID)
}

// DeactivateUser flips is_active off; rows are never removed so audit
// entries keep a valid author.
func (s *userService) DeactivateUser(ctx context.Context, actor models.User, userID uint) error {
	if err := s.resolver.requirePermission(ctx, nil, actor, models.ResourceUser, models.ActionDelete); err != nil {
		return err
	}
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	if actor.ID == userID {
		return newAppError(http.StatusBadRequest, "cannot deactivate your own account", nil)
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.UpdateByID(ctx, nil, user.ID, map[string]interface{}{"is_active": false}); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to deactivate user", err)
	}
	return nil
}

// checkRoleDepartment enforces the role/department pairing: admins sit
// outside departments, everyone else belongs to exactly one active one.
func (s *userService) checkRoleDepartment(ctx context.Context, roleName models.RoleName, departmentID *uint) error {
	if roleName == models.RoleAdmin {
		if departmentID != nil {
			return newAppError(http.StatusBadRequest, "admin users cannot belong to a department", nil)
		}
		return nil
	}

	if departmentID == nil {
		return newAppError(http.StatusBadRequest, "a department is required for this role", nil)
	}
	department, err := s.departments.GetByID(ctx, nil, *departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusBadRequest, "department not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "failed to query department", err)
	}
	if !department.IsActive {
		return newAppError(http.StatusBadRequest, "department is not active", nil)
	}
	return nil
}

func (s *userService) load(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, newAppError(http.StatusNotFound, "user not found", nil)
		}
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to query user", err)
	}
	return user, nil
}
