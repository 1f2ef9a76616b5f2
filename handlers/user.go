package handlers

import (
	"net/http"
	"strconv"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/services"
	"github.com/n0cod3develper-byte/Documental/utils"

	"github.com/gin-gonic/gin"
)

type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"first_name" binding:"required,max=100"`
	LastName     string `json:"last_name" binding:"required,max=100"`
	RoleID       uint   `json:"role_id" binding:"required"`
	DepartmentID *uint  `json:"department_id"`
}

type UpdateUserRequest struct {
	Email        *string `json:"email" binding:"omitempty,email"`
	Password     *string `json:"password" binding:"omitempty,min=8"`
	FirstName    *string `json:"first_name" binding:"omitempty,max=100"`
	LastName     *string `json:"last_name" binding:"omitempty,max=100"`
	RoleID       *uint   `json:"role_id"`
	DepartmentID *uint   `json:"department_id"`
	ClearDept    bool    `json:"clear_department"`
	IsActive     *bool   `json:"is_active"`
}

func ListUsers(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "invalid is_active")
			return
		}
		isActive = &value
	}
	roleID, ok := parseUintQuery(c, "role_id")
	if !ok {
		return
	}
	departmentID, ok := parseUintQuery(c, "department_id")
	if !ok {
		return
	}

	in := services.ListUsersInput{
		Search:   c.Query("search"),
		IsActive: isActive,
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "page_size", 0),
	}
	if roleID != nil {
		in.RoleID = *roleID
	}
	if departmentID != nil {
		in.DepartmentID = *departmentID
	}

	out, err := getServices().Users.ListUsers(c.Request.Context(), user, in)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func GetUser(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	target, err := getServices().Users.GetUser(c.Request.Context(), user, userID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, target)
}

func CreateUser(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	created, err := getServices().Users.CreateUser(c.Request.Context(), user, services.CreateUserInput{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
	})
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "CREATE_USER", models.ResourceUser, created.ID, created.Email)
	utils.Created(c, created)
}

func UpdateUser(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	updated, err := getServices().Users.UpdateUser(c.Request.Context(), user, userID, services.UpdateUserInput{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
		ClearDept:    req.ClearDept,
		IsActive:     req.IsActive,
	})
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "UPDATE_USER", models.ResourceUser, updated.ID, updated.Email)
	utils.Success(c, updated)
}

func DeactivateUser(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := getServices().Users.DeactivateUser(c.Request.Context(), user, userID); respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "DEACTIVATE_USER", models.ResourceUser, userID, "")
	utils.SuccessWithMessage(c, "user deactivated", nil)
}
