package handlers

import (
	"net/http"
	"strconv"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/services"
	"github.com/n0cod3develper-byte/Documental/utils"

	"github.com/gin-gonic/gin"
)

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func ListDepartments(c *gin.Context) {
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

	departments, err := getServices().Departments.ListDepartments(c.Request.Context(), user, c.Query("search"), isActive)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, departments)
}

func GetDepartment(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	departmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	department, err := getServices().Departments.GetDepartment(c.Request.Context(), user, departmentID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, department)
}

func CreateDepartment(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	department, err := getServices().Departments.CreateDepartment(c.Request.Context(), user, services.CreateDepartmentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "CREATE_DEPARTMENT", models.ResourceDepartment, department.ID, department.Name)
	utils.Created(c, department)
}

func UpdateDepartment(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	departmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	department, err := getServices().Departments.UpdateDepartment(c.Request.Context(), user, departmentID, services.UpdateDepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "UPDATE_DEPARTMENT", models.ResourceDepartment, department.ID, department.Name)
	utils.Success(c, department)
}

func DeleteDepartment(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	departmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := getServices().Departments.DeleteDepartment(c.Request.Context(), user, departmentID); respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "DELETE_DEPARTMENT", models.ResourceDepartment, departmentID, "")
	utils.SuccessWithMessage(c, "department deactivated", nil)
}
