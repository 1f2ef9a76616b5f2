package handlers

import (
	"net/http"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/services"
	"github.com/n0cod3develper-byte/Documental/utils"

	"github.com/gin-gonic/gin"
)

type CreateFolderRequest struct {
	Name              string `json:"name" binding:"required,max=255"`
	ParentFolderID    *uint  `json:"parent_folder_id"`
	DepartmentID      uint   `json:"department_id"`
	IsPublic          bool   `json:"is_public"`
	SharedDepartments []uint `json:"shared_departments"`
}

type UpdateFolderRequest struct {
	Name              *string `json:"name" binding:"omitempty,max=255"`
	IsPublic          *bool   `json:"is_public"`
	SharedDepartments *[]uint `json:"shared_departments"`
}

// ListFolders returns the visible folders at one level: roots when no
// parent_id is given, otherwise the children of that parent.
func ListFolders(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	parentID, ok := parseUintQuery(c, "parent_id")
	if !ok {
		return
	}
	departmentFilter, ok := parseUintQuery(c, "department_id")
	if !ok {
		return
	}

	folders, err := getServices().Folders.ListFolders(c.Request.Context(), user, parentID, departmentFilter)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, folders)
}

func GetFolder(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := getServices().Folders.GetFolder(c.Request.Context(), user, folderID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, detail)
}

func CreateFolder(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	folder, err := getServices().Folders.CreateFolder(c.Request.Context(), user, services.CreateFolderInput{
		Name:              req.Name,
		ParentFolderID:    req.ParentFolderID,
		DepartmentID:      req.DepartmentID,
		IsPublic:          req.IsPublic,
		SharedDepartments: req.SharedDepartments,
	})
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "CREATE_FOLDER", models.ResourceFolder, folder.ID, folder.Name)
	utils.Created(c, folder)
}

func UpdateFolder(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	folder, err := getServices().Folders.UpdateFolder(c.Request.Context(), user, folderID, services.UpdateFolderInput{
		Name:              req.Name,
		IsPublic:          req.IsPublic,
		SharedDepartments: req.SharedDepartments,
	})
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "UPDATE_FOLDER", models.ResourceFolder, folder.ID, folder.Name)
	utils.Success(c, folder)
}

func DeleteFolder(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := getServices().Folders.DeleteFolder(c.Request.Context(), user, folderID); respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "DELETE_FOLDER", models.ResourceFolder, folderID, "")
	utils.SuccessWithMessage(c, "folder deleted", nil)
}
