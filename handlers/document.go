package handlers

import (
	"net/http"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/services"
	"github.com/n0cod3develper-byte/Documental/utils"

	"github.com/gin-gonic/gin"
)

type UpdateDocumentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

func ListDocuments(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	folderID, ok := parseUintQuery(c, "folder_id")
	if !ok {
		return
	}

	out, err := getServices().Documents.ListDocuments(c.Request.Context(), user, services.ListDocumentsInput{
		FolderID: folderID,
		Search:   c.Query("search"),
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "page_size", 0),
	})
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func GetDocument(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	document, err := getServices().Documents.GetDocument(c.Request.Context(), user, documentID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, document)
}

func UploadDocument(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	folderID, ok := parseUintQuery(c, "folder_id")
	if !ok {
		return
	}
	if folderID == nil {
		if form, okForm := parseFormUint(c, "folder_id"); okForm {
			folderID = form
		}
	}
	if folderID == nil {
		utils.Error(c, http.StatusBadRequest, "folder_id is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "file is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	defer src.Close()

	document, err := getServices().Documents.Upload(c.Request.Context(), user, services.UploadDocumentInput{
		FolderID:     *folderID,
		Name:         c.PostForm("name"),
		Description:  c.PostForm("description"),
		OriginalName: fileHeader.Filename,
		FileSize:     fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Reader:       src,
	})
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "UPLOAD", models.ResourceDocument, document.ID, document.Name)
	utils.Created(c, document)
}

func DownloadDocument(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	info, err := getServices().Documents.GetDownloadInfo(c.Request.Context(), user, documentID)
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "DOWNLOAD", models.ResourceDocument, info.Document.ID, info.Document.Name)
	c.FileAttachment(info.AbsPath, info.DownloadName)
}

// PreviewDocument streams the file inline instead of as an attachment.
func PreviewDocument(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	info, err := getServices().Documents.GetDownloadInfo(c.Request.Context(), user, documentID)
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "PREVIEW", models.ResourceDocument, info.Document.ID, info.Document.Name)
	c.Header("Content-Type", info.ContentType)
	c.File(info.AbsPath)
}

func DocumentThumbnail(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	info, err := getServices().Documents.GetThumbnailInfo(c.Request.Context(), user, documentID)
	if respondServiceError(c, err) {
		return
	}

	c.Header("Content-Type", info.ContentType)
	c.File(info.AbsPath)
}

func UpdateDocument(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	document, err := getServices().Documents.UpdateDocument(c.Request.Context(), user, documentID, services.UpdateDocumentInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "UPDATE_DOCUMENT", models.ResourceDocument, document.ID, document.Name)
	utils.Success(c, document)
}

func DeleteDocument(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := getServices().Documents.DeleteDocument(c.Request.Context(), user, documentID); respondServiceError(c, err) {
		return
	}

	recordAudit(c, user, "DELETE_DOCUMENT", models.ResourceDocument, documentID, "")
	utils.SuccessWithMessage(c, "document deleted", nil)
}
