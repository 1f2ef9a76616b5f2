package handlers

import (
	"net/http"
	"strconv"

	"github.com/n0cod3develper-byte/Documental/middleware"
	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/services"
	"github.com/n0cod3develper-byte/Documental/utils"

	"github.com/gin-gonic/gin"
)

var appServices *services.Container

func SetServices(container *services.Container) {
	appServices = container
}

func getServices() *services.Container {
	if appServices == nil {
		panic("services container is not initialized")
	}
	return appServices
}

func respondServiceError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*services.AppError); ok {
		if appErr.Data != nil {
			utils.ErrorWithData(c, appErr.HTTPCode, appErr.Message, appErr.Data)
		} else {
			utils.Error(c, appErr.HTTPCode, appErr.Message)
		}
		return true
	}
	utils.Error(c, http.StatusInternalServerError, "internal error")
	return true
}

// mustUser returns the authenticated user or writes a 401. Routes behind
// AuthMiddleware always have one; this guards against wiring mistakes.
func mustUser(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "authentication required")
	}
	return user, ok
}

func requestMeta(c *gin.Context) services.RequestMeta {
	return services.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// recordAudit is the explicit post-operation hook: handlers call it after a
// mutating operation succeeds.
func recordAudit(c *gin.Context, actor models.User, action string, resourceType models.ResourceType, resourceID uint, resourceName string) {
	getServices().Audit.Record(c.Request.Context(), services.AuditEntry{
		UserID:       actor.ID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ResourceName: resourceName,
		Meta:         requestMeta(c),
	})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.Error(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func parseUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}
	id := uint(value)
	return &id, true
}

func parseFormUint(c *gin.Context, name string) (*uint, bool) {
	raw := c.PostForm(name)
	if raw == "" {
		return nil, false
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, false
	}
	id := uint(value)
	return &id, true
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
