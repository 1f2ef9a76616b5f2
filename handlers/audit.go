package handlers

import (
	"github.com/n0cod3develper-byte/Documental/services"
	"github.com/n0cod3develper-byte/Documental/utils"

	"github.com/gin-gonic/gin"
)

func ListAuditLogs(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	userID, ok := parseUintQuery(c, "user_id")
	if !ok {
		return
	}

	in := services.AuditQueryInput{
		Action:       c.Query("action"),
		ResourceType: c.Query("resource_type"),
		From:         from,
		To:           to,
		Page:         parseIntQuery(c, "page", 1),
		PageSize:     parseIntQuery(c, "page_size", 0),
	}
	if userID != nil {
		in.UserID = *userID
	}

	out, err := getServices().Audit.List(c.Request.Context(), user, in)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}
