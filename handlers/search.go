package handlers

import (
	"net/http"
	"time"

	"github.com/n0cod3develper-byte/Documental/services"
	"github.com/n0cod3develper-byte/Documental/utils"

	"github.com/gin-gonic/gin"
)

func Search(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	createdFrom, ok := parseDateQuery(c, "created_from")
	if !ok {
		return
	}
	createdTo, ok := parseDateQuery(c, "created_to")
	if !ok {
		return
	}
	departmentID, ok := parseUintQuery(c, "department_id")
	if !ok {
		return
	}

	out, err := getServices().Search.Search(c.Request.Context(), user, services.SearchInput{
		Query:        c.Query("q"),
		Type:         c.Query("type"),
		MimeType:     c.Query("mime_type"),
		CreatedFrom:  createdFrom,
		CreatedTo:    createdTo,
		DepartmentID: departmentID,
	})
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return nil, false
	}
	return &value, true
}
