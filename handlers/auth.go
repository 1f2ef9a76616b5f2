package handlers

import (
	"net/http"

	"github.com/n0cod3develper-byte/Documental/services"
	"github.com/n0cod3develper-byte/Documental/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	out, err := getServices().Auth.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, requestMeta(c))
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, out)
}

func Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	token, err := getServices().Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, gin.H{"access_token": token})
}

func Me(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	current, err := getServices().Auth.CurrentUser(c.Request.Context(), user.ID)
	if respondServiceError(c, err) {
		return
	}
	utils.Success(c, current)
}

func Logout(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}

	getServices().Auth.Logout(c.Request.Context(), user, requestMeta(c))
	utils.SuccessWithMessage(c, "logged out", nil)
}
