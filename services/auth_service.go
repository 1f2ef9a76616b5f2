package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/repositories"
	"github.com/n0cod3develper-byte/Documental/utils"

	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, in LoginInput, meta RequestMeta) (LoginOutput, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	CurrentUser(ctx context.Context, userID uint) (models.User, error)
	Logout(ctx context.Context, actor models.User, meta RequestMeta)
}

type authService struct {
	users repositories.UserRepository
	audit AuditService
}

func NewAuthService(users repositories.UserRepository, audit AuditService) AuthService {
	return &authService{users: users, audit: audit}
}

func (s *authService) Login(ctx context.Context, in LoginInput, meta RequestMeta) (LoginOutput, error) {
	user, err := s.users.GetByEmail(ctx, nil, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordAuth(ctx, 0, "LOGIN_FAILED", meta)
			return LoginOutput{}, newAppError(http.StatusUnauthorized, "invalid credentials", nil)
		}
		return LoginOutput{}, newAppError(http.StatusInternalServerError, "failed to query user", err)
	}

	if !user.IsActive {
		s.recordAuth(ctx, user.ID, "LOGIN_FAILED", meta)
		return LoginOutput{}, newAppError(http.StatusForbidden, "account is inactive", nil)
	}

	if !utils.CheckPassword(in.Password, user.PasswordHash) {
		s.recordAuth(ctx, user.ID, "LOGIN_FAILED", meta)
		return LoginOutput{}, newAppError(http.StatusUnauthorized, "invalid credentials", nil)
	}

	if err := s.users.UpdateLastLogin(ctx, nil, user.ID, time.Now()); err != nil {
		return LoginOutput{}, newAppError(http.StatusInternalServerError, "failed to update last login", err)
	}

	accessToken, err := utils.GenerateToken(user.ID)
	if err != nil {
		return LoginOutput{}, newAppError(http.StatusInternalServerError, "failed to generate token", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return LoginOutput{}, newAppError(http.StatusInternalServerError, "failed to generate refresh token", err)
	}

	s.recordAuth(ctx, user.ID, "LOGIN", meta)

	return LoginOutput{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", newAppError(http.StatusForbidden, "invalid or expired refresh token", err)
	}

	user, err := s.users.GetByID(ctx, nil, claims.UserID)
	if err != nil || !user.IsActive {
		return "", newAppError(http.StatusForbidden, "user not found or inactive", err)
	}

	accessToken, err := utils.GenerateToken(user.ID)
	if err != nil {
		return "", newAppError(http.StatusInternalServerError, "failed to generate token", err)
	}
	return accessToken, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uint) (models.User, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, newAppError(http.StatusNotFound, "user not found", nil)
		}
		return models.User{}, newAppError(http.StatusInternalServerError, "failed to query user", err)
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, actor models.User, meta RequestMeta) {
	s.recordAuth(ctx, actor.ID, "LOGOUT", meta)
}

func (s *authService) recordAuth(ctx context.Context, userID uint, action string, meta RequestMeta) {
	s.audit.Record(ctx, AuditEntry{
		UserID:       userID,
		Action:       action,
		ResourceType: "auth",
		ResourceID:   userID,
		Meta:         meta,
	})
}
