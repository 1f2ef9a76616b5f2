package services

import (
	"context"
	"testing"

	"github.com/n0cod3develper-byte/Documental/models"
	"github.com/n0cod3develper-byte/Documental/utils"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo, *fakeAuditRepo) {
	t.Helper()
	users := newFakeUserRepo()
	audit := &fakeAuditRepo{}
	return NewAuthService(users, NewAuditService(audit, newFakePermissionRepo())), users, audit
}

func seedLoginUser(t *testing.T, users *fakeUserRepo, password string, active bool) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := basicUser(0, 1)
	user.Email = "alice@example.com"
	user.PasswordHash = hash
	user.IsActive = active
	return users.Put(user)
}

func TestLoginSuccess(t *testing.T) {
	service, users, audit := newAuthFixture(t)
	user := seedLoginUser(t, users, "correct horse", true)

	out, err := service.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "correct horse"}, RequestMeta{IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if out.AccessToken == "" || out.RefreshToken == "" {
		t.Fatal("tokens missing from login output")
	}

	claims, err := utils.ParseToken(out.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token user %d, want %d", claims.UserID, user.ID)
	}

	if users.users[user.ID].LastLogin == nil {
		t.Error("last login not recorded")
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != "LOGIN" {
		t.Errorf("expected one LOGIN audit entry, got %+v", audit.entries)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	service, users, audit := newAuthFixture(t)
	seedLoginUser(t, users, "correct horse", true)

	_, err := service.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "wrong"}, RequestMeta{})
	assertAppError(t, err, 401)
	if len(audit.entries) != 1 || audit.entries[0].Action != "LOGIN_FAILED" {
		t.Errorf("expected LOGIN_FAILED audit entry, got %+v", audit.entries)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	_, err := service.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"}, RequestMeta{})
	assertAppError(t, err, 401)
}

func TestLoginInactiveAccount(t *testing.T) {
	service, users, _ := newAuthFixture(t)
	seedLoginUser(t, users, "correct horse", false)

	_, err := service.Login(context.Background(), LoginInput{Email: "alice@example.com", Password: "correct horse"}, RequestMeta{})
	assertAppError(t, err, 403)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	service, users, _ := newAuthFixture(t)
	user := seedLoginUser(t, users, "correct horse", true)

	refresh, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	access, err := service.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	claims, err := utils.ParseToken(access)
	if err != nil {
		t.Fatalf("new access token does not parse: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token user %d, want %d", claims.UserID, user.ID)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	service, users, _ := newAuthFixture(t)
	user := seedLoginUser(t, users, "correct horse", true)

	access, err := utils.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = service.Refresh(context.Background(), access)
	assertAppError(t, err, 403)
}

func TestAuditFailureDoesNotBlockLogout(t *testing.T) {
	users := newFakeUserRepo()
	audit := &fakeAuditRepo{err: errArbitrary}
	service := NewAuthService(users, NewAuditService(audit, newFakePermissionRepo()))

	// Record swallows the repository error; Logout must simply return.
	service.Logout(context.Background(), basicUser(1, 1), RequestMeta{})
}
