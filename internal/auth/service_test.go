package auth

import (
	"context"
	"testing"

	"gorm.io/gorm"

	pkgauth "github.com/margauxcellars/cellar-backend/pkg/auth"
	"github.com/margauxcellars/cellar-backend/pkg/config"
	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	"github.com/margauxcellars/cellar-backend/pkg/security"
)

type stubUserRepo struct {
	user *models.User
}

func (s stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubSessionManager struct {
	created []string
	revoked []string
}

func (s *stubSessionManager) Create(ctx context.Context, sessionID string, userID uint) error {
	s.created = append(s.created, sessionID)
	return nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, sessionID string) error {
	s.revoked = append(s.revoked, sessionID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "cellar-backend",
		ExpirationMinutes: 30,
	}
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubSessionManager) {
	t.Helper()
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestServiceLoginMintsTokenAndSession(t *testing.T) {
	password := "cellar-secret"
	user := &models.User{
		ID:           7,
		Email:        "staff@example.com",
		PasswordHash: mustHashPassword(t, password),
		DisplayName:  "Staff Member",
		Language:     "en",
	}

	svc, sessions := buildTestService(t, user)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected uid %d, got %d", user.ID, claims.UserID)
	}
	if len(sessions.created) != 1 || sessions.created[0] != claims.ID {
		t.Fatalf("expected session keyed by jti, got %v", sessions.created)
	}
	if resp.User.Email != user.Email {
		t.Fatalf("expected profile email, got %q", resp.User.Email)
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           7,
		Email:        "staff@example.com",
		PasswordHash: mustHashPassword(t, "right"),
	}

	svc, _ := buildTestService(t, user)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    user.Email,
		Password: "wrong",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	svc, _ := buildTestService(t, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLogoutRevokesSession(t *testing.T) {
	svc, sessions := buildTestService(t, nil)

	if err := svc.Logout(context.Background(), "session-123"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "session-123" {
		t.Fatalf("expected session revoked, got %v", sessions.revoked)
	}

	// Empty session ids are a quiet no-op.
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout empty: %v", err)
	}
	if len(sessions.revoked) != 1 {
		t.Fatalf("expected no extra revocation, got %v", sessions.revoked)
	}
}
