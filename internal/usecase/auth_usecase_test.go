package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobpath/internal/domain/user"
	"jobpath/internal/pkg/jwt"

	"github.com/google/uuid"
)

type stubUserRepo struct {
	usr    user.User
	getErr error
}

func (s stubUserRepo) Create(context.Context, user.User) error { return nil }
func (s stubUserRepo) GetByID(context.Context, uuid.UUID) (user.User, error) {
	return s.usr, s.getErr
}
func (s stubUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (s stubUserRepo) GetByGoogleID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (s stubUserRepo) Update(context.Context, user.User) error { return nil }
func (s stubUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

func testJWT() *jwt.HMACService {
	return jwt.NewHMACService("acc-secret", "ref-secret", 15*time.Minute, 24*time.Hour)
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	usr := user.User{ID: uuid.New(), Email: "jane@example.com", IsActive: true}
	jwtSvc := testJWT()
	uc := NewAuthUsecase(stubUserRepo{usr: usr}, jwtSvc)

	refresh, err := jwtSvc.GenerateRefreshToken(usr.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	pair, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("incomplete pair: %+v", pair)
	}

	claims, err := jwtSvc.ValidateAccessToken(pair.Access)
	if err != nil {
		t.Fatalf("new access token invalid: %v", err)
	}
	if claims.UserID != usr.ID {
		t.Fatalf("user id mismatch")
	}
}

func TestRefresh_EmptyToken(t *testing.T) {
	uc := NewAuthUsecase(stubUserRepo{}, testJWT())
	_, err := uc.Refresh(context.Background(), "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	usr := user.User{ID: uuid.New(), IsActive: true}
	jwtSvc := testJWT()
	uc := NewAuthUsecase(stubUserRepo{usr: usr}, jwtSvc)

	access, _ := jwtSvc.GenerateAccessToken(usr.ID, "")
	_, err := uc.Refresh(context.Background(), access)
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefresh_DeletedUser(t *testing.T) {
	jwtSvc := testJWT()
	uc := NewAuthUsecase(stubUserRepo{getErr: user.ErrNotFound}, jwtSvc)

	refresh, _ := jwtSvc.GenerateRefreshToken(uuid.New())
	_, err := uc.Refresh(context.Background(), refresh)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRefresh_DeactivatedUser(t *testing.T) {
	usr := user.User{ID: uuid.New(), IsActive: false}
	jwtSvc := testJWT()
	uc := NewAuthUsecase(stubUserRepo{usr: usr}, jwtSvc)

	refresh, _ := jwtSvc.GenerateRefreshToken(usr.ID)
	_, err := uc.Refresh(context.Background(), refresh)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
