package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobpath/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountDeactivated     = errors.New("account deactivated")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// GoogleProfile is the subset of the OAuth userinfo payload the service
// needs to find or create an account.
type GoogleProfile struct {
	ID     string
	Email  string
	Name   string
	Avatar string
}

// Service owns credential handling: registration, password login, and
// linking Google identities to accounts.
type Service struct {
	users user.Repository
	now   func() time.Time
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, now: time.Now}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return user.User{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	now := s.now().UTC()
	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Provider:     user.ProviderLocal,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	return sanitizeUser(u), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if !u.IsActive {
		return user.User{}, ErrAccountDeactivated
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	s.touchLastLogin(ctx, &u)
	return sanitizeUser(u), nil
}

// UpsertGoogleUser resolves a Google identity to an account: an existing
// link wins, then an email match gets linked, otherwise a new account is
// created with no local password.
func (s *Service) UpsertGoogleUser(ctx context.Context, p GoogleProfile) (user.User, error) {
	if p.ID == "" || p.Email == "" {
		return user.User{}, ErrInvalidInput
	}
	email := normalizeEmail(p.Email)

	u, err := s.users.GetByGoogleID(ctx, p.ID)
	if err == nil {
		if !u.IsActive {
			return user.User{}, ErrAccountDeactivated
		}
		s.touchLastLogin(ctx, &u)
		return sanitizeUser(u), nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, ErrInternal
	}

	u, err = s.users.GetByEmail(ctx, email)
	if err == nil {
		if !u.IsActive {
			return user.User{}, ErrAccountDeactivated
		}
		u.GoogleID = p.ID
		u.Provider = user.ProviderGoogle
		if u.Avatar == "" {
			u.Avatar = p.Avatar
		}
		now := s.now().UTC()
		u.LastLogin = &now
		u.UpdatedAt = now
		if err := s.users.Update(ctx, u); err != nil {
			return user.User{}, ErrInternal
		}
		return sanitizeUser(u), nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, ErrInternal
	}

	now := s.now().UTC()
	u = user.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(p.Name),
		Email:     email,
		GoogleID:  p.ID,
		Avatar:    p.Avatar,
		Provider:  user.ProviderGoogle,
		IsActive:  true,
		LastLogin: &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if u.Name == "" {
		u.Name = email
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

func (s *Service) touchLastLogin(ctx context.Context, u *user.User) {
	now := s.now().UTC()
	u.LastLogin = &now
	u.UpdatedAt = now
	// Best effort; a failed timestamp write must not fail the login.
	_ = s.users.Update(ctx, *u)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
