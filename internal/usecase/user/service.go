package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobpath/internal/domain/job"
	"jobpath/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// UpdateProfileInput carries the two profile fields a user may change. A nil
// Avatar leaves the avatar untouched; an empty non-nil one clears it.
type UpdateProfileInput struct {
	Name   *string
	Avatar *string
}

type Usecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type Service struct {
	users user.Repository
	jobs  job.Repository
	now   func() time.Time
}

func NewService(users user.Repository, jobs job.Repository) *Service {
	return &Service{users: users, jobs: jobs, now: time.Now}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		u.Name = name
	}
	if in.Avatar != nil {
		u.Avatar = strings.TrimSpace(*in.Avatar)
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

// DeleteAccount removes the account and everything it owns. Jobs go first so
// a crash in between leaves no orphaned records behind a live account.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.jobs.DeleteByOwner(ctx, userID); err != nil {
		return ErrInternal
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
