package user

import (
	"context"
	"errors"
	"testing"

	"jobpath/internal/domain/job"
	"jobpath/internal/domain/user"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	usr       user.User
	getErr    error
	updated   *user.User
	deletedID *uuid.UUID
}

func (m *mockUserRepo) Create(context.Context, user.User) error { return nil }
func (m *mockUserRepo) GetByID(context.Context, uuid.UUID) (user.User, error) {
	return m.usr, m.getErr
}
func (m *mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m *mockUserRepo) GetByGoogleID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m *mockUserRepo) Update(_ context.Context, u user.User) error {
	m.updated = &u
	return nil
}
func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.deletedID = &id
	return nil
}

type mockJobRepo struct {
	deletedOwner *uuid.UUID
	err          error
}

func (m *mockJobRepo) Create(context.Context, job.JobApplication) error { return nil }
func (m *mockJobRepo) GetByID(context.Context, uuid.UUID, uuid.UUID) (job.JobApplication, error) {
	return job.JobApplication{}, job.ErrNotFound
}
func (m *mockJobRepo) List(context.Context, uuid.UUID, job.ListFilter) ([]job.JobApplication, int64, error) {
	return nil, 0, nil
}
func (m *mockJobRepo) Update(context.Context, job.JobApplication) error   { return nil }
func (m *mockJobRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (m *mockJobRepo) DeleteMany(context.Context, uuid.UUID, []uuid.UUID) (int64, error) {
	return 0, nil
}
func (m *mockJobRepo) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	m.deletedOwner = &ownerID
	return 3, m.err
}
func (m *mockJobRepo) CountByStatus(context.Context, uuid.UUID) (job.Stats, error) {
	return job.Stats{}, nil
}

func TestGetMe_StripsPasswordHash(t *testing.T) {
	repo := &mockUserRepo{usr: user.User{ID: uuid.New(), PasswordHash: "hash"}}
	svc := NewService(repo, &mockJobRepo{})

	u, err := svc.GetMe(context.Background(), repo.usr.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}
}

func TestUpdateProfile_BlankNameRejected(t *testing.T) {
	repo := &mockUserRepo{usr: user.User{ID: uuid.New(), Name: "Jane"}}
	svc := NewService(repo, &mockJobRepo{})

	blank := "   "
	_, err := svc.UpdateProfile(context.Background(), repo.usr.ID, UpdateProfileInput{Name: &blank})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("update must not run")
	}
}

func TestUpdateProfile_NilAvatarLeavesItAlone(t *testing.T) {
	repo := &mockUserRepo{usr: user.User{ID: uuid.New(), Name: "Jane", Avatar: "old.png"}}
	svc := NewService(repo, &mockJobRepo{})

	name := "Janet"
	u, err := svc.UpdateProfile(context.Background(), repo.usr.ID, UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Name != "Janet" || u.Avatar != "old.png" {
		t.Fatalf("unexpected result: %+v", u)
	}
}

func TestDeleteAccount_RemovesJobsFirst(t *testing.T) {
	owner := uuid.New()
	users := &mockUserRepo{usr: user.User{ID: owner}}
	jobs := &mockJobRepo{}
	svc := NewService(users, jobs)

	if err := svc.DeleteAccount(context.Background(), owner); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if jobs.deletedOwner == nil || *jobs.deletedOwner != owner {
		t.Fatalf("owned jobs not removed")
	}
	if users.deletedID == nil || *users.deletedID != owner {
		t.Fatalf("account not removed")
	}
}

func TestDeleteAccount_JobCleanupFailureAborts(t *testing.T) {
	owner := uuid.New()
	users := &mockUserRepo{usr: user.User{ID: owner}}
	jobs := &mockJobRepo{err: errors.New("boom")}
	svc := NewService(users, jobs)

	if err := svc.DeleteAccount(context.Background(), owner); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if users.deletedID != nil {
		t.Fatalf("account must survive when job cleanup fails")
	}
}
