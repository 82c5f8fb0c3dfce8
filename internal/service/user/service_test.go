package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/medarchive-api/internal/model"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
	"github.com/jwalitptl/medarchive-api/pkg/security"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.NotFound("user", nil)
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.NotFound("user", nil)
	}
	delete(r.users, id)
	return nil
}

type fakeAttachments struct {
	deletedOwners []uuid.UUID
}

func (f *fakeAttachments) DeleteOwner(ownerID uuid.UUID) error {
	f.deletedOwners = append(f.deletedOwners, ownerID)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeAttachments, *model.User) {
	t.Helper()
	repo := newFakeUserRepo()
	files := &fakeAttachments{}
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	svc := NewService(repo, hasher, files)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	u := &model.User{
		Base:         model.Base{ID: uuid.New()},
		FirstName:    "Anna",
		LastName:     "Kovacs",
		DateOfBirth:  time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		Email:        "anna@example.com",
		PasswordHash: hash,
		Role:         model.RolePatient,
	}
	require.NoError(t, repo.Create(context.Background(), u))

	return svc, repo, files, u
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, u := newTestService(t)

	updated, err := svc.Update(context.Background(), u.ID, &model.UpdateUserRequest{
		FirstName:   "Anna",
		LastName:    "Szabo",
		DateOfBirth: u.DateOfBirth,
		Gender:      "female",
		Phone:       "+36201234567",
		Address:     "Budapest, Fo utca 1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Szabo", updated.LastName)
	assert.Equal(t, u.Email, updated.Email)
	assert.Equal(t, u.PasswordHash, updated.PasswordHash)
}

func TestChangePassword(t *testing.T) {
	svc, repo, _, u := newTestService(t)

	err := svc.ChangePassword(context.Background(), u.ID, "correct horse", "battery staple")
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, u.PasswordHash, stored.PasswordHash)
	assert.NoError(t, security.NewBcryptHasher(bcrypt.MinCost).Compare(stored.PasswordHash, "battery staple"))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, repo, _, u := newTestService(t)

	err := svc.ChangePassword(context.Background(), u.ID, "wrong password", "battery staple")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))

	stored, err := repo.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.PasswordHash, stored.PasswordHash)
}

func TestDeleteAccount(t *testing.T) {
	svc, repo, files, u := newTestService(t)

	require.NoError(t, svc.DeleteAccount(context.Background(), u.ID))

	_, err := repo.Get(context.Background(), u.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
	assert.Equal(t, []uuid.UUID{u.ID}, files.deletedOwners)
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	svc, _, files, _ := newTestService(t)

	err := svc.DeleteAccount(context.Background(), uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
	assert.Empty(t, files.deletedOwners)
}
