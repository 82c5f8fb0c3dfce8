package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
	"github.com/jwalitptl/medarchive-api/pkg/security"
)

// AttachmentStore removes stored attachments when an account goes away.
// Satisfied by localfs.Store.
type AttachmentStore interface {
	DeleteOwner(ownerID uuid.UUID) error
}

type Service struct {
	userRepo repository.UserRepository
	hasher   security.Hasher
	files    AttachmentStore
}

func NewService(userRepo repository.UserRepository, hasher security.Hasher, files AttachmentStore) *Service {
	return &Service{userRepo: userRepo, hasher: hasher, files: files}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.userRepo.Get(ctx, id)
}

// Update overwrites the profile fields. Email, role and password are not
// changeable here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.MiddleName = req.MiddleName
	user.DateOfBirth = req.DateOfBirth
	user.Gender = req.Gender
	user.Phone = req.Phone
	user.Address = req.Address

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, newPassword string) error {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(user.PasswordHash, current); err != nil {
		return apperrors.Unauthorized("current password is incorrect", nil)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Internal(err)
	}

	user.PasswordHash = hash
	return s.userRepo.Update(ctx, user)
}

// DeleteAccount removes the user row, which cascades to their records and
// grants, and then their stored attachments.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.files.DeleteOwner(id)
}
