package access

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	AllowOwner
	AllowDelegate
)

func (d Decision) Allowed() bool {
	return d != Deny
}

// grantCacheTTL bounds how long a revoked grant can still be seen by other
// instances. In-process revokes invalidate immediately.
const grantCacheTTL = 30 * time.Second

// Service is the single authorization gate for all record access and the
// owner of the patient-doctor delegation lifecycle. Every cross-principal
// read must pass through Authorize; callers must not consult the grant
// store directly.
type Service struct {
	accessRepo repository.AccessRepository
	userRepo   repository.UserRepository
	grants     *cache.Cache
	now        func() time.Time
}

func NewService(accessRepo repository.AccessRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		accessRepo: accessRepo,
		userRepo:   userRepo,
		grants:     cache.New(grantCacheTTL, 2*grantCacheTTL),
		now:        time.Now,
	}
}

// Authorize decides whether requester may read owner's records. AllowOwner
// when acting on one's own archive, AllowDelegate when an active grant from
// owner to requester exists, Deny otherwise. The returned error is only ever
// an infrastructure fault, never a business outcome.
func (s *Service) Authorize(ctx context.Context, requesterID, ownerID uuid.UUID) (Decision, error) {
	if requesterID == ownerID {
		return AllowOwner, nil
	}

	key := grantKey(ownerID, requesterID)
	if _, ok := s.grants.Get(key); ok {
		return AllowDelegate, nil
	}

	exists, err := s.accessRepo.Exists(ctx, ownerID, requesterID)
	if err != nil {
		return Deny, fmt.Errorf("failed to check access grant: %w", err)
	}
	if !exists {
		return Deny, nil
	}

	// Only positive results are cached so a fresh grant is visible at once.
	s.grants.Set(key, struct{}{}, cache.DefaultExpiration)
	return AllowDelegate, nil
}

// Grant gives the doctor identified by email read access to the patient's
// archive.
func (s *Service) Grant(ctx context.Context, patientID uuid.UUID, doctorEmail string) (*model.DoctorAccess, error) {
	doctor, err := s.userRepo.GetByEmail(ctx, doctorEmail)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, err
	}

	if doctor.Role != model.RoleDoctor {
		return nil, apperrors.InvalidRole(fmt.Sprintf("user %s is not a doctor", doctorEmail))
	}

	exists, err := s.accessRepo.Exists(ctx, patientID, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check access grant: %w", err)
	}
	if exists {
		return nil, apperrors.DuplicateGrant(fmt.Sprintf("doctor %s already has access", doctorEmail))
	}

	grant := &model.DoctorAccess{
		ID:        uuid.New(),
		PatientID: patientID,
		DoctorID:  doctor.ID,
		GrantedAt: s.now().UTC(),
	}
	if err := s.accessRepo.Create(ctx, grant); err != nil {
		return nil, err
	}

	grant.Doctor = doctor
	return grant, nil
}

// Revoke removes the patient's grant to the doctor. Revoking an absent grant
// returns NotFound.
func (s *Service) Revoke(ctx context.Context, patientID, doctorID uuid.UUID) error {
	if err := s.accessRepo.Delete(ctx, patientID, doctorID); err != nil {
		return err
	}

	s.grants.Delete(grantKey(patientID, doctorID))
	return nil
}

// ListDoctors returns the doctors holding an active grant from the patient.
func (s *Service) ListDoctors(ctx context.Context, patientID uuid.UUID) ([]*model.User, error) {
	doctors, err := s.accessRepo.ListDoctorsForPatient(ctx, patientID)
	return nonNilUsers(doctors), err
}

// ListPatients returns the patients who granted the doctor access.
func (s *Service) ListPatients(ctx context.Context, doctorID uuid.UUID) ([]*model.User, error) {
	patients, err := s.accessRepo.ListPatientsForDoctor(ctx, doctorID)
	return nonNilUsers(patients), err
}

// nonNilUsers keeps empty listings serializing as [] rather than null.
func nonNilUsers(users []*model.User) []*model.User {
	if users == nil {
		return []*model.User{}
	}
	return users
}

func grantKey(patientID, doctorID uuid.UUID) string {
	return patientID.String() + "|" + doctorID.String()
}
