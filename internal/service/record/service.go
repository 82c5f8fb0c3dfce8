package record

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
	"github.com/jwalitptl/medarchive-api/internal/service/access"
	"github.com/jwalitptl/medarchive-api/internal/storage/localfs"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
	"github.com/jwalitptl/medarchive-api/pkg/logger"
)

// Authorizer is the access-control gate. Satisfied by access.Service.
type Authorizer interface {
	Authorize(ctx context.Context, requesterID, ownerID uuid.UUID) (access.Decision, error)
}

// BlobStore persists record attachments. Satisfied by localfs.Store.
type BlobStore interface {
	Save(ownerID uuid.UUID, kind string, upload localfs.Upload) (string, error)
	Delete(relPath string) error
}

// Service mediates all access to one kind of owned record. The five record
// kinds instantiate it with their repository; the ownership rules are
// identical across kinds.
//
// A record that exists but belongs to someone else reads as not found:
// existence is never leaked to unauthorized callers. Doctors never use the
// owner-scoped entry points directly; their reads go through the
// patient-scoped ones, which clear the access gate first.
type Service[T model.OwnedRecord] struct {
	repo   repository.RecordRepository[T]
	files  BlobStore
	authz  Authorizer
	kind   string
	logger *logger.Logger
}

func NewService[T model.OwnedRecord](
	repo repository.RecordRepository[T],
	files BlobStore,
	authz Authorizer,
	kind string,
	logger *logger.Logger,
) *Service[T] {
	return &Service[T]{
		repo:   repo,
		files:  files,
		authz:  authz,
		kind:   kind,
		logger: logger,
	}
}

func (s *Service[T]) Kind() string {
	return s.kind
}

// Get returns the record iff it exists and belongs to the requester.
func (s *Service[T]) Get(ctx context.Context, id, requesterID uuid.UUID) (T, error) {
	var zero T

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if rec.GetOwnerID() != requesterID {
		return zero, apperrors.NotFound("record", nil)
	}
	return rec, nil
}

func (s *Service[T]) List(ctx context.Context, ownerID uuid.UUID) ([]T, error) {
	recs, err := s.repo.ListByOwner(ctx, ownerID)
	return nonNil(recs), err
}

// Search is owner-self-only; there is no delegated search path.
func (s *Service[T]) Search(ctx context.Context, ownerID uuid.UUID, term string) ([]T, error) {
	recs, err := s.repo.Search(ctx, ownerID, term)
	return nonNil(recs), err
}

// DateRange is owner-self-only, like Search.
func (s *Service[T]) DateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]T, error) {
	if end.Before(start) {
		return nil, apperrors.Validation("end date is before start date", nil)
	}
	recs, err := s.repo.ListByDateRange(ctx, ownerID, start, end)
	return nonNil(recs), err
}

// ListForPatient is the delegated listing entry point: the requester must
// hold an active grant from the patient (or be the patient).
func (s *Service[T]) ListForPatient(ctx context.Context, patientID, requesterID uuid.UUID) ([]T, error) {
	if err := s.authorize(ctx, requesterID, patientID); err != nil {
		return nil, err
	}
	recs, err := s.repo.ListByOwner(ctx, patientID)
	return nonNil(recs), err
}

// GetForPatient is the delegated get-by-id entry point: authorize first,
// then fetch within the patient's owner scope.
func (s *Service[T]) GetForPatient(ctx context.Context, patientID, requesterID, recordID uuid.UUID) (T, error) {
	var zero T

	if err := s.authorize(ctx, requesterID, patientID); err != nil {
		return zero, err
	}
	return s.Get(ctx, recordID, patientID)
}

// Create persists a new record owned by ownerID. The owner comes from the
// authenticated principal, never from client input. The attachment, if any,
// is stored first and its path embedded in the record.
func (s *Service[T]) Create(ctx context.Context, ownerID uuid.UUID, rec T, upload *localfs.Upload) (T, error) {
	var zero T

	if upload != nil {
		path, err := s.files.Save(ownerID, s.kind, *upload)
		if err != nil {
			return zero, err
		}
		rec.SetDocumentPath(path)
	}

	rec.SetOwnerID(ownerID)
	if err := s.repo.Create(ctx, rec); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update overwrites all scalar fields; partial update is not supported.
// A new attachment replaces the previous one: the old blob is deleted before
// the new one is stored. The two steps are not transactional with the row
// update; a crash in between can orphan a blob, which is accepted.
func (s *Service[T]) Update(ctx context.Context, id, requesterID uuid.UUID, rec T, upload *localfs.Upload) (T, error) {
	var zero T

	existing, err := s.Get(ctx, id, requesterID)
	if err != nil {
		return zero, err
	}

	if upload != nil {
		if old := existing.GetDocumentPath(); old != "" {
			if err := s.files.Delete(old); err != nil {
				s.logger.Warn("failed to delete previous attachment",
					"kind", s.kind, "path", old, "error", err.Error())
			}
		}
		path, err := s.files.Save(existing.GetOwnerID(), s.kind, *upload)
		if err != nil {
			return zero, err
		}
		rec.SetDocumentPath(path)
	} else {
		rec.SetDocumentPath(existing.GetDocumentPath())
	}

	rec.SetID(existing.GetID())
	rec.SetOwnerID(existing.GetOwnerID())
	if err := s.repo.Update(ctx, rec); err != nil {
		return zero, err
	}

	return s.repo.Get(ctx, id)
}

// Delete removes the attachment (if present) and then the record.
func (s *Service[T]) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	existing, err := s.Get(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if path := existing.GetDocumentPath(); path != "" {
		if err := s.files.Delete(path); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}

// nonNil keeps empty listings serializing as [] rather than null.
func nonNil[T any](recs []T) []T {
	if recs == nil {
		return []T{}
	}
	return recs
}

func (s *Service[T]) authorize(ctx context.Context, requesterID, ownerID uuid.UUID) error {
	decision, err := s.authz.Authorize(ctx, requesterID, ownerID)
	if err != nil {
		return err
	}
	if !decision.Allowed() {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}
