package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/medarchive-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccessRepository is the sole owner of grant rows.
type AccessRepository interface {
	Create(ctx context.Context, grant *model.DoctorAccess) error
	Exists(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error)
	Delete(ctx context.Context, patientID, doctorID uuid.UUID) error
	ListDoctorsForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.User, error)
	ListPatientsForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.User, error)
}

// RecordRepository persists one kind of owned record. All list operations
// are scoped to a single owner id; cross-owner reads happen only through
// the access-control gate in the service layer.
type RecordRepository[T model.OwnedRecord] interface {
	Create(ctx context.Context, rec T) error
	Get(ctx context.Context, id uuid.UUID) (T, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]T, error)
	Search(ctx context.Context, ownerID uuid.UUID, term string) ([]T, error)
	ListByDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]T, error)
	Update(ctx context.Context, rec T) error
	Delete(ctx context.Context, id uuid.UUID) error
}
