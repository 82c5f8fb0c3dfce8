package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
)

type accessRepository struct {
	db *sqlx.DB
}

func NewAccessRepository(db *sqlx.DB) repository.AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) Create(ctx context.Context, grant *model.DoctorAccess) error {
	query := `
		INSERT INTO doctor_access (id, patient_id, doctor_id, granted_at)
		VALUES ($1, $2, $3, $4)
	`
	if grant.ID == uuid.Nil {
		grant.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query, grant.ID, grant.PatientID, grant.DoctorID, grant.GrantedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return apperrors.DuplicateGrant("doctor already has access")
		}
		return fmt.Errorf("failed to create access grant: %w", err)
	}
	return nil
}

func (r *accessRepository) Exists(ctx context.Context, patientID, doctorID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM doctor_access WHERE patient_id = $1 AND doctor_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, patientID, doctorID); err != nil {
		return false, fmt.Errorf("failed to check access grant: %w", err)
	}
	return exists, nil
}

func (r *accessRepository) Delete(ctx context.Context, patientID, doctorID uuid.UUID) error {
	query := `DELETE FROM doctor_access WHERE patient_id = $1 AND doctor_id = $2`

	res, err := r.db.ExecContext(ctx, query, patientID, doctorID)
	if err != nil {
		return fmt.Errorf("failed to delete access grant: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("access grant", nil)
	}
	return nil
}

func (r *accessRepository) ListDoctorsForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.User, error) {
	query := `
		SELECT u.* FROM users u
		JOIN doctor_access da ON da.doctor_id = u.id
		WHERE da.patient_id = $1
		ORDER BY da.granted_at DESC
	`
	doctors := []*model.User{}
	if err := r.db.SelectContext(ctx, &doctors, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list doctors with access: %w", err)
	}
	return doctors, nil
}

func (r *accessRepository) ListPatientsForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*model.User, error) {
	query := `
		SELECT u.* FROM users u
		JOIN doctor_access da ON da.patient_id = u.id
		WHERE da.doctor_id = $1
		ORDER BY da.granted_at DESC
	`
	patients := []*model.User{}
	if err := r.db.SelectContext(ctx, &patients, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list patients for doctor: %w", err)
	}
	return patients, nil
}
