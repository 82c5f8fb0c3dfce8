package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
)

func NewAppointmentRepository(db *sqlx.DB) repository.RecordRepository[*model.Appointment] {
	return &recordRepo[model.Appointment, *model.Appointment]{
		db: db,
		sql: recordSQL{
			table:     "appointments",
			searchCol: "title",
			dateCol:   "appointment_date",
			insert: `
				INSERT INTO appointments (
					id, owner_id, title, appointment_date, doctor_name,
					complaints, procedure_description, diagnosis,
					document_path, created_at, updated_at
				) VALUES (
					:id, :owner_id, :title, :appointment_date, :doctor_name,
					:complaints, :procedure_description, :diagnosis,
					:document_path, :created_at, :updated_at
				)`,
			update: `
				UPDATE appointments SET
					title = :title,
					appointment_date = :appointment_date,
					doctor_name = :doctor_name,
					complaints = :complaints,
					procedure_description = :procedure_description,
					diagnosis = :diagnosis,
					document_path = :document_path,
					updated_at = :updated_at
				WHERE id = :id`,
		},
	}
}
