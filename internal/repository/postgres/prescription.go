package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
)

func NewPrescriptionRepository(db *sqlx.DB) repository.RecordRepository[*model.Prescription] {
	return &recordRepo[model.Prescription, *model.Prescription]{
		db: db,
		sql: recordSQL{
			table:     "prescriptions",
			searchCol: "medication_name",
			dateCol:   "issue_date",
			insert: `
				INSERT INTO prescriptions (
					id, owner_id, medication_name, issue_date, dosage,
					instructions, document_path, created_at, updated_at
				) VALUES (
					:id, :owner_id, :medication_name, :issue_date, :dosage,
					:instructions, :document_path, :created_at, :updated_at
				)`,
			update: `
				UPDATE prescriptions SET
					medication_name = :medication_name,
					issue_date = :issue_date,
					dosage = :dosage,
					instructions = :instructions,
					document_path = :document_path,
					updated_at = :updated_at
				WHERE id = :id`,
		},
	}
}
