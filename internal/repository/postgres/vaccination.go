package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
)

func NewVaccinationRepository(db *sqlx.DB) repository.RecordRepository[*model.Vaccination] {
	return &recordRepo[model.Vaccination, *model.Vaccination]{
		db: db,
		sql: recordSQL{
			table:     "vaccinations",
			searchCol: "vaccine_name",
			dateCol:   "vaccination_date",
			insert: `
				INSERT INTO vaccinations (
					id, owner_id, vaccine_name, vaccination_date,
					manufacturer, dose_number, document_path,
					created_at, updated_at
				) VALUES (
					:id, :owner_id, :vaccine_name, :vaccination_date,
					:manufacturer, :dose_number, :document_path,
					:created_at, :updated_at
				)`,
			update: `
				UPDATE vaccinations SET
					vaccine_name = :vaccine_name,
					vaccination_date = :vaccination_date,
					manufacturer = :manufacturer,
					dose_number = :dose_number,
					document_path = :document_path,
					updated_at = :updated_at
				WHERE id = :id`,
		},
	}
}
