package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
)

func NewCertificateRepository(db *sqlx.DB) repository.RecordRepository[*model.Certificate] {
	return &recordRepo[model.Certificate, *model.Certificate]{
		db: db,
		sql: recordSQL{
			table:     "certificates",
			searchCol: "title",
			dateCol:   "issue_date",
			insert: `
				INSERT INTO certificates (
					id, owner_id, title, issue_date, description,
					document_path, created_at, updated_at
				) VALUES (
					:id, :owner_id, :title, :issue_date, :description,
					:document_path, :created_at, :updated_at
				)`,
			update: `
				UPDATE certificates SET
					title = :title,
					issue_date = :issue_date,
					description = :description,
					document_path = :document_path,
					updated_at = :updated_at
				WHERE id = :id`,
		},
	}
}
