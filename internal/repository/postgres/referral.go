package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
)

func NewReferralRepository(db *sqlx.DB) repository.RecordRepository[*model.Referral] {
	return &recordRepo[model.Referral, *model.Referral]{
		db: db,
		sql: recordSQL{
			table:     "referrals",
			searchCol: "title",
			dateCol:   "issue_date",
			insert: `
				INSERT INTO referrals (
					id, owner_id, title, issue_date, expiration_date,
					referral_type, referral_number, document_path,
					created_at, updated_at
				) VALUES (
					:id, :owner_id, :title, :issue_date, :expiration_date,
					:referral_type, :referral_number, :document_path,
					:created_at, :updated_at
				)`,
			update: `
				UPDATE referrals SET
					title = :title,
					issue_date = :issue_date,
					expiration_date = :expiration_date,
					referral_type = :referral_type,
					referral_number = :referral_number,
					document_path = :document_path,
					updated_at = :updated_at
				WHERE id = :id`,
		},
	}
}
