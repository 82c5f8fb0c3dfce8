package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/medarchive-api/internal/model"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
)

// recordPtr ties the value type to its pointer implementation of
// model.OwnedRecord, so the repository can allocate rows for scanning.
type recordPtr[T any] interface {
	*T
	model.OwnedRecord
}

// recordSQL holds the kind-specific pieces of the otherwise uniform queries.
// insert and update are sqlx named queries bound against the record struct.
type recordSQL struct {
	table     string
	searchCol string
	dateCol   string
	insert    string
	update    string
}

// recordRepo is the single generic record repository; each record kind
// supplies its recordSQL through a typed constructor.
type recordRepo[T any, P recordPtr[T]] struct {
	db  *sqlx.DB
	sql recordSQL
}

func (r *recordRepo[T, P]) Create(ctx context.Context, rec P) error {
	if rec.GetID() == uuid.Nil {
		rec.SetID(uuid.New())
	}
	rec.TouchCreate(time.Now())

	if _, err := r.db.NamedExecContext(ctx, r.sql.insert, rec); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.sql.table, err)
	}
	return nil
}

func (r *recordRepo[T, P]) Get(ctx context.Context, id uuid.UUID) (P, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE id = $1`, r.sql.table)

	var rec T
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("record", err)
		}
		return nil, fmt.Errorf("failed to get from %s: %w", r.sql.table, err)
	}
	return &rec, nil
}

func (r *recordRepo[T, P]) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]P, error) {
	query := fmt.Sprintf(
		`SELECT * FROM %s WHERE owner_id = $1 ORDER BY %s DESC`,
		r.sql.table, r.sql.dateCol,
	)

	recs := []P{}
	if err := r.db.SelectContext(ctx, &recs, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.sql.table, err)
	}
	return recs, nil
}

func (r *recordRepo[T, P]) Search(ctx context.Context, ownerID uuid.UUID, term string) ([]P, error) {
	query := fmt.Sprintf(
		`SELECT * FROM %s WHERE owner_id = $1 AND %s ILIKE '%%' || $2 || '%%' ORDER BY %s DESC`,
		r.sql.table, r.sql.searchCol, r.sql.dateCol,
	)

	recs := []P{}
	if err := r.db.SelectContext(ctx, &recs, query, ownerID, term); err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", r.sql.table, err)
	}
	return recs, nil
}

func (r *recordRepo[T, P]) ListByDateRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]P, error) {
	query := fmt.Sprintf(
		`SELECT * FROM %s WHERE owner_id = $1 AND %s BETWEEN $2 AND $3 ORDER BY %s DESC`,
		r.sql.table, r.sql.dateCol, r.sql.dateCol,
	)

	recs := []P{}
	if err := r.db.SelectContext(ctx, &recs, query, ownerID, start, end); err != nil {
		return nil, fmt.Errorf("failed to list %s by date range: %w", r.sql.table, err)
	}
	return recs, nil
}

func (r *recordRepo[T, P]) Update(ctx context.Context, rec P) error {
	rec.TouchUpdate(time.Now())

	if _, err := r.db.NamedExecContext(ctx, r.sql.update, rec); err != nil {
		return fmt.Errorf("failed to update %s: %w", r.sql.table, err)
	}
	return nil
}

func (r *recordRepo[T, P]) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.sql.table)
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.sql.table, err)
	}
	return nil
}
