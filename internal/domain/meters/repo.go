package meters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/fuelstation/internal/domain/stock"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const readingColumns = `
	id, distribution_id, shift_id, index_start, index_fin,
	recorded_at, operator_id, notes, continuity_break, supersedes_id
`

func scanReading(row pgx.Row) (*Reading, error) {
	var m Reading
	if err := row.Scan(
		&m.ID, &m.DistributionID, &m.ShiftID, &m.IndexStart, &m.IndexFin,
		&m.RecordedAt, &m.OperatorID, &m.Notes, &m.ContinuityBreak, &m.SupersedesID,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*Reading, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+readingColumns+` FROM meter_readings WHERE id=$1`, id)
	m, err := scanReading(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return m, err
}

// LastReading — последнее действующее показание по пистолету
// (заменённые показания в цепочке непрерывности не участвуют).
func (r *Repo) LastReading(ctx context.Context, distributionID int64) (*Reading, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+readingColumns+`
		FROM meter_readings m
		WHERE m.distribution_id = $1
		  AND NOT EXISTS (SELECT 1 FROM meter_readings s WHERE s.supersedes_id = m.id)
		ORDER BY m.recorded_at DESC, m.id DESC
		LIMIT 1
	`, distributionID)
	m, err := scanReading(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return m, err
}

// Create записывает показание и в той же транзакции списывает производную
// продажу с остатка: либо оба изменения фиксируются, либо оба откатываются.
func (r *Repo) Create(ctx context.Context, m Reading, stockItemID int64) (*Reading, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO meter_readings
			(distribution_id, shift_id, index_start, index_fin, operator_id, notes, continuity_break, supersedes_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+readingColumns+`
	`, m.DistributionID, m.ShiftID, m.IndexStart, m.IndexFin, m.OperatorID, m.Notes, m.ContinuityBreak, m.SupersedesID)

	created, err := scanReading(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, false, ErrDuplicateReading
		}
		return nil, false, err
	}

	shortfall, err := stock.ApplySaleTx(ctx, tx, stockItemID, created.VolumeSold(), &created.ID, "meter reading")
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return created, shortfall, nil
}

// Supersede добавляет исправляющее показание и применяет к остатку только
// разницу объёмов между новым и исходным показанием. Исправленное показание
// нельзя исправить повторно, иначе дельта применилась бы дважды.
func (r *Repo) Supersede(ctx context.Context, original Reading, m Reading, stockItemID int64) (*Reading, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO meter_readings
			(distribution_id, shift_id, index_start, index_fin, operator_id, notes, continuity_break, supersedes_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+readingColumns+`
	`, m.DistributionID, m.ShiftID, m.IndexStart, m.IndexFin, m.OperatorID, m.Notes, m.ContinuityBreak, original.ID)

	created, err := scanReading(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrReadingSuperseded
		}
		return nil, err
	}

	delta := created.VolumeSold() - original.VolumeSold()
	switch {
	case delta > 0:
		if _, err := stock.ApplySaleTx(ctx, tx, stockItemID, delta, &created.ID, "reading correction"); err != nil {
			return nil, err
		}
	case delta < 0:
		// возврат объёма на остаток
		if _, err := tx.Exec(ctx, `UPDATE stock_items SET qty = qty + $2 WHERE id=$1`, stockItemID, -delta); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE tanks SET current_level = current_level + $2
			FROM stock_items si
			WHERE si.id = $1 AND tanks.id = si.tank_id
		`, stockItemID, -delta); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO stock_movements (stock_item_id, qty, type, reading_id, note)
			VALUES ($1,$2,'receipt',$3,'reading correction')
		`, stockItemID, -delta, created.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repo) ListByShift(ctx context.Context, shiftID string) ([]Reading, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+readingColumns+` FROM meter_readings WHERE shift_id=$1 ORDER BY recorded_at
	`, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reading
	for rows.Next() {
		m, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
