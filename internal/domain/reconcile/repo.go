package reconcile

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const recordColumns = `
	id, stock_item_id, register_id, period_start, period_end,
	opening, receipts, derived_sales, theoretical, observed, variance,
	class, justification, flagged_for_review, reported_by, reported_at
`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	if err := row.Scan(
		&rec.ID, &rec.StockItemID, &rec.RegisterID, &rec.PeriodStart, &rec.PeriodEnd,
		&rec.Opening, &rec.Receipts, &rec.DerivedSales, &rec.Theoretical, &rec.Observed, &rec.Variance,
		&rec.Class, &rec.Justification, &rec.FlaggedForReview, &rec.ReportedBy, &rec.ReportedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func insertTx(ctx context.Context, tx pgx.Tx, rec Record) (*Record, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO reconciliations
			(stock_item_id, register_id, period_start, period_end,
			 opening, receipts, derived_sales, theoretical, observed, variance,
			 class, justification, flagged_for_review, reported_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING `+recordColumns+`
	`, rec.StockItemID, rec.RegisterID, rec.PeriodStart, rec.PeriodEnd,
		rec.Opening, rec.Receipts, rec.DerivedSales, rec.Theoretical, rec.Observed, rec.Variance,
		rec.Class, rec.Justification, rec.FlaggedForReview, rec.ReportedBy)

	created, err := scanRecord(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrPeriodAlreadyClosed
		}
		return nil, err
	}
	return created, nil
}

func (r *Repo) Insert(ctx context.Context, rec Record) (*Record, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created, err := insertTx(ctx, tx, rec)
	if err != nil {
		return nil, err
	}
	return created, tx.Commit(ctx)
}

// InsertCashClosing сохраняет запись сверки и разбивку кассы одной транзакцией.
func (r *Repo) InsertCashClosing(ctx context.Context, rec Record, c CashClosing) (*Record, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created, err := insertTx(ctx, tx, rec)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO cash_register_closings
			(reconciliation_id, register_id, shift_id, opening_float,
			 total_cash, total_card, total_mobile, other_receipts, disbursements)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, created.ID, c.RegisterID, c.ShiftID, c.OpeningFloat,
		c.TotalCash, c.TotalCard, c.TotalMobile, c.OtherReceipts, c.Disbursements); err != nil {
		return nil, err
	}

	return created, tx.Commit(ctx)
}

type HistoryFilter struct {
	StockItemID *int64
	RegisterID  *int64
	From        *time.Time
	To          *time.Time
}

func (r *Repo) History(ctx context.Context, f HistoryFilter) ([]Record, error) {
	q := `SELECT ` + recordColumns + ` FROM reconciliations WHERE TRUE`
	args := []any{}
	n := 0
	add := func(cond string, v any) {
		n++
		args = append(args, v)
		q += ` AND ` + cond + `$` + strconv.Itoa(n)
	}
	if f.StockItemID != nil {
		add(`stock_item_id = `, *f.StockItemID)
	}
	if f.RegisterID != nil {
		add(`register_id = `, *f.RegisterID)
	}
	if f.From != nil {
		add(`period_end >= `, *f.From)
	}
	if f.To != nil {
		add(`period_start <= `, *f.To)
	}
	q += ` ORDER BY period_end DESC, id DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// LatestForItem — последняя сверка по позиции (nil если сверок не было).
func (r *Repo) LatestForItem(ctx context.Context, stockItemID int64) (*Record, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+recordColumns+` FROM reconciliations
		WHERE stock_item_id = $1
		ORDER BY period_end DESC, id DESC
		LIMIT 1
	`, stockItemID)
	rec, err := scanRecord(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (r *Repo) GetRegister(ctx context.Context, id int64) (*CashRegister, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, tolerance_abs FROM cash_registers WHERE id=$1`, id)
	var reg CashRegister
	if err := row.Scan(&reg.ID, &reg.Name, &reg.ToleranceAbs); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &reg, nil
}
