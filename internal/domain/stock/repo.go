package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrOverCapacity = errors.New("receipt exceeds tank capacity")

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const itemColumns = `
	id, kind, name, unit, qty, low_threshold, critical_threshold,
	unit_sale_price, capacity_max, tank_id, tolerance_kind, tolerance_value, created_at
`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	var tolKind *string
	if err := row.Scan(
		&it.ID, &it.Kind, &it.Name, &it.Unit, &it.QuantityOnHand,
		&it.LowThreshold, &it.CriticalThreshold, &it.UnitSalePrice,
		&it.CapacityMax, &it.TankID, &tolKind, &it.ToleranceValue, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	if tolKind != nil {
		it.ToleranceKind = ToleranceKind(*tolKind)
	}
	return &it, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM stock_items WHERE id=$1`, id)
	it, err := scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return it, err
}

func (r *Repo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM stock_items ORDER BY kind, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

// GetByTank возвращает топливную позицию, зеркалящую цистерну.
func (r *Repo) GetByTank(ctx context.Context, tankID int64) (*Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM stock_items WHERE tank_id=$1`, tankID)
	it, err := scanItem(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return it, err
}

func (r *Repo) Create(ctx context.Context, it Item) (*Item, error) {
	if it.CriticalThreshold > it.LowThreshold {
		return nil, fmt.Errorf("critical threshold %v above low threshold %v", it.CriticalThreshold, it.LowThreshold)
	}
	var tolKind *string
	if it.ToleranceKind != "" {
		s := string(it.ToleranceKind)
		tolKind = &s
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO stock_items
			(kind, name, unit, qty, low_threshold, critical_threshold,
			 unit_sale_price, capacity_max, tank_id, tolerance_kind, tolerance_value)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING `+itemColumns+`
	`, it.Kind, it.Name, it.Unit, it.QuantityOnHand, it.LowThreshold, it.CriticalThreshold,
		it.UnitSalePrice, it.CapacityMax, it.TankID, tolKind, it.ToleranceValue)
	return scanItem(row)
}

// ApplySaleTx списывает количество внутри переданной транзакции.
// Остаток блокируется FOR UPDATE; уход ниже нуля не блокирует продажу,
// а помечается shortfall на движении.
func ApplySaleTx(ctx context.Context, tx pgx.Tx, itemID int64, qty float64, readingID *int64, note string) (shortfall bool, err error) {
	if qty <= 0 {
		return false, fmt.Errorf("qty must be > 0")
	}

	var current float64
	var tankID *int64
	if err := tx.QueryRow(ctx, `
		SELECT qty, tank_id FROM stock_items WHERE id=$1 FOR UPDATE
	`, itemID).Scan(&current, &tankID); err != nil {
		return false, err
	}

	next := current - qty
	shortfall = next < 0

	if _, err := tx.Exec(ctx, `UPDATE stock_items SET qty=$2 WHERE id=$1`, itemID, next); err != nil {
		return false, err
	}
	if tankID != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE tanks SET current_level = GREATEST(current_level - $2, 0) WHERE id=$1
		`, *tankID, qty); err != nil {
			return false, err
		}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (stock_item_id, qty, type, shortfall, reading_id, note)
		VALUES ($1,$2,'sale',$3,$4,$5)
	`, itemID, -qty, shortfall, readingID, note); err != nil {
		return false, err
	}
	return shortfall, nil
}

// ApplyReceipt приходует поставку. Превышение вместимости цистерны отклоняется
// целиком, состояние не меняется.
func (r *Repo) ApplyReceipt(ctx context.Context, itemID int64, qty float64, note string) error {
	if qty <= 0 {
		return fmt.Errorf("qty must be > 0")
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current float64
	var capacity *float64
	var tankID *int64
	if err := tx.QueryRow(ctx, `
		SELECT qty, capacity_max, tank_id FROM stock_items WHERE id=$1 FOR UPDATE
	`, itemID).Scan(&current, &capacity, &tankID); err != nil {
		return err
	}

	next := current + qty
	if capacity != nil && next > *capacity {
		return ErrOverCapacity
	}

	if _, err := tx.Exec(ctx, `UPDATE stock_items SET qty=$2 WHERE id=$1`, itemID, next); err != nil {
		return err
	}
	if tankID != nil {
		// после shortfall qty может быть ниже уровня цистерны,
		// зеркало держится в пределах [0, capacity_max]
		if _, err := tx.Exec(ctx, `
			UPDATE tanks SET current_level = LEAST(current_level + $2, capacity_max) WHERE id=$1
		`, *tankID, qty); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (stock_item_id, qty, type, note)
		VALUES ($1,$2,'receipt',$3)
	`, itemID, qty, note); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// SumMovements возвращает (приходы, продажи) за период — для сверки.
func (r *Repo) SumMovements(ctx context.Context, itemID int64, from, to time.Time) (receipts, sales float64, err error) {
	row := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(qty) FILTER (WHERE qty > 0), 0),
			COALESCE(-SUM(qty) FILTER (WHERE qty < 0), 0)
		FROM stock_movements
		WHERE stock_item_id=$1 AND created_at >= $2 AND created_at < $3
	`, itemID, from, to)
	err = row.Scan(&receipts, &sales)
	return receipts, sales, err
}
