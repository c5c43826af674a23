package equipment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Справочник топлива */

func (r *Repo) CreateFuelType(ctx context.Context, name, unit string) (*FuelType, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO fuel_types (name, unit) VALUES ($1,$2)
		RETURNING id, name, unit
	`, name, unit)
	var ft FuelType
	if err := row.Scan(&ft.ID, &ft.Name, &ft.Unit); err != nil {
		return nil, err
	}
	return &ft, nil
}

func (r *Repo) GetFuelType(ctx context.Context, id int64) (*FuelType, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, unit FROM fuel_types WHERE id=$1`, id)
	var ft FuelType
	if err := row.Scan(&ft.ID, &ft.Name, &ft.Unit); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &ft, nil
}

func (r *Repo) ListFuelTypes(ctx context.Context) ([]FuelType, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, unit FROM fuel_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FuelType
	for rows.Next() {
		var ft FuelType
		if err := rows.Scan(&ft.ID, &ft.Name, &ft.Unit); err != nil {
			return nil, err
		}
		out = append(out, ft)
	}
	return out, rows.Err()
}

/* Цистерны */

func (r *Repo) CreateTank(ctx context.Context, fuelTypeID int64, capacity, low, safety, level float64) (*Tank, error) {
	if err := ValidateThresholds(capacity, low, safety); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tanks (fuel_type_id, capacity_max, low_threshold, safety_threshold, current_level, status)
		VALUES ($1,$2,$3,$4,$5,'operational')
		RETURNING id, fuel_type_id, capacity_max, low_threshold, safety_threshold, current_level, status, retired, created_at
	`, fuelTypeID, capacity, low, safety, level)
	return scanTank(row)
}

func (r *Repo) GetTank(ctx context.Context, id int64) (*Tank, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT t.id, t.fuel_type_id, t.capacity_max, t.low_threshold, t.safety_threshold,
		       t.current_level, t.status, t.retired, t.created_at, COALESCE(f.name,'')
		FROM tanks t
		LEFT JOIN fuel_types f ON f.id = t.fuel_type_id
		WHERE t.id = $1
	`, id)
	var t Tank
	if err := row.Scan(
		&t.ID, &t.FuelTypeID, &t.CapacityMax, &t.LowThreshold, &t.SafetyThreshold,
		&t.CurrentLevel, &t.Status, &t.Retired, &t.CreatedAt, &t.FuelName,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repo) ListTanks(ctx context.Context, includeRetired bool) ([]Tank, error) {
	q := `
		SELECT t.id, t.fuel_type_id, t.capacity_max, t.low_threshold, t.safety_threshold,
		       t.current_level, t.status, t.retired, t.created_at, COALESCE(f.name,'')
		FROM tanks t
		LEFT JOIN fuel_types f ON f.id = t.fuel_type_id
	`
	if !includeRetired {
		q += ` WHERE NOT t.retired`
	}
	q += ` ORDER BY t.id`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tank
	for rows.Next() {
		var t Tank
		if err := rows.Scan(
			&t.ID, &t.FuelTypeID, &t.CapacityMax, &t.LowThreshold, &t.SafetyThreshold,
			&t.CurrentLevel, &t.Status, &t.Retired, &t.CreatedAt, &t.FuelName,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repo) SetTankStatus(ctx context.Context, id int64, status TankStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE tanks SET status=$2 WHERE id=$1`, id, string(status))
	return err
}

// RetireTank — мягкое выведение из эксплуатации: история показаний остаётся.
func (r *Repo) RetireTank(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE tanks SET retired=TRUE, status='out_of_service' WHERE id=$1`, id)
	return err
}

/* Колонки и пистолеты */

func (r *Repo) CreatePump(ctx context.Context, name string) (*Pump, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO pumps (name, status) VALUES ($1,'active')
		RETURNING id, name, status
	`, name)
	var p Pump
	if err := row.Scan(&p.ID, &p.Name, &p.Status); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SetPumpStatus(ctx context.Context, id int64, status PumpStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE pumps SET status=$2 WHERE id=$1`, id, string(status))
	return err
}

// AddDistribution проверяет совпадение типа топлива пистолета и цистерны.
func (r *Repo) AddDistribution(ctx context.Context, d Distribution) (*Distribution, error) {
	tank, err := r.GetTank(ctx, d.TankID)
	if err != nil {
		return nil, err
	}
	if tank == nil {
		return nil, pgx.ErrNoRows
	}
	if err := ValidateDistribution(d, *tank); err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO distributions (pump_id, fuel_type_id, tank_id)
		VALUES ($1,$2,$3)
		RETURNING id, pump_id, fuel_type_id, tank_id
	`, d.PumpID, d.FuelTypeID, d.TankID)
	var out Distribution
	if err := row.Scan(&out.ID, &out.PumpID, &out.FuelTypeID, &out.TankID); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) GetDistribution(ctx context.Context, id int64) (*Distribution, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, pump_id, fuel_type_id, tank_id FROM distributions WHERE id=$1
	`, id)
	var d Distribution
	if err := row.Scan(&d.ID, &d.PumpID, &d.FuelTypeID, &d.TankID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// ResolveTank возвращает цистерну, к которой привязан пистолет (nil если не найден).
func (r *Repo) ResolveTank(ctx context.Context, distributionID int64) (*Tank, error) {
	d, err := r.GetDistribution(ctx, distributionID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return r.GetTank(ctx, d.TankID)
}

// ResolveFuelType возвращает тип топлива цистерны (nil если цистерна не найдена).
func (r *Repo) ResolveFuelType(ctx context.Context, tankID int64) (*FuelType, error) {
	t, err := r.GetTank(ctx, tankID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return r.GetFuelType(ctx, t.FuelTypeID)
}

func (r *Repo) ListPumps(ctx context.Context) ([]Pump, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, status FROM pumps ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Pump
	for rows.Next() {
		var p Pump
		if err := rows.Scan(&p.ID, &p.Name, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		ds, err := r.listDistributions(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Distributions = ds
	}
	return out, nil
}

func (r *Repo) listDistributions(ctx context.Context, pumpID int64) ([]Distribution, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, pump_id, fuel_type_id, tank_id FROM distributions WHERE pump_id=$1 ORDER BY id
	`, pumpID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Distribution
	for rows.Next() {
		var d Distribution
		if err := rows.Scan(&d.ID, &d.PumpID, &d.FuelTypeID, &d.TankID); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanTank(row pgx.Row) (*Tank, error) {
	var t Tank
	if err := row.Scan(
		&t.ID, &t.FuelTypeID, &t.CapacityMax, &t.LowThreshold, &t.SafetyThreshold,
		&t.CurrentLevel, &t.Status, &t.Retired, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
