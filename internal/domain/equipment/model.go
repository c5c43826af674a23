package equipment

import "time"

type FuelType struct {
	ID   int64
	Name string
	Unit string // литры и т.п.
}

type TankStatus string

const (
	TankOperational  TankStatus = "operational"
	TankMaintenance  TankStatus = "maintenance"
	TankOutOfService TankStatus = "out_of_service"
)

type Tank struct {
	ID              int64
	FuelTypeID      int64
	FuelName        string // имя топлива (для отображения)
	CapacityMax     float64
	LowThreshold    float64
	SafetyThreshold float64
	CurrentLevel    float64
	Status          TankStatus
	Retired         bool
	CreatedAt       time.Time
}

type PumpStatus string

const (
	PumpActive      PumpStatus = "active"
	PumpInactive    PumpStatus = "inactive"
	PumpMaintenance PumpStatus = "maintenance"
)

type Pump struct {
	ID            int64
	Name          string
	Status        PumpStatus
	Distributions []Distribution
}

// Distribution — пистолет: связка колонка -> (топливо, цистерна)
type Distribution struct {
	ID         int64
	PumpID     int64
	FuelTypeID int64
	TankID     int64
}
