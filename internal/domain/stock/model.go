package stock

import "time"

type Kind string

const (
	KindFuel Kind = "fuel"
	KindShop Kind = "shop_product"
)

type ToleranceKind string

const (
	ToleranceAbsolute ToleranceKind = "absolute"
	TolerancePercent  ToleranceKind = "percent"
)

type Item struct {
	ID                int64
	Kind              Kind
	Name              string
	Unit              string
	QuantityOnHand    float64
	LowThreshold      float64
	CriticalThreshold float64
	UnitSalePrice     float64
	CapacityMax       *float64 // задан для топлива
	TankID            *int64   // топливная позиция зеркалит цистерну
	ToleranceKind     ToleranceKind
	ToleranceValue    float64
	CreatedAt         time.Time
}

type MoveType string

const (
	MoveSale    MoveType = "sale"
	MoveReceipt MoveType = "receipt"
)

// Movement — неизменяемая запись движения остатка.
type Movement struct {
	ID          int64
	StockItemID int64
	Qty         float64 // дельта: <0 продажа, >0 приход
	Type        MoveType
	Shortfall   bool // продажа увела остаток ниже нуля
	ReadingID   *int64
	Note        string
	CreatedAt   time.Time
}
