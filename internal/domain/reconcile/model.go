package reconcile

import (
	"time"

	"github.com/shopspring/decimal"
)

type Class string

const (
	ClassBalanced Class = "balanced"
	ClassMinor    Class = "minor_variance"
	ClassMajor    Class = "major_variance"
)

// Record — итог закрытия периода: теоретический остаток против фактического.
// Запись неизменяемая; следующий период всегда открывается от Observed.
type Record struct {
	ID               int64
	StockItemID      *int64
	RegisterID       *int64
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Opening          decimal.Decimal
	Receipts         decimal.Decimal
	DerivedSales     decimal.Decimal
	Theoretical      decimal.Decimal
	Observed         decimal.Decimal
	Variance         decimal.Decimal
	Class            Class
	Justification    string
	FlaggedForReview bool // крупный излишек: принят, но требует проверки
	ReportedBy       string
	ReportedAt       time.Time
}

type CashRegister struct {
	ID           int64
	Name         string
	ToleranceAbs decimal.Decimal
}

// CashClosing — разбивка закрытия кассы по способам оплаты.
type CashClosing struct {
	ID               int64
	ReconciliationID int64
	RegisterID       int64
	ShiftID          string
	OpeningFloat     decimal.Decimal
	TotalCash        decimal.Decimal
	TotalCard        decimal.Decimal
	TotalMobile      decimal.Decimal
	OtherReceipts    decimal.Decimal
	Disbursements    decimal.Decimal
}

// TheoreticalTotal = float + cash + card + mobile + other - disbursements
func (c CashClosing) TheoreticalTotal() decimal.Decimal {
	return c.OpeningFloat.
		Add(c.TotalCash).
		Add(c.TotalCard).
		Add(c.TotalMobile).
		Add(c.OtherReceipts).
		Sub(c.Disbursements)
}
