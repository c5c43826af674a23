package alerts

import (
	"github.com/Spok95/fuelstation/internal/domain/reconcile"
	"github.com/Spok95/fuelstation/internal/domain/stock"
)

type Severity string

const (
	Nominal Severity = "nominal"
	Watch   Severity = "watch"
	Alert   Severity = "alert"
)

// Project — чистая проекция состояния в уровень для бейджей.
// Critical остаток либо неразобранная крупная недостача поднимают Alert.
// Состояния эта функция не держит, пересчитывается на каждый запрос.
func Project(st stock.Status, last *reconcile.Record) Severity {
	if st == stock.StatusCritical {
		return Alert
	}
	if last != nil && last.Class == reconcile.ClassMajor && last.Variance.IsNegative() {
		return Alert
	}

	if st == stock.StatusLow {
		return Watch
	}
	if last != nil {
		if last.Class == reconcile.ClassMinor || last.FlaggedForReview {
			return Watch
		}
	}
	return Nominal
}
