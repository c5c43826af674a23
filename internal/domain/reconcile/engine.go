package reconcile

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrJustificationRequired  = errors.New("major shortage requires justification")
	ErrPeriodAlreadyClosed    = errors.New("period already closed for this subject")
	ErrToleranceNotConfigured = errors.New("tolerance is not configured")
	ErrInvalidPeriod          = errors.New("period end must be after period start")
)

type ToleranceKind string

const (
	ToleranceAbsolute ToleranceKind = "absolute" // для кассы
	TolerancePercent  ToleranceKind = "percent"  // процент от теоретического остатка (топливо)
)

type Tolerance struct {
	Kind  ToleranceKind
	Value decimal.Decimal
}

// Band — допустимое отклонение для данного теоретического остатка.
func (t Tolerance) Band(theoretical decimal.Decimal) (decimal.Decimal, error) {
	switch t.Kind {
	case ToleranceAbsolute:
		return t.Value.Abs(), nil
	case TolerancePercent:
		return theoretical.Abs().Mul(t.Value).Div(decimal.NewFromInt(100)), nil
	default:
		return decimal.Zero, ErrToleranceNotConfigured
	}
}

type Inputs struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Opening      decimal.Decimal
	Receipts     decimal.Decimal
	DerivedSales decimal.Decimal
	Observed     decimal.Decimal
}

// Compute: theoretical = opening + receipts - sales; variance = observed - theoretical.
func Compute(in Inputs) (theoretical, variance decimal.Decimal) {
	theoretical = in.Opening.Add(in.Receipts).Sub(in.DerivedSales)
	variance = in.Observed.Sub(theoretical)
	return theoretical, variance
}

func Classify(variance, band decimal.Decimal) Class {
	switch {
	case variance.IsZero():
		return ClassBalanced
	case variance.Abs().LessThanOrEqual(band):
		return ClassMinor
	default:
		return ClassMajor
	}
}

// Build собирает запись сверки. Крупная недостача без пояснения отклоняется;
// крупный излишек принимается, но помечается для проверки менеджером.
func Build(in Inputs, tol Tolerance, justification, reportedBy string) (*Record, error) {
	if !in.PeriodEnd.After(in.PeriodStart) {
		return nil, ErrInvalidPeriod
	}

	theoretical, variance := Compute(in)
	band, err := tol.Band(theoretical)
	if err != nil {
		return nil, err
	}
	class := Classify(variance, band)

	flagged := false
	if class == ClassMajor {
		if variance.IsNegative() {
			if justification == "" {
				return nil, ErrJustificationRequired
			}
		} else {
			flagged = true
		}
	}

	return &Record{
		PeriodStart:      in.PeriodStart,
		PeriodEnd:        in.PeriodEnd,
		Opening:          in.Opening,
		Receipts:         in.Receipts,
		DerivedSales:     in.DerivedSales,
		Theoretical:      theoretical,
		Observed:         in.Observed,
		Variance:         variance,
		Class:            class,
		Justification:    justification,
		FlaggedForReview: flagged,
		ReportedBy:       reportedBy,
	}, nil
}
