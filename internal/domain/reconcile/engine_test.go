package reconcile

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func period() (time.Time, time.Time) {
	start := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)
	return start, start.Add(8 * time.Hour)
}

func TestCompute(t *testing.T) {
	theoretical, variance := Compute(Inputs{
		Opening:      d(1000),
		Receipts:     d(500),
		DerivedSales: d(300),
		Observed:     d(1190),
	})
	require.True(t, theoretical.Equal(d(1200)))
	require.True(t, variance.Equal(d(-10)))
}

// Касса: фонд 50000, нал 350000, карты 200000, мобильные 150000, выплаты 10000
// -> теоретически 740000; факт 739500 -> расхождение -500, допуск 1000 -> Minor.
func TestBuild_CashMinorVariance(t *testing.T) {
	start, end := period()
	rec, err := Build(Inputs{
		PeriodStart:  start,
		PeriodEnd:    end,
		Opening:      d(50000),
		Receipts:     d(700000), // 350000+200000+150000
		DerivedSales: d(10000),
		Observed:     d(739500),
	}, Tolerance{Kind: ToleranceAbsolute, Value: d(1000)}, "", "cashier-7")
	require.NoError(t, err)

	require.True(t, rec.Theoretical.Equal(d(740000)))
	require.True(t, rec.Variance.Equal(d(-500)))
	require.Equal(t, ClassMinor, rec.Class)
	require.NotEqual(t, ClassBalanced, rec.Class)
	require.False(t, rec.FlaggedForReview)
}

// Та же касса, факт 730000 -> расхождение -10000 -> Major, без пояснения закрытие отклоняется.
func TestBuild_CashMajorShortageNeedsJustification(t *testing.T) {
	start, end := period()
	in := Inputs{
		PeriodStart:  start,
		PeriodEnd:    end,
		Opening:      d(50000),
		Receipts:     d(700000),
		DerivedSales: d(10000),
		Observed:     d(730000),
	}
	tol := Tolerance{Kind: ToleranceAbsolute, Value: d(1000)}

	_, err := Build(in, tol, "", "cashier-7")
	require.ErrorIs(t, err, ErrJustificationRequired)

	// повтор с пояснением проходит
	rec, err := Build(in, tol, "undocumented refund", "cashier-7")
	require.NoError(t, err)
	require.Equal(t, ClassMajor, rec.Class)
	require.True(t, rec.Variance.Equal(d(-10000)))
	require.False(t, rec.FlaggedForReview)
}

func TestBuild_MajorSurplusFlaggedButAccepted(t *testing.T) {
	start, end := period()
	rec, err := Build(Inputs{
		PeriodStart: start, PeriodEnd: end,
		Opening: d(1000), Receipts: d(0), DerivedSales: d(0),
		Observed: d(1500),
	}, Tolerance{Kind: ToleranceAbsolute, Value: d(100)}, "", "mgr-1")
	require.NoError(t, err)
	require.Equal(t, ClassMajor, rec.Class)
	require.True(t, rec.FlaggedForReview)
}

func TestBuild_Balanced(t *testing.T) {
	start, end := period()
	rec, err := Build(Inputs{
		PeriodStart: start, PeriodEnd: end,
		Opening: d(1000), Receipts: d(200), DerivedSales: d(300),
		Observed: d(900),
	}, Tolerance{Kind: ToleranceAbsolute, Value: d(50)}, "", "op-1")
	require.NoError(t, err)
	require.Equal(t, ClassBalanced, rec.Class)
	require.True(t, rec.Variance.IsZero())
}

// Топливо: допуск 0.5% от теоретического остатка.
func TestTolerance_PercentBand(t *testing.T) {
	tol := Tolerance{Kind: TolerancePercent, Value: decimal.NewFromFloat(0.5)}

	band, err := tol.Band(d(12000))
	require.NoError(t, err)
	require.True(t, band.Equal(d(60)))

	require.Equal(t, ClassMinor, Classify(d(-60), band))
	require.Equal(t, ClassMajor, Classify(d(-61), band))
}

func TestBuild_ToleranceRequired(t *testing.T) {
	start, end := period()
	_, err := Build(Inputs{PeriodStart: start, PeriodEnd: end, Observed: d(10)}, Tolerance{}, "", "op")
	require.ErrorIs(t, err, ErrToleranceNotConfigured)
}

func TestBuild_InvalidPeriod(t *testing.T) {
	start, _ := period()
	_, err := Build(Inputs{PeriodStart: start, PeriodEnd: start}, Tolerance{Kind: ToleranceAbsolute, Value: d(1)}, "", "op")
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestCashClosingTheoreticalTotal(t *testing.T) {
	c := CashClosing{
		OpeningFloat:  d(50000),
		TotalCash:     d(350000),
		TotalCard:     d(200000),
		TotalMobile:   d(150000),
		OtherReceipts: d(0),
		Disbursements: d(10000),
	}
	require.True(t, c.TheoreticalTotal().Equal(d(740000)))
}
