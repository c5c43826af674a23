package alerts

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/fuelstation/internal/domain/reconcile"
	"github.com/Spok95/fuelstation/internal/domain/stock"
)

func rec(class reconcile.Class, variance int64, flagged bool) *reconcile.Record {
	return &reconcile.Record{
		Class:            class,
		Variance:         decimal.NewFromInt(variance),
		FlaggedForReview: flagged,
	}
}

func TestProject(t *testing.T) {
	cases := []struct {
		name string
		st   stock.Status
		last *reconcile.Record
		want Severity
	}{
		{"ok no history", stock.StatusOK, nil, Nominal},
		{"ok balanced", stock.StatusOK, rec(reconcile.ClassBalanced, 0, false), Nominal},
		{"low stock", stock.StatusLow, nil, Watch},
		{"minor variance", stock.StatusOK, rec(reconcile.ClassMinor, -5, false), Watch},
		{"major surplus flagged", stock.StatusOK, rec(reconcile.ClassMajor, 500, true), Watch},
		{"critical stock", stock.StatusCritical, nil, Alert},
		{"major shortage", stock.StatusOK, rec(reconcile.ClassMajor, -10000, false), Alert},
		{"critical beats balanced history", stock.StatusCritical, rec(reconcile.ClassBalanced, 0, false), Alert},
		{"shortage beats low", stock.StatusLow, rec(reconcile.ClassMajor, -100, false), Alert},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, Project(c.st, c.last))
		})
	}
}
