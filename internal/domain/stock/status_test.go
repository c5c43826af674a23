package stock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	const low, critical = 4000.0, 3000.0

	require.Equal(t, StatusOK, StatusOf(20000, low, critical))
	require.Equal(t, StatusOK, StatusOf(4000.1, low, critical))

	// границы закрыты на порогах
	require.Equal(t, StatusLow, StatusOf(4000, low, critical))
	require.Equal(t, StatusLow, StatusOf(3500, low, critical))
	require.Equal(t, StatusLow, StatusOf(3000.001, low, critical))
	require.Equal(t, StatusCritical, StatusOf(3000, low, critical))
	require.Equal(t, StatusCritical, StatusOf(0, low, critical))
	require.Equal(t, StatusCritical, StatusOf(-10, low, critical))
}

// Сценарий: цистерна 20000 л, пороги 4000/3000, остаток 3500 -> Low;
// после продажи 600 л остаток 2900 -> Critical.
func TestStatusOf_SaleCrossesCritical(t *testing.T) {
	item := Item{QuantityOnHand: 3500, LowThreshold: 4000, CriticalThreshold: 3000}
	require.Equal(t, StatusLow, item.Status())

	item.QuantityOnHand -= 600
	require.Equal(t, 2900.0, item.QuantityOnHand)
	require.Equal(t, StatusCritical, item.Status())
}

func TestStatusOf_Deterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		require.Equal(t, StatusLow, StatusOf(3500, 4000, 3000))
	}
}
