package equipment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateThresholds(t *testing.T) {
	require.NoError(t, ValidateThresholds(20000, 4000, 3000))

	// закрытые границы: равенство недопустимо
	require.ErrorIs(t, ValidateThresholds(20000, 3000, 3000), ErrInvalidThresholds)
	require.ErrorIs(t, ValidateThresholds(4000, 4000, 3000), ErrInvalidThresholds)

	require.ErrorIs(t, ValidateThresholds(0, 4000, 3000), ErrInvalidThresholds)
	require.ErrorIs(t, ValidateThresholds(-1, 4000, 3000), ErrInvalidThresholds)
	require.ErrorIs(t, ValidateThresholds(20000, 4000, -5), ErrInvalidThresholds)
}

func TestValidateDistribution(t *testing.T) {
	tank := Tank{ID: 1, FuelTypeID: 10}

	require.NoError(t, ValidateDistribution(Distribution{ID: 1, TankID: 1, FuelTypeID: 10}, tank))

	err := ValidateDistribution(Distribution{ID: 2, TankID: 1, FuelTypeID: 11}, tank)
	require.ErrorIs(t, err, ErrFuelTypeMismatch)

	tank.Retired = true
	err = ValidateDistribution(Distribution{ID: 3, TankID: 1, FuelTypeID: 10}, tank)
	require.ErrorIs(t, err, ErrTankRetired)
}
