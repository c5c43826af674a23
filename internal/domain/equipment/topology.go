package equipment

import (
	"errors"
	"fmt"
)

var (
	ErrFuelTypeMismatch  = errors.New("distribution fuel type does not match tank fuel type")
	ErrTankRetired       = errors.New("tank is retired")
	ErrInvalidThresholds = errors.New("invalid tank thresholds")
)

// ValidateThresholds: 0 <= safety < low < capacity
func ValidateThresholds(capacity, low, safety float64) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be > 0, got %v", ErrInvalidThresholds, capacity)
	}
	if safety < 0 {
		return fmt.Errorf("%w: safety threshold must be >= 0, got %v", ErrInvalidThresholds, safety)
	}
	if safety >= low {
		return fmt.Errorf("%w: safety threshold %v must be below low threshold %v", ErrInvalidThresholds, safety, low)
	}
	if low >= capacity {
		return fmt.Errorf("%w: low threshold %v must be below capacity %v", ErrInvalidThresholds, low, capacity)
	}
	return nil
}

// ValidateDistribution проверяет согласованность пистолета и цистерны.
func ValidateDistribution(d Distribution, t Tank) error {
	if d.FuelTypeID != t.FuelTypeID {
		return ErrFuelTypeMismatch
	}
	if t.Retired {
		return ErrTankRetired
	}
	return nil
}
