package stock

type Status string

const (
	StatusOK       Status = "ok"
	StatusLow      Status = "low"
	StatusCritical Status = "critical"
)

// StatusOf — чистая функция от остатка и двух порогов.
// Границы закрытые: qty == critical уже Critical, qty == low ещё Low.
func StatusOf(qty, low, critical float64) Status {
	switch {
	case qty <= critical:
		return StatusCritical
	case qty <= low:
		return StatusLow
	default:
		return StatusOK
	}
}

func (i Item) Status() Status {
	return StatusOf(i.QuantityOnHand, i.LowThreshold, i.CriticalThreshold)
}
