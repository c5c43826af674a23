package meters

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange      = errors.New("index_fin must be greater than index_start")
	ErrDuplicateReading  = errors.New("reading already exists for distribution and shift")
	ErrReadingSuperseded = errors.New("reading is already superseded")
)

// Reading — показание счётчика пистолета за смену. Запись неизменяемая;
// исправление оформляется новой записью со ссылкой SupersedesID.
type Reading struct {
	ID              int64
	DistributionID  int64
	ShiftID         string
	IndexStart      float64
	IndexFin        float64
	RecordedAt      time.Time
	OperatorID      string
	Notes           string
	ContinuityBreak bool // index_start не совпал с index_fin предыдущего показания
	SupersedesID    *int64
}

func (r Reading) VolumeSold() float64 {
	return r.IndexFin - r.IndexStart
}

// Validate проверяет диапазон индексов.
func (r Reading) Validate() error {
	if r.IndexFin <= r.IndexStart {
		return ErrInvalidRange
	}
	return nil
}

// ContinuityOK: index_start нового показания должен равняться index_fin предыдущего.
func ContinuityOK(prev *Reading, start float64) bool {
	if prev == nil {
		return true
	}
	return prev.IndexFin == start
}
