package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/fuelstation/internal/domain/meters"
	"github.com/Spok95/fuelstation/internal/service"
)

type readingRequest struct {
	DistributionID int64   `json:"distribution_id" binding:"required"`
	ShiftID        string  `json:"shift_id" binding:"required"`
	IndexStart     float64 `json:"index_start"`
	IndexFin       float64 `json:"index_fin" binding:"required"`
	OperatorID     string  `json:"operator_id" binding:"required"`
	Notes          string  `json:"notes"`
}

type readingJSON struct {
	ID              int64     `json:"id"`
	DistributionID  int64     `json:"distribution_id"`
	ShiftID         string    `json:"shift_id"`
	IndexStart      float64   `json:"index_start"`
	IndexFin        float64   `json:"index_fin"`
	VolumeSold      float64   `json:"volume_sold"`
	RecordedAt      time.Time `json:"recorded_at"`
	OperatorID      string    `json:"operator_id"`
	ContinuityBreak bool      `json:"continuity_break"`
	SupersedesID    *int64    `json:"supersedes_id,omitempty"`
}

func toReadingJSON(m meters.Reading) readingJSON {
	return readingJSON{
		ID:              m.ID,
		DistributionID:  m.DistributionID,
		ShiftID:         m.ShiftID,
		IndexStart:      m.IndexStart,
		IndexFin:        m.IndexFin,
		VolumeSold:      m.VolumeSold(),
		RecordedAt:      m.RecordedAt,
		OperatorID:      m.OperatorID,
		ContinuityBreak: m.ContinuityBreak,
		SupersedesID:    m.SupersedesID,
	}
}

func (h *Handler) PostReading(c *gin.Context) {
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.RecordReading(c.Request.Context(), service.RecordReadingInput{
		DistributionID: req.DistributionID,
		ShiftID:        req.ShiftID,
		IndexStart:     req.IndexStart,
		IndexFin:       req.IndexFin,
		OperatorID:     req.OperatorID,
		Notes:          req.Notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReadingJSON(*created))
}

type supersedeRequest struct {
	IndexStart float64 `json:"index_start"`
	IndexFin   float64 `json:"index_fin" binding:"required"`
	OperatorID string  `json:"operator_id" binding:"required"`
	Notes      string  `json:"notes"`
}

func (h *Handler) ListReadings(c *gin.Context) {
	shiftID := c.Query("shift")
	if shiftID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift is required"})
		return
	}
	readings, err := h.svc.ShiftReadings(c.Request.Context(), shiftID)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]readingJSON, 0, len(readings))
	for _, m := range readings {
		out = append(out, toReadingJSON(m))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) PostSupersede(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req supersedeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.SupersedeReading(c.Request.Context(), id, service.SupersedeInput{
		IndexStart: req.IndexStart,
		IndexFin:   req.IndexFin,
		OperatorID: req.OperatorID,
		Notes:      req.Notes,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReadingJSON(*created))
}
