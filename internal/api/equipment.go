package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/fuelstation/internal/domain/equipment"
)

/* Администрирование оборудования: внешний коллаборатор, движок только читает топологию. */

type fuelTypeRequest struct {
	Name string `json:"name" binding:"required"`
	Unit string `json:"unit" binding:"required"`
}

func (h *Handler) PostFuelType(c *gin.Context) {
	var req fuelTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ft, err := h.equip.CreateFuelType(c.Request.Context(), req.Name, req.Unit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ft)
}

func (h *Handler) ListFuelTypes(c *gin.Context) {
	out, err := h.equip.ListFuelTypes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type tankRequest struct {
	FuelTypeID      int64   `json:"fuel_type_id" binding:"required"`
	CapacityMax     float64 `json:"capacity_max" binding:"required,gt=0"`
	LowThreshold    float64 `json:"low_threshold" binding:"required"`
	SafetyThreshold float64 `json:"safety_threshold"`
	CurrentLevel    float64 `json:"current_level"`
}

func (h *Handler) PostTank(c *gin.Context) {
	var req tankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.equip.CreateTank(c.Request.Context(),
		req.FuelTypeID, req.CapacityMax, req.LowThreshold, req.SafetyThreshold, req.CurrentLevel)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) ListTanks(c *gin.Context) {
	includeRetired := c.Query("include_retired") == "true"
	out, err := h.equip.ListTanks(c.Request.Context(), includeRetired)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type tankStatusRequest struct {
	Status equipment.TankStatus `json:"status" binding:"required,oneof=operational maintenance out_of_service"`
}

func (h *Handler) PatchTankStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req tankStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.equip.SetTankStatus(c.Request.Context(), id, req.Status); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RetireTank — мягкое списание, история показаний сохраняется.
func (h *Handler) RetireTank(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.equip.RetireTank(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type pumpStatusRequest struct {
	Status equipment.PumpStatus `json:"status" binding:"required,oneof=active inactive maintenance"`
}

func (h *Handler) PatchPumpStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req pumpStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.equip.SetPumpStatus(c.Request.Context(), id, req.Status); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type pumpRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) PostPump(c *gin.Context) {
	var req pumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.equip.CreatePump(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPumps(c *gin.Context) {
	out, err := h.equip.ListPumps(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type distributionRequest struct {
	PumpID     int64 `json:"pump_id" binding:"required"`
	FuelTypeID int64 `json:"fuel_type_id" binding:"required"`
	TankID     int64 `json:"tank_id" binding:"required"`
}

func (h *Handler) PostDistribution(c *gin.Context) {
	var req distributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := h.equip.AddDistribution(c.Request.Context(), equipment.Distribution{
		PumpID:     req.PumpID,
		FuelTypeID: req.FuelTypeID,
		TankID:     req.TankID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}
