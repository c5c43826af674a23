package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/fuelstation/internal/service"
)

type stockStateJSON struct {
	ID                int64   `json:"id"`
	Kind              string  `json:"kind"`
	Name              string  `json:"name"`
	Unit              string  `json:"unit"`
	QuantityOnHand    float64 `json:"quantity_on_hand"`
	LowThreshold      float64 `json:"low_threshold"`
	CriticalThreshold float64 `json:"critical_threshold"`
	Status            string  `json:"status"`
}

func toStockJSON(s service.StockState) stockStateJSON {
	return stockStateJSON{
		ID:                s.Item.ID,
		Kind:              string(s.Item.Kind),
		Name:              s.Item.Name,
		Unit:              s.Item.Unit,
		QuantityOnHand:    s.Item.QuantityOnHand,
		LowThreshold:      s.Item.LowThreshold,
		CriticalThreshold: s.Item.CriticalThreshold,
		Status:            string(s.Status),
	}
}

func (h *Handler) ListStock(c *gin.Context) {
	states, err := h.svc.ListStock(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]stockStateJSON, 0, len(states))
	for _, s := range states {
		out = append(out, toStockJSON(s))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) StockStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	state, err := h.svc.CurrentStatus(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockJSON(*state))
}

type receiptRequest struct {
	Qty  float64 `json:"qty" binding:"required,gt=0"`
	Note string  `json:"note"`
}

func (h *Handler) PostReceipt(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req receiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := h.svc.ApplyReceipt(c.Request.Context(), id, req.Qty, req.Note)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toStockJSON(*state))
}

func (h *Handler) AlertState(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	view, err := h.svc.AlertState(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stock_item_id": view.StockItemID,
		"status":        view.Status,
		"severity":      view.Severity,
		"last_class":    view.LastClass,
	})
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
