package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Spok95/fuelstation/internal/domain/reconcile"
	"github.com/Spok95/fuelstation/internal/report"
	"github.com/Spok95/fuelstation/internal/service"
)

type reconciliationJSON struct {
	ID               int64           `json:"id"`
	StockItemID      *int64          `json:"stock_item_id,omitempty"`
	RegisterID       *int64          `json:"register_id,omitempty"`
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	Opening          decimal.Decimal `json:"opening"`
	Receipts         decimal.Decimal `json:"receipts"`
	DerivedSales     decimal.Decimal `json:"derived_sales"`
	Theoretical      decimal.Decimal `json:"theoretical_closing"`
	Observed         decimal.Decimal `json:"observed_closing"`
	Variance         decimal.Decimal `json:"variance"`
	Class            string          `json:"variance_class"`
	Justification    string          `json:"justification,omitempty"`
	FlaggedForReview bool            `json:"flagged_for_review"`
	ReportedBy       string          `json:"reported_by"`
	ReportedAt       time.Time       `json:"reported_at"`
}

func toReconciliationJSON(r reconcile.Record) reconciliationJSON {
	return reconciliationJSON{
		ID:               r.ID,
		StockItemID:      r.StockItemID,
		RegisterID:       r.RegisterID,
		PeriodStart:      r.PeriodStart,
		PeriodEnd:        r.PeriodEnd,
		Opening:          r.Opening,
		Receipts:         r.Receipts,
		DerivedSales:     r.DerivedSales,
		Theoretical:      r.Theoretical,
		Observed:         r.Observed,
		Variance:         r.Variance,
		Class:            string(r.Class),
		Justification:    r.Justification,
		FlaggedForReview: r.FlaggedForReview,
		ReportedBy:       r.ReportedBy,
		ReportedAt:       r.ReportedAt,
	}
}

type closeStockRequest struct {
	StockItemID   int64     `json:"stock_item_id" binding:"required"`
	PeriodStart   time.Time `json:"period_start" binding:"required"`
	PeriodEnd     time.Time `json:"period_end" binding:"required"`
	Opening       float64   `json:"opening"`
	Receipts      *float64  `json:"receipts"`      // по умолчанию из журнала движений
	DerivedSales  *float64  `json:"derived_sales"` // по умолчанию из журнала движений
	Observed      float64   `json:"observed_closing"`
	Justification string    `json:"justification"`
	ReportedBy    string    `json:"reported_by" binding:"required"`
}

func (h *Handler) PostReconciliation(c *gin.Context) {
	var req closeStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.svc.CloseStockPeriod(c.Request.Context(), service.CloseStockInput{
		StockItemID:   req.StockItemID,
		PeriodStart:   req.PeriodStart,
		PeriodEnd:     req.PeriodEnd,
		Opening:       req.Opening,
		Receipts:      req.Receipts,
		DerivedSales:  req.DerivedSales,
		Observed:      req.Observed,
		Justification: req.Justification,
		ReportedBy:    req.ReportedBy,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReconciliationJSON(*rec))
}

type closeCashRequest struct {
	RegisterID    int64           `json:"register_id" binding:"required"`
	ShiftID       string          `json:"shift_id" binding:"required"`
	PeriodStart   time.Time       `json:"period_start" binding:"required"`
	PeriodEnd     time.Time       `json:"period_end" binding:"required"`
	OpeningFloat  decimal.Decimal `json:"opening_float"`
	TotalCash     decimal.Decimal `json:"total_cash"`
	TotalCard     decimal.Decimal `json:"total_card"`
	TotalMobile   decimal.Decimal `json:"total_mobile"`
	OtherReceipts decimal.Decimal `json:"other_receipts"`
	Disbursements decimal.Decimal `json:"disbursements"`
	Observed      decimal.Decimal `json:"observed_total"`
	Justification string          `json:"justification"`
	ReportedBy    string          `json:"reported_by" binding:"required"`
}

func (h *Handler) PostCashClosing(c *gin.Context) {
	var req closeCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.svc.CloseCashRegister(c.Request.Context(), service.CloseCashInput{
		RegisterID:    req.RegisterID,
		ShiftID:       req.ShiftID,
		PeriodStart:   req.PeriodStart,
		PeriodEnd:     req.PeriodEnd,
		OpeningFloat:  req.OpeningFloat,
		TotalCash:     req.TotalCash,
		TotalCard:     req.TotalCard,
		TotalMobile:   req.TotalMobile,
		OtherReceipts: req.OtherReceipts,
		Disbursements: req.Disbursements,
		Observed:      req.Observed,
		Justification: req.Justification,
		ReportedBy:    req.ReportedBy,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReconciliationJSON(*rec))
}

func historyFilter(c *gin.Context) (reconcile.HistoryFilter, error) {
	var f reconcile.HistoryFilter
	if s := c.Query("stock_item"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return f, fmt.Errorf("invalid stock_item: %s", s)
		}
		f.StockItemID = &id
	}
	if s := c.Query("register"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return f, fmt.Errorf("invalid register: %s", s)
		}
		f.RegisterID = &id
	}
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return f, fmt.Errorf("invalid from: %s", s)
		}
		f.From = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return f, fmt.Errorf("invalid to: %s", s)
		}
		f.To = &t
	}
	return f, nil
}

func (h *Handler) ListReconciliations(c *gin.Context) {
	f, err := historyFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	records, err := h.svc.History(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]reconciliationJSON, 0, len(records))
	for _, r := range records {
		out = append(out, toReconciliationJSON(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ExportReconciliations(c *gin.Context) {
	f, err := historyFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	records, err := h.svc.History(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}

	buf, err := report.ReconciliationsXLSX(records)
	if err != nil {
		h.fail(c, err)
		return
	}
	name := fmt.Sprintf("reconciliations_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *Handler) ExportStock(c *gin.Context) {
	states, err := h.svc.ListStock(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	buf, err := report.StockSnapshotXLSX(states)
	if err != nil {
		h.fail(c, err)
		return
	}
	name := fmt.Sprintf("stock_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
