package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Spok95/fuelstation/internal/domain/equipment"
	"github.com/Spok95/fuelstation/internal/domain/meters"
	"github.com/Spok95/fuelstation/internal/domain/reconcile"
	"github.com/Spok95/fuelstation/internal/domain/stock"
	"github.com/Spok95/fuelstation/internal/service"
)

type Handler struct {
	svc   *service.Service
	equip *equipment.Repo
	log   *slog.Logger
}

func NewHandler(svc *service.Service, equip *equipment.Repo, log *slog.Logger) *Handler {
	return &Handler{svc: svc, equip: equip, log: log}
}

// fail транслирует ошибки движка в HTTP-статусы.
func (h *Handler) fail(c *gin.Context, err error) {
	var code int
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		code = http.StatusNotFound
	case errors.Is(err, meters.ErrInvalidRange),
		errors.Is(err, reconcile.ErrInvalidPeriod),
		errors.Is(err, equipment.ErrFuelTypeMismatch),
		errors.Is(err, equipment.ErrTankRetired),
		errors.Is(err, equipment.ErrInvalidThresholds):
		code = http.StatusBadRequest
	case errors.Is(err, meters.ErrDuplicateReading),
		errors.Is(err, meters.ErrReadingSuperseded),
		errors.Is(err, reconcile.ErrPeriodAlreadyClosed),
		errors.Is(err, stock.ErrOverCapacity):
		code = http.StatusConflict
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		// дубликат в справочниках (имя топлива и т.п.)
		code = http.StatusConflict
	case errors.Is(err, reconcile.ErrJustificationRequired):
		code = http.StatusUnprocessableEntity
	default:
		h.log.Error("internal error", "err", err)
		code = http.StatusInternalServerError
	}
	c.JSON(code, gin.H{"error": err.Error()})
}
