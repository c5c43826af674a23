package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/fuelstation/internal/domain/equipment"
	"github.com/Spok95/fuelstation/internal/domain/meters"
	"github.com/Spok95/fuelstation/internal/domain/reconcile"
	"github.com/Spok95/fuelstation/internal/domain/stock"
	"github.com/Spok95/fuelstation/internal/service"
)

func TestFailStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{log: slog.New(slog.NewTextHandler(io.Discard, nil))}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"invalid range", meters.ErrInvalidRange, http.StatusBadRequest},
		{"invalid thresholds", equipment.ValidateThresholds(0, 4000, 3000), http.StatusBadRequest},
		{"fuel type mismatch", equipment.ErrFuelTypeMismatch, http.StatusBadRequest},
		{"duplicate reading", meters.ErrDuplicateReading, http.StatusConflict},
		{"already superseded", meters.ErrReadingSuperseded, http.StatusConflict},
		{"period closed", reconcile.ErrPeriodAlreadyClosed, http.StatusConflict},
		{"over capacity", stock.ErrOverCapacity, http.StatusConflict},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"justification required", reconcile.ErrJustificationRequired, http.StatusUnprocessableEntity},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			h.fail(ctx, c.err)
			require.Equal(t, c.want, w.Code)
		})
	}
}
