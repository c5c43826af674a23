package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ReadingsRecorded    prometheus.Counter
	ContinuityBreaks    prometheus.Counter
	StockShortfalls     prometheus.Counter
	ReconciliationsDone *prometheus.CounterVec
	MajorVariances      prometheus.Counter
	StockLevel          *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReadingsRecorded: f.NewCounter(prometheus.CounterOpts{
			Name: "fuelstation_meter_readings_total",
			Help: "Recorded meter readings.",
		}),
		ContinuityBreaks: f.NewCounter(prometheus.CounterOpts{
			Name: "fuelstation_meter_continuity_breaks_total",
			Help: "Readings whose start index did not match the previous reading.",
		}),
		StockShortfalls: f.NewCounter(prometheus.CounterOpts{
			Name: "fuelstation_stock_shortfalls_total",
			Help: "Sales that drove quantity on hand below zero.",
		}),
		ReconciliationsDone: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fuelstation_reconciliations_total",
			Help: "Closed reconciliation periods by variance class.",
		}, []string{"class"}),
		MajorVariances: f.NewCounter(prometheus.CounterOpts{
			Name: "fuelstation_major_variances_total",
			Help: "Reconciliations classified as major variance.",
		}),
		StockLevel: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fuelstation_stock_level",
			Help: "Current quantity on hand per stock item.",
		}, []string{"item", "kind"}),
	}
}
