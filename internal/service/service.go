package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/fuelstation/internal/domain/alerts"
	"github.com/Spok95/fuelstation/internal/domain/equipment"
	"github.com/Spok95/fuelstation/internal/domain/meters"
	"github.com/Spok95/fuelstation/internal/domain/reconcile"
	"github.com/Spok95/fuelstation/internal/domain/stock"
	"github.com/Spok95/fuelstation/internal/metrics"
)

var ErrNotFound = errors.New("not found")

/* Хранилища. Repo-реализации в internal/domain, в тестах — in-memory фейки. */

type Topology interface {
	GetDistribution(ctx context.Context, id int64) (*equipment.Distribution, error)
	ResolveTank(ctx context.Context, distributionID int64) (*equipment.Tank, error)
}

type MeterLedger interface {
	Get(ctx context.Context, id int64) (*meters.Reading, error)
	LastReading(ctx context.Context, distributionID int64) (*meters.Reading, error)
	Create(ctx context.Context, m meters.Reading, stockItemID int64) (*meters.Reading, bool, error)
	Supersede(ctx context.Context, original meters.Reading, m meters.Reading, stockItemID int64) (*meters.Reading, error)
	ListByShift(ctx context.Context, shiftID string) ([]meters.Reading, error)
}

type StockStore interface {
	Get(ctx context.Context, id int64) (*stock.Item, error)
	GetByTank(ctx context.Context, tankID int64) (*stock.Item, error)
	List(ctx context.Context) ([]stock.Item, error)
	ApplyReceipt(ctx context.Context, itemID int64, qty float64, note string) error
	SumMovements(ctx context.Context, itemID int64, from, to time.Time) (receipts, sales float64, err error)
}

type ReconcileStore interface {
	Insert(ctx context.Context, rec reconcile.Record) (*reconcile.Record, error)
	InsertCashClosing(ctx context.Context, rec reconcile.Record, c reconcile.CashClosing) (*reconcile.Record, error)
	History(ctx context.Context, f reconcile.HistoryFilter) ([]reconcile.Record, error)
	LatestForItem(ctx context.Context, stockItemID int64) (*reconcile.Record, error)
	GetRegister(ctx context.Context, id int64) (*reconcile.CashRegister, error)
}

type Service struct {
	log       *slog.Logger
	topology  Topology
	ledger    MeterLedger
	stock     StockStore
	reconcile ReconcileStore
	mets      *metrics.Metrics
}

func New(log *slog.Logger, topo Topology, ledger MeterLedger, st StockStore, rec ReconcileStore, mets *metrics.Metrics) *Service {
	return &Service{
		log:       log,
		topology:  topo,
		ledger:    ledger,
		stock:     st,
		reconcile: rec,
		mets:      mets,
	}
}

/* Остатки */

type StockState struct {
	Item   stock.Item
	Status stock.Status
}

func (s *Service) CurrentStatus(ctx context.Context, itemID int64) (*StockState, error) {
	it, err := s.stock.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrNotFound
	}
	return &StockState{Item: *it, Status: it.Status()}, nil
}

func (s *Service) ListStock(ctx context.Context) ([]StockState, error) {
	items, err := s.stock.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StockState, 0, len(items))
	for _, it := range items {
		if s.mets != nil {
			s.mets.StockLevel.WithLabelValues(it.Name, string(it.Kind)).Set(it.QuantityOnHand)
		}
		out = append(out, StockState{Item: it, Status: it.Status()})
	}
	return out, nil
}

func (s *Service) ApplyReceipt(ctx context.Context, itemID int64, qty float64, note string) (*StockState, error) {
	it, err := s.stock.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrNotFound
	}
	if err := s.stock.ApplyReceipt(ctx, itemID, qty, note); err != nil {
		return nil, err
	}
	return s.CurrentStatus(ctx, itemID)
}

/* Журнал показаний */

type RecordReadingInput struct {
	DistributionID int64
	ShiftID        string
	IndexStart     float64
	IndexFin       float64
	OperatorID     string
	Notes          string
}

// RecordReading проверяет показание, выводит проданный объём и списывает его
// с остатка цистерны. Несовпадение с предыдущим index_fin не блокирует запись,
// а помечает её для проверки менеджером.
func (s *Service) RecordReading(ctx context.Context, in RecordReadingInput) (*meters.Reading, error) {
	reading := meters.Reading{
		DistributionID: in.DistributionID,
		ShiftID:        in.ShiftID,
		IndexStart:     in.IndexStart,
		IndexFin:       in.IndexFin,
		OperatorID:     in.OperatorID,
		Notes:          in.Notes,
	}
	if err := reading.Validate(); err != nil {
		return nil, err
	}

	item, err := s.stockItemForDistribution(ctx, in.DistributionID)
	if err != nil {
		return nil, err
	}

	prev, err := s.ledger.LastReading(ctx, in.DistributionID)
	if err != nil {
		return nil, err
	}
	reading.ContinuityBreak = !meters.ContinuityOK(prev, in.IndexStart)

	created, shortfall, err := s.ledger.Create(ctx, reading, item.ID)
	if err != nil {
		return nil, err
	}

	if s.mets != nil {
		s.mets.ReadingsRecorded.Inc()
		if created.ContinuityBreak {
			s.mets.ContinuityBreaks.Inc()
		}
		if shortfall {
			s.mets.StockShortfalls.Inc()
		}
	}
	if created.ContinuityBreak {
		s.log.Warn("continuity break on meter reading",
			"distribution_id", in.DistributionID, "shift_id", in.ShiftID,
			"index_start", in.IndexStart)
	}
	if shortfall {
		s.log.Warn("sale drove stock below zero",
			"stock_item_id", item.ID, "reading_id", created.ID)
	}
	return created, nil
}

type SupersedeInput struct {
	IndexStart float64
	IndexFin   float64
	OperatorID string
	Notes      string
}

// SupersedeReading оформляет исправление: исходное показание остаётся в журнале,
// новое ссылается на него, к остатку применяется только разница объёмов.
func (s *Service) SupersedeReading(ctx context.Context, originalID int64, in SupersedeInput) (*meters.Reading, error) {
	original, err := s.ledger.Get(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrNotFound
	}

	reading := meters.Reading{
		DistributionID: original.DistributionID,
		ShiftID:        original.ShiftID,
		IndexStart:     in.IndexStart,
		IndexFin:       in.IndexFin,
		OperatorID:     in.OperatorID,
		Notes:          in.Notes,
	}
	if err := reading.Validate(); err != nil {
		return nil, err
	}

	item, err := s.stockItemForDistribution(ctx, original.DistributionID)
	if err != nil {
		return nil, err
	}
	return s.ledger.Supersede(ctx, *original, reading, item.ID)
}

// ShiftReadings — все показания смены, для страницы закрытия.
func (s *Service) ShiftReadings(ctx context.Context, shiftID string) ([]meters.Reading, error) {
	return s.ledger.ListByShift(ctx, shiftID)
}

func (s *Service) stockItemForDistribution(ctx context.Context, distributionID int64) (*stock.Item, error) {
	tank, err := s.topology.ResolveTank(ctx, distributionID)
	if err != nil {
		return nil, err
	}
	if tank == nil {
		return nil, ErrNotFound
	}
	item, err := s.stock.GetByTank(ctx, tank.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// ошибка конфигурации: цистерна без складской позиции
		return nil, fmt.Errorf("tank %d has no stock item configured", tank.ID)
	}
	return item, nil
}

/* Сверка */

type CloseStockInput struct {
	StockItemID   int64
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Opening       float64
	Receipts      *float64 // nil: взять из журнала движений
	DerivedSales  *float64 // nil: взять из журнала движений
	Observed      float64
	Justification string
	ReportedBy    string
}

func (s *Service) CloseStockPeriod(ctx context.Context, in CloseStockInput) (*reconcile.Record, error) {
	item, err := s.stock.Get(ctx, in.StockItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	var receipts, sales float64
	if in.Receipts == nil || in.DerivedSales == nil {
		receipts, sales, err = s.stock.SumMovements(ctx, in.StockItemID, in.PeriodStart, in.PeriodEnd)
		if err != nil {
			return nil, err
		}
	}
	if in.Receipts != nil {
		receipts = *in.Receipts
	}
	if in.DerivedSales != nil {
		sales = *in.DerivedSales
	}

	tol := reconcile.Tolerance{
		Kind:  reconcile.ToleranceKind(item.ToleranceKind),
		Value: decimal.NewFromFloat(item.ToleranceValue),
	}

	rec, err := reconcile.Build(reconcile.Inputs{
		PeriodStart:  in.PeriodStart,
		PeriodEnd:    in.PeriodEnd,
		Opening:      decimal.NewFromFloat(in.Opening),
		Receipts:     decimal.NewFromFloat(receipts),
		DerivedSales: decimal.NewFromFloat(sales),
		Observed:     decimal.NewFromFloat(in.Observed),
	}, tol, in.Justification, in.ReportedBy)
	if err != nil {
		return nil, err
	}
	rec.StockItemID = &item.ID

	created, err := s.reconcile.Insert(ctx, *rec)
	if err != nil {
		return nil, err
	}
	s.noteClosed(created)
	return created, nil
}

type CloseCashInput struct {
	RegisterID    int64
	ShiftID       string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	OpeningFloat  decimal.Decimal
	TotalCash     decimal.Decimal
	TotalCard     decimal.Decimal
	TotalMobile   decimal.Decimal
	OtherReceipts decimal.Decimal
	Disbursements decimal.Decimal
	Observed      decimal.Decimal
	Justification string
	ReportedBy    string
}

// CloseCashRegister гоняет кассу через тот же контракт сверки, что и склад.
func (s *Service) CloseCashRegister(ctx context.Context, in CloseCashInput) (*reconcile.Record, error) {
	reg, err := s.reconcile.GetRegister(ctx, in.RegisterID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, ErrNotFound
	}

	closing := reconcile.CashClosing{
		RegisterID:    in.RegisterID,
		ShiftID:       in.ShiftID,
		OpeningFloat:  in.OpeningFloat,
		TotalCash:     in.TotalCash,
		TotalCard:     in.TotalCard,
		TotalMobile:   in.TotalMobile,
		OtherReceipts: in.OtherReceipts,
		Disbursements: in.Disbursements,
	}

	rec, err := reconcile.Build(reconcile.Inputs{
		PeriodStart:  in.PeriodStart,
		PeriodEnd:    in.PeriodEnd,
		Opening:      in.OpeningFloat,
		Receipts:     in.TotalCash.Add(in.TotalCard).Add(in.TotalMobile).Add(in.OtherReceipts),
		DerivedSales: in.Disbursements,
		Observed:     in.Observed,
	}, reconcile.Tolerance{Kind: reconcile.ToleranceAbsolute, Value: reg.ToleranceAbs},
		in.Justification, in.ReportedBy)
	if err != nil {
		return nil, err
	}
	rec.RegisterID = &in.RegisterID

	created, err := s.reconcile.InsertCashClosing(ctx, *rec, closing)
	if err != nil {
		return nil, err
	}
	s.noteClosed(created)
	return created, nil
}

func (s *Service) noteClosed(rec *reconcile.Record) {
	if s.mets != nil {
		s.mets.ReconciliationsDone.WithLabelValues(string(rec.Class)).Inc()
		if rec.Class == reconcile.ClassMajor {
			s.mets.MajorVariances.Inc()
		}
	}
	if rec.Class != reconcile.ClassBalanced {
		s.log.Info("period closed with variance",
			"record_id", rec.ID, "class", rec.Class, "variance", rec.Variance.String())
	}
}

func (s *Service) History(ctx context.Context, f reconcile.HistoryFilter) ([]reconcile.Record, error) {
	return s.reconcile.History(ctx, f)
}

/* Статус для бейджей */

type AlertView struct {
	StockItemID int64
	Status      stock.Status
	Severity    alerts.Severity
	LastClass   reconcile.Class
}

func (s *Service) AlertState(ctx context.Context, itemID int64) (*AlertView, error) {
	state, err := s.CurrentStatus(ctx, itemID)
	if err != nil {
		return nil, err
	}
	last, err := s.reconcile.LatestForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := AlertView{
		StockItemID: itemID,
		Status:      state.Status,
		Severity:    alerts.Project(state.Status, last),
	}
	if last != nil {
		view.LastClass = last.Class
	}
	return &view, nil
}
