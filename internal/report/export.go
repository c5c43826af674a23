package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/fuelstation/internal/domain/reconcile"
	"github.com/Spok95/fuelstation/internal/service"
)

// ReconciliationsXLSX выгружает историю сверок для страниц закрытий.
func ReconciliationsXLSX(records []reconcile.Record) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"stock_item_id",
		"register_id",
		"period_start",
		"period_end",
		"opening",
		"receipts",
		"derived_sales",
		"theoretical_closing",
		"observed_closing",
		"variance",
		"class",
		"justification",
		"reported_by",
		"reported_at",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, r := range records {
		var itemID, regID interface{}
		if r.StockItemID != nil {
			itemID = *r.StockItemID
		}
		if r.RegisterID != nil {
			regID = *r.RegisterID
		}
		excelRow := []interface{}{
			r.ID,
			itemID,
			regID,
			r.PeriodStart.Format("2006-01-02 15:04"),
			r.PeriodEnd.Format("2006-01-02 15:04"),
			r.Opening.String(),
			r.Receipts.String(),
			r.DerivedSales.String(),
			r.Theoretical.String(),
			r.Observed.String(),
			r.Variance.String(),
			string(r.Class),
			r.Justification,
			r.ReportedBy,
			r.ReportedAt.Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf, nil
}

// StockSnapshotXLSX выгружает текущие остатки со статусами.
func StockSnapshotXLSX(states []service.StockState) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"kind",
		"name",
		"unit",
		"quantity_on_hand",
		"low_threshold",
		"critical_threshold",
		"status",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, s := range states {
		excelRow := []interface{}{
			s.Item.ID,
			string(s.Item.Kind),
			s.Item.Name,
			s.Item.Unit,
			s.Item.QuantityOnHand,
			s.Item.LowThreshold,
			s.Item.CriticalThreshold,
			string(s.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf, nil
}
