package gateway

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"price-dashboard/internal/domain"
)

const (
	dataSheet         = "Data"
	contributionSheet = "Contribution"
)

// XLSXExporter writes the filtered table and the contribution of the selected
// commodity into a two-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates a new exporter instance.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes the workbook to w.
func (e *XLSXExporter) Export(w io.Writer, table *domain.PriceTable, commodity domain.CommoditySection) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return fmt.Errorf("failed to name data sheet: %w", err)
	}
	if err := writeRow(f, dataSheet, 1, stringsToCells(table.Columns)); err != nil {
		return err
	}
	for i, record := range table.Records {
		if err := writeRow(f, dataSheet, i+2, rawToCells(record.Raw)); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(contributionSheet); err != nil {
		return fmt.Errorf("failed to create contribution sheet: %w", err)
	}
	header := []interface{}{ColumnRegion, "Kontribusi " + commodity.Selected, ColumnPriceChange, ColumnYear, ColumnMonth}
	if err := writeRow(f, contributionSheet, 1, header); err != nil {
		return err
	}
	for i, row := range commodity.Rows {
		var change interface{}
		if v, ok := row.PriceChange.Get(); ok {
			change = v
		}
		cells := []interface{}{row.Region, row.Contribution, change, row.Year, row.Month}
		if err := writeRow(f, contributionSheet, i+2, cells); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(contributionSheet, "A", "C", 24); err != nil {
		return fmt.Errorf("failed to size contribution columns: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func stringsToCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// rawToCells keeps numeric cells numeric so spreadsheets can sort them.
func rawToCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cells[i] = f
			continue
		}
		cells[i] = v
	}
	return cells
}
