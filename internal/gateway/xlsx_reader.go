package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"price-dashboard/internal/domain"
)

// XLSXPriceRepository loads the price table from a workbook sheet.
type XLSXPriceRepository struct {
	sheet string
}

// NewXLSXPriceRepository creates a repository reading sheet, or the first
// sheet of the workbook when sheet is empty.
func NewXLSXPriceRepository(sheet string) *XLSXPriceRepository {
	return &XLSXPriceRepository{sheet: sheet}
}

// LoadTable reads and parses the workbook at path.
func (r *XLSXPriceRepository) LoadTable(ctx context.Context, path string) (*domain.PriceTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close workbook", "path", path, "error", cerr)
		}
	}()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q from %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, errors.New("sheet is empty"))
	}

	decoder, err := newTableDecoder(rows[0])
	if err != nil {
		return nil, fmt.Errorf("invalid price table %s: %w", path, err)
	}

	table := &domain.PriceTable{Columns: decoder.columns}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		table.Records = append(table.Records, decoder.decode(row))
	}

	slog.Debug("Loaded price table", "path", path, "sheet", sheet, "records", len(table.Records))
	return table, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
