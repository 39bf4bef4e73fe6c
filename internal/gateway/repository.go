package gateway

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"price-dashboard/internal/domain"
)

// FilePriceRepository picks the CSV or XLSX reader from the file extension.
type FilePriceRepository struct {
	csv  *CSVPriceRepository
	xlsx *XLSXPriceRepository
}

// NewFilePriceRepository creates a repository; sheet applies to workbooks only.
func NewFilePriceRepository(sheet string) *FilePriceRepository {
	return &FilePriceRepository{
		csv:  NewCSVPriceRepository(),
		xlsx: NewXLSXPriceRepository(sheet),
	}
}

// LoadTable loads the table at path.
func (r *FilePriceRepository) LoadTable(ctx context.Context, path string) (*domain.PriceTable, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return r.csv.LoadTable(ctx, path)
	case ".xlsx", ".xlsm":
		return r.xlsx.LoadTable(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
