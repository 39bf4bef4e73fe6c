package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"price-dashboard/internal/domain"
)

// CSVPriceRepository loads the price table from a comma-separated file.
type CSVPriceRepository struct{}

// NewCSVPriceRepository creates a new repository instance.
func NewCSVPriceRepository() *CSVPriceRepository {
	return &CSVPriceRepository{}
}

// LoadTable reads and parses the CSV file at path.
func (r *CSVPriceRepository) LoadTable(ctx context.Context, path string) (*domain.PriceTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price table %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	decoder, err := newTableDecoder(header)
	if err != nil {
		return nil, fmt.Errorf("invalid price table %s: %w", path, err)
	}

	table := &domain.PriceTable{Columns: decoder.columns}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}
		table.Records = append(table.Records, decoder.decode(row))
	}

	slog.Debug("Loaded price table", "path", path, "records", len(table.Records))
	return table, nil
}
