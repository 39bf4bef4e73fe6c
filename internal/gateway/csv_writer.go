package gateway

import (
	"encoding/csv"
	"fmt"
	"io"

	"price-dashboard/internal/domain"
)

// CSVExporter writes a table back out with its source header and cells.
type CSVExporter struct{}

// NewCSVExporter creates a new exporter instance.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes table to w.
func (e *CSVExporter) Export(w io.Writer, table *domain.PriceTable, _ domain.CommoditySection) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, record := range table.Records {
		if err := writer.Write(record.Raw); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
