package gateway

import (
	"log/slog"
	"math"
	"strconv"
	"strings"

	"price-dashboard/internal/domain"
)

// Column names of the source table.
const (
	ColumnYear        = "Tahun"
	ColumnMonth       = "Bulan"
	ColumnWeek        = "Minggu"
	ColumnProvince    = "Provinsi"
	ColumnRegion      = "Kab/Kota"
	ColumnPriceChange = "Indikator Perubahan Harga (%)"
	ColumnCommodities = "Komoditas Andil Perubahan Harga"
	ColumnDisparity   = "Disparitas Harga Antar Daerah"

	// Some exports carry a trailing space or suffix on the commodity header.
	commodityColumnMarker = "Komoditas Andil"
)

// tableDecoder maps source rows onto PriceRecords by header position.
type tableDecoder struct {
	columns []string
	index   map[string]int
}

func newTableDecoder(header []string) (*tableDecoder, error) {
	d := &tableDecoder{
		columns: make([]string, len(header)),
		index:   make(map[string]int),
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		d.columns[i] = h
		if _, dup := d.index[h]; !dup {
			d.index[h] = i
		}
	}
	if _, ok := d.index[ColumnCommodities]; !ok {
		for i, h := range d.columns {
			if strings.Contains(h, commodityColumnMarker) {
				d.index[ColumnCommodities] = i
				break
			}
		}
	}

	var missing []string
	for _, col := range []string{ColumnRegion, ColumnPriceChange, ColumnCommodities} {
		if _, ok := d.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return d, nil
}

func (d *tableDecoder) cell(row []string, column string) string {
	i, ok := d.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (d *tableDecoder) decode(row []string) domain.PriceRecord {
	raw := make([]string, len(d.columns))
	copy(raw, row)

	record := domain.PriceRecord{
		Region:      d.cell(row, ColumnRegion),
		Province:    d.cell(row, ColumnProvince),
		Year:        parseInt(d.cell(row, ColumnYear)),
		Month:       parseInt(d.cell(row, ColumnMonth)),
		Week:        d.cell(row, ColumnWeek),
		PriceChange: parseOptionalFloat(d.cell(row, ColumnPriceChange)),
		Disparity:   parseOptionalFloat(d.cell(row, ColumnDisparity)),
		Raw:         raw,
	}
	if s := d.cell(row, ColumnCommodities); s != "" {
		record.Commodities = domain.Some(s)
	}
	if !record.PriceChange.Valid && d.cell(row, ColumnPriceChange) != "" {
		slog.Debug("Coerced unparsable price change to missing",
			"region", record.Region,
			"value", d.cell(row, ColumnPriceChange))
	}
	return record
}

func parseOptionalFloat(s string) domain.Optional[float64] {
	if s == "" {
		return domain.None[float64]()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.None[float64]()
	}
	return domain.Some(v)
}

// parseInt accepts "2024" as well as spreadsheet-style "2024.0"; anything else reads as 0.
func parseInt(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
		return int(f)
	}
	return 0
}
