package domain_test

import (
	"encoding/json"
	"testing"

	"price-dashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_JSON(t *testing.T) {
	row := domain.ContributionRow{Region: "SAMBAS", Contribution: 0.75, PriceChange: domain.None[float64](), Year: 2024, Month: 2}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"region":"SAMBAS","contribution":0.75,"price_change":null,"year":2024,"month":2}`, string(data))

	var decoded domain.ContributionRow
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, row, decoded)

	require.NoError(t, json.Unmarshal([]byte(`{"price_change":-1.5}`), &decoded))
	assert.Equal(t, domain.Some(-1.5), decoded.PriceChange)
}

func TestPriceRecord_Period(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		want  domain.Period
		ok    bool
	}{
		{"valid", 2024, 3, domain.Period{Year: 2024, Month: 3}, true},
		{"missing year", 0, 3, domain.Period{}, false},
		{"month out of range", 2024, 13, domain.Period{}, false},
		{"missing month", 2024, 0, domain.Period{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.PriceRecord{Year: tt.year, Month: tt.month}.Period()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriod(t *testing.T) {
	jan := domain.Period{Year: 2024, Month: 1}
	dec := domain.Period{Year: 2023, Month: 12}

	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
	assert.False(t, jan.Before(jan))
	assert.Equal(t, "January 2024", jan.String())
}

func TestPriceTable_RegionsAndFilter(t *testing.T) {
	table := &domain.PriceTable{
		Columns: []string{"Kab/Kota"},
		Records: []domain.PriceRecord{
			{Region: "SAMBAS"},
			{Region: "LANDAK"},
			{Region: ""},
			{Region: "SAMBAS"},
			{Region: "KOTA PONTIANAK"},
		},
	}

	assert.Equal(t, []string{"SAMBAS", "LANDAK", "KOTA PONTIANAK"}, table.Regions())

	filtered := table.Filter([]string{"SAMBAS", "KOTA PONTIANAK"})
	assert.Equal(t, table.Columns, filtered.Columns)
	require.Len(t, filtered.Records, 3)
	for _, r := range filtered.Records {
		assert.NotEqual(t, "LANDAK", r.Region)
	}

	assert.Same(t, table, table.Filter(nil))
	assert.Empty(t, table.Filter([]string{"MELAWI"}).Records)
}
