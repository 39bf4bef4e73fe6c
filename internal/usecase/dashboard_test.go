package usecase_test

import (
	"context"
	"errors"
	"testing"

	"price-dashboard/internal/domain"
	"price-dashboard/internal/usecase"
	mock_usecase "price-dashboard/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(region string, year, month int, change domain.Optional[float64], commodities string, disparity domain.Optional[float64]) domain.PriceRecord {
	r := domain.PriceRecord{
		Region:      region,
		Year:        year,
		Month:       month,
		PriceChange: change,
		Disparity:   disparity,
	}
	if commodities != "" {
		r.Commodities = domain.Some(commodities)
	}
	return r
}

func sampleTable() *domain.PriceTable {
	some := domain.Some[float64]
	none := domain.None[float64]()
	return &domain.PriceTable{
		Records: []domain.PriceRecord{
			record("SAMBAS", 2024, 1, some(0.5), "TELUR AYAM RAS (0.4229); BAWANG PUTIH (0.0045)", some(3.1)),
			record("LANDAK", 2024, 1, some(2.0), "BERAS (6.0825); MINYAK GORENG (4.9103)", none),
			record("SAMBAS", 2024, 2, some(-1.0), "BERAS (0.75); GULA (0.2)", some(7.4)),
			record("LANDAK", 2024, 2, none, "", some(1.0)),
			record("SINTANG", 2024, 2, some(1.5), "GULA (-0.3)", none),
		},
	}
}

func TestDashboardUseCase_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name    string
		path    string
		table   *domain.PriceTable
		repoErr error
		opts    usecase.ReportOptions
		check   func(t *testing.T, got *domain.DashboardReport)
		wantErr bool
	}{
		{
			name:  "all regions",
			path:  "/data/kalbar.csv",
			table: sampleTable(),
			opts:  usecase.ReportOptions{},
			check: func(t *testing.T, got *domain.DashboardReport) {
				assert.Equal(t, []string{"SAMBAS", "LANDAK", "SINTANG"}, got.Regions)
				assert.Equal(t, 5, got.RecordCount)
				assert.Equal(t, "price_data_SAMBAS_LANDAK_SINTANG", got.ExportName)

				require.NotNil(t, got.Summary)
				assert.InDelta(t, 0.75, got.Summary.Mean, 1e-9)
				assert.Equal(t, domain.RegionValue{Region: "LANDAK", Value: 2.0, Year: 2024, Month: 1}, got.Summary.Highest)
				assert.Equal(t, domain.RegionValue{Region: "SAMBAS", Value: -1.0, Year: 2024, Month: 2}, got.Summary.Lowest)

				assert.Equal(t, []domain.RegionValue{
					{Region: "LANDAK", Value: 2.0, Year: 2024, Month: 1},
					{Region: "SINTANG", Value: 1.5, Year: 2024, Month: 2},
					{Region: "SAMBAS", Value: 0.5, Year: 2024, Month: 1},
					{Region: "SAMBAS", Value: -1.0, Year: 2024, Month: 2},
				}, got.PriceChanges)
				assert.Equal(t, []domain.RegionValue{
					{Region: "SAMBAS", Value: 7.4, Year: 2024, Month: 2},
					{Region: "SAMBAS", Value: 3.1, Year: 2024, Month: 1},
					{Region: "LANDAK", Value: 1.0, Year: 2024, Month: 2},
				}, got.Disparities)

				assert.Equal(t, []string{"TELUR AYAM RAS", "BAWANG PUTIH", "BERAS", "MINYAK GORENG", "GULA"}, got.Commodity.Known)
				assert.Equal(t, "TELUR AYAM RAS", got.Commodity.Selected)
				assert.True(t, got.Commodity.HasData)
				require.Len(t, got.Commodity.Rows, 5)
				assert.Equal(t, "SAMBAS", got.Commodity.Rows[0].Region)
				assert.Equal(t, 0.4229, got.Commodity.Rows[0].Contribution)

				assert.True(t, got.Trend.Available)
				assert.Equal(t, 2, got.Trend.Periods)
				require.Len(t, got.Trend.Series, 1)
				points := got.Trend.Series[0].Points
				require.Len(t, points, 2)
				assert.Equal(t, domain.Period{Year: 2024, Month: 1}, points[0].Period)
				assert.InDelta(t, 1.25, points[0].Value.Value, 1e-9)
				assert.Equal(t, domain.Period{Year: 2024, Month: 2}, points[1].Period)
				assert.InDelta(t, 0.25, points[1].Value.Value, 1e-9)
			},
		},
		{
			name:  "selected regions and commodity",
			path:  "/data/kalbar.csv",
			table: sampleTable(),
			opts: usecase.ReportOptions{
				Regions:   []string{"SAMBAS", "SINTANG"},
				Commodity: "GULA",
			},
			check: func(t *testing.T, got *domain.DashboardReport) {
				assert.Equal(t, 3, got.RecordCount)
				assert.Equal(t, "price_data_SAMBAS_SINTANG", got.ExportName)
				assert.Equal(t, "GULA", got.Commodity.Selected)
				assert.Equal(t, []domain.ContributionRow{
					{Region: "SAMBAS", Contribution: 0.2, PriceChange: domain.Some(-1.0), Year: 2024, Month: 2},
					{Region: "SAMBAS", Contribution: 0, PriceChange: domain.Some(0.5), Year: 2024, Month: 1},
					{Region: "SINTANG", Contribution: -0.3, PriceChange: domain.Some(1.5), Year: 2024, Month: 2},
				}, got.Commodity.Rows)
			},
		},
		{
			name:  "commodity without contributions",
			path:  "/data/kalbar.csv",
			table: sampleTable(),
			opts:  usecase.ReportOptions{Regions: []string{"LANDAK"}, Commodity: "CABAI RAWIT"},
			check: func(t *testing.T, got *domain.DashboardReport) {
				assert.Equal(t, "CABAI RAWIT", got.Commodity.Selected)
				assert.False(t, got.Commodity.HasData)
				assert.Len(t, got.Commodity.Rows, 2)
			},
		},
		{
			name:  "per region trend",
			path:  "/data/kalbar.csv",
			table: sampleTable(),
			opts:  usecase.ReportOptions{TrendMode: domain.TrendPerRegion, MaxTrendRegions: 5},
			check: func(t *testing.T, got *domain.DashboardReport) {
				assert.Equal(t, domain.TrendPerRegion, got.Trend.Mode)
				require.Len(t, got.Trend.Series, 2)
				assert.Equal(t, "SAMBAS", got.Trend.Series[0].Name)
				assert.Equal(t, "LANDAK", got.Trend.Series[1].Name)
				assert.False(t, got.Trend.Series[1].Points[1].Value.Valid)
			},
		},
		{
			name:  "per region trend is capped",
			path:  "/data/kalbar.csv",
			table: sampleTable(),
			opts:  usecase.ReportOptions{TrendMode: domain.TrendPerRegion, MaxTrendRegions: 1},
			check: func(t *testing.T, got *domain.DashboardReport) {
				require.Len(t, got.Trend.Series, 1)
				assert.Equal(t, "SAMBAS", got.Trend.Series[0].Name)
			},
		},
		{
			name: "no usable values",
			path: "/data/empty.csv",
			table: &domain.PriceTable{Records: []domain.PriceRecord{
				record("MELAWI", 2024, 1, domain.None[float64](), "", domain.None[float64]()),
			}},
			check: func(t *testing.T, got *domain.DashboardReport) {
				assert.Nil(t, got.Summary)
				assert.Empty(t, got.PriceChanges)
				assert.Empty(t, got.Disparities)
				assert.Empty(t, got.Commodity.Known)
				assert.Empty(t, got.Commodity.Selected)
				assert.False(t, got.Commodity.HasData)
				assert.False(t, got.Trend.Available)
				assert.Equal(t, 1, got.Trend.Periods)
			},
		},
		{
			name:    "repository error",
			path:    "/data/missing.csv",
			repoErr: errors.New("failed to open price table"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mPriceRepo := mock_usecase.NewMockPriceRepository(ctrl)
			mPriceRepo.EXPECT().
				LoadTable(gomock.Any(), tt.path).
				Return(tt.table, tt.repoErr)

			uc := usecase.NewDashboardUseCase(mPriceRepo)
			got, err := uc.Generate(context.Background(), tt.path, tt.opts)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			tt.check(t, got)
		})
	}
}

func TestExportName(t *testing.T) {
	assert.Equal(t, "price_data_", usecase.ExportName(nil))
	assert.Equal(t, "price_data_KOTA PONTIANAK_KOTA SINGKAWANG", usecase.ExportName([]string{"KOTA PONTIANAK", "KOTA SINGKAWANG"}))
	assert.Equal(t, "price_data_A-B", usecase.ExportName([]string{"A/B"}))
}
