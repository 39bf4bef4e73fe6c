package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"price-dashboard/internal/commodity"
	"price-dashboard/internal/domain"
)

// DefaultMaxTrendRegions caps the per-region trend so the chart stays readable.
const DefaultMaxTrendRegions = 5

// ReportOptions selects what the dashboard shows.
type ReportOptions struct {
	Regions         []string // empty selects every region
	Commodity       string   // empty selects the first known commodity
	TrendMode       domain.TrendMode
	MaxTrendRegions int
}

// DashboardUseCase orchestrates loading the price table and building the report.
type DashboardUseCase struct {
	repo PriceRepository
}

// NewDashboardUseCase creates a new instance of the usecase.
func NewDashboardUseCase(repo PriceRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// LoadTable loads the full, unfiltered price table.
func (uc *DashboardUseCase) LoadTable(ctx context.Context, path string) (*domain.PriceTable, error) {
	table, err := uc.repo.LoadTable(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not load price table: %w", err)
	}
	slog.Info("Loaded price table", "path", path, "records", len(table.Records), "regions", len(table.Regions()))
	return table, nil
}

// Generate loads the table at path and builds the dashboard report.
func (uc *DashboardUseCase) Generate(ctx context.Context, path string, opts ReportOptions) (*domain.DashboardReport, error) {
	table, err := uc.LoadTable(ctx, path)
	if err != nil {
		return nil, err
	}
	return uc.BuildReport(table, opts), nil
}

// BuildReport computes every dashboard section over the regions selected in opts.
func (uc *DashboardUseCase) BuildReport(table *domain.PriceTable, opts ReportOptions) *domain.DashboardReport {
	regions := opts.Regions
	if len(regions) == 0 {
		regions = table.Regions()
	}
	filtered := table.Filter(opts.Regions)

	report := &domain.DashboardReport{
		Regions:      regions,
		RecordCount:  len(filtered.Records),
		Summary:      summarize(filtered.Records),
		PriceChanges: rankBy(filtered.Records, func(r domain.PriceRecord) domain.Optional[float64] { return r.PriceChange }),
		Disparities:  rankBy(filtered.Records, func(r domain.PriceRecord) domain.Optional[float64] { return r.Disparity }),
		Commodity:    commoditySection(filtered.Records, opts.Commodity),
		Trend:        trendSection(filtered.Records, regions, opts),
		ExportName:   ExportName(regions),
	}

	slog.Info("Built dashboard report",
		"records", report.RecordCount,
		"regions", len(regions),
		"commodity", report.Commodity.Selected,
		"trend_periods", report.Trend.Periods)
	return report
}

// ExportName is the base file name for exports of the given region selection.
func ExportName(regions []string) string {
	name := "price_data_" + strings.Join(regions, "_")
	return strings.NewReplacer("/", "-", "\\", "-").Replace(name)
}

func summarize(records []domain.PriceRecord) *domain.SummaryMetrics {
	values := make([]domain.Optional[float64], len(records))
	for i, r := range records {
		values[i] = r.PriceChange
	}
	stats, ok := commodity.SummaryStats(values)
	if !ok {
		return nil
	}
	return &domain.SummaryMetrics{
		Mean:    stats.Mean,
		Highest: regionValue(records[stats.MaxIndex], stats.Max),
		Lowest:  regionValue(records[stats.MinIndex], stats.Min),
	}
}

// rankBy returns the records carrying a value, largest first.
func rankBy(records []domain.PriceRecord, value func(domain.PriceRecord) domain.Optional[float64]) []domain.RegionValue {
	ranked := make([]domain.RegionValue, 0, len(records))
	for _, r := range records {
		if v, ok := value(r).Get(); ok {
			ranked = append(ranked, regionValue(r, v))
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	return ranked
}

func regionValue(r domain.PriceRecord, v float64) domain.RegionValue {
	return domain.RegionValue{Region: r.Region, Value: v, Year: r.Year, Month: r.Month}
}

func commoditySection(records []domain.PriceRecord, selected string) domain.CommoditySection {
	section := domain.CommoditySection{
		Known: commodity.ListKnownCommodities(records),
		Rows:  make([]domain.ContributionRow, 0),
	}
	if selected == "" {
		if len(section.Known) == 0 {
			return section
		}
		selected = section.Known[0]
	} else if !slices.Contains(section.Known, selected) {
		slog.Warn("Selected commodity not found in data", "commodity", selected)
	}
	section.Selected = selected

	section.Rows = commodity.AggregateContributions(records, selected)
	sort.SliceStable(section.Rows, func(i, j int) bool {
		return section.Rows[i].Contribution > section.Rows[j].Contribution
	})
	for _, row := range section.Rows {
		if row.Contribution != 0 {
			section.HasData = true
			break
		}
	}
	return section
}

func trendSection(records []domain.PriceRecord, regions []string, opts ReportOptions) domain.TrendSection {
	mode := opts.TrendMode
	if mode == "" {
		mode = domain.TrendAggregate
	}
	section := domain.TrendSection{
		Mode:    mode,
		Periods: countPeriods(records),
		Series:  make([]domain.TrendSeries, 0),
	}
	section.Available = section.Periods > 1
	if !section.Available {
		return section
	}

	switch mode {
	case domain.TrendPerRegion:
		section.Series = regionTrends(records, regions, opts.MaxTrendRegions)
	default:
		section.Series = []domain.TrendSeries{aggregateTrend(records)}
	}
	return section
}

func countPeriods(records []domain.PriceRecord) int {
	seen := make(map[domain.Period]bool)
	for _, r := range records {
		if p, ok := r.Period(); ok {
			seen[p] = true
		}
	}
	return len(seen)
}

// aggregateTrend averages the price change of every region per period.
func aggregateTrend(records []domain.PriceRecord) domain.TrendSeries {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[domain.Period]*bucket)
	periods := make([]domain.Period, 0)
	for _, r := range records {
		p, ok := r.Period()
		if !ok {
			continue
		}
		b, seen := buckets[p]
		if !seen {
			b = &bucket{}
			buckets[p] = b
			periods = append(periods, p)
		}
		if v, ok := r.PriceChange.Get(); ok {
			b.sum += v
			b.count++
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	series := domain.TrendSeries{Name: "Average", Points: make([]domain.TrendPoint, 0, len(periods))}
	for _, p := range periods {
		point := domain.TrendPoint{Period: p}
		if b := buckets[p]; b.count > 0 {
			point.Value = domain.Some(b.sum / float64(b.count))
		}
		series.Points = append(series.Points, point)
	}
	return series
}

// regionTrends draws one line per region; regions with fewer than two
// observations are left out.
func regionTrends(records []domain.PriceRecord, regions []string, limit int) []domain.TrendSeries {
	if limit <= 0 {
		limit = DefaultMaxTrendRegions
	}
	if len(regions) > limit {
		slog.Warn("Too many regions for the trend chart, keeping the first ones",
			"selected", len(regions),
			"limit", limit)
		regions = regions[:limit]
	}

	series := make([]domain.TrendSeries, 0, len(regions))
	for _, region := range regions {
		var points []domain.TrendPoint
		for _, r := range records {
			if r.Region != region {
				continue
			}
			if p, ok := r.Period(); ok {
				points = append(points, domain.TrendPoint{Period: p, Value: r.PriceChange})
			}
		}
		if len(points) < 2 {
			slog.Debug("Skipping region with too few periods", "region", region, "points", len(points))
			continue
		}
		sort.SliceStable(points, func(i, j int) bool { return points[i].Period.Before(points[j].Period) })
		series = append(series, domain.TrendSeries{Name: region, Points: points})
	}
	return series
}
