package domain

// TrendMode selects how the trend section groups observations.
type TrendMode string

const (
	TrendAggregate TrendMode = "aggregate"
	TrendPerRegion TrendMode = "region"
)

// RegionValue is one bar of a per-region ranking.
type RegionValue struct {
	Region string  `json:"region"`
	Value  float64 `json:"value"`
	Year   int     `json:"year"`
	Month  int     `json:"month"`
}

// SummaryMetrics holds the headline numbers of the price-change column.
type SummaryMetrics struct {
	Mean    float64     `json:"mean"`
	Highest RegionValue `json:"highest"`
	Lowest  RegionValue `json:"lowest"`
}

// ContributionRow carries one region's contribution for the selected commodity.
type ContributionRow struct {
	Region       string            `json:"region"`
	Contribution float64           `json:"contribution"`
	PriceChange  Optional[float64] `json:"price_change"`
	Year         int               `json:"year"`
	Month        int               `json:"month"`
}

// CommoditySection describes the contribution of a single commodity across regions.
type CommoditySection struct {
	Known    []string          `json:"known"`
	Selected string            `json:"selected"`
	Rows     []ContributionRow `json:"rows"`
	HasData  bool              `json:"has_data"`
}

// TrendPoint is the mean price change for one period.
type TrendPoint struct {
	Period Period            `json:"period"`
	Value  Optional[float64] `json:"value"`
}

// TrendSeries is a chronological line of trend points.
type TrendSeries struct {
	Name   string       `json:"name"`
	Points []TrendPoint `json:"points"`
}

// TrendSection holds the time-series view; Available is false when the data
// covers a single period or none.
type TrendSection struct {
	Mode      TrendMode     `json:"mode"`
	Periods   int           `json:"periods"`
	Available bool          `json:"available"`
	Series    []TrendSeries `json:"series"`
}

// DashboardReport is the top-level structure handed to the presenters.
type DashboardReport struct {
	Regions      []string         `json:"regions"`
	RecordCount  int              `json:"record_count"`
	Summary      *SummaryMetrics  `json:"summary"` // nil when no price change is available
	PriceChanges []RegionValue    `json:"price_changes"`
	Disparities  []RegionValue    `json:"disparities"`
	Commodity    CommoditySection `json:"commodity"`
	Trend        TrendSection     `json:"trend"`
	ExportName   string           `json:"export_name"`
}
