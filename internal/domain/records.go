package domain

import "time"

// PriceRecord is one region/period observation from the source table.
type PriceRecord struct {
	Region      string            `json:"region"`
	Province    string            `json:"province"`
	Year        int               `json:"year"`
	Month       int               `json:"month"`
	Week        string            `json:"week"`
	PriceChange Optional[float64] `json:"price_change"` // percent
	Commodities Optional[string]  `json:"commodities"`  // e.g. "BERAS (3.87); GULA (0.30)"
	Disparity   Optional[float64] `json:"disparity"`

	// Raw keeps the source cells in header order for pass-through export.
	Raw []string `json:"-"`
}

// Period returns the record's year and month, or false when either is unusable.
func (r PriceRecord) Period() (Period, bool) {
	if r.Year <= 0 || r.Month < 1 || r.Month > 12 {
		return Period{}, false
	}
	return Period{Year: r.Year, Month: r.Month}, true
}

// Period identifies a month of observations.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Time returns the first day of the period in UTC.
func (p Period) Time() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Before reports whether p is earlier than q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

// String formats the period as "January 2024".
func (p Period) String() string {
	return p.Time().Format("January 2006")
}

// PriceTable is the loaded, read-only dataset.
type PriceTable struct {
	Columns []string      `json:"columns"`
	Records []PriceRecord `json:"records"`
}

// Regions lists distinct regions in first-seen order.
func (t *PriceTable) Regions() []string {
	seen := make(map[string]bool)
	regions := make([]string, 0)
	for _, r := range t.Records {
		if r.Region == "" || seen[r.Region] {
			continue
		}
		seen[r.Region] = true
		regions = append(regions, r.Region)
	}
	return regions
}

// Filter returns a table holding only the records of the given regions.
// An empty selection keeps every record.
func (t *PriceTable) Filter(regions []string) *PriceTable {
	if len(regions) == 0 {
		return t
	}
	selected := make(map[string]bool, len(regions))
	for _, r := range regions {
		selected[r] = true
	}
	filtered := &PriceTable{Columns: t.Columns, Records: make([]PriceRecord, 0)}
	for _, r := range t.Records {
		if selected[r.Region] {
			filtered.Records = append(filtered.Records, r)
		}
	}
	return filtered
}
