package commodity

import (
	"math"

	"price-dashboard/internal/domain"
)

// Summary holds the arithmetic mean and the extremes of a column.
// MaxIndex and MinIndex point into the slice given to SummaryStats.
type Summary struct {
	Mean     float64
	Max      float64
	MaxIndex int
	Min      float64
	MinIndex int
}

// SummaryStats summarizes the present values of a column. It returns false
// when the column is empty or every value is missing.
func SummaryStats(values []domain.Optional[float64]) (Summary, bool) {
	var (
		s     Summary
		sum   float64
		count int
	)
	for i, v := range values {
		x, ok := v.Get()
		if !ok || math.IsNaN(x) {
			continue
		}
		if count == 0 || x > s.Max {
			s.Max, s.MaxIndex = x, i
		}
		if count == 0 || x < s.Min {
			s.Min, s.MinIndex = x, i
		}
		sum += x
		count++
	}
	if count == 0 {
		return Summary{}, false
	}
	s.Mean = sum / float64(count)
	return s, true
}
