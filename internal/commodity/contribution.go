// Package commodity parses the encoded commodity-contribution field of the
// price table and answers aggregate queries over it.
//
// The field is a ";"-separated list of "NAME (value)" entries. Malformed input
// never fails a query: unusable entries are skipped and missing values read as 0.
package commodity

import (
	"math"
	"strconv"
	"strings"

	"price-dashboard/internal/domain"
)

const entrySeparator = ";"

// Entry is a parsed "NAME (value)" pair.
type Entry struct {
	Name  string
	Value float64
}

// ParseEntries returns the entries of field that carry both a name and a
// numeric value, in field order.
func ParseEntries(field string) []Entry {
	var entries []Entry
	for _, raw := range strings.Split(field, entrySeparator) {
		name, ok := entryName(raw)
		if !ok {
			continue
		}
		value, ok := entryValue(raw)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Name: name, Value: value})
	}
	return entries
}

// ListKnownCommodities collects commodity names across records in first-seen
// order without duplicates.
func ListKnownCommodities(records []domain.PriceRecord) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, record := range records {
		field, ok := record.Commodities.Get()
		if !ok {
			continue
		}
		for _, raw := range strings.Split(field, entrySeparator) {
			name, ok := entryName(raw)
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ExtractValue returns the contribution of target in field.
//
// The first entry whose raw text contains target decides the result, so a
// target of "BERAS" also matches "BERAS PREMIUM (2.0)" when that entry comes
// first. A missing field, no matching entry or an unparsable payload yield 0.
func ExtractValue(field domain.Optional[string], target string) float64 {
	s, ok := field.Get()
	if !ok {
		return 0
	}
	for _, raw := range strings.Split(s, entrySeparator) {
		if !strings.Contains(raw, target) {
			continue
		}
		value, ok := entryValue(raw)
		if !ok {
			return 0
		}
		return value
	}
	return 0
}

// AggregateContributions extracts target's contribution for every record,
// preserving input order.
func AggregateContributions(records []domain.PriceRecord, target string) []domain.ContributionRow {
	rows := make([]domain.ContributionRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, domain.ContributionRow{
			Region:       record.Region,
			Contribution: ExtractValue(record.Commodities, target),
			PriceChange:  record.PriceChange,
			Year:         record.Year,
			Month:        record.Month,
		})
	}
	return rows
}

// entryName returns the trimmed text before the first "(".
func entryName(raw string) (string, bool) {
	i := strings.Index(raw, "(")
	if i < 0 {
		return "", false
	}
	name := strings.TrimSpace(raw[:i])
	return name, name != ""
}

// entryValue parses the text between the first "(" and the following ")".
func entryValue(raw string) (float64, bool) {
	open := strings.Index(raw, "(")
	if open < 0 {
		return 0, false
	}
	rest := raw[open+1:]
	end := strings.Index(rest, ")")
	if end < 0 {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(rest[:end]), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
