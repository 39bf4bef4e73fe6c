package presenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"price-dashboard/internal/domain"
)

// NotAvailable is shown wherever a metric cannot be computed.
const NotAvailable = "Data not available"

// TerminalRenderer writes a report as styled text.
type TerminalRenderer struct {
	w io.Writer
}

// NewTerminalRenderer creates a renderer writing to w.
func NewTerminalRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{w: w}
}

// Render writes every section of the report.
func (r *TerminalRenderer) Render(report *domain.DashboardReport) error {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Price Change Analysis"))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d records across %d regions", report.RecordCount, len(report.Regions))))
	b.WriteString("\n")

	b.WriteString(section("Summary"))
	b.WriteString(summaryCards(report.Summary))
	b.WriteString("\n")

	b.WriteString(section("Price change per region"))
	if len(report.PriceChanges) == 0 {
		b.WriteString(warning("Not enough data to show price changes."))
	} else {
		b.WriteString(rankingTable("Price change (%)", report.PriceChanges, "%.2f%%"))
	}

	b.WriteString(section("Price disparity between regions"))
	if len(report.Disparities) == 0 {
		b.WriteString(warning("No price disparity data available."))
	} else {
		b.WriteString(rankingTable("Disparity", report.Disparities, "%.2f"))
	}

	b.WriteString(section("Commodity contribution"))
	b.WriteString(commodityBlock(report.Commodity))

	b.WriteString(section("Price change trend"))
	b.WriteString(trendBlock(report.RecordCount, report.Trend))

	_, err := io.WriteString(r.w, b.String())
	return err
}

// RenderList writes one name per line under a header.
func (r *TerminalRenderer) RenderList(title string, names []string) error {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")
	if len(names) == 0 {
		b.WriteString(warning(NotAvailable))
	}
	for _, n := range names {
		b.WriteString("  " + n + "\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

// RenderCommodity writes the contribution section only.
func (r *TerminalRenderer) RenderCommodity(s domain.CommoditySection) error {
	_, err := io.WriteString(r.w, section("Commodity contribution")+commodityBlock(s))
	return err
}

func section(title string) string {
	return HeaderStyle.Render(title) + "\n"
}

func warning(msg string) string {
	return WarningStyle.Render(msg) + "\n"
}

func summaryCards(s *domain.SummaryMetrics) string {
	if s == nil {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			card("Average price change", NotAvailable, ""),
			card("Highest price change", NotAvailable, ""),
			card("Lowest price change", NotAvailable, ""),
		) + "\n"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Average price change", signed(s.Mean, "%.2f%%"), ""),
		card("Highest price change", signed(s.Highest.Value, "%.2f%%"), s.Highest.Region),
		card("Lowest price change", signed(s.Lowest.Value, "%.2f%%"), s.Lowest.Region),
	) + "\n"
}

func card(label, value, note string) string {
	body := SubtleStyle.Render(label) + "\n" + MetricStyle.Render(value)
	if note != "" {
		body += "\n" + note
	}
	return CardStyle.Render(body)
}

func signed(v float64, format string) string {
	s := fmt.Sprintf(format, v)
	if v < 0 {
		return negativeStyle.Render(s)
	}
	return positiveStyle.Render(s)
}

func periodLabel(year, month int) string {
	p, ok := domain.PriceRecord{Year: year, Month: month}.Period()
	if !ok {
		return "-"
	}
	return p.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
}

func rankingTable(valueHeader string, values []domain.RegionValue, format string) string {
	t := newTable("Region", "Period", valueHeader)
	for _, v := range values {
		t.Row(v.Region, periodLabel(v.Year, v.Month), fmt.Sprintf(format, v.Value))
	}
	return t.String() + "\n"
}

func commodityBlock(s domain.CommoditySection) string {
	if s.Selected == "" {
		return warning("No commodity data available.")
	}
	if !s.HasData {
		return warning(fmt.Sprintf("No contribution data available for %s.", s.Selected))
	}

	t := newTable("Region", "Contribution", "Price change (%)", "Period")
	for _, row := range s.Rows {
		change := "-"
		if v, ok := row.PriceChange.Get(); ok {
			change = fmt.Sprintf("%.2f%%", v)
		}
		t.Row(row.Region, fmt.Sprintf("%.2f", row.Contribution), change, periodLabel(row.Year, row.Month))
	}
	return SubtleStyle.Render("Contribution of "+s.Selected+" to the price change") + "\n" + t.String() + "\n"
}

func trendBlock(records int, s domain.TrendSection) string {
	if records == 0 {
		return warning("Not enough data for trend analysis.")
	}
	if !s.Available {
		return warning("More than one period is needed for trend analysis.")
	}
	if len(s.Series) == 0 {
		return warning("Every selected region has fewer than two periods.")
	}

	var b strings.Builder
	for _, series := range s.Series {
		t := newTable("Period", series.Name)
		for _, p := range series.Points {
			value := "-"
			if v, ok := p.Value.Get(); ok {
				value = fmt.Sprintf("%.2f%%", v)
			}
			t.Row(p.Period.String(), value)
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	return b.String()
}
