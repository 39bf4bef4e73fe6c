package presenter

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"price-dashboard/internal/domain"
)

// ErrNoChartData is returned when a section has nothing to draw.
var ErrNoChartData = errors.New("no data to chart")

var (
	positiveBar  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	negativeBar  = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	highlightBar = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// ChartRenderer draws the dashboard sections as PNG charts.
type ChartRenderer struct {
	showValues bool
	width      vg.Length
	height     vg.Length
}

// NewChartRenderer creates a renderer; showValues adds a label above every bar.
func NewChartRenderer(showValues bool) *ChartRenderer {
	return &ChartRenderer{
		showValues: showValues,
		width:      14 * vg.Inch,
		height:     7 * vg.Inch,
	}
}

// PriceChangeChart plots the price change per region, rising and falling
// regions in different colours.
func (c *ChartRenderer) PriceChangeChart(values []domain.RegionValue) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, ErrNoChartData
	}
	labels, data := splitRegionValues(values)
	return c.barChart("Price Change per Region", "Price Change (%)", labels, data, "%.2f%%", true)
}

// DisparityChart plots the price disparity index per region.
func (c *ChartRenderer) DisparityChart(values []domain.RegionValue) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, ErrNoChartData
	}
	labels, data := splitRegionValues(values)
	return c.barChart("Price Disparity between Regions", "Disparity (%)", labels, data, "%.2f", false)
}

// ContributionChart plots the contribution of the selected commodity per region.
func (c *ChartRenderer) ContributionChart(s domain.CommoditySection) (*plot.Plot, error) {
	if !s.HasData {
		return nil, ErrNoChartData
	}
	labels := make([]string, len(s.Rows))
	data := make([]float64, len(s.Rows))
	for i, row := range s.Rows {
		labels[i] = row.Region
		data[i] = row.Contribution
	}
	return c.barChart(fmt.Sprintf("Contribution of %s to the Price Change", s.Selected), "Contribution", labels, data, "%.2f", true)
}

// TrendChart plots every trend series against time with a dashed zero line.
func (c *ChartRenderer) TrendChart(s domain.TrendSection) (*plot.Plot, error) {
	if !s.Available {
		return nil, ErrNoChartData
	}

	p := plot.New()
	p.Title.Text = "Price Change Trend"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Period"
	p.Y.Label.Text = "Price Change (%)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "Jan 2006"}
	p.Add(plotter.NewGrid())

	drawn := 0
	for i, series := range s.Series {
		xys := make(plotter.XYs, 0, len(series.Points))
		for _, point := range series.Points {
			if v, ok := point.Value.Get(); ok {
				xys = append(xys, plotter.XY{X: float64(point.Period.Time().Unix()), Y: v})
			}
		}
		if len(xys) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to build trend line %s: %w", series.Name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.GlyphStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(4)
		p.Add(line, points)
		p.Legend.Add(series.Name, line, points)

		if c.showValues {
			annotations, err := valueLabels(xys, "%.2f%%", 0)
			if err != nil {
				return nil, err
			}
			p.Add(annotations)
		}
		drawn++
	}
	if drawn == 0 {
		return nil, ErrNoChartData
	}

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = color.Gray{Y: 128}
	zero.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(zero)
	p.Legend.Top = true

	return p, nil
}

// WritePNG encodes p as a PNG image.
func (c *ChartRenderer) WritePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(c.width, c.height, "png")
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}
	return nil
}

// SaveAll writes one PNG per section that has data into dir and returns the
// written paths.
func (c *ChartRenderer) SaveAll(dir string, report *domain.DashboardReport) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}

	charts := []struct {
		file  string
		build func() (*plot.Plot, error)
	}{
		{"price_change.png", func() (*plot.Plot, error) { return c.PriceChangeChart(report.PriceChanges) }},
		{"disparity.png", func() (*plot.Plot, error) { return c.DisparityChart(report.Disparities) }},
		{"contribution.png", func() (*plot.Plot, error) { return c.ContributionChart(report.Commodity) }},
		{"trend.png", func() (*plot.Plot, error) { return c.TrendChart(report.Trend) }},
	}

	var written []string
	for _, chart := range charts {
		p, err := chart.build()
		if errors.Is(err, ErrNoChartData) {
			slog.Warn("Skipping chart without data", "chart", chart.file)
			continue
		}
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, chart.file)
		if err := p.Save(c.width, c.height, path); err != nil {
			return written, fmt.Errorf("failed to save chart %s: %w", path, err)
		}
		slog.Info("Saved chart", "path", path)
		written = append(written, path)
	}
	return written, nil
}

func (c *ChartRenderer) barChart(title, yLabel string, labels []string, data []float64, format string, signed bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Region"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	positive := make(plotter.Values, len(data))
	negative := make(plotter.Values, len(data))
	hasNegative := false
	for i, v := range data {
		if v < 0 && signed {
			negative[i] = v
			hasNegative = true
		} else {
			positive[i] = v
		}
	}

	width := vg.Points(20)
	bars, err := plotter.NewBarChart(positive, width)
	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = highlightBar
	if signed {
		bars.Color = positiveBar
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	if hasNegative {
		negBars, err := plotter.NewBarChart(negative, width)
		if err != nil {
			return nil, fmt.Errorf("failed to build bar chart: %w", err)
		}
		negBars.Color = negativeBar
		negBars.LineStyle.Width = vg.Length(0)
		p.Add(negBars)
	}

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	minV, maxV := bounds(data)
	p.Y.Min, p.Y.Max = paddedRange(minV, maxV)

	if c.showValues {
		xys := make(plotter.XYs, len(data))
		for i, v := range data {
			xys[i] = plotter.XY{X: float64(i), Y: v}
		}
		annotations, err := valueLabels(xys, format, (p.Y.Max-p.Y.Min)*0.02)
		if err != nil {
			return nil, err
		}
		p.Add(annotations)
	}
	return p, nil
}

func valueLabels(xys plotter.XYs, format string, offset float64) (*plotter.Labels, error) {
	positions := make([]plotter.XY, len(xys))
	text := make([]string, len(xys))
	for i, xy := range xys {
		y := xy.Y + offset
		if xy.Y < 0 {
			y = xy.Y - offset
		}
		positions[i] = plotter.XY{X: xy.X, Y: y}
		text[i] = fmt.Sprintf(format, xy.Y)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: positions, Labels: text})
	if err != nil {
		return nil, fmt.Errorf("failed to build value labels: %w", err)
	}
	return labels, nil
}

func splitRegionValues(values []domain.RegionValue) ([]string, []float64) {
	labels := make([]string, len(values))
	data := make([]float64, len(values))
	for i, v := range values {
		labels[i] = v.Region
		data[i] = v.Value
	}
	return labels, data
}

func bounds(data []float64) (float64, float64) {
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, v := range data {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	return minV, maxV
}

// paddedRange keeps zero on the axis and leaves 15% headroom for labels.
func paddedRange(minV, maxV float64) (float64, float64) {
	pad := (maxV - minV) * 0.15
	if pad == 0 {
		pad = math.Max(math.Abs(maxV)*0.15, 1)
	}
	low, high := 0.0, 0.0
	if minV < 0 {
		low = minV - pad
	}
	if maxV > 0 {
		high = maxV + pad
	}
	if high == low {
		high = low + pad
	}
	return low, high
}
