package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"price-dashboard/internal/commodity"
	"price-dashboard/internal/domain"
	"price-dashboard/internal/gateway"
	"price-dashboard/internal/presenter"
)

// tableExporter writes the filtered table in one file format.
type tableExporter interface {
	Export(w io.Writer, table *domain.PriceTable, commodity domain.CommoditySection) error
}

func regionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the regions in the price table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.useCase().LoadTable(cmd.Context(), a.cfg.DataPath)
			if err != nil {
				return err
			}
			return presenter.NewTerminalRenderer(cmd.OutOrStdout()).RenderList("Regions", table.Regions())
		},
	}
}

func commoditiesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "commodities",
		Short: "List the commodities named in the selected regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := a.useCase().LoadTable(cmd.Context(), a.cfg.DataPath)
			if err != nil {
				return err
			}
			names := commodity.ListKnownCommodities(table.Filter(a.cfg.Regions).Records)
			return presenter.NewTerminalRenderer(cmd.OutOrStdout()).RenderList("Commodities", names)
		},
	}
}

func contributionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contribution [commodity]",
		Short: "Show the contribution of one commodity per region",
		Long: `Show how much one commodity contributed to the price change of every
selected region. Without an argument the --commodity setting is used, and
without that the first commodity found in the data.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := a.useCase()
			table, err := uc.LoadTable(cmd.Context(), a.cfg.DataPath)
			if err != nil {
				return err
			}
			opts := a.reportOptions()
			if len(args) == 1 {
				opts.Commodity = args[0]
			}
			report := uc.BuildReport(table, opts)
			return presenter.NewTerminalRenderer(cmd.OutOrStdout()).RenderCommodity(report.Commodity)
		},
	}
}

func reportCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		charts bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the full price dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.useCase().Generate(cmd.Context(), a.cfg.DataPath, a.reportOptions())
			if err != nil {
				return err
			}

			if asJSON {
				output, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to generate JSON report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(output))
			} else if err := presenter.NewTerminalRenderer(cmd.OutOrStdout()).Render(report); err != nil {
				return err
			}

			if !charts {
				return nil
			}
			written, err := presenter.NewChartRenderer(a.cfg.ShowValues).SaveAll(a.cfg.OutputDir, report)
			if err != nil {
				return err
			}
			slog.Info("Charts written", "dir", a.cfg.OutputDir, "count", len(written))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&charts, "charts", false, "save PNG charts to the output directory")
	return cmd
}

func exportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered price table",
		Long: `Export the rows of the selected regions to the output directory as
price_data_<regions>.csv or price_data_<regions>.xlsx. The xlsx workbook also
carries a sheet with the contribution of the selected commodity.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exporter, err := exporterFor(format)
			if err != nil {
				return err
			}

			uc := a.useCase()
			table, err := uc.LoadTable(cmd.Context(), a.cfg.DataPath)
			if err != nil {
				return err
			}
			report := uc.BuildReport(table, a.reportOptions())

			if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", a.cfg.OutputDir, err)
			}
			path := filepath.Join(a.cfg.OutputDir, report.ExportName+"."+format)
			if err := writeExport(path, exporter, table.Filter(a.cfg.Regions), report.Commodity); err != nil {
				return err
			}

			slog.Info("Exported price table", "path", path, "records", report.RecordCount)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "export format (csv, xlsx)")
	return cmd
}

func exporterFor(format string) (tableExporter, error) {
	switch format {
	case "csv":
		return gateway.NewCSVExporter(), nil
	case "xlsx":
		return gateway.NewXLSXExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", gateway.ErrUnsupportedFormat, format)
	}
}

func writeExport(path string, exporter tableExporter, table *domain.PriceTable, section domain.CommoditySection) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := exporter.Export(file, table, section); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
