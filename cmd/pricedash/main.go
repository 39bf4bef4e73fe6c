package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"price-dashboard/internal/config"
	"price-dashboard/internal/gateway"
	"price-dashboard/internal/usecase"
)

var version = "dev"

// app carries the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "pricedash",
		Short: "Regional price change dashboard",
		Long: `pricedash loads a regional price table (CSV or XLSX) and reports price
changes per region, price disparity, the contribution of a single commodity
and the price change trend over time.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/pricedash/config.yaml)")
	flags.String("data", "data.csv", "price table to load (.csv or .xlsx)")
	flags.String("sheet", "", "worksheet to read from an xlsx table (default: first sheet)")
	flags.StringSlice("region", nil, "region to include, repeatable (default: all regions)")
	flags.String("commodity", "", "commodity to analyse (default: first known commodity)")
	flags.String("trend-mode", "aggregate", "trend grouping (aggregate, region)")
	flags.Int("max-trend-regions", usecase.DefaultMaxTrendRegions, "maximum number of regions in the per-region trend")
	flags.Bool("show-values", true, "label chart bars with their values")
	flags.String("out", "out", "directory for charts and exports")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	for key, flag := range map[string]string{
		"data.path":         "data",
		"data.sheet":        "sheet",
		"filter.regions":    "region",
		"commodity":         "commodity",
		"trend.mode":        "trend-mode",
		"trend.max_regions": "max-trend-regions",
		"chart.show_values": "show-values",
		"output.dir":        "out",
		"logging.level":     "log-level",
		"logging.format":    "log-format",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(regionsCmd(a))
	rootCmd.AddCommand(commoditiesCmd(a))
	rootCmd.AddCommand(contributionCmd(a))
	rootCmd.AddCommand(reportCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		a.v.AddConfigPath(fmt.Sprintf("%s/.config/pricedash", home))
		a.v.AddConfigPath(".")
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("PRICEDASH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	config.SetupLogging(cmd.ErrOrStderr(), cfg)
	a.cfg = cfg

	slog.Debug("Configuration loaded", "config", a.v.ConfigFileUsed(), "data", cfg.DataPath)
	return nil
}

// useCase wires the repository into the dashboard use case.
func (a *app) useCase() *usecase.DashboardUseCase {
	repo := gateway.NewFilePriceRepository(a.cfg.Sheet)
	return usecase.NewDashboardUseCase(repo)
}

func (a *app) reportOptions() usecase.ReportOptions {
	return usecase.ReportOptions{
		Regions:         a.cfg.Regions,
		Commodity:       a.cfg.Commodity,
		TrendMode:       a.cfg.TrendMode,
		MaxTrendRegions: a.cfg.MaxTrendRegions,
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "pricedash", version)
		},
	}
}
