// Package main is the product-analytics command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/product-analytics/internal/app"
	"github.com/fairyhunter13/product-analytics/internal/config"
	"github.com/fairyhunter13/product-analytics/internal/obs"
)

var version = "0.1.0"

type flags struct {
	configFile   string
	logLevel     string
	logFormat    string
	input        string
	output       string
	xlsx         string
	sales        string
	threshold    int
	reorderLevel int
	window       int
	topN         int
	idStrategy   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:   "product-analytics",
		Short: "Product revenue, inventory and sales analytics",
		Long: `product-analytics loads a JSON product list, computes revenue and
stock statistics, writes a text report and analyses dated sales.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "Config file (yaml or json)")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&f.logFormat, "log-format", "", "Log format: json or text")
	pf.StringVarP(&f.input, "input", "i", "", "Product list file or glob (e.g. 'data/**/*.json')")
	pf.StringVar(&f.idStrategy, "id-strategy", "", "Product id strategy: sequential, random, uuid")

	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(demoCmd(f))
	rootCmd.AddCommand(reportCmd(f))
	rootCmd.AddCommand(inventoryCmd(f))
	rootCmd.AddCommand(salesCmd(f))
	return rootCmd
}

// setup loads configuration, applies flags that were set explicitly and
// initialises logging.
func setup(cmd *cobra.Command, f *flags) (*app.App, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if changed("input") {
		cfg.DataFile = f.input
	}
	if changed("id-strategy") {
		cfg.IDStrategy = f.idStrategy
	}
	if changed("output") {
		cfg.ReportFile = f.output
	}
	if changed("xlsx") {
		cfg.ExcelFile = f.xlsx
	}
	if changed("sales") {
		cfg.SalesFile = f.sales
	}
	if changed("threshold") {
		cfg.LowStockThreshold = f.threshold
	}
	if changed("reorder-level") {
		cfg.ReorderLevel = f.reorderLevel
	}
	if changed("window") {
		cfg.MovingAverageWindow = f.window
	}
	if changed("top") {
		cfg.TopN = f.topN
	}

	obs.InitLogger(cfg.LogLevel, cfg.LogFormat)
	return app.New(cfg, cmd.OutOrStdout())
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "product-analytics version %s\n", version)
		},
	}
}

func addReportFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Report destination")
	cmd.Flags().StringVar(&f.xlsx, "xlsx", "", "Also write an xlsx workbook here")
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, "Low stock threshold")
	cmd.Flags().IntVar(&f.topN, "top", 0, "Number of products to list on screen")
}

func addInventoryFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().IntVar(&f.reorderLevel, "reorder-level", 0, "Reorder level")
}

func addSalesFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().IntVarP(&f.window, "window", "w", 0, "Moving average window in days")
}

func demoCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write sample data and run every analysis over it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, f)
			if err != nil {
				return err
			}
			return a.Demo()
		},
	}
	addReportFlags(cmd, f)
	addInventoryFlags(cmd, f)
	addSalesFlags(cmd, f)
	return cmd
}

func reportCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute product statistics and write the sales report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, f)
			if err != nil {
				return err
			}
			return a.Report()
		},
	}
	addReportFlags(cmd, f)
	return cmd
}

func inventoryCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show inventory value, out-of-stock items and reorder needs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, f)
			if err != nil {
				return err
			}
			return a.Inventory()
		},
	}
	addInventoryFlags(cmd, f)
	return cmd
}

func salesCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sales [file]",
		Short: "Analyse dated sale events from a JSON or YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.sales = args[0]
				if err := cmd.Flags().Set("sales", args[0]); err != nil {
					return err
				}
			}
			a, err := setup(cmd, f)
			if err != nil {
				return err
			}
			return a.Sales()
		},
	}
	cmd.Flags().StringVar(&f.sales, "sales", "", "Sale events file")
	addSalesFlags(cmd, f)
	return cmd
}
