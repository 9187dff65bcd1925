// Package app wires the loaders, analytics and report writers into the
// commands exposed by the CLI.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/fairyhunter13/product-analytics/internal/analyzer"
	"github.com/fairyhunter13/product-analytics/internal/config"
	"github.com/fairyhunter13/product-analytics/internal/datastore"
	"github.com/fairyhunter13/product-analytics/internal/errs"
	"github.com/fairyhunter13/product-analytics/internal/idgen"
	"github.com/fairyhunter13/product-analytics/internal/inventory"
	"github.com/fairyhunter13/product-analytics/internal/model"
	"github.com/fairyhunter13/product-analytics/internal/obs"
	"github.com/fairyhunter13/product-analytics/internal/sales"
	"github.com/fairyhunter13/product-analytics/internal/utils"
)

// App runs one command against a configuration, printing to Out.
type App struct {
	Cfg config.Config
	Out io.Writer
	IDs idgen.Generator
	Log *slog.Logger
}

// New validates cfg and prepares an App.
func New(cfg config.Config, out io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ids, err := idgen.New(cfg.IDStrategy)
	if err != nil {
		return nil, err
	}
	return &App{
		Cfg: cfg,
		Out: out,
		IDs: ids,
		Log: obs.Logger.With("run_id", uuid.NewString()),
	}, nil
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.Out, format, args...)
}

// loadProducts returns an analyzer over the configured data file. A missing
// or malformed file is logged and yields an empty analyzer.
func (a *App) loadProducts() *analyzer.Analyzer {
	an := analyzer.New(nil)
	if err := an.Load(a.Cfg.DataFile); err != nil {
		class, _ := errs.ClassOf(err)
		a.Log.Warn("continuing_with_empty_products", "source", a.Cfg.DataFile, "class", class.String(), "error", err)
	}
	return an
}

// Report prints the headline statistics, writes the text report and, when
// configured, the xlsx workbook.
func (a *App) Report() error {
	an := a.loadProducts()

	a.printf("Total Revenue: %s\n", utils.FormatCurrency(an.TotalRevenue()))
	a.printf("Average Price: %s\n", utils.FormatCurrency(an.AveragePrice()))

	a.printf("\nTop %d Products:\n", a.Cfg.TopN)
	for _, p := range an.TopProducts(a.Cfg.TopN) {
		a.printf("  - %s: %s\n", p.Name, utils.FormatCurrency(p.Revenue))
	}

	if low := an.LowStockItems(int64(a.Cfg.LowStockThreshold)); len(low) > 0 {
		a.printf("\nLow Stock Items (< %d): %s\n", a.Cfg.LowStockThreshold, strings.Join(low, ", "))
	}

	if err := an.GenerateReport(a.Cfg.ReportFile); err != nil {
		return err
	}
	a.printf("\nReport generated: %s\n", a.Cfg.ReportFile)

	if a.Cfg.ExcelFile != "" {
		if err := an.ExportExcel(a.Cfg.ExcelFile, int64(a.Cfg.LowStockThreshold)); err != nil {
			return err
		}
		a.printf("Workbook generated: %s\n", a.Cfg.ExcelFile)
	}
	return nil
}

// Inventory registers every loaded product under a generated id and prints
// the inventory value, out-of-stock items and reorder suggestions. Products
// that fail validation are skipped and logged.
func (a *App) Inventory() error {
	an := a.loadProducts()
	inv, err := a.buildInventory(an.Products())
	if err != nil {
		return err
	}

	a.printf("\nTotal Inventory Value: %s\n", utils.FormatCurrency(inv.InventoryValue()))

	if out := inv.OutOfStock(); len(out) > 0 {
		a.printf("Out of Stock Items: %s\n", strings.Join(out, ", "))
	}

	if reorder := inv.ReorderNeeded(int64(a.Cfg.ReorderLevel)); len(reorder) > 0 {
		a.printf("\nItems needing reorder:\n")
		for _, item := range reorder {
			a.printf("  - %s: Current stock %d, Reorder %d\n", item.Name, item.CurrentStock, item.ReorderQuantity)
		}
	}
	return nil
}

func (a *App) buildInventory(products []model.Product) (*inventory.Manager, error) {
	inv := inventory.New()
	for _, p := range products {
		id, err := a.IDs.Next()
		if err != nil {
			return nil, fmt.Errorf("generate product id: %w", err)
		}
		if err := inv.AddProduct(id, p.GetName(), p.GetStock(), p.GetPrice()); err != nil {
			if errs.IsValidation(err) {
				a.Log.Warn("inventory_product_skipped", "name", p.GetName(), "error", err)
				continue
			}
			return nil, err
		}
	}
	a.Log.Info("inventory_built", "records", inv.Len(), "products", len(products))
	return inv, nil
}

// Sales loads the configured sale events and prints daily totals, the
// moving average, the peak day, monthly growth and the next-month forecast.
func (a *App) Sales() error {
	events, err := datastore.LoadSales(a.Cfg.SalesFile)
	if err != nil {
		a.Log.Warn("continuing_with_empty_sales", "source", a.Cfg.SalesFile, "error", err)
	}
	return a.printSales(events)
}

func (a *App) printSales(events []model.SaleEvent) error {
	sa := sales.New()
	if err := sa.ProcessDailySales(events); err != nil {
		return err
	}
	avgs, err := sa.MovingAverage(a.Cfg.MovingAverageWindow)
	if err != nil {
		return err
	}

	a.printf("\nDaily Sales (%d-day moving average):\n", a.Cfg.MovingAverageWindow)
	totals := sa.DailyTotals()
	for i, d := range totals {
		a.printf("  %s: %s (avg %s)\n", d.Date, utils.FormatCurrency(d.Total), utils.FormatCurrency(avgs[i].Average))
	}

	if peak := sa.PeakSalesDay(); peak.Found {
		a.printf("Peak Sales Day: %s (%s)\n", peak.Date, utils.FormatCurrency(peak.Amount))
	} else {
		a.printf("Peak Sales Day: no data\n")
	}

	months := sa.MonthlyTotals()
	if n := len(months); n >= 2 {
		prev, last := months[n-2], months[n-1]
		rate, err := sales.GrowthRate(prev.Total, last.Total)
		if err != nil {
			a.printf("Growth %s -> %s: undefined\n", prev.Month, last.Month)
		} else {
			a.printf("Growth %s -> %s: %.2f%%\n", prev.Month, last.Month, rate)
		}
	}
	a.printf("Next Month Forecast: %s\n", utils.FormatCurrency(sa.PredictNextMonth()))
	return nil
}
