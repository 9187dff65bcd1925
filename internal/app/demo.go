package app

import (
	"fmt"

	"github.com/fairyhunter13/product-analytics/internal/datastore"
	"github.com/fairyhunter13/product-analytics/internal/model"
)

// SampleProducts is the catalogue written by Demo.
func SampleProducts() []model.Product {
	return []model.Product{
		model.NewProduct("Laptop", 999.99, 50, "Electronics", 45),
		model.NewProduct("Mouse", 29.99, 200, "Electronics", 150),
		model.NewProduct("Keyboard", 79.99, 100, "Electronics", 5),
		model.NewProduct("Monitor", 299.99, 75, "Electronics", 30),
		model.NewProduct("Desk Chair", 199.99, 40, "Furniture", 0),
	}
}

// SampleSales spans the end of one month and the start of the next so the
// demo shows a growth rate and a forecast.
func SampleSales() []model.SaleEvent {
	return []model.SaleEvent{
		{Date: "2024-01-29", Amount: 1200},
		{Date: "2024-01-30", Amount: 950},
		{Date: "2024-01-30", Amount: 300},
		{Date: "2024-01-31", Amount: 1800},
		{Date: "2024-02-01", Amount: 2100},
		{Date: "2024-02-02", Amount: 1750},
		{Date: "2024-02-03", Amount: 2100},
	}
}

// Demo writes the sample catalogue to the configured data file, then runs
// the report, inventory and sales commands over sample data.
func (a *App) Demo() error {
	if err := datastore.SaveProducts(a.Cfg.DataFile, SampleProducts()); err != nil {
		return fmt.Errorf("write sample data: %w", err)
	}
	a.Log.Info("sample_data_written", "path", a.Cfg.DataFile)

	if err := a.Report(); err != nil {
		return err
	}
	if err := a.Inventory(); err != nil {
		return err
	}
	return a.printSales(SampleSales())
}
