package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fairyhunter13/product-analytics/internal/analyzer"
	"github.com/fairyhunter13/product-analytics/internal/datastore"
	"github.com/fairyhunter13/product-analytics/internal/errs"
	"github.com/fairyhunter13/product-analytics/internal/idgen"
	"github.com/fairyhunter13/product-analytics/internal/inventory"
	"github.com/fairyhunter13/product-analytics/internal/sales"
)

func TestIntegration_LoadAnalyzeReport(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "products.json")
	body := `{"products":[
		{"name":"Laptop","price":1000,"quantity":2,"category":"Electronics","stock":3},
		{"name":"Sticker","price":1.5},
		{"name":"Desk","price":250,"quantity":4,"stock":12}
	]}`
	if err := os.WriteFile(data, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	an := analyzer.New(nil)
	if err := an.Load(data); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := an.TotalRevenue(); got != 3000 {
		t.Fatalf("expected revenue 3000, got %v", got)
	}
	if got := an.Categorize()["Unknown"]; len(got) != 2 {
		t.Fatalf("expected 2 uncategorised products, got %d", len(got))
	}
	if low := an.LowStockItems(analyzer.DefaultLowStockThreshold); len(low) != 2 || low[0] != "Laptop" || low[1] != "Sticker" {
		t.Fatalf("unexpected low stock %v", low)
	}

	report := filepath.Join(dir, "sales_report.txt")
	if err := an.GenerateReport(report); err != nil {
		t.Fatalf("report: %v", err)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}
	text := string(b)
	for _, want := range []string{
		"PRODUCT SALES REPORT\n",
		"Total Products: 3\n",
		"Total Revenue: $3,000.00\n",
		"1. Laptop - $2,000.00\n",
		"2. Desk - $1,000.00\n",
		"3. Sticker - $0.00\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report missing %q:\n%s", want, text)
		}
	}
}

func TestIntegration_InventoryFromProducts(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "products.json")
	products := []struct {
		name  string
		stock int64
		price float64
	}{{"A", 0, 10}, {"B", 25, 2}, {"C", 7, 3}}
	gen := idgen.NewRandom(nil)
	inv := inventory.New()
	for _, p := range products {
		id, err := gen.Next()
		if err != nil {
			t.Fatal(err)
		}
		if err := inv.AddProduct(id, p.name, p.stock, p.price); err != nil {
			t.Fatal(err)
		}
	}
	if inv.Len() != 3 {
		t.Fatalf("expected 3 unique ids, got %d records", inv.Len())
	}
	if v := inv.InventoryValue(); v != 71 {
		t.Fatalf("expected 71, got %v", v)
	}
	rec, err := inv.FindByName("c")
	if err != nil {
		t.Fatal(err)
	}
	if err := inv.UpdateStock(rec.ID, -10); err != nil {
		t.Fatal(err)
	}
	if out := inv.OutOfStock(); len(out) != 2 || out[1] != "C" {
		t.Fatalf("unexpected out of stock %v", out)
	}

	// a missing catalogue degrades to an empty run
	ps, err := datastore.LoadProducts(data)
	if !errs.IsMalformed(err) || len(ps) != 0 {
		t.Fatalf("expected malformed + empty, got %v %d", err, len(ps))
	}
}

func TestIntegration_SalesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sales.yaml")
	body := "sales:\n" +
		"  - {date: \"2024-03-30\", amount: 100}\n" +
		"  - {date: \"2024-03-31\", amount: 100}\n" +
		"  - {date: \"2024-04-01\", amount: 300}\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	events, err := datastore.LoadSales(p)
	if err != nil {
		t.Fatal(err)
	}
	sa := sales.New()
	if err := sa.ProcessDailySales(events); err != nil {
		t.Fatal(err)
	}
	avgs, err := sa.MovingAverage(2)
	if err != nil {
		t.Fatal(err)
	}
	if avgs[2].Average != 200 {
		t.Fatalf("expected 200, got %v", avgs[2].Average)
	}
	months := sa.MonthlyTotals()
	rate, err := sales.GrowthRate(months[0].Total, months[1].Total)
	if err != nil || rate != 50 {
		t.Fatalf("expected 50%% growth, got %v %v", rate, err)
	}
	if peak := sa.PeakSalesDay(); peak.Date != "2024-04-01" {
		t.Fatalf("unexpected peak %+v", peak)
	}
}
