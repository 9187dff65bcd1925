package analyzer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fairyhunter13/product-analytics/internal/fsutil"
	"github.com/fairyhunter13/product-analytics/internal/model"
	"github.com/fairyhunter13/product-analytics/internal/obs"
	"github.com/fairyhunter13/product-analytics/internal/utils"
)

// ReportTopN is the number of ranked products listed in the report.
const ReportTopN = 5

// TimestampLayout formats the report's Generated line.
const TimestampLayout = "2006-01-02 15:04:05"

var banner = strings.Repeat("=", 50)

// Report is the content of the sales report, independent of its rendering.
type Report struct {
	GeneratedAt   time.Time
	TotalProducts int
	TotalRevenue  float64
	AveragePrice  float64
	Top           []model.RankedProduct
}

// BuildReport snapshots the statistics for the report, listing up to topN
// products.
func (a *Analyzer) BuildReport(topN int) Report {
	return Report{
		GeneratedAt:   a.now(),
		TotalProducts: len(a.products),
		TotalRevenue:  a.TotalRevenue(),
		AveragePrice:  a.AveragePrice(),
		Top:           a.TopProducts(topN),
	}
}

// WriteTo renders the report in its fixed text layout.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(banner + "\n")
	b.WriteString("PRODUCT SALES REPORT\n")
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format(TimestampLayout))

	fmt.Fprintf(&b, "Total Products: %d\n", r.TotalProducts)
	fmt.Fprintf(&b, "Total Revenue: %s\n", utils.FormatCurrency(r.TotalRevenue))
	fmt.Fprintf(&b, "Average Price: %s\n\n", utils.FormatCurrency(r.AveragePrice))

	fmt.Fprintf(&b, "Top %d Products by Revenue:\n", ReportTopN)
	for i, p := range r.Top {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, p.Name, utils.FormatCurrency(p.Revenue))
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// String renders the report as text.
func (r Report) String() string {
	var b strings.Builder
	_, _ = r.WriteTo(&b)
	return b.String()
}

// GenerateReport writes the report to path. The destination is replaced
// atomically; on failure any previous report is left as it was.
func (a *Analyzer) GenerateReport(path string) error {
	r := a.BuildReport(ReportTopN)
	err := fsutil.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		_, err := r.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	obs.Logger.Info("report_written", "path", path, "products", r.TotalProducts, "total_revenue", r.TotalRevenue)
	return nil
}
