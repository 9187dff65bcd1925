package analyzer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/fairyhunter13/product-analytics/internal/fsutil"
	"github.com/fairyhunter13/product-analytics/internal/obs"
)

const (
	summarySheet = "Summary"
	rankingSheet = "Ranking"
)

// ExportExcel writes the report summary and the full revenue ranking to an
// xlsx workbook at path, replacing it atomically.
func (a *Analyzer) ExportExcel(path string, lowStockThreshold int64) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := a.fillWorkbook(f, lowStockThreshold); err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}

	err := fsutil.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	obs.Logger.Info("workbook_written", "path", path, "products", len(a.products))
	return nil
}

func (a *Analyzer) fillWorkbook(f *excelize.File, lowStockThreshold int64) error {
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(rankingSheet); err != nil {
		return err
	}

	r := a.BuildReport(ReportTopN)
	summary := [][]any{
		{"Generated", r.GeneratedAt.Format(TimestampLayout)},
		{"Total Products", r.TotalProducts},
		{"Total Revenue", r.TotalRevenue},
		{"Average Price", r.AveragePrice},
		{"Low Stock Items", len(a.LowStockItems(lowStockThreshold))},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := setRow(f, rankingSheet, 1, []any{"Rank", "Name", "Category", "Revenue"}); err != nil {
		return err
	}
	for i, p := range a.TopProducts(len(a.products)) {
		if err := setRow(f, rankingSheet, i+2, []any{i + 1, p.Name, p.Category, p.Revenue}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
