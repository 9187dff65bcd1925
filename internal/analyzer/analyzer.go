// Package analyzer turns a product list into revenue and price statistics,
// rankings, stock alerts and a text report.
package analyzer

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/product-analytics/internal/datastore"
	"github.com/fairyhunter13/product-analytics/internal/errs"
	"github.com/fairyhunter13/product-analytics/internal/model"
	"github.com/fairyhunter13/product-analytics/internal/obs"
)

// DefaultLowStockThreshold is the stock level below which a product is
// reported as low on stock.
const DefaultLowStockThreshold = 10

// Analyzer holds one run's product set. Products are not modified after
// loading.
type Analyzer struct {
	products []model.Product

	revenue       float64
	revenueCached bool

	categories    map[string][]model.Product
	categoryOrder []string

	now func() time.Time
}

// New builds an Analyzer over products.
func New(products []model.Product) *Analyzer {
	a := &Analyzer{now: time.Now}
	a.setProducts(products)
	return a
}

// WithClock overrides the report timestamp source.
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

func (a *Analyzer) setProducts(products []model.Product) {
	if products == nil {
		products = []model.Product{}
	}
	a.products = products
	a.revenueCached = false
	a.revenue = 0
	a.categories = nil
	a.categoryOrder = nil
}

// Load replaces the product set with the contents of path, or with several
// files when path is a glob that names no existing file. On failure the set
// becomes empty and the malformed-input error is returned for the caller to
// report.
func (a *Analyzer) Load(path string) error {
	var (
		products []model.Product
		err      error
	)
	if expandAsGlob(path) {
		var files []string
		products, files, err = datastore.LoadProductsGlob(path)
		obs.Logger.Debug("product_files_matched", "pattern", path, "files", len(files))
	} else {
		products, err = datastore.LoadProducts(path)
	}
	a.setProducts(products)
	if err != nil {
		obs.Logger.Warn("load_failed", "source", path, "error", err)
		return err
	}
	obs.Logger.Info("products_loaded", "source", path, "count", len(a.products))
	return nil
}

// expandAsGlob reports whether path is a pattern rather than a literal file.
// An existing path is always read as-is, brackets and all.
func expandAsGlob(path string) bool {
	if !datastore.IsGlob(path) {
		return false
	}
	_, err := os.Stat(path)
	return errors.Is(err, fs.ErrNotExist)
}

// Products returns the loaded product set.
func (a *Analyzer) Products() []model.Product { return a.products }

// TotalRevenue sums price times quantity over all products, treating missing
// fields as zero. The result is cached for the report.
func (a *Analyzer) TotalRevenue() float64 {
	if a.revenueCached {
		return a.revenue
	}
	var total float64
	for _, p := range a.products {
		total += p.Revenue()
	}
	a.revenue = total
	a.revenueCached = true
	return total
}

// TopProducts returns up to n products by descending revenue. Products with
// equal revenue keep their input order.
func (a *Analyzer) TopProducts(n int) []model.RankedProduct {
	if n <= 0 {
		return []model.RankedProduct{}
	}
	ranked := make([]model.RankedProduct, len(a.products))
	for i, p := range a.products {
		ranked[i] = model.RankedProduct{Name: p.GetName(), Category: p.GetCategory(), Revenue: p.Revenue()}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Revenue > ranked[j].Revenue })
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// AveragePrice is the mean price, or 0 for an empty product set.
func (a *Analyzer) AveragePrice() float64 {
	if len(a.products) == 0 {
		return 0
	}
	var total float64
	for _, p := range a.products {
		total += p.GetPrice()
	}
	return total / float64(len(a.products))
}

// Categorize groups products by category in one pass. Products without a
// category land under model.UnknownCategory. The returned map is a copy.
func (a *Analyzer) Categorize() map[string][]model.Product {
	if a.categories == nil {
		a.buildCategories()
	}
	out := make(map[string][]model.Product, len(a.categories))
	for c, ps := range a.categories {
		out[c] = slices.Clone(ps)
	}
	return out
}

func (a *Analyzer) buildCategories() {
	groups := make(map[string][]model.Product)
	var order []string
	for _, p := range a.products {
		c := p.GetCategory()
		if _, ok := groups[c]; !ok {
			order = append(order, c)
		}
		groups[c] = append(groups[c], p)
	}
	a.categories = groups
	a.categoryOrder = order
}

// Categories lists category names in order of first appearance.
func (a *Analyzer) Categories() []string {
	if a.categories == nil {
		a.buildCategories()
	}
	return slices.Clone(a.categoryOrder)
}

// LowStockItems names the products whose stock (not quantity) is below
// threshold.
func (a *Analyzer) LowStockItems(threshold int64) []string {
	names := []string{}
	for _, p := range a.products {
		if p.GetStock() < threshold {
			names = append(names, p.GetName())
		}
	}
	return names
}

var hundred = decimal.NewFromInt(100)

// DiscountPrice returns the first product named name priced at
// price * (1 - percent/100). Percent must lie in [0, 100].
func (a *Analyzer) DiscountPrice(name string, percent float64) (float64, error) {
	if percent < 0 || percent > 100 {
		return 0, errs.NewInvalid("discount_price", "percent", "must be between 0 and 100")
	}
	for _, p := range a.products {
		if p.GetName() != name {
			continue
		}
		factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(hundred))
		f, _ := decimal.NewFromFloat(p.GetPrice()).Mul(factor).Float64()
		return f, nil
	}
	return 0, errs.NewNotFound("discount_price", name)
}
