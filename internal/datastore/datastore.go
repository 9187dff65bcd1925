// Package datastore reads and writes the flat files the analytics work on:
// the product list (JSON) and sale event lists (JSON or YAML).
package datastore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/product-analytics/internal/errs"
	"github.com/fairyhunter13/product-analytics/internal/fsutil"
	"github.com/fairyhunter13/product-analytics/internal/model"
	"github.com/fairyhunter13/product-analytics/internal/obs"
	"github.com/fairyhunter13/product-analytics/internal/utils"
)

var errNoProductsKey = errors.New(`missing top-level "products" key`)

// LoadProducts reads the product list at path. On any failure it returns an
// empty, non-nil slice together with a malformed-input error, so callers can
// log the diagnostic and keep running on empty data. Entries with a negative
// price or quantity are logged and skipped.
func LoadProducts(path string) ([]model.Product, error) {
	var products []model.Product
	err := fsutil.ReadWith(path, func(r io.Reader) error {
		var err error
		products, err = decodeCatalog(r)
		return err
	})
	if err != nil {
		return []model.Product{}, errs.NewMalformed("load_products", fmt.Errorf("%s: %w", path, err))
	}
	return validProducts(path, products), nil
}

func validProducts(path string, products []model.Product) []model.Product {
	kept := products[:0]
	for i, p := range products {
		if err := utils.ValidateStruct("load_products", p); err != nil {
			obs.Logger.Warn("product_skipped", "source", path, "index", i, "name", p.GetName(), "error", err)
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func decodeCatalog(r io.Reader) ([]model.Product, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}
	body, ok := raw["products"]
	if !ok {
		return nil, errNoProductsKey
	}
	var products []model.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// LoadProductsGlob merges the product lists of every file matching pattern
// (doublestar syntax, e.g. "data/**/*.json") in lexical path order. Failure
// semantics match LoadProducts: one bad file empties the whole set.
func LoadProductsGlob(pattern string) ([]model.Product, []string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return []model.Product{}, nil, errs.NewMalformed("load_products", fmt.Errorf("bad pattern %q: %w", pattern, err))
	}
	if len(matches) == 0 {
		return []model.Product{}, nil, errs.NewMalformed("load_products", fmt.Errorf("%s: %w", pattern, os.ErrNotExist))
	}
	sort.Strings(matches)
	var all []model.Product
	for _, m := range matches {
		ps, err := LoadProducts(m)
		if err != nil {
			return []model.Product{}, matches, err
		}
		all = append(all, ps...)
	}
	if all == nil {
		all = []model.Product{}
	}
	return all, matches, nil
}

// IsGlob reports whether path contains glob metacharacters.
func IsGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// SaveProducts atomically writes products as a product list file.
func SaveProducts(path string, products []model.Product) error {
	return fsutil.WriteFileAtomic(path, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(model.Catalog{Products: products})
	})
}

// LoadSales reads a list of sale events. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON. Both accept either a bare list or
// an object with a "sales" key.
func LoadSales(path string) ([]model.SaleEvent, error) {
	var events []model.SaleEvent
	err := fsutil.ReadWith(path, func(r io.Reader) error {
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			events, err = decodeSalesYAML(b)
		default:
			events, err = decodeSalesJSON(b)
		}
		return err
	})
	if err != nil {
		return []model.SaleEvent{}, errs.NewMalformed("load_sales", fmt.Errorf("%s: %w", path, err))
	}
	return events, nil
}

func decodeSalesJSON(b []byte) ([]model.SaleEvent, error) {
	var list []model.SaleEvent
	if err := json.Unmarshal(b, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Sales []model.SaleEvent `json:"sales"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Sales, nil
}

func decodeSalesYAML(b []byte) ([]model.SaleEvent, error) {
	var list []model.SaleEvent
	if err := yaml.Unmarshal(b, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Sales []model.SaleEvent `yaml:"sales"`
	}
	if err := yaml.Unmarshal(b, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Sales, nil
}
