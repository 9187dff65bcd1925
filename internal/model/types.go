// Package model defines domain types used by the analytics tools.
package model

import "time"

// UnknownCategory groups products that carry no category.
const UnknownCategory = "Unknown"

// Product is one entry of the product list file. Every field is optional on
// the wire; read them through the Get accessors, which apply the
// missing-value policy. Price and Quantity must not be negative when present.
type Product struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity *int64   `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Category *string  `json:"category,omitempty"`
	Stock    *int64   `json:"stock,omitempty"`
}

// NewProduct builds a fully populated Product.
func NewProduct(name string, price float64, quantity int64, category string, stock int64) Product {
	return Product{
		Name:     &name,
		Price:    &price,
		Quantity: &quantity,
		Category: &category,
		Stock:    &stock,
	}
}

// GetName returns the product name or "" when absent.
func (p Product) GetName() string { return deref(p.Name, "") }

// GetPrice returns the unit price or 0 when absent.
func (p Product) GetPrice() float64 { return deref(p.Price, 0) }

// GetQuantity returns the units sold or 0 when absent.
func (p Product) GetQuantity() int64 { return deref(p.Quantity, 0) }

// GetStock returns the on-hand inventory or 0 when absent. Stock is not Quantity.
func (p Product) GetStock() int64 { return deref(p.Stock, 0) }

// GetCategory returns the category or UnknownCategory when absent or blank.
func (p Product) GetCategory() string {
	if p.Category == nil || *p.Category == "" {
		return UnknownCategory
	}
	return *p.Category
}

// Revenue is price times quantity.
func (p Product) Revenue() float64 { return p.GetPrice() * float64(p.GetQuantity()) }

func deref[T any](ptr *T, def T) T {
	if ptr == nil {
		return def
	}
	return *ptr
}

// Catalog is the top-level shape of the product list file.
type Catalog struct {
	Products []Product `json:"products"`
}

// RankedProduct is a product annotated with its computed revenue.
type RankedProduct struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// InventoryRecord represents the current stock state of a product.
type InventoryRecord struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Stock       int64     `json:"stock" validate:"gte=0"`
	Price       float64   `json:"price" validate:"gte=0"`
	LastUpdated time.Time `json:"last_updated"`
}

// ReorderItem is an inventory record that fell below the reorder level.
type ReorderItem struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	CurrentStock    int64  `json:"current_stock"`
	ReorderQuantity int64  `json:"reorder_quantity"`
}

// SaleEvent is a single dated sale.
type SaleEvent struct {
	Date   string  `json:"date" yaml:"date"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// DailyAverage is the moving average ending on Date.
type DailyAverage struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
}

// DailyTotal is the sum of one day's sales.
type DailyTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// MonthlyTotal is the sum of one calendar month's sales, Month as YYYY-MM.
type MonthlyTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// PeakDay is the best sales day. Found is false when there is no data.
type PeakDay struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Found  bool    `json:"found"`
}
