// Package inventory tracks on-hand stock and unit price per product id.
package inventory

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/product-analytics/internal/errs"
	"github.com/fairyhunter13/product-analytics/internal/model"
	"github.com/fairyhunter13/product-analytics/internal/utils"
)

// DefaultReorderLevel is the stock level below which a product needs reordering.
const DefaultReorderLevel = 20

// Manager maps product ids to inventory records. Records keep the order in
// which they were added so listings are deterministic.
type Manager struct {
	mu    sync.RWMutex
	m     map[string]*model.InventoryRecord
	order []string
	now   func() time.Time
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{m: make(map[string]*model.InventoryRecord), now: time.Now}
}

// WithClock overrides the timestamp source for last_updated.
func (s *Manager) WithClock(now func() time.Time) *Manager {
	s.now = now
	return s
}

// AddProduct inserts or replaces the record for id. Negative stock or price
// and blank id or name are rejected without touching existing state.
func (s *Manager) AddProduct(id, name string, stock int64, price float64) error {
	rec := model.InventoryRecord{
		ID:    strings.TrimSpace(id),
		Name:  strings.TrimSpace(name),
		Stock: stock,
		Price: price,
	}
	if err := utils.ValidateStruct("add_product", rec); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = id
	rec.Name = name
	rec.LastUpdated = s.now()
	if _, ok := s.m[id]; !ok {
		s.order = append(s.order, id)
	}
	s.m[id] = &rec
	return nil
}

// UpdateStock adds delta (possibly negative) to the stock of id.
func (s *Manager) UpdateStock(id string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[id]
	if !ok {
		return errs.NewNotFound("update_stock", id)
	}
	rec.Stock += delta
	rec.LastUpdated = s.now()
	return nil
}

// Get returns a copy of the record for id.
func (s *Manager) Get(id string) (model.InventoryRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.m[id]
	if !ok {
		return model.InventoryRecord{}, false
	}
	return *rec, true
}

// Len returns the number of records.
func (s *Manager) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Records returns copies of all records in insertion order.
func (s *Manager) Records() []model.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.InventoryRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.m[id])
	}
	return out
}

// InventoryValue sums stock times price over all records, rounded to cents.
func (s *Manager) InventoryValue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, id := range s.order {
		rec := s.m[id]
		total = total.Add(decimal.NewFromInt(rec.Stock).Mul(decimal.NewFromFloat(rec.Price)))
	}
	return utils.RoundCents(total)
}

// FindByName returns the first record whose name equals name ignoring case.
func (s *Manager) FindByName(name string) (model.InventoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if rec := s.m[id]; strings.EqualFold(rec.Name, name) {
			return *rec, nil
		}
	}
	return model.InventoryRecord{}, errs.NewNotFound("find_by_name", name)
}

// OutOfStock names the records with stock at or below zero.
func (s *Manager) OutOfStock() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := []string{}
	for _, id := range s.order {
		if rec := s.m[id]; rec.Stock <= 0 {
			names = append(names, rec.Name)
		}
	}
	return names
}

// ReorderNeeded lists records with stock below level and how many units
// bring each back up to level.
func (s *Manager) ReorderNeeded(level int64) []model.ReorderItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := []model.ReorderItem{}
	for _, id := range s.order {
		rec := s.m[id]
		if rec.Stock >= level {
			continue
		}
		items = append(items, model.ReorderItem{
			ID:              id,
			Name:            rec.Name,
			CurrentStock:    rec.Stock,
			ReorderQuantity: max(0, level-rec.Stock),
		})
	}
	return items
}
