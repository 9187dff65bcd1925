// Package sales aggregates dated sale amounts into daily and monthly totals
// and derives moving averages, the peak day, growth rates and a naive
// forecast.
package sales

import (
	"math"
	"sort"

	"github.com/fairyhunter13/product-analytics/internal/errs"
	"github.com/fairyhunter13/product-analytics/internal/model"
	"github.com/fairyhunter13/product-analytics/internal/utils"
)

// ForecastGrowth is the flat growth factor applied by PredictNextMonth.
const ForecastGrowth = 1.1

// Analytics accumulates sale events. Days without events never appear as
// keys, so every averaging window holds at least one amount.
type Analytics struct {
	daily   map[string][]float64
	monthly map[string]float64
	dates   []string
	months  []string
}

// New returns an empty Analytics.
func New() *Analytics {
	return &Analytics{daily: make(map[string][]float64), monthly: make(map[string]float64)}
}

// ProcessDailySales folds events into per-day amount lists, keeping event
// order within a day, and per-month totals. Dates are normalised to
// YYYY-MM-DD. If any event carries an unparsable date nothing is applied.
func (a *Analytics) ProcessDailySales(events []model.SaleEvent) error {
	keys := make([]string, len(events))
	for i, ev := range events {
		t, err := utils.ParseDate(ev.Date)
		if err != nil {
			return err
		}
		keys[i] = t.Format(utils.DateLayout)
	}
	for i, ev := range events {
		day := keys[i]
		if _, ok := a.daily[day]; !ok {
			a.dates = insertSorted(a.dates, day)
		}
		a.daily[day] = append(a.daily[day], ev.Amount)

		month := day[:7]
		if _, ok := a.monthly[month]; !ok {
			a.months = insertSorted(a.months, month)
		}
		a.monthly[month] += ev.Amount
	}
	return nil
}

func insertSorted(s []string, v string) []string {
	i := sort.SearchStrings(s, v)
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// Dates returns the days with sales in chronological order.
func (a *Analytics) Dates() []string { return a.dates }

// DailySales returns the amounts recorded on date in insertion order.
func (a *Analytics) DailySales(date string) []float64 { return a.daily[date] }

// DailyTotals returns each day's total in chronological order.
func (a *Analytics) DailyTotals() []model.DailyTotal {
	out := make([]model.DailyTotal, len(a.dates))
	for i, d := range a.dates {
		out[i] = model.DailyTotal{Date: d, Total: sum(a.daily[d])}
	}
	return out
}

// MonthlyTotals returns each month's total in chronological order.
func (a *Analytics) MonthlyTotals() []model.MonthlyTotal {
	out := make([]model.MonthlyTotal, len(a.months))
	for i, m := range a.months {
		out[i] = model.MonthlyTotal{Month: m, Total: a.monthly[m]}
	}
	return out
}

// MovingAverage returns, for each day in order, the mean of every amount
// recorded over that day and the window-1 days before it. Near the start of
// history the window shrinks to the days available.
func (a *Analytics) MovingAverage(window int) ([]model.DailyAverage, error) {
	if window < 1 {
		return nil, errs.NewInvalid("moving_average", "window", "must be >= 1")
	}
	out := make([]model.DailyAverage, 0, len(a.dates))
	for i, d := range a.dates {
		var total float64
		var count int
		for j := max(0, i-window+1); j <= i; j++ {
			amounts := a.daily[a.dates[j]]
			total += sum(amounts)
			count += len(amounts)
		}
		avg := 0.0
		if count > 0 {
			avg = total / float64(count)
		}
		out = append(out, model.DailyAverage{Date: d, Average: avg})
	}
	return out, nil
}

// PeakSalesDay returns the day with the highest total. Ties go to the
// earliest day. With no data Found is false and Amount is 0.
func (a *Analytics) PeakSalesDay() model.PeakDay {
	var peak model.PeakDay
	for _, d := range a.dates {
		total := sum(a.daily[d])
		if !peak.Found || total > peak.Amount {
			peak = model.PeakDay{Date: d, Amount: total, Found: true}
		}
	}
	return peak
}

// GrowthRate is the percentage change from p1 to p2. When p1 is zero the
// rate is undefined: it returns +Inf or -Inf by the sign of p2 (NaN when p2
// is also zero) together with errs.ErrUndefinedGrowth.
func GrowthRate(p1, p2 float64) (float64, error) {
	if p1 == 0 {
		var v float64
		switch {
		case p2 > 0:
			v = math.Inf(1)
		case p2 < 0:
			v = math.Inf(-1)
		default:
			v = math.NaN()
		}
		return v, errs.NewUndefined("growth_rate")
	}
	return (p2 - p1) / p1 * 100, nil
}

// PredictNextMonth projects the latest month's total forward by
// ForecastGrowth, or returns 0 with no monthly history.
func (a *Analytics) PredictNextMonth() float64 {
	if len(a.months) == 0 {
		return 0
	}
	return a.monthly[a.months[len(a.months)-1]] * ForecastGrowth
}

func sum(xs []float64) float64 {
	var t float64
	for _, x := range xs {
		t += x
	}
	return t
}
