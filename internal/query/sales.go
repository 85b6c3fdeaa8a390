package query

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"github.com/talkincode/toughpos/internal/domain"
)

// DefaultLatest number of recent sales a report lists
const DefaultLatest = 5

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// TodaysSalesTotal sum of totals of sales on now's calendar day
func TodaysSalesTotal(sales []domain.Sale, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		if sameDay(s.Date.In(now.Location()), now) {
			total = total.Add(s.Total)
		}
	}
	return total
}

// SalesFilter From and To are whole days, both inclusive; zero means open.
// Times are compared in Location, time.Local when nil.
type SalesFilter struct {
	From     time.Time
	To       time.Time
	Category string
	Latest   int
	Location *time.Location
}

func (f SalesFilter) loc() *time.Location {
	if f.Location != nil {
		return f.Location
	}
	return time.Local
}

func (f SalesFilter) match(s domain.Sale) bool {
	loc := f.loc()
	at := s.Date.In(loc)
	if !f.From.IsZero() && at.Before(startOfDay(f.From.In(loc))) {
		return false
	}
	if !f.To.IsZero() && !at.Before(startOfDay(f.To.In(loc)).AddDate(0, 0, 1)) {
		return false
	}
	if f.Category == "" || f.Category == AllCategories {
		return true
	}
	for _, item := range s.Items {
		if item.Product.Category == f.Category {
			return true
		}
	}
	return false
}

// DailyTotal one point of the sales chart
type DailyTotal struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Sales   int             `json:"sales"`
}

// SalesReport aggregates over the filtered sales
type SalesReport struct {
	Revenue    decimal.Decimal `json:"revenue"`
	Profit     decimal.Decimal `json:"profit"`
	Count      int             `json:"count"`
	Units      int             `json:"units"`
	MeanSale   decimal.Decimal `json:"mean_sale"`
	MedianSale decimal.Decimal `json:"median_sale"`
	Daily      []DailyTotal    `json:"daily"`
	Latest     []domain.Sale   `json:"latest"`
}

// SaleProfit line revenue minus line cost, using the cost captured at sale time
func SaleProfit(s domain.Sale) decimal.Decimal {
	profit := decimal.Zero
	for _, item := range s.Items {
		profit = profit.Add(item.LineTotal().Sub(item.LineCost()))
	}
	return profit
}

// BuildSalesReport a sale in the category filter counts with its whole total
func BuildSalesReport(sales []domain.Sale, f SalesFilter) SalesReport {
	r := SalesReport{Revenue: decimal.Zero, Profit: decimal.Zero, MeanSale: decimal.Zero, MedianSale: decimal.Zero}
	daily := make(map[string]*DailyTotal)
	var matched []domain.Sale
	var totals stats.Float64Data

	for _, s := range sales {
		if !f.match(s) {
			continue
		}
		matched = append(matched, s)
		r.Count++
		r.Units += s.Quantity()
		r.Revenue = r.Revenue.Add(s.Total)
		r.Profit = r.Profit.Add(SaleProfit(s))
		totals = append(totals, s.Total.InexactFloat64())

		day := domain.FormatDate(s.Date.In(f.loc()))
		d, ok := daily[day]
		if !ok {
			d = &DailyTotal{Date: day, Revenue: decimal.Zero}
			daily[day] = d
		}
		d.Revenue = d.Revenue.Add(s.Total)
		d.Sales++
	}

	if len(totals) > 0 {
		if mean, err := totals.Mean(); err == nil {
			r.MeanSale = decimal.NewFromFloat(mean).Round(2)
		}
		if median, err := totals.Median(); err == nil {
			r.MedianSale = decimal.NewFromFloat(median).Round(2)
		}
	}

	r.Daily = make([]DailyTotal, 0, len(daily))
	for _, d := range daily {
		r.Daily = append(r.Daily, *d)
	}
	sort.Slice(r.Daily, func(i, j int) bool { return r.Daily[i].Date < r.Daily[j].Date })

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	n := f.Latest
	if n <= 0 {
		n = DefaultLatest
	}
	if len(matched) < n {
		n = len(matched)
	}
	r.Latest = make([]domain.Sale, n)
	for i := 0; i < n; i++ {
		r.Latest[i] = matched[i].Clone()
	}
	return r
}
