package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Totals holds purchase and sale sums for one period
type Totals struct {
	PurchaseTotal decimal.Decimal `json:"purchase_total"`
	SaleTotal     decimal.Decimal `json:"sale_total"`
}

// Profit returns sales minus purchases
func (t Totals) Profit() decimal.Decimal {
	return t.SaleTotal.Sub(t.PurchaseTotal)
}

// Summary is the current month and current year totals of an owner
type Summary struct {
	Monthly Totals `json:"monthly"`
	Yearly  Totals `json:"yearly"`
}

// DateRange is a half-open interval of calendar days [From, To)
type DateRange struct {
	From time.Time
	To   time.Time
}

// MonthRange returns the range covering the given month
func MonthRange(year int, month time.Month) DateRange {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(0, 1, 0)}
}

// YearRange returns the range covering the given year
func YearRange(year int) DateRange {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: from, To: from.AddDate(1, 0, 0)}
}

// Granularity selects the bucket size of a trend series
type Granularity string

const (
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity validates a granularity, defaulting to month
func ParseGranularity(raw string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(raw))); g {
	case "":
		return GranularityMonth, nil
	case GranularityMonth, GranularityYear:
		return g, nil
	}
	return "", shared.NewDomainError("INVALID_INPUT", "granularity must be month or year")
}

// Kind selects purchases or sales
type Kind string

const (
	KindPurchase Kind = "purchase"
	KindSale     Kind = "sale"
)

// ParseKind validates a record kind, defaulting to sale
func ParseKind(raw string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(raw))); k {
	case "":
		return KindSale, nil
	case KindPurchase, KindSale:
		return k, nil
	}
	return "", shared.NewDomainError("INVALID_INPUT", "kind must be sale or purchase")
}

// TrendPoint is one bucket of a trend series
type TrendPoint struct {
	Period string `json:"period"`
	Totals
}

// BuildTrend merges per-period purchase and sale sums into an ordered
// series. Month granularity always yields the twelve months of year.
func BuildTrend(g Granularity, year int, purchases, sales map[string]decimal.Decimal) []TrendPoint {
	var periods []string
	if g == GranularityMonth {
		for m := 1; m <= 12; m++ {
			periods = append(periods, fmt.Sprintf("%04d-%02d", year, m))
		}
	} else {
		seen := make(map[string]struct{})
		for _, src := range []map[string]decimal.Decimal{purchases, sales} {
			for p := range src {
				if _, ok := seen[p]; !ok {
					seen[p] = struct{}{}
					periods = append(periods, p)
				}
			}
		}
		sort.Slice(periods, func(i, j int) bool {
			a, _ := strconv.Atoi(periods[i])
			b, _ := strconv.Atoi(periods[j])
			return a < b
		})
	}

	points := make([]TrendPoint, 0, len(periods))
	for _, p := range periods {
		points = append(points, TrendPoint{
			Period: p,
			Totals: Totals{PurchaseTotal: purchases[p], SaleTotal: sales[p]},
		})
	}
	return points
}

// CustomerTotal is the summed amount of one customer
type CustomerTotal struct {
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
}

// OthersBucket folds every customer beyond the ranking limit
type OthersBucket struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// TopCustomers is a ranking with an optional remainder bucket
type TopCustomers struct {
	Items      []CustomerTotal `json:"items"`
	Others     *OthersBucket   `json:"others"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// RankCustomers orders totals by amount desc, ties by id, keeps the first
// limit entries and folds the rest into Others
func RankCustomers(totals []CustomerTotal, limit int) TopCustomers {
	ranked := make([]CustomerTotal, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].Total.Cmp(ranked[j].Total); c != 0 {
			return c > 0
		}
		return ranked[i].CustomerID < ranked[j].CustomerID
	})

	result := TopCustomers{Items: []CustomerTotal{}, GrandTotal: decimal.Zero}
	for _, ct := range ranked {
		result.GrandTotal = result.GrandTotal.Add(ct.Total)
	}
	if limit < 0 {
		limit = 0
	}
	if len(ranked) <= limit {
		result.Items = append(result.Items, ranked...)
		return result
	}
	result.Items = append(result.Items, ranked[:limit]...)
	others := &OthersBucket{Total: decimal.Zero}
	for _, ct := range ranked[limit:] {
		others.Count++
		others.Total = others.Total.Add(ct.Total)
	}
	result.Others = others
	return result
}
