package report

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatisticsRepository runs the aggregate queries behind the statistics
// endpoints. Every query is scoped to a single owner.
type StatisticsRepository interface {
	// SumTotals sums purchases and sales dated inside r
	SumTotals(ctx context.Context, ownerID int64, r DateRange) (Totals, error)

	// PeriodAmounts sums one kind of record per period key ("YYYY-MM" or
	// "YYYY"). A nil range covers every record.
	PeriodAmounts(ctx context.Context, ownerID int64, kind Kind, g Granularity, r *DateRange) (map[string]decimal.Decimal, error)

	// CustomerTotals sums one kind of record per customer. A nil range
	// covers every record.
	CustomerTotals(ctx context.Context, ownerID int64, kind Kind, r *DateRange) ([]CustomerTotal, error)
}

// StatisticsCache stores serialized statistics results per owner. Entries
// expire after a TTL and every entry of an owner is dropped by Invalidate.
type StatisticsCache interface {
	// Get returns the cached payload and whether it was found
	Get(ctx context.Context, ownerID int64, key string) ([]byte, bool, error)
	Set(ctx context.Context, ownerID int64, key string, payload []byte) error
	Invalidate(ctx context.Context, ownerID int64) error
}
