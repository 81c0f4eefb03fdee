package persistence

import (
	"context"
	"fmt"

	"github.com/finmanager/backend/internal/domain/report"
	"github.com/finmanager/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStatisticsRepository implements StatisticsRepository with aggregate
// queries over the purchases and sales tables
type GormStatisticsRepository struct {
	db *gorm.DB
}

// NewGormStatisticsRepository creates a new GormStatisticsRepository
func NewGormStatisticsRepository(db *gorm.DB) *GormStatisticsRepository {
	return &GormStatisticsRepository{db: db}
}

func tableFor(kind report.Kind) string {
	if kind == report.KindPurchase {
		return trade.Purchase{}.TableName()
	}
	return trade.Sale{}.TableName()
}

func withinRange(query *gorm.DB, column string, r *report.DateRange) *gorm.DB {
	if r == nil {
		return query
	}
	return query.Where(column+" >= ? AND "+column+" < ?", r.From, r.To)
}

// SumTotals sums purchases and sales dated inside r
func (r *GormStatisticsRepository) SumTotals(ctx context.Context, ownerID int64, dr report.DateRange) (report.Totals, error) {
	purchases, err := r.sum(ctx, report.KindPurchase, ownerID, dr)
	if err != nil {
		return report.Totals{}, err
	}
	sales, err := r.sum(ctx, report.KindSale, ownerID, dr)
	if err != nil {
		return report.Totals{}, err
	}
	return report.Totals{PurchaseTotal: purchases, SaleTotal: sales}, nil
}

func (r *GormStatisticsRepository) sum(ctx context.Context, kind report.Kind, ownerID int64, dr report.DateRange) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).Table(tableFor(kind)).
		Select("coalesce(sum(total_price), 0)").
		Where("owner_id = ?", ownerID)

	var total decimal.Decimal
	if err := withinRange(query, "date", &dr).Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum %s totals: %w", kind, err)
	}
	return trade.RoundMoney(total), nil
}

type periodRow struct {
	Period string
	Total  decimal.Decimal
}

// PeriodAmounts sums one kind of record per "YYYY-MM" or "YYYY" key
func (r *GormStatisticsRepository) PeriodAmounts(ctx context.Context, ownerID int64, kind report.Kind, g report.Granularity, dr *report.DateRange) (map[string]decimal.Decimal, error) {
	expr := periodExpr(r.db, g, "date")
	query := r.db.WithContext(ctx).Table(tableFor(kind)).
		Select(expr+" AS period, coalesce(sum(total_price), 0) AS total").
		Where("owner_id = ?", ownerID)
	query = withinRange(query, "date", dr).Group(expr)

	var rows []periodRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("sum %s per period: %w", kind, err)
	}

	amounts := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		amounts[row.Period] = trade.RoundMoney(row.Total)
	}
	return amounts, nil
}

// CustomerTotals sums one kind of record per customer
func (r *GormStatisticsRepository) CustomerTotals(ctx context.Context, ownerID int64, kind report.Kind, dr *report.DateRange) ([]report.CustomerTotal, error) {
	query := r.db.WithContext(ctx).Table(tableFor(kind)+" AS t").
		Select("t.customer_id AS customer_id, c.name AS customer_name, coalesce(sum(t.total_price), 0) AS total").
		Joins("JOIN customers AS c ON c.id = t.customer_id").
		Where("t.owner_id = ?", ownerID)
	query = withinRange(query, "t.date", dr).Group("t.customer_id, c.name")

	var rows []report.CustomerTotal
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("sum %s per customer: %w", kind, err)
	}
	for i := range rows {
		rows[i].Total = trade.RoundMoney(rows[i].Total)
	}
	return rows, nil
}

// Ensure GormStatisticsRepository implements StatisticsRepository
var _ report.StatisticsRepository = (*GormStatisticsRepository)(nil)
