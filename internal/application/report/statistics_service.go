package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/finmanager/backend/internal/domain/report"
	"go.uber.org/zap"
)

// DefaultTopCustomersLimit is the ranking size when none is requested
const DefaultTopCustomersLimit = 5

// StatisticsService aggregates an owner's purchases and sales. Results are
// cached per owner when a cache is configured.
type StatisticsService struct {
	statsRepo report.StatisticsRepository
	cache     report.StatisticsCache
	logger    *zap.Logger
	now       func() time.Time
}

// StatisticsServiceOption configures a StatisticsService
type StatisticsServiceOption func(*StatisticsService)

// WithClock replaces the clock used to find the current month and year
func WithClock(now func() time.Time) StatisticsServiceOption {
	return func(s *StatisticsService) {
		s.now = now
	}
}

// NewStatisticsService creates a new StatisticsService. cache may be nil.
func NewStatisticsService(
	statsRepo report.StatisticsRepository,
	cache report.StatisticsCache,
	logger *zap.Logger,
	opts ...StatisticsServiceOption,
) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &StatisticsService{
		statsRepo: statsRepo,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary returns the totals of the current calendar month and year
func (s *StatisticsService) Summary(ctx context.Context, ownerID int64) (*SummaryResponse, error) {
	now := s.now().UTC()
	key := fmt.Sprintf("summary:%04d-%02d", now.Year(), now.Month())

	return cached(ctx, s, ownerID, key, func() (*SummaryResponse, error) {
		monthly, err := s.statsRepo.SumTotals(ctx, ownerID, report.MonthRange(now.Year(), now.Month()))
		if err != nil {
			return nil, err
		}
		yearly, err := s.statsRepo.SumTotals(ctx, ownerID, report.YearRange(now.Year()))
		if err != nil {
			return nil, err
		}
		return &SummaryResponse{
			Monthly: toTotalsResponse(monthly),
			Yearly:  toTotalsResponse(yearly),
		}, nil
	})
}

// Trend returns per-period totals. Month granularity covers the twelve
// months of the year (default: current year); year granularity covers
// every year with records.
func (s *StatisticsService) Trend(ctx context.Context, ownerID int64, q TrendQuery) (*TrendResponse, error) {
	g, err := report.ParseGranularity(q.Granularity)
	if err != nil {
		return nil, err
	}
	year := q.Year
	if year == 0 {
		year = s.now().UTC().Year()
	}
	var dr *report.DateRange
	key := "trend:year"
	if g == report.GranularityMonth {
		r := report.YearRange(year)
		dr = &r
		key = fmt.Sprintf("trend:month:%04d", year)
	}

	return cached(ctx, s, ownerID, key, func() (*TrendResponse, error) {
		purchases, err := s.statsRepo.PeriodAmounts(ctx, ownerID, report.KindPurchase, g, dr)
		if err != nil {
			return nil, err
		}
		sales, err := s.statsRepo.PeriodAmounts(ctx, ownerID, report.KindSale, g, dr)
		if err != nil {
			return nil, err
		}

		points := report.BuildTrend(g, year, purchases, sales)
		resp := &TrendResponse{
			Granularity: string(g),
			Points:      make([]TrendPointResponse, len(points)),
		}
		for i, p := range points {
			resp.Points[i] = TrendPointResponse{Period: p.Period, TotalsResponse: toTotalsResponse(p.Totals)}
		}
		return resp, nil
	})
}

// TopCustomers ranks customers by their purchase or sale total. A month
// without a year refers to the current year; no year covers all records.
func (s *StatisticsService) TopCustomers(ctx context.Context, ownerID int64, q TopCustomersQuery) (*TopCustomersResponse, error) {
	kind, err := report.ParseKind(q.Kind)
	if err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultTopCustomersLimit
	}
	year := q.Year
	if year == 0 && q.Month != 0 {
		year = s.now().UTC().Year()
	}

	var dr *report.DateRange
	switch {
	case q.Month != 0:
		r := report.MonthRange(year, time.Month(q.Month))
		dr = &r
	case year != 0:
		r := report.YearRange(year)
		dr = &r
	}
	key := fmt.Sprintf("top:%s:%d:%d:%d", kind, limit, year, q.Month)

	return cached(ctx, s, ownerID, key, func() (*TopCustomersResponse, error) {
		totals, err := s.statsRepo.CustomerTotals(ctx, ownerID, kind, dr)
		if err != nil {
			return nil, err
		}
		resp := toTopCustomersResponse(report.RankCustomers(totals, limit))
		return &resp, nil
	})
}

// cached serves key from the owner's cache or computes and stores it.
// Cache failures fall through to the database.
func cached[T any](ctx context.Context, s *StatisticsService, ownerID int64, key string, compute func() (*T, error)) (*T, error) {
	if s.cache != nil {
		payload, ok, err := s.cache.Get(ctx, ownerID, key)
		switch {
		case err != nil:
			s.logger.Warn("Statistics cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			var v T
			if err := json.Unmarshal(payload, &v); err == nil {
				return &v, nil
			}
			s.logger.Warn("Discarding undecodable statistics cache entry", zap.String("key", key))
		}
	}

	v, err := compute()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		payload, err := json.Marshal(v)
		if err == nil {
			err = s.cache.Set(ctx, ownerID, key, payload)
		}
		if err != nil {
			s.logger.Warn("Statistics cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}
