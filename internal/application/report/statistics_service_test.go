package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/finmanager/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatisticsRepository struct {
	mock.Mock
}

func (m *MockStatisticsRepository) SumTotals(ctx context.Context, ownerID int64, r report.DateRange) (report.Totals, error) {
	args := m.Called(ctx, ownerID, r)
	return args.Get(0).(report.Totals), args.Error(1)
}

func (m *MockStatisticsRepository) PeriodAmounts(ctx context.Context, ownerID int64, kind report.Kind, g report.Granularity, r *report.DateRange) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, kind, g, r)
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockStatisticsRepository) CustomerTotals(ctx context.Context, ownerID int64, kind report.Kind, r *report.DateRange) ([]report.CustomerTotal, error) {
	args := m.Called(ctx, ownerID, kind, r)
	return args.Get(0).([]report.CustomerTotal), args.Error(1)
}

// mapCache is a StatisticsCache without expiry
type mapCache struct {
	entries map[string][]byte
	getErr  error
}

func newMapCache() *mapCache { return &mapCache{entries: make(map[string][]byte)} }

func (c *mapCache) Get(_ context.Context, ownerID int64, key string) ([]byte, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[cacheKey(ownerID, key)]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, ownerID int64, key string, payload []byte) error {
	c.entries[cacheKey(ownerID, key)] = payload
	return nil
}

func (c *mapCache) Invalidate(context.Context, int64) error {
	c.entries = make(map[string][]byte)
	return nil
}

func cacheKey(ownerID int64, key string) string {
	return fmt.Sprintf("%d|%s", ownerID, key)
}

var _ report.StatisticsCache = (*mapCache)(nil)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var fixedNow = time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)

func newTestService(repo *MockStatisticsRepository, cache report.StatisticsCache) *StatisticsService {
	return NewStatisticsService(repo, cache, nil, WithClock(func() time.Time { return fixedNow }))
}

func TestStatisticsService_Summary(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStatisticsRepository)
	cache := newMapCache()
	svc := newTestService(repo, cache)

	repo.On("SumTotals", ctx, int64(1), report.MonthRange(2024, time.March)).
		Return(report.Totals{PurchaseTotal: d("10.5"), SaleTotal: d("30")}, nil).Once()
	repo.On("SumTotals", ctx, int64(1), report.YearRange(2024)).
		Return(report.Totals{PurchaseTotal: d("100"), SaleTotal: d("80.25")}, nil).Once()

	resp, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, TotalsResponse{PurchaseTotal: "10.50", SaleTotal: "30.00", Profit: "19.50"}, resp.Monthly)
	assert.Equal(t, "-19.75", resp.Yearly.Profit)

	// served from cache
	again, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, resp, again)
	repo.AssertExpectations(t)

	// recomputed after invalidation
	require.NoError(t, cache.Invalidate(ctx, 1))
	repo.On("SumTotals", ctx, int64(1), mock.Anything).Return(report.Totals{}, nil)
	fresh, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "0.00", fresh.Monthly.SaleTotal)
}

func TestStatisticsService_SummaryCacheReadFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockStatisticsRepository)
	cache := newMapCache()
	cache.getErr = errors.New("connection refused")
	svc := newTestService(repo, cache)
	repo.On("SumTotals", ctx, int64(1), mock.Anything).Return(report.Totals{SaleTotal: d("1")}, nil)

	resp, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "1.00", resp.Monthly.SaleTotal)
}

func TestStatisticsService_Trend(t *testing.T) {
	ctx := context.Background()

	t.Run("month defaults to current year", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		svc := newTestService(repo, nil)
		year := report.YearRange(2024)
		repo.On("PeriodAmounts", ctx, int64(1), report.KindPurchase, report.GranularityMonth, &year).
			Return(map[string]decimal.Decimal{"2024-02": d("5")}, nil)
		repo.On("PeriodAmounts", ctx, int64(1), report.KindSale, report.GranularityMonth, &year).
			Return(map[string]decimal.Decimal{"2024-02": d("7.1")}, nil)

		resp, err := svc.Trend(ctx, 1, TrendQuery{})
		require.NoError(t, err)
		assert.Equal(t, "month", resp.Granularity)
		require.Len(t, resp.Points, 12)
		assert.Equal(t, "2024-02", resp.Points[1].Period)
		assert.Equal(t, "2.10", resp.Points[1].Profit)
		assert.Equal(t, "0.00", resp.Points[0].SaleTotal)
	})

	t.Run("year covers all records", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		svc := newTestService(repo, nil)
		repo.On("PeriodAmounts", ctx, int64(1), report.KindPurchase, report.GranularityYear, (*report.DateRange)(nil)).
			Return(map[string]decimal.Decimal{"2022": d("1")}, nil)
		repo.On("PeriodAmounts", ctx, int64(1), report.KindSale, report.GranularityYear, (*report.DateRange)(nil)).
			Return(map[string]decimal.Decimal{"2021": d("2")}, nil)

		resp, err := svc.Trend(ctx, 1, TrendQuery{Granularity: "year"})
		require.NoError(t, err)
		require.Len(t, resp.Points, 2)
		assert.Equal(t, "2021", resp.Points[0].Period)
	})

	t.Run("bad granularity", func(t *testing.T) {
		svc := newTestService(new(MockStatisticsRepository), nil)
		_, err := svc.Trend(ctx, 1, TrendQuery{Granularity: "week"})
		assert.Error(t, err)
	})
}

func TestStatisticsService_TopCustomers(t *testing.T) {
	ctx := context.Background()
	totals := []report.CustomerTotal{
		{CustomerID: 1, CustomerName: "A", Total: d("10")},
		{CustomerID: 2, CustomerName: "B", Total: d("30")},
		{CustomerID: 3, CustomerName: "C", Total: d("5")},
	}

	t.Run("month without year uses current year", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		svc := newTestService(repo, newMapCache())
		month := report.MonthRange(2024, time.June)
		repo.On("CustomerTotals", ctx, int64(1), report.KindPurchase, &month).Return(totals, nil).Once()

		resp, err := svc.TopCustomers(ctx, 1, TopCustomersQuery{Limit: 1, Month: 6, Kind: "purchase"})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "B", resp.Items[0].CustomerName)
		assert.Equal(t, "30.00", resp.Items[0].Total)
		require.NotNil(t, resp.Others)
		assert.Equal(t, 2, resp.Others.Count)
		assert.Equal(t, "15.00", resp.Others.Total)
		assert.Equal(t, "45.00", resp.GrandTotal)

		_, err = svc.TopCustomers(ctx, 1, TopCustomersQuery{Limit: 1, Month: 6, Kind: "purchase"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("defaults", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		svc := newTestService(repo, nil)
		repo.On("CustomerTotals", ctx, int64(1), report.KindSale, (*report.DateRange)(nil)).Return(totals, nil)

		resp, err := svc.TopCustomers(ctx, 1, TopCustomersQuery{})
		require.NoError(t, err)
		assert.Len(t, resp.Items, 3)
		assert.Nil(t, resp.Others)
	})

	t.Run("year only", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		svc := newTestService(repo, nil)
		year := report.YearRange(2023)
		repo.On("CustomerTotals", ctx, int64(1), report.KindSale, &year).Return([]report.CustomerTotal{}, nil)

		resp, err := svc.TopCustomers(ctx, 1, TopCustomersQuery{Year: 2023})
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.Equal(t, "0.00", resp.GrandTotal)
	})

	t.Run("bad kind", func(t *testing.T) {
		svc := newTestService(new(MockStatisticsRepository), nil)
		_, err := svc.TopCustomers(ctx, 1, TopCustomersQuery{Kind: "refund"})
		assert.Error(t, err)
	})
}
