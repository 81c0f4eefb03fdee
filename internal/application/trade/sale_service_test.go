package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type saleFixture struct {
	sales     *MockSaleRepository
	types     *MockTypeRepository
	customers *MockCustomerRepository
	images    *MockImageStore
	stats     *MockStatisticsCache
	logs      *observer.ObservedLogs
	svc       *SaleService
}

func newSaleFixture() *saleFixture {
	core, logs := observer.New(zap.WarnLevel)
	f := &saleFixture{
		sales:     new(MockSaleRepository),
		types:     new(MockTypeRepository),
		customers: new(MockCustomerRepository),
		images:    new(MockImageStore),
		stats:     new(MockStatisticsCache),
		logs:      logs,
	}
	f.svc = NewSaleService(f.sales, f.types, f.customers, f.images, f.stats, zap.New(core))
	return f
}

func testSale(t *testing.T, id int64, imageURL *string) *trade.Sale {
	t.Helper()
	s, err := trade.NewSale(1, trade.RecordDetails{
		Date:       time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		CustomerID: 7,
		ItemsCount: 4,
		UnitPrice:  decimal.RequireFromString("2.50"),
	}, "", imageURL)
	require.NoError(t, err)
	s.ID = id
	return s
}

func strPtr(s string) *string { return &s }

func TestSaleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to draft", func(t *testing.T) {
		f := newSaleFixture()
		f.customers.On("FindForUser", ctx, int64(1), int64(7)).Return(&partner.Customer{}, nil)
		f.sales.On("Create", ctx, mock.AnythingOfType("*trade.Sale")).Return(nil)
		f.stats.On("Invalidate", ctx, int64(1)).Return(nil)

		resp, err := f.svc.Create(ctx, 1, CreateSaleRequest{
			RecordFields: RecordFields{
				Date:       datePtr("2024-05-02"),
				CustomerID: int64Ptr(7),
				ItemsCount: intPtr(3),
				UnitPrice:  decPtr("0.335"),
				TotalPrice: decPtr("1.02"),
			},
			ImageURL: strPtr("https://img.example.com/a.jpg"),
		})
		require.NoError(t, err)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "0.34", resp.UnitPrice)
		assert.Equal(t, "1.02", resp.TotalPrice)
		assert.Equal(t, "https://img.example.com/a.jpg", *resp.ImageURL)
	})

	t.Run("missing customer", func(t *testing.T) {
		f := newSaleFixture()
		_, err := f.svc.Create(ctx, 1, CreateSaleRequest{
			RecordFields: RecordFields{Date: datePtr("2024-05-02"), ItemsCount: intPtr(1), UnitPrice: decPtr("1")},
		})
		assert.Equal(t, trade.ErrCustomerRequired, err)
	})
}

func TestSaleService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replacing the image deletes the old one", func(t *testing.T) {
		f := newSaleFixture()
		sale := testSale(t, 3, strPtr("https://img.example.com/old.jpg"))
		f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(sale, nil)
		f.sales.On("Save", ctx, sale).Return(nil)
		f.stats.On("Invalidate", ctx, int64(1)).Return(nil)
		f.images.On("Delete", ctx, "https://img.example.com/old.jpg").Return(nil)

		resp, err := f.svc.Update(ctx, 1, 3, UpdateSaleRequest{
			ImageURL: shared.NullableOf("https://img.example.com/new.jpg"),
			Status:   shared.NullableOf("paid"),
		})
		require.NoError(t, err)
		assert.Equal(t, "https://img.example.com/new.jpg", *resp.ImageURL)
		assert.Equal(t, "paid", resp.Status)
		f.images.AssertExpectations(t)
	})

	t.Run("same image is kept", func(t *testing.T) {
		f := newSaleFixture()
		sale := testSale(t, 3, strPtr("https://img.example.com/old.jpg"))
		f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(sale, nil)
		f.sales.On("Save", ctx, sale).Return(nil)
		f.stats.On("Invalidate", ctx, int64(1)).Return(nil)

		_, err := f.svc.Update(ctx, 1, 3, UpdateSaleRequest{ImageURL: shared.NullableOf("https://img.example.com/old.jpg")})
		require.NoError(t, err)
		f.images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete failure is only logged", func(t *testing.T) {
		f := newSaleFixture()
		sale := testSale(t, 3, strPtr("https://img.example.com/old.jpg"))
		f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(sale, nil)
		f.sales.On("Save", ctx, sale).Return(nil)
		f.stats.On("Invalidate", ctx, int64(1)).Return(nil)
		f.images.On("Delete", ctx, "https://img.example.com/old.jpg").Return(errors.New("timeout"))

		resp, err := f.svc.Update(ctx, 1, 3, UpdateSaleRequest{ImageURL: shared.NullValue[string]()})
		require.NoError(t, err)
		assert.Nil(t, resp.ImageURL)
		require.Equal(t, 1, f.logs.FilterMessage("Failed to delete sale image").Len())
	})

	t.Run("null status", func(t *testing.T) {
		f := newSaleFixture()
		f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(testSale(t, 3, nil), nil)

		_, err := f.svc.Update(ctx, 1, 3, UpdateSaleRequest{Status: shared.NullValue[string]()})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		f.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("blank status keeps paid sale", func(t *testing.T) {
		f := newSaleFixture()
		sale := testSale(t, 3, nil)
		require.NoError(t, sale.SetStatus("paid"))
		f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(sale, nil)

		_, err := f.svc.Update(ctx, 1, 3, UpdateSaleRequest{Status: shared.NullableOf(" ")})
		assert.Equal(t, trade.ErrInvalidStatus, err)
		assert.Equal(t, trade.SaleStatusPaid, sale.Status)
		f.sales.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("null date", func(t *testing.T) {
		f := newSaleFixture()
		f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(testSale(t, 3, nil), nil)

		_, err := f.svc.Update(ctx, 1, 3, UpdateSaleRequest{RecordPatch: RecordPatch{Date: shared.NullValue[shared.Date]()}})
		require.Error(t, err)
		assert.Equal(t, "date cannot be null", err.Error())
	})
}

func TestSaleService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newSaleFixture()
	f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(testSale(t, 3, strPtr("https://img.example.com/a.jpg")), nil)
	f.sales.On("Delete", ctx, int64(1), int64(3)).Return(nil)
	f.stats.On("Invalidate", ctx, int64(1)).Return(nil)
	f.images.On("Delete", ctx, "https://img.example.com/a.jpg").Return(nil)

	require.NoError(t, f.svc.Delete(ctx, 1, 3))
	f.images.AssertExpectations(t)

	f.sales.On("FindForOwner", ctx, int64(1), int64(9)).Return(nil, shared.ErrNotFound)
	assert.Equal(t, ErrSaleNotFound, f.svc.Delete(ctx, 1, 9))
}

func TestSaleService_Images(t *testing.T) {
	ctx := context.Background()
	data := []byte("jpeg bytes")

	t.Run("upload", func(t *testing.T) {
		f := newSaleFixture()
		f.images.On("Upload", ctx, data).Return("https://img.example.com/new.jpg", nil)

		resp, err := f.svc.UploadImage(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, "https://img.example.com/new.jpg", resp.URL)
	})

	t.Run("upload unconfigured", func(t *testing.T) {
		f := newSaleFixture()
		unavailable := shared.NewDomainError("SERVICE_UNAVAILABLE", "Image storage is not configured")
		f.images.On("Upload", ctx, data).Return("", unavailable)

		_, err := f.svc.UploadImage(ctx, data)
		assert.ErrorIs(t, err, shared.ErrServiceUnavailable)
	})

	t.Run("attach replaces previous image", func(t *testing.T) {
		f := newSaleFixture()
		sale := testSale(t, 3, strPtr("https://img.example.com/old.jpg"))
		f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(sale, nil)
		f.images.On("Upload", ctx, data).Return("https://img.example.com/new.jpg", nil)
		f.sales.On("Save", ctx, sale).Return(nil)
		f.stats.On("Invalidate", ctx, int64(1)).Return(nil)
		f.images.On("Delete", ctx, "https://img.example.com/old.jpg").Return(nil)

		resp, err := f.svc.AttachImage(ctx, 1, 3, data)
		require.NoError(t, err)
		assert.Equal(t, "https://img.example.com/new.jpg", *resp.ImageURL)
		f.images.AssertExpectations(t)
	})

	t.Run("attach cleans up when save fails", func(t *testing.T) {
		f := newSaleFixture()
		sale := testSale(t, 3, nil)
		f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(sale, nil)
		f.images.On("Upload", ctx, data).Return("https://img.example.com/new.jpg", nil)
		f.sales.On("Save", ctx, sale).Return(errors.New("db gone"))
		f.images.On("Delete", ctx, "https://img.example.com/new.jpg").Return(nil)

		_, err := f.svc.AttachImage(ctx, 1, 3, data)
		require.Error(t, err)
		f.images.AssertExpectations(t)
	})

	t.Run("attach to missing sale uploads nothing", func(t *testing.T) {
		f := newSaleFixture()
		f.sales.On("FindForOwner", ctx, int64(1), int64(3)).Return(nil, shared.ErrNotFound)

		_, err := f.svc.AttachImage(ctx, 1, 3, data)
		assert.Equal(t, ErrSaleNotFound, err)
		f.images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})
}
