package trade

import (
	"context"

	"github.com/finmanager/backend/internal/domain/catalog"
	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/report"
	"github.com/finmanager/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// ImageStore keeps sale images and hands out their public URLs
type ImageStore interface {
	Upload(ctx context.Context, data []byte) (string, error)
	Delete(ctx context.Context, imageURL string) error
}

// SaleService handles sale business operations
type SaleService struct {
	saleRepo trade.SaleRepository
	images   ImageStore
	refs     *references
	logger   *zap.Logger
}

// NewSaleService creates a new SaleService. stats may be nil when
// statistics are not cached.
func NewSaleService(
	saleRepo trade.SaleRepository,
	typeRepo catalog.TypeRepository,
	customerRepo partner.CustomerRepository,
	images ImageStore,
	stats report.StatisticsCache,
	logger *zap.Logger,
) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		saleRepo: saleRepo,
		images:   images,
		refs: &references{
			typeRepo:     typeRepo,
			customerRepo: customerRepo,
			stats:        stats,
			logger:       logger,
		},
		logger: logger,
	}
}

// List returns one page of the owner's sales, newest first
func (s *SaleService) List(ctx context.Context, ownerID int64, query ListQuery) (*ListResponse[SaleResponse], error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}
	filter, err = filter.Normalize(trade.ValidSaleStatus)
	if err != nil {
		return nil, err
	}

	sales, total, err := s.saleRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]SaleResponse, len(sales))
	for i := range sales {
		items[i] = ToSaleResponse(&sales[i])
	}
	return &ListResponse[SaleResponse]{Items: items, Total: total}, nil
}

// Create records a sale after checking the referenced records
func (s *SaleService) Create(ctx context.Context, ownerID int64, req CreateSaleRequest) (*SaleResponse, error) {
	if err := s.refs.checkNew(ctx, ownerID, req.RecordFields); err != nil {
		return nil, err
	}

	sale, err := trade.NewSale(ownerID, req.details(), req.Status, req.ImageURL)
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}
	s.refs.invalidate(ctx, ownerID)
	s.logger.Info("Sale created",
		zap.Int64("sale_id", sale.ID),
		zap.Int64("owner_id", ownerID),
		zap.String("total_price", sale.TotalPrice.StringFixed(2)),
	)

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Get returns an owned sale
func (s *SaleService) Get(ctx context.Context, ownerID, id int64) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, ErrSaleNotFound)
	}
	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Update applies the present fields. Replacing image_url removes the
// previous image once the sale is saved.
func (s *SaleService) Update(ctx context.Context, ownerID, id int64, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, ErrSaleNotFound)
	}

	if err := s.refs.applyPatch(ctx, ownerID, &sale.Record, req.RecordPatch); err != nil {
		return nil, err
	}
	if req.Status.IsSpecified() {
		if req.Status.IsNull() {
			return nil, errNullField("status")
		}
		if err := sale.SetStatus(req.Status.Value()); err != nil {
			return nil, err
		}
	}
	previousImage := ""
	if req.ImageURL.IsSpecified() {
		previousImage = sale.ReplaceImage(req.ImageURL.Ptr())
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	s.refs.invalidate(ctx, ownerID)
	s.discardImage(ctx, previousImage)

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Delete removes an owned sale and its image
func (s *SaleService) Delete(ctx context.Context, ownerID, id int64) error {
	sale, err := s.saleRepo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return notFound(err, ErrSaleNotFound)
	}
	if err := s.saleRepo.Delete(ctx, ownerID, id); err != nil {
		return notFound(err, ErrSaleNotFound)
	}
	s.refs.invalidate(ctx, ownerID)
	if sale.ImageURL != nil {
		s.discardImage(ctx, *sale.ImageURL)
	}
	s.logger.Info("Sale deleted", zap.Int64("sale_id", id), zap.Int64("owner_id", ownerID))
	return nil
}

// UploadImage stores an image that is not yet attached to a sale
func (s *SaleService) UploadImage(ctx context.Context, data []byte) (*ImageUploadResponse, error) {
	url, err := s.images.Upload(ctx, data)
	if err != nil {
		return nil, err
	}
	return &ImageUploadResponse{URL: url}, nil
}

// AttachImage uploads an image, sets it on the sale and removes the
// image it replaces
func (s *SaleService) AttachImage(ctx context.Context, ownerID, id int64, data []byte) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, notFound(err, ErrSaleNotFound)
	}

	url, err := s.images.Upload(ctx, data)
	if err != nil {
		return nil, err
	}
	previous := sale.ReplaceImage(&url)
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		s.discardImage(ctx, url)
		return nil, err
	}
	s.refs.invalidate(ctx, ownerID)
	s.discardImage(ctx, previous)

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// discardImage deletes an image that is no longer referenced. Failures
// leave an orphaned object behind and are only logged.
func (s *SaleService) discardImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		s.logger.Warn("Failed to delete sale image",
			zap.String("url", url),
			zap.Error(err),
		)
	}
}
