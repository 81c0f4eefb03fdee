package trade

import (
	"strings"
	"time"

	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/finmanager/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ==================== Shared record DTOs ====================

// RecordFields are the create fields purchases and sales share
type RecordFields struct {
	Date       *shared.Date     `json:"date" binding:"required"`
	TypeID     *int64           `json:"type_id" binding:"omitempty,gt=0"`
	CustomerID *int64           `json:"customer_id" binding:"required"`
	ItemName   *string          `json:"item_name" binding:"omitempty,max=255"`
	ItemsCount *int             `json:"items_count" binding:"required,min=0"`
	UnitPrice  *decimal.Decimal `json:"unit_price" binding:"required,min=0"`
	TotalPrice *decimal.Decimal `json:"total_price" binding:"omitempty,min=0"`
	Notes      *string          `json:"notes"`
}

func (f RecordFields) details() trade.RecordDetails {
	d := trade.RecordDetails{
		TypeID:     f.TypeID,
		ItemName:   f.ItemName,
		TotalPrice: f.TotalPrice,
		Notes:      f.Notes,
	}
	if f.Date != nil {
		d.Date = f.Date.Time()
	}
	if f.CustomerID != nil {
		d.CustomerID = *f.CustomerID
	}
	if f.ItemsCount != nil {
		d.ItemsCount = *f.ItemsCount
	}
	if f.UnitPrice != nil {
		d.UnitPrice = *f.UnitPrice
	}
	return d
}

// RecordPatch are the update fields purchases and sales share
type RecordPatch struct {
	Date       shared.Nullable[shared.Date]     `json:"date"`
	TypeID     shared.Nullable[int64]           `json:"type_id" binding:"omitempty,gt=0"`
	CustomerID shared.Nullable[int64]           `json:"customer_id"`
	ItemName   shared.Nullable[string]          `json:"item_name" binding:"omitempty,max=255"`
	ItemsCount shared.Nullable[int]             `json:"items_count" binding:"omitempty,min=0"`
	UnitPrice  shared.Nullable[decimal.Decimal] `json:"unit_price" binding:"omitempty,min=0"`
	TotalPrice shared.Nullable[decimal.Decimal] `json:"total_price" binding:"omitempty,min=0"`
	Notes      shared.Nullable[string]          `json:"notes"`
}

func (p RecordPatch) priceChange() trade.PriceChange {
	return trade.PriceChange{
		ItemsCount: p.ItemsCount.Ptr(),
		UnitPrice:  p.UnitPrice.Ptr(),
		TotalPrice: p.TotalPrice.Ptr(),
	}
}

// ListQuery carries the list filters of GET /purchases and GET /sales
type ListQuery struct {
	Skip       int    `form:"skip" binding:"omitempty,min=0"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	TypeID     *int64 `form:"type_id"`
	CustomerID *int64 `form:"customer_id"`
	CompanyID  *int64 `form:"company_id"`
	Status     string `form:"status"`
	Search     string `form:"search"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
	AmountMin  string `form:"amount_min"`
	AmountMax  string `form:"amount_max"`
}

// Filter parses the textual query values into a domain filter
func (q ListQuery) Filter() (trade.ListFilter, error) {
	f := trade.ListFilter{
		TypeID:     q.TypeID,
		CustomerID: q.CustomerID,
		CompanyID:  q.CompanyID,
		Status:     q.Status,
		Search:     q.Search,
		Skip:       q.Skip,
		Limit:      q.Limit,
	}
	var err error
	if f.DateFrom, err = parseDateParam(q.DateFrom); err != nil {
		return f, err
	}
	if f.DateTo, err = parseDateParam(q.DateTo); err != nil {
		return f, err
	}
	if f.AmountMin, err = parseAmountParam("amount_min", q.AmountMin); err != nil {
		return f, err
	}
	if f.AmountMax, err = parseAmountParam("amount_max", q.AmountMax); err != nil {
		return f, err
	}
	return f, nil
}

func parseDateParam(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := shared.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	t := d.Time()
	return &t, nil
}

func parseAmountParam(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid "+name)
	}
	return &v, nil
}

// ListResponse is one page of records and the unpaged count
type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// RecordResponse renders the shared record columns
type RecordResponse struct {
	ID         int64       `json:"id"`
	Date       shared.Date `json:"date"`
	TypeID     *int64      `json:"type_id"`
	CustomerID int64       `json:"customer_id"`
	ItemName   *string     `json:"item_name"`
	ItemsCount int         `json:"items_count"`
	UnitPrice  string      `json:"unit_price"`
	TotalPrice string      `json:"total_price"`
	Notes      *string     `json:"notes"`
	OwnerID    int64       `json:"owner_id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func toRecordResponse(r *trade.Record) RecordResponse {
	return RecordResponse{
		ID:         r.ID,
		Date:       shared.NewDate(r.Date),
		TypeID:     r.TypeID,
		CustomerID: r.CustomerID,
		ItemName:   r.ItemName,
		ItemsCount: r.ItemsCount,
		UnitPrice:  r.UnitPrice.StringFixed(2),
		TotalPrice: r.TotalPrice.StringFixed(2),
		Notes:      r.Notes,
		OwnerID:    r.OwnerID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ==================== Purchase DTOs ====================

// CreatePurchaseRequest represents a request to create a purchase
type CreatePurchaseRequest struct {
	RecordFields
	SupplierID *int64 `json:"supplier_id" binding:"omitempty,gt=0"`
	Status     string `json:"status"`
}

// UpdatePurchaseRequest applies the fields present in the body
type UpdatePurchaseRequest struct {
	RecordPatch
	SupplierID shared.Nullable[int64]  `json:"supplier_id" binding:"omitempty,gt=0"`
	Status     shared.Nullable[string] `json:"status"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	RecordResponse
	SupplierID *int64 `json:"supplier_id"`
	Status     string `json:"status"`
}

// ToPurchaseResponse converts a domain purchase
func ToPurchaseResponse(p *trade.Purchase) PurchaseResponse {
	return PurchaseResponse{
		RecordResponse: toRecordResponse(&p.Record),
		SupplierID:     p.SupplierID,
		Status:         p.Status.String(),
	}
}

// ==================== Sale DTOs ====================

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	RecordFields
	Status   string  `json:"status"`
	ImageURL *string `json:"image_url" binding:"omitempty,max=1024"`
}

// UpdateSaleRequest applies the fields present in the body
type UpdateSaleRequest struct {
	RecordPatch
	Status   shared.Nullable[string] `json:"status"`
	ImageURL shared.Nullable[string] `json:"image_url" binding:"omitempty,max=1024"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	RecordResponse
	Status   string  `json:"status"`
	ImageURL *string `json:"image_url"`
}

// ToSaleResponse converts a domain sale
func ToSaleResponse(s *trade.Sale) SaleResponse {
	return SaleResponse{
		RecordResponse: toRecordResponse(&s.Record),
		Status:         s.Status.String(),
		ImageURL:       s.ImageURL,
	}
}

// ImageUploadResponse carries the public URL of a stored image
type ImageUploadResponse struct {
	URL string `json:"url"`
}
