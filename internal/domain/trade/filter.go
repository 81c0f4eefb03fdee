package trade

import (
	"strings"
	"time"

	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ListFilter narrows purchase and sale listings
type ListFilter struct {
	TypeID     *int64
	CustomerID *int64
	CompanyID  *int64
	Status     string
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
	Skip       int
	Limit      int
}

// Normalize trims text fields, quantises amounts and validates the ranges.
// validStatus reports whether a lower-cased status is known.
func (f ListFilter) Normalize(validStatus func(string) bool) (ListFilter, error) {
	f.Status = normalizeStatus(f.Status)
	if f.Status != "" && !validStatus(f.Status) {
		return f, ErrInvalidStatusFilter
	}
	f.Search = strings.TrimSpace(f.Search)
	if f.AmountMin != nil {
		v := RoundMoney(*f.AmountMin)
		f.AmountMin = &v
	}
	if f.AmountMax != nil {
		v := RoundMoney(*f.AmountMax)
		f.AmountMax = &v
	}
	if f.AmountMin != nil && f.AmountMax != nil && f.AmountMin.GreaterThan(*f.AmountMax) {
		return f, shared.NewDomainError("INVALID_INPUT", "amount_min cannot be greater than amount_max")
	}
	if f.DateFrom != nil {
		d := TruncateDay(*f.DateFrom)
		f.DateFrom = &d
	}
	if f.DateTo != nil {
		d := TruncateDay(*f.DateTo)
		f.DateTo = &d
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = shared.DefaultLimit
	}
	if f.Limit > shared.MaxLimit {
		f.Limit = shared.MaxLimit
	}
	return f, nil
}

// ValidPurchaseStatus reports whether s names a purchase status
func ValidPurchaseStatus(s string) bool { return PurchaseStatus(s).IsValid() }

// ValidSaleStatus reports whether s names a sale status
func ValidSaleStatus(s string) bool { return SaleStatus(s).IsValid() }
