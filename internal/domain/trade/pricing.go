package trade

import (
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrTotalMismatch is returned when a submitted total disagrees with
// items_count * unit_price
var ErrTotalMismatch = shared.NewDomainError("INVALID_INPUT", "total_price must equal items_count * unit_price")

// RoundMoney quantises an amount to cents, rounding half away from zero
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ExpectedTotal returns items_count * unit_price rounded to cents
func ExpectedTotal(itemsCount int, unitPrice decimal.Decimal) decimal.Decimal {
	return RoundMoney(decimal.NewFromInt(int64(itemsCount)).Mul(RoundMoney(unitPrice)))
}

// Pricing is a validated (count, unit price, total) triple
type Pricing struct {
	ItemsCount int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// NewPricing validates the price invariant. A nil total is computed;
// a given total must match the computed one after rounding.
func NewPricing(itemsCount int, unitPrice decimal.Decimal, total *decimal.Decimal) (Pricing, error) {
	if itemsCount < 0 {
		return Pricing{}, shared.NewDomainError("INVALID_INPUT", "items_count cannot be negative")
	}
	if unitPrice.IsNegative() {
		return Pricing{}, shared.NewDomainError("INVALID_INPUT", "unit_price cannot be negative")
	}
	expected := ExpectedTotal(itemsCount, unitPrice)
	if total != nil && !RoundMoney(*total).Equal(expected) {
		return Pricing{}, ErrTotalMismatch
	}
	return Pricing{
		ItemsCount: itemsCount,
		UnitPrice:  RoundMoney(unitPrice),
		TotalPrice: expected,
	}, nil
}

// PriceChange carries optional replacements for the priced fields of a record
type PriceChange struct {
	ItemsCount *int
	UnitPrice  *decimal.Decimal
	TotalPrice *decimal.Decimal
}

// IsEmpty reports whether no priced field is present
func (c PriceChange) IsEmpty() bool {
	return c.ItemsCount == nil && c.UnitPrice == nil && c.TotalPrice == nil
}
