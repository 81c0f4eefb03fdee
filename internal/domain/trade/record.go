package trade

import (
	"time"

	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Record holds the columns purchases and sales have in common
type Record struct {
	shared.BaseEntity
	Date       time.Time       `gorm:"type:date;not null;index"`
	TypeID     *int64          `gorm:"index"`
	CustomerID int64           `gorm:"not null;index"`
	ItemName   *string         `gorm:"type:varchar(255)"`
	ItemsCount int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes      *string         `gorm:"type:text"`
	OwnerID    int64           `gorm:"not null;index"`
}

// RecordDetails carries the fields used to build a record
type RecordDetails struct {
	Date       time.Time
	TypeID     *int64
	CustomerID int64
	ItemName   *string
	ItemsCount int
	UnitPrice  decimal.Decimal
	TotalPrice *decimal.Decimal
	Notes      *string
}

func newRecord(ownerID int64, d RecordDetails) (Record, error) {
	if d.CustomerID <= 0 {
		return Record{}, ErrCustomerRequired
	}
	pricing, err := NewPricing(d.ItemsCount, d.UnitPrice, d.TotalPrice)
	if err != nil {
		return Record{}, err
	}
	r := Record{
		BaseEntity: shared.NewBaseEntity(),
		Date:       TruncateDay(d.Date),
		TypeID:     d.TypeID,
		CustomerID: d.CustomerID,
		ItemName:   d.ItemName,
		Notes:      d.Notes,
		OwnerID:    ownerID,
	}
	r.applyPricing(pricing)
	return r, nil
}

// ErrCustomerRequired is returned when a record has no customer
var ErrCustomerRequired = shared.NewDomainError("INVALID_INPUT", "Customer is required")

// Reprice applies a price change. When the change is empty the record is
// left untouched; otherwise absent fields fall back to the current values
// and the invariant is re-validated.
func (r *Record) Reprice(change PriceChange) error {
	if change.IsEmpty() {
		return nil
	}
	count := r.ItemsCount
	if change.ItemsCount != nil {
		count = *change.ItemsCount
	}
	unit := r.UnitPrice
	if change.UnitPrice != nil {
		unit = *change.UnitPrice
	}
	pricing, err := NewPricing(count, unit, change.TotalPrice)
	if err != nil {
		return err
	}
	r.applyPricing(pricing)
	r.Touch()
	return nil
}

func (r *Record) applyPricing(p Pricing) {
	r.ItemsCount = p.ItemsCount
	r.UnitPrice = p.UnitPrice
	r.TotalPrice = p.TotalPrice
}

// SetDate sets the calendar day of the record
func (r *Record) SetDate(d time.Time) {
	r.Date = TruncateDay(d)
	r.Touch()
}

// SetCustomer changes the referenced customer
func (r *Record) SetCustomer(customerID int64) error {
	if customerID <= 0 {
		return ErrCustomerRequired
	}
	r.CustomerID = customerID
	r.Touch()
	return nil
}

// SetType sets or clears the type
func (r *Record) SetType(typeID *int64) {
	r.TypeID = typeID
	r.Touch()
}

// TruncateDay returns midnight UTC of the day d falls on in its own location
func TruncateDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
