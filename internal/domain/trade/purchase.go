package trade

// Purchase is goods bought on behalf of a customer, optionally from a supplier
type Purchase struct {
	Record
	SupplierID *int64         `gorm:"index"`
	Status     PurchaseStatus `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a purchase owned by ownerID
func NewPurchase(ownerID int64, d RecordDetails, supplierID *int64, status string) (*Purchase, error) {
	st, err := initialStatus(status, PurchaseStatusPending, ParsePurchaseStatus)
	if err != nil {
		return nil, err
	}
	rec, err := newRecord(ownerID, d)
	if err != nil {
		return nil, err
	}
	return &Purchase{Record: rec, SupplierID: supplierID, Status: st}, nil
}

// SetStatus validates and applies a new status
func (p *Purchase) SetStatus(raw string) error {
	st, err := ParsePurchaseStatus(raw)
	if err != nil {
		return err
	}
	p.Status = st
	p.Touch()
	return nil
}

// SetSupplier sets or clears the supplier
func (p *Purchase) SetSupplier(supplierID *int64) {
	p.SupplierID = supplierID
	p.Touch()
}
