package trade

// Sale is goods sold to a customer, optionally with a photo of the receipt
type Sale struct {
	Record
	Status   SaleStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	ImageURL *string    `gorm:"type:varchar(1024)"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a sale owned by ownerID
func NewSale(ownerID int64, d RecordDetails, status string, imageURL *string) (*Sale, error) {
	st, err := initialStatus(status, SaleStatusDraft, ParseSaleStatus)
	if err != nil {
		return nil, err
	}
	rec, err := newRecord(ownerID, d)
	if err != nil {
		return nil, err
	}
	return &Sale{Record: rec, Status: st, ImageURL: imageURL}, nil
}

// SetStatus validates and applies a new status
func (s *Sale) SetStatus(raw string) error {
	st, err := ParseSaleStatus(raw)
	if err != nil {
		return err
	}
	s.Status = st
	s.Touch()
	return nil
}

// ReplaceImage sets the image URL and returns the previous one when it
// changed and is no longer referenced, or "" otherwise
func (s *Sale) ReplaceImage(url *string) string {
	previous := ""
	if s.ImageURL != nil {
		previous = *s.ImageURL
	}
	next := ""
	if url != nil {
		next = *url
	}
	s.ImageURL = url
	s.Touch()
	if previous == next {
		return ""
	}
	return previous
}
