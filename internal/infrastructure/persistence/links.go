package persistence

// Link rows grant a user access to shared partner records

type userCompanyLink struct {
	UserID    int64 `gorm:"primaryKey"`
	CompanyID int64 `gorm:"primaryKey"`
}

func (userCompanyLink) TableName() string { return "user_companies" }

type userCustomerLink struct {
	UserID     int64 `gorm:"primaryKey"`
	CustomerID int64 `gorm:"primaryKey"`
}

func (userCustomerLink) TableName() string { return "user_customers" }

type userSupplierLink struct {
	UserID     int64 `gorm:"primaryKey"`
	SupplierID int64 `gorm:"primaryKey"`
}

func (userSupplierLink) TableName() string { return "user_suppliers" }
