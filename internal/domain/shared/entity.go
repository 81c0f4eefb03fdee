package shared

import "time"

// BaseEntity holds the identity and timestamps every stored row carries.
// The ID is assigned by the database on insert.
type BaseEntity struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// NewBaseEntity stamps both timestamps with the current UTC time
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{CreatedAt: now, UpdatedAt: now}
}

// Touch bumps the update timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}
