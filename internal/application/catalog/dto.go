package catalog

import (
	"time"

	"github.com/finmanager/backend/internal/domain/catalog"
)

// CreateTypeRequest represents a request to create a type
type CreateTypeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// UpdateTypeRequest renames a type
type UpdateTypeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// TypeResponse represents a type in API responses
type TypeResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTypeResponse converts a domain type
func ToTypeResponse(t *catalog.Type) TypeResponse {
	return TypeResponse{
		ID:        t.ID,
		Name:      t.Name,
		OwnerID:   t.OwnerID,
		CreatedAt: t.CreatedAt,
	}
}
