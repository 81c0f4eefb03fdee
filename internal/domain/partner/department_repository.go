package partner

import (
	"context"

	"github.com/finmanager/backend/internal/domain/shared"
)

// DepartmentRepository defines persistence for departments. Access is
// derived from the link between the user and the department's company.
type DepartmentRepository interface {
	FindForUser(ctx context.Context, userID, id int64) (*Department, error)
	// FindAllForUser lists accessible departments, optionally for one company
	FindAllForUser(ctx context.Context, userID int64, companyID *int64, filter shared.Filter) ([]Department, error)
	Create(ctx context.Context, department *Department) error
	Save(ctx context.Context, department *Department) error
	Delete(ctx context.Context, id int64) error
	HasCustomers(ctx context.Context, id int64) (bool, error)
}
