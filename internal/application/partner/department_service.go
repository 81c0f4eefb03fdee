package partner

import (
	"context"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultDepartmentLimit is the page size of department listings
const DefaultDepartmentLimit = 200

// DepartmentService handles department business operations. Access follows
// the link between the user and the department's company.
type DepartmentService struct {
	departmentRepo partner.DepartmentRepository
	companyRepo    partner.CompanyRepository
	logger         *zap.Logger
}

// NewDepartmentService creates a new DepartmentService
func NewDepartmentService(
	departmentRepo partner.DepartmentRepository,
	companyRepo partner.CompanyRepository,
	logger *zap.Logger,
) *DepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{
		departmentRepo: departmentRepo,
		companyRepo:    companyRepo,
		logger:         logger,
	}
}

// List returns accessible departments, optionally of one company
func (s *DepartmentService) List(ctx context.Context, userID int64, companyID *int64, filter shared.Filter) ([]DepartmentResponse, error) {
	departments, err := s.departmentRepo.FindAllForUser(ctx, userID, companyID, filter.Normalize(DefaultDepartmentLimit))
	if err != nil {
		return nil, err
	}
	out := make([]DepartmentResponse, len(departments))
	for i := range departments {
		out[i] = ToDepartmentResponse(&departments[i])
	}
	return out, nil
}

// Create adds a department to a linked company
func (s *DepartmentService) Create(ctx context.Context, userID int64, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	if err := s.requireLinkedCompany(ctx, userID, req.CompanyID); err != nil {
		return nil, err
	}
	department, err := partner.NewDepartment(req.Name, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(department)
	return &resp, nil
}

// Get returns an accessible department
func (s *DepartmentService) Get(ctx context.Context, userID, id int64) (*DepartmentResponse, error) {
	department, err := s.departmentRepo.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrDepartmentNotFound)
	}
	resp := ToDepartmentResponse(department)
	return &resp, nil
}

// Update renames a department or moves it to another linked company
func (s *DepartmentService) Update(ctx context.Context, userID, id int64, req UpdateDepartmentRequest) (*DepartmentResponse, error) {
	department, err := s.departmentRepo.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrDepartmentNotFound)
	}

	if req.CompanyID.IsSpecified() {
		if req.CompanyID.IsNull() {
			return nil, ErrDepartmentCompanyNull
		}
		if err := s.requireLinkedCompany(ctx, userID, req.CompanyID.Value()); err != nil {
			return nil, err
		}
		department.MoveTo(req.CompanyID.Value())
	}
	if req.Name.IsSpecified() {
		if err := department.Rename(req.Name.Value()); err != nil {
			return nil, err
		}
	}

	if err := s.departmentRepo.Save(ctx, department); err != nil {
		return nil, err
	}
	resp := ToDepartmentResponse(department)
	return &resp, nil
}

// Delete removes a department without member customers
func (s *DepartmentService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.departmentRepo.FindForUser(ctx, userID, id); err != nil {
		return notFound(err, ErrDepartmentNotFound)
	}
	hasCustomers, err := s.departmentRepo.HasCustomers(ctx, id)
	if err != nil {
		return err
	}
	if hasCustomers {
		return ErrDepartmentHasCustomers
	}
	if err := s.departmentRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrDepartmentNotFound)
	}
	s.logger.Info("Department deleted", zap.Int64("department_id", id), zap.Int64("user_id", userID))
	return nil
}

func (s *DepartmentService) requireLinkedCompany(ctx context.Context, userID, companyID int64) error {
	linked, err := s.companyRepo.IsLinked(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if !linked {
		return ErrCompanyNotFound
	}
	return nil
}
