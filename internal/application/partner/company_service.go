package partner

import (
	"context"
	"errors"

	"github.com/finmanager/backend/internal/domain/partner"
	"github.com/finmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CompanyService handles company business operations
type CompanyService struct {
	companyRepo partner.CompanyRepository
	logger      *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo partner.CompanyRepository, logger *zap.Logger) *CompanyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyService{companyRepo: companyRepo, logger: logger}
}

// List returns the companies linked to the user ordered by id
func (s *CompanyService) List(ctx context.Context, userID int64, filter shared.Filter) ([]CompanyResponse, error) {
	companies, err := s.companyRepo.FindAllForUser(ctx, userID, filter.Normalize(shared.DefaultLimit))
	if err != nil {
		return nil, err
	}
	out := make([]CompanyResponse, len(companies))
	for i := range companies {
		out[i] = ToCompanyResponse(&companies[i])
	}
	return out, nil
}

// Create links a new company to the user. A linked company with the same
// name is returned as is when every submitted field matches it.
func (s *CompanyService) Create(ctx context.Context, userID int64, req CreateCompanyRequest) (*CompanyResponse, error) {
	company, err := partner.NewCompany(req.details())
	if err != nil {
		return nil, err
	}

	existing, err := s.companyRepo.FindByNameForUser(ctx, userID, company.Name)
	switch {
	case err == nil:
		if !existing.Matches(req.details()) {
			return nil, ErrCompanyConflict
		}
		resp := ToCompanyResponse(existing)
		return &resp, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	if err := s.companyRepo.CreateForUser(ctx, userID, company); err != nil {
		return nil, err
	}
	s.logger.Info("Company created", zap.Int64("company_id", company.ID), zap.Int64("user_id", userID))

	resp := ToCompanyResponse(company)
	return &resp, nil
}

// Get returns a linked company
func (s *CompanyService) Get(ctx context.Context, userID, id int64) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrCompanyNotFound)
	}
	resp := ToCompanyResponse(company)
	return &resp, nil
}

// Update applies the present fields to a linked company
func (s *CompanyService) Update(ctx context.Context, userID, id int64, req UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindForUser(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, ErrCompanyNotFound)
	}

	if req.Name.IsSpecified() {
		if err := company.Rename(req.Name.Value()); err != nil {
			return nil, err
		}
	}
	company.SetContact(
		req.Address.Apply(company.Address),
		req.LegalPerson.Apply(company.LegalPerson),
		req.Phone.Apply(company.Phone),
		req.Email.Apply(company.Email),
	)

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(company)
	return &resp, nil
}

// Delete removes a company that no customer or department references
func (s *CompanyService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.companyRepo.FindForUser(ctx, userID, id); err != nil {
		return notFound(err, ErrCompanyNotFound)
	}

	hasCustomers, err := s.companyRepo.HasCustomers(ctx, id)
	if err != nil {
		return err
	}
	if hasCustomers {
		return ErrCompanyHasCustomers
	}
	hasDepartments, err := s.companyRepo.HasDepartments(ctx, id)
	if err != nil {
		return err
	}
	if hasDepartments {
		return ErrCompanyHasDepartments
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrCompanyNotFound)
	}
	s.logger.Info("Company deleted", zap.Int64("company_id", id), zap.Int64("user_id", userID))
	return nil
}
