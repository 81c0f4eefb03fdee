package catalog

import (
	"context"
	"errors"

	"github.com/finmanager/backend/internal/domain/catalog"
	"github.com/finmanager/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var (
	ErrTypeNotFound = shared.NewDomainError("NOT_FOUND", "Type not found")
	ErrTypeExists   = shared.NewDomainError("ALREADY_EXISTS", "Type already exists")
)

// TypeService handles type business operations
type TypeService struct {
	typeRepo catalog.TypeRepository
	logger   *zap.Logger
}

// NewTypeService creates a new TypeService
func NewTypeService(typeRepo catalog.TypeRepository, logger *zap.Logger) *TypeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypeService{typeRepo: typeRepo, logger: logger}
}

// List returns the owner's types ordered by id
func (s *TypeService) List(ctx context.Context, ownerID int64, filter shared.Filter) ([]TypeResponse, error) {
	types, err := s.typeRepo.FindAllForOwner(ctx, ownerID, filter.Normalize(shared.DefaultLimit))
	if err != nil {
		return nil, err
	}
	out := make([]TypeResponse, len(types))
	for i := range types {
		out[i] = ToTypeResponse(&types[i])
	}
	return out, nil
}

// Create adds a type whose name is unique for the owner
func (s *TypeService) Create(ctx context.Context, ownerID int64, req CreateTypeRequest) (*TypeResponse, error) {
	t, err := catalog.NewType(ownerID, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, ownerID, t.Name, 0); err != nil {
		return nil, err
	}
	if err := s.typeRepo.Create(ctx, t); err != nil {
		// the unique index catches a concurrent insert of the same name
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrTypeExists
		}
		return nil, err
	}
	s.logger.Info("Type created", zap.Int64("type_id", t.ID), zap.Int64("owner_id", ownerID))

	resp := ToTypeResponse(t)
	return &resp, nil
}

// Get returns an owned type
func (s *TypeService) Get(ctx context.Context, ownerID, id int64) (*TypeResponse, error) {
	t, err := s.find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTypeResponse(t)
	return &resp, nil
}

// Update renames a type
func (s *TypeService) Update(ctx context.Context, ownerID, id int64, req UpdateTypeRequest) (*TypeResponse, error) {
	t, err := s.find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := t.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, ownerID, t.Name, t.ID); err != nil {
		return nil, err
	}
	if err := s.typeRepo.Save(ctx, t); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, ErrTypeExists
		}
		return nil, err
	}
	resp := ToTypeResponse(t)
	return &resp, nil
}

// Delete removes a type; purchases and sales using it lose their type
func (s *TypeService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.typeRepo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrTypeNotFound
		}
		return err
	}
	s.logger.Info("Type deleted", zap.Int64("type_id", id), zap.Int64("owner_id", ownerID))
	return nil
}

func (s *TypeService) find(ctx context.Context, ownerID, id int64) (*catalog.Type, error) {
	t, err := s.typeRepo.FindForOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TypeService) ensureUnique(ctx context.Context, ownerID int64, name string, excludeID int64) error {
	exists, err := s.typeRepo.ExistsByName(ctx, ownerID, name, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrTypeExists
	}
	return nil
}
