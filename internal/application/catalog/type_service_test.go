package catalog

import (
	"context"
	"testing"

	"github.com/finmanager/backend/internal/domain/catalog"
	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTypeRepository struct {
	mock.Mock
}

func (m *MockTypeRepository) FindForOwner(ctx context.Context, ownerID, id int64) (*catalog.Type, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Type), args.Error(1)
}

func (m *MockTypeRepository) FindAllForOwner(ctx context.Context, ownerID int64, filter shared.Filter) ([]catalog.Type, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]catalog.Type), args.Error(1)
}

func (m *MockTypeRepository) ExistsByName(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, ownerID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTypeRepository) Create(ctx context.Context, t *catalog.Type) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTypeRepository) Save(ctx context.Context, t *catalog.Type) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTypeRepository) Delete(ctx context.Context, ownerID, id int64) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

var _ catalog.TypeRepository = (*MockTypeRepository)(nil)

func testType(t *testing.T, id int64, name string) *catalog.Type {
	t.Helper()
	typ, err := catalog.NewType(1, name)
	require.NoError(t, err)
	typ.ID = id
	return typ
}

func TestTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates", func(t *testing.T) {
		repo := new(MockTypeRepository)
		svc := NewTypeService(repo, nil)
		repo.On("ExistsByName", ctx, int64(1), "Food", int64(0)).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*catalog.Type")).
			Run(func(args mock.Arguments) { args.Get(1).(*catalog.Type).ID = 3 }).
			Return(nil)

		resp, err := svc.Create(ctx, 1, CreateTypeRequest{Name: "  Food "})
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, "Food", resp.Name)
		assert.Equal(t, int64(1), resp.OwnerID)
	})

	t.Run("duplicate", func(t *testing.T) {
		repo := new(MockTypeRepository)
		svc := NewTypeService(repo, nil)
		repo.On("ExistsByName", ctx, int64(1), "Food", int64(0)).Return(true, nil)

		_, err := svc.Create(ctx, 1, CreateTypeRequest{Name: "Food"})
		assert.Equal(t, ErrTypeExists, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique index race", func(t *testing.T) {
		repo := new(MockTypeRepository)
		svc := NewTypeService(repo, nil)
		repo.On("ExistsByName", ctx, int64(1), "Food", int64(0)).Return(false, nil)
		repo.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := svc.Create(ctx, 1, CreateTypeRequest{Name: "Food"})
		assert.Equal(t, ErrTypeExists, err)
	})

	t.Run("blank name", func(t *testing.T) {
		svc := NewTypeService(new(MockTypeRepository), nil)
		_, err := svc.Create(ctx, 1, CreateTypeRequest{Name: "   "})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestTypeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rename", func(t *testing.T) {
		repo := new(MockTypeRepository)
		svc := NewTypeService(repo, nil)
		typ := testType(t, 3, "Food")
		repo.On("FindForOwner", ctx, int64(1), int64(3)).Return(typ, nil)
		repo.On("ExistsByName", ctx, int64(1), "Drinks", int64(3)).Return(false, nil)
		repo.On("Save", ctx, typ).Return(nil)

		resp, err := svc.Update(ctx, 1, 3, UpdateTypeRequest{Name: "Drinks"})
		require.NoError(t, err)
		assert.Equal(t, "Drinks", resp.Name)
	})

	t.Run("rename to taken name", func(t *testing.T) {
		repo := new(MockTypeRepository)
		svc := NewTypeService(repo, nil)
		repo.On("FindForOwner", ctx, int64(1), int64(3)).Return(testType(t, 3, "Food"), nil)
		repo.On("ExistsByName", ctx, int64(1), "Drinks", int64(3)).Return(true, nil)

		_, err := svc.Update(ctx, 1, 3, UpdateTypeRequest{Name: "Drinks"})
		assert.Equal(t, ErrTypeExists, err)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("other owner", func(t *testing.T) {
		repo := new(MockTypeRepository)
		svc := NewTypeService(repo, nil)
		repo.On("FindForOwner", ctx, int64(2), int64(3)).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, 2, 3, UpdateTypeRequest{Name: "Drinks"})
		assert.Equal(t, ErrTypeNotFound, err)
		assert.Equal(t, "Type not found", err.Error())
	})
}

func TestTypeService_ListGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTypeRepository)
	svc := NewTypeService(repo, nil)

	repo.On("FindAllForOwner", ctx, int64(1), mock.MatchedBy(func(f shared.Filter) bool {
		return f.Limit == shared.DefaultLimit
	})).Return([]catalog.Type{*testType(t, 3, "Food"), *testType(t, 4, "Rent")}, nil)
	repo.On("FindForOwner", ctx, int64(1), int64(3)).Return(testType(t, 3, "Food"), nil)
	repo.On("Delete", ctx, int64(1), int64(3)).Return(nil)
	repo.On("Delete", ctx, int64(1), int64(9)).Return(shared.ErrNotFound)

	list, err := svc.List(ctx, 1, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Rent", list[1].Name)

	got, err := svc.Get(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Name)

	require.NoError(t, svc.Delete(ctx, 1, 3))
	assert.Equal(t, ErrTypeNotFound, svc.Delete(ctx, 1, 9))
}
