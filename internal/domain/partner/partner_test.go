package partner

import (
	"errors"
	"strings"
	"testing"

	"github.com/finmanager/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewCompany(t *testing.T) {
	t.Run("trims name", func(t *testing.T) {
		c, err := NewCompany(CompanyDetails{Name: "  Acme  ", Phone: strPtr("123")})
		require.NoError(t, err)
		assert.Equal(t, "Acme", c.Name)
		assert.Equal(t, "123", *c.Phone)
		assert.False(t, c.CreatedAt.IsZero())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewCompany(CompanyDetails{Name: "   "})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})

	t.Run("rejects long name", func(t *testing.T) {
		_, err := NewCompany(CompanyDetails{Name: strings.Repeat("x", 256)})
		assert.Error(t, err)
	})
}

func TestCompany_Matches(t *testing.T) {
	c, err := NewCompany(CompanyDetails{Name: "Acme", Address: strPtr("Main St")})
	require.NoError(t, err)

	assert.True(t, c.Matches(CompanyDetails{Name: " Acme ", Address: strPtr("Main St")}))
	assert.False(t, c.Matches(CompanyDetails{Name: "Acme"}))
	assert.False(t, c.Matches(CompanyDetails{Name: "Acme", Address: strPtr("Side St")}))
	assert.False(t, c.Matches(CompanyDetails{Name: "Acme", Address: strPtr("Main St"), Email: strPtr("a@b.c")}))
}

func TestNewDepartment(t *testing.T) {
	d, err := NewDepartment("Sales", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), d.CompanyID)

	_, err = NewDepartment("Sales", 0)
	assert.Error(t, err)

	_, err = NewDepartment("", 3)
	assert.Error(t, err)
}

func TestCustomer(t *testing.T) {
	t.Run("unaffiliated by default", func(t *testing.T) {
		c, err := NewCustomer(CustomerDetails{Name: "Jane"})
		require.NoError(t, err)
		assert.False(t, c.IsAffiliated())
		assert.Nil(t, c.DepartmentID)
	})

	t.Run("negative company rejected", func(t *testing.T) {
		_, err := NewCustomer(CustomerDetails{Name: "Jane", CompanyID: -1})
		require.Error(t, err)
		assert.Equal(t, "Invalid company id", err.Error())
	})

	t.Run("assign company and department", func(t *testing.T) {
		c, err := NewCustomer(CustomerDetails{Name: "Jane"})
		require.NoError(t, err)
		require.NoError(t, c.AssignCompany(7))
		dept := int64(2)
		c.AssignDepartment(&dept)
		assert.True(t, c.IsAffiliated())
		assert.Equal(t, int64(2), *c.DepartmentID)
		assert.Error(t, c.AssignCompany(-5))
	})
}

func TestSupplier(t *testing.T) {
	s, err := NewSupplier("Parts Co", nil, strPtr("p@c.io"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Parts Co", s.Name)

	require.NoError(t, s.Rename("Parts Ltd"))
	assert.Equal(t, "Parts Ltd", s.Name)
	assert.Error(t, s.Rename(""))

	s.SetContact(strPtr("1"), nil, strPtr("addr"))
	assert.Equal(t, "1", *s.PhoneNumber)
	assert.Nil(t, s.Email)
}
