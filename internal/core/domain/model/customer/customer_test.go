package customer_test

import (
	"testing"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("should create customer", func(t *testing.T) {
		id := kernel.NewCustomerID(kernel.NewUUID())

		c, err := customer.NewCustomer(id)

		require.NoError(t, err)
		assert.Equal(t, id, c.ID())
	})

	t.Run("should reject missing id", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.CustomerID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, c)
	})
}
