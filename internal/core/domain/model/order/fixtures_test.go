package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/require"
)

type fixedIdentityGenerator struct {
	orderID    kernel.OrderID
	trackingID order.TrackingID
}

func newFixedIdentityGenerator() fixedIdentityGenerator {
	return fixedIdentityGenerator{
		orderID:    kernel.NewOrderID(kernel.NewUUID()),
		trackingID: order.NewTrackingID(kernel.NewUUID()),
	}
}

func (g fixedIdentityGenerator) NextOrderID() kernel.OrderID      { return g.orderID }
func (g fixedIdentityGenerator) NextTrackingID() order.TrackingID { return g.trackingID }

func newProduct(t *testing.T, price string) restaurant.Product {
	t.Helper()
	p, err := restaurant.NewProduct(kernel.NewProductID(kernel.NewUUID()), "Pizza", kernel.MustMoney(price), true)
	require.NoError(t, err)
	return p
}

func newItem(t *testing.T, product restaurant.Product, quantity int, price, subTotal string) *order.Item {
	t.Helper()
	item, err := order.NewItem(product, quantity, kernel.MustMoney(price), kernel.MustMoney(subTotal))
	require.NoError(t, err)
	return item
}

func newAddress(t *testing.T) order.StreetAddress {
	t.Helper()
	a, err := order.NewStreetAddress("Main street 1", "10115", "Berlin")
	require.NoError(t, err)
	return a
}

func newOrder(t *testing.T, price string, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewCustomerID(kernel.NewUUID()),
		kernel.NewRestaurantID(kernel.NewUUID()),
		newAddress(t),
		kernel.MustMoney(price),
		items,
	)
	require.NoError(t, err)
	return o
}

// newOrderIn initializes a valid 20.00 order and moves it to the given status.
func newOrderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o := newOrder(t, "20.00", newItem(t, newProduct(t, "10.00"), 2, "10.00", "20.00"))
	require.NoError(t, o.Initialize(newFixedIdentityGenerator()))

	switch status {
	case order.Pending:
	case order.Paid:
		require.NoError(t, o.Pay())
	case order.Approved:
		require.NoError(t, o.Pay())
		require.NoError(t, o.Approve())
	case order.Cancelling:
		require.NoError(t, o.Pay())
		require.NoError(t, o.InitCancel(nil))
	case order.Cancelled:
		require.NoError(t, o.Cancel(nil))
	default:
		t.Fatalf("unsupported status %s", status)
	}
	return o
}
