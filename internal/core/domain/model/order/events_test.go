package order_test

import (
	"testing"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	t.Run("should snapshot the order", func(t *testing.T) {
		o := newOrderIn(t, order.Pending)

		e := order.NewCreatedEvent(o, at)

		assert.Equal(t, o.ID(), e.OrderID)
		assert.Equal(t, o.TrackingID(), e.TrackingID)
		assert.Equal(t, o.ID().UUID, e.SagaID)
		assert.Equal(t, order.Pending, e.Status)
		assert.Equal(t, time.UTC, e.CreatedAt.Location())
		assert.True(t, e.CreatedAt.Equal(at))
		require.Len(t, e.Items, 1)
		assert.Equal(t, order.ItemID(1), e.Items[0].ID)
		assert.Equal(t, 2, e.Items[0].Quantity)
		assert.Equal(t, "20.00", e.Items[0].SubTotal.String())
	})

	t.Run("later transitions do not change an emitted event", func(t *testing.T) {
		o := newOrderIn(t, order.Paid)
		e := order.NewPaidEvent(o, at)

		require.NoError(t, o.InitCancel([]string{"closed"}))
		cancelled := order.NewCancelledEvent(o, at)

		assert.Equal(t, order.Paid, e.Status)
		assert.Empty(t, e.FailureMessages)
		assert.Equal(t, order.Cancelling, cancelled.Status)
		assert.Equal(t, []string{"closed"}, cancelled.FailureMessages)
	})
}
