package services_test

import (
	"testing"
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/model/rider"
	"orderhub/internal/core/domain/services"
	"orderhub/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	published []struct {
		Room  ports.Room
		Event ports.Event
	}
}

func (p *capturingPublisher) Publish(room ports.Room, event ports.Event) {
	p.published = append(p.published, struct {
		Room  ports.Room
		Event ports.Event
	}{room, event})
}

func (p *capturingPublisher) rooms() []ports.Room {
	out := make([]ports.Room, 0, len(p.published))
	for _, entry := range p.published {
		out = append(out, entry.Room)
	}
	return out
}

func restoreRouterOrder(
	t *testing.T,
	customerID kernel.UUID,
	restaurantIDs []kernel.UUID,
	riderID *kernel.UUID,
	status order.Status,
) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Pad Thai", 1250, 1, restaurantIDs[0])
	require.NoError(t, err)

	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), customerID, restaurantIDs, riderID,
		[]order.Item{item}, status, order.PaymentPaid,
		"1 Main St", "+15550100", now, now,
	)
	require.NoError(t, err)
	return o
}

func TestEventKindForStatus(t *testing.T) {
	t.Run("should map every status to its event kind", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Pending, services.EventOrderPending},
			{order.Accepted, services.EventOrderAccepted},
			{order.Preparing, services.EventOrderPreparing},
			{order.Assigned, services.EventOrderAssigned},
			{order.OutForDelivery, services.EventOrderOutForDelivery},
			{order.Delivered, services.EventOrderDelivered},
			{order.Cancelled, services.EventOrderCancelled},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, services.EventKindForStatus(tc.status))
		}
	})

	t.Run("should fall back for undefined statuses", func(t *testing.T) {
		assert.Equal(t, "orderUpdated", services.EventKindForStatus(order.Unknown))
	})
}

func TestNotificationRouter_Notify(t *testing.T) {
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	t.Run("should target customer and restaurant rooms for an unassigned order", func(t *testing.T) {
		publisher := &capturingPublisher{}
		router := services.NewNotificationRouter(publisher)
		o := restoreRouterOrder(t, customerID, []kernel.UUID{restaurantID}, nil, order.Pending)

		router.Notify(o, order.Accepted, nil)

		require.Len(t, publisher.published, 2)
		assert.ElementsMatch(t, []ports.Room{
			ports.UserRoom(customerID),
			ports.RestaurantRoom(restaurantID),
		}, publisher.rooms())
	})

	t.Run("should include the rider room when a rider is bound", func(t *testing.T) {
		publisher := &capturingPublisher{}
		router := services.NewNotificationRouter(publisher)
		riderID := kernel.NewUUID()
		o := restoreRouterOrder(t, customerID, []kernel.UUID{restaurantID}, &riderID, order.Assigned)

		router.Notify(o, order.OutForDelivery, nil)

		require.Len(t, publisher.published, 3)
		assert.Contains(t, publisher.rooms(), ports.RiderRoom(riderID))
	})

	t.Run("should target every linked restaurant", func(t *testing.T) {
		publisher := &capturingPublisher{}
		router := services.NewNotificationRouter(publisher)
		otherRestaurantID := kernel.NewUUID()
		o := restoreRouterOrder(t, customerID, []kernel.UUID{restaurantID, otherRestaurantID}, nil, order.Pending)

		router.Notify(o, order.Cancelled, nil)

		assert.ElementsMatch(t, []ports.Room{
			ports.UserRoom(customerID),
			ports.RestaurantRoom(restaurantID),
			ports.RestaurantRoom(otherRestaurantID),
		}, publisher.rooms())
	})

	t.Run("should carry order id, status and timestamp in every payload", func(t *testing.T) {
		publisher := &capturingPublisher{}
		router := services.NewNotificationRouter(publisher)
		o := restoreRouterOrder(t, customerID, []kernel.UUID{restaurantID}, nil, order.Pending)

		router.Notify(o, order.Accepted, nil)

		for _, entry := range publisher.published {
			assert.Equal(t, services.EventOrderAccepted, entry.Event.Kind)
			assert.Equal(t, o.ID().String(), entry.Event.Payload["orderId"])
			assert.Equal(t, "accepted", entry.Event.Payload["status"])
			assert.NotEmpty(t, entry.Event.Payload["timestamp"])
		}
	})

	t.Run("should merge extra fields into the payload", func(t *testing.T) {
		publisher := &capturingPublisher{}
		router := services.NewNotificationRouter(publisher)
		riderID := kernel.NewUUID()
		o := restoreRouterOrder(t, customerID, []kernel.UUID{restaurantID}, &riderID, order.Assigned)

		router.Notify(o, order.Assigned, map[string]any{"riderId": riderID.String()})

		for _, entry := range publisher.published {
			assert.Equal(t, riderID.String(), entry.Event.Payload["riderId"])
		}
	})
}

func TestNotificationRouter_BroadcastAvailability(t *testing.T) {
	t.Run("should publish to the shared riders room and the rider's own room", func(t *testing.T) {
		publisher := &capturingPublisher{}
		router := services.NewNotificationRouter(publisher)
		rd, err := rider.RestoreRider(
			kernel.NewUUID(), kernel.NewUUID(), rider.Available, nil, false, time.Now().UTC(),
		)
		require.NoError(t, err)

		router.BroadcastAvailability(rd)

		require.Len(t, publisher.published, 2)
		assert.ElementsMatch(t, []ports.Room{
			ports.RidersRoom,
			ports.RiderRoom(rd.ID()),
		}, publisher.rooms())

		for _, entry := range publisher.published {
			assert.Equal(t, services.EventRiderAvailability, entry.Event.Kind)
			assert.Equal(t, rd.ID().String(), entry.Event.Payload["riderId"])
			assert.Equal(t, "available", entry.Event.Payload["status"])
		}
	})
}
