package services

import (
	"time"

	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/core/domain/model/rider"
	"orderhub/internal/core/ports"
)

// Event kinds published by the router, one per target status plus the rider
// availability broadcast.
const (
	EventOrderPending        = "orderPending"
	EventOrderAccepted       = "orderAccepted"
	EventOrderPreparing      = "orderPreparing"
	EventOrderAssigned       = "orderAssigned"
	EventOrderOutForDelivery = "orderOutForDelivery"
	EventOrderDelivered      = "orderDelivered"
	EventOrderCancelled      = "orderCancelled"

	EventRiderAvailability = "riderAvailabilityUpdate"
)

// EventKindForStatus maps a target order status to its event kind.
func EventKindForStatus(s order.Status) string {
	switch s {
	case order.Pending:
		return EventOrderPending
	case order.Accepted:
		return EventOrderAccepted
	case order.Preparing:
		return EventOrderPreparing
	case order.Assigned:
		return EventOrderAssigned
	case order.OutForDelivery:
		return EventOrderOutForDelivery
	case order.Delivered:
		return EventOrderDelivered
	case order.Cancelled:
		return EventOrderCancelled
	default:
		return "orderUpdated"
	}
}

// NotificationRouter resolves which rooms must hear about an order event and
// publishes to each through the room publisher.
//
// The fan-out rule is uniform: every event targets the customer's room, the
// room of every linked restaurant, and the rider's room when one is bound.
// No event is restaurant-only or rider-only; each UI decides relevance on its
// own. One rule applied everywhere is easier to verify than per-status lists.
type NotificationRouter struct {
	publisher ports.RoomPublisher
}

// NewNotificationRouter creates a router publishing through the given publisher.
func NewNotificationRouter(publisher ports.RoomPublisher) NotificationRouter {
	return NotificationRouter{publisher: publisher}
}

// Notify publishes the event for a transition to every subject room of the
// order, merging extra into the standard payload. Callers invoke it only
// after the persisted write succeeded; unconfirmed state is never broadcast.
func (r NotificationRouter) Notify(o *order.Order, status order.Status, extra map[string]any) {
	now := time.Now().UTC()
	payload := map[string]any{
		"orderId":   o.ID().String(),
		"status":    status.String(),
		"timestamp": now.Format(time.RFC3339),
	}
	for k, v := range extra {
		payload[k] = v
	}

	event := ports.Event{
		Kind:      EventKindForStatus(status),
		Timestamp: now,
		Payload:   payload,
	}

	rooms := make([]ports.Room, 0, len(o.RestaurantIDs())+2)
	rooms = append(rooms, ports.UserRoom(o.CustomerID()))
	for _, restaurantID := range o.RestaurantIDs() {
		rooms = append(rooms, ports.RestaurantRoom(restaurantID))
	}
	if riderID := o.RiderID(); riderID != nil {
		rooms = append(rooms, ports.RiderRoom(*riderID))
	}

	for _, room := range rooms {
		r.publisher.Publish(room, event)
	}
}

// BroadcastAvailability publishes a rider availability flip to the shared
// riders room and to the rider's own room.
func (r NotificationRouter) BroadcastAvailability(rd *rider.Rider) {
	now := time.Now().UTC()
	event := ports.Event{
		Kind:      EventRiderAvailability,
		Timestamp: now,
		Payload: map[string]any{
			"riderId":   rd.ID().String(),
			"status":    rd.Status().String(),
			"timestamp": now.Format(time.RFC3339),
		},
	}

	r.publisher.Publish(ports.RidersRoom, event)
	r.publisher.Publish(ports.RiderRoom(rd.ID()), event)
}
