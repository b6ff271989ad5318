package ports

import (
	"time"

	"orderhub/internal/core/domain/model/kernel"
)

// Room names a subject whose subscribers receive lifecycle events.
// Rooms are ephemeral and process-local; the registry behind RoomPublisher
// creates them lazily and forgets them when they empty.
type Room string

// RidersRoom is the shared room that carries rider availability broadcasts.
// Restaurant connections join it so dispatch screens see availability flips.
const RidersRoom Room = "riders"

// UserRoom names the room of a customer's connections.
func UserRoom(id kernel.UUID) Room {
	return Room("user:" + id.String())
}

// RestaurantRoom names the room of a restaurant's connections.
func RestaurantRoom(id kernel.UUID) Room {
	return Room("restaurant:" + id.String())
}

// RiderRoom names the room of a rider's connections.
func RiderRoom(id kernel.UUID) Room {
	return Room("rider:" + id.String())
}

// Event is a payload delivered to every connection in a room.
// Kind identifies what happened; Payload carries at least orderId (or
// riderId), status, and timestamp.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   map[string]any
}

// RoomPublisher publishes events to rooms.
//
// Publication is fire-and-forget: it must return promptly, an empty room is a
// silent no-op, and no delivery guarantee is offered beyond "currently
// connected recipients receive it once". State truth lives in the store,
// which every actor can re-poll.
type RoomPublisher interface {
	Publish(room Room, event Event)
}
