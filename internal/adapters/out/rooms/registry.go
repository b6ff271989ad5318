// Package rooms implements the process-local room registry behind the
// RoomPublisher port. Rooms are plain in-memory subscriber sets: created
// lazily on the first subscribe, dropped when the last member leaves. Nothing
// here persists or crosses process boundaries; the store stays the source of
// truth and a reconnecting client re-reads it.
package rooms

import (
	"hash/fnv"
	"sync"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/ports"
)

// Connection is one subscriber endpoint, typically a live websocket wrapped
// by the transport layer. Send must not panic on a closed peer; the registry
// does not track delivery.
type Connection interface {
	Send(event ports.Event)
}

// Subject describes the identities behind a connection. Any subset may be
// set; each set id joins the matching room. Restaurant connections also join
// the shared riders room so their dispatch view hears availability flips.
type Subject struct {
	UserID       *kernel.UUID
	RestaurantID *kernel.UUID
	RiderID      *kernel.UUID
}

const shardCount = 16

type shard struct {
	mu    sync.RWMutex
	rooms map[ports.Room]map[Connection]struct{}
}

// Registry is a sharded room-to-subscribers map. Room operations lock only
// the shard the room hashes to, so publishes to unrelated rooms do not
// contend. A separate reverse index supports Leave without scanning shards.
type Registry struct {
	shards [shardCount]*shard

	mu    sync.Mutex
	conns map[Connection]map[ports.Room]struct{}
}

// NewRegistry creates an empty room registry.
func NewRegistry() *Registry {
	r := &Registry{
		conns: make(map[Connection]map[ports.Room]struct{}),
	}
	for i := range r.shards {
		r.shards[i] = &shard{rooms: make(map[ports.Room]map[Connection]struct{})}
	}
	return r
}

func (r *Registry) shardFor(room ports.Room) *shard {
	h := fnv.New32a()
	h.Write([]byte(room))
	return r.shards[h.Sum32()%shardCount]
}

// Subscribe adds the connection to the room, creating the room on first use.
// Subscribing twice to the same room is a no-op.
func (r *Registry) Subscribe(room ports.Room, conn Connection) {
	if conn == nil {
		return
	}

	s := r.shardFor(room)
	s.mu.Lock()
	members, ok := s.rooms[room]
	if !ok {
		members = make(map[Connection]struct{})
		s.rooms[room] = members
	}
	members[conn] = struct{}{}
	s.mu.Unlock()

	r.mu.Lock()
	joined, ok := r.conns[conn]
	if !ok {
		joined = make(map[ports.Room]struct{})
		r.conns[conn] = joined
	}
	joined[room] = struct{}{}
	r.mu.Unlock()
}

// Unsubscribe removes the connection from the room. The room is forgotten
// when its last member leaves. Unsubscribing from a room the connection never
// joined is a no-op.
func (r *Registry) Unsubscribe(room ports.Room, conn Connection) {
	s := r.shardFor(room)
	s.mu.Lock()
	if members, ok := s.rooms[room]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(s.rooms, room)
		}
	}
	s.mu.Unlock()

	r.mu.Lock()
	if joined, ok := r.conns[conn]; ok {
		delete(joined, room)
		if len(joined) == 0 {
			delete(r.conns, conn)
		}
	}
	r.mu.Unlock()
}

// JoinSubject subscribes the connection to every room its identities imply.
func (r *Registry) JoinSubject(conn Connection, subject Subject) {
	if subject.UserID != nil {
		r.Subscribe(ports.UserRoom(*subject.UserID), conn)
	}
	if subject.RestaurantID != nil {
		r.Subscribe(ports.RestaurantRoom(*subject.RestaurantID), conn)
		r.Subscribe(ports.RidersRoom, conn)
	}
	if subject.RiderID != nil {
		r.Subscribe(ports.RiderRoom(*subject.RiderID), conn)
	}
}

// Leave removes the connection from every room it joined. Called when the
// underlying transport closes.
func (r *Registry) Leave(conn Connection) {
	r.mu.Lock()
	joined := r.conns[conn]
	rooms := make([]ports.Room, 0, len(joined))
	for room := range joined {
		rooms = append(rooms, room)
	}
	r.mu.Unlock()

	for _, room := range rooms {
		r.Unsubscribe(room, conn)
	}
}

// Publish delivers the event to every current member of the room. An empty
// or unknown room is a silent no-op. The member set is snapshotted under the
// read lock and sends happen outside it, so a slow recipient cannot block
// subscriptions on the same shard.
func (r *Registry) Publish(room ports.Room, event ports.Event) {
	s := r.shardFor(room)
	s.mu.RLock()
	members := s.rooms[room]
	recipients := make([]Connection, 0, len(members))
	for conn := range members {
		recipients = append(recipients, conn)
	}
	s.mu.RUnlock()

	for _, conn := range recipients {
		conn.Send(event)
	}
}
