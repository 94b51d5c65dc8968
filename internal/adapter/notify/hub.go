package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/srgjo27/captainbook/internal/core/domain"
)

const DefaultQueueSize = 64

var ErrClientClosed = errors.New("client disconnected")

// Frame is the JSON shape of every message on a client connection.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func EncodeFrame(event domain.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.Kind(), err)
	}
	return json.Marshal(Frame{Event: event.Kind(), Data: data})
}

// Client is one live subscriber connection. The transport drains Outbound
// and writes each frame to the wire in order.
type Client struct {
	id     uint64
	send   chan []byte
	rooms  map[domain.Room]struct{}
	closed bool
}

func (c *Client) ID() uint64 {
	return c.id
}

// Outbound is closed when the client is disconnected from the hub.
func (c *Client) Outbound() <-chan []byte {
	return c.send
}

// Hub owns room membership for the connections of this process.
type Hub struct {
	mu        sync.RWMutex
	rooms     map[domain.Room]map[*Client]struct{}
	queueSize int
	nextID    atomic.Uint64
	log       zerolog.Logger
}

func NewHub(log zerolog.Logger, queueSize int) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		rooms:     make(map[domain.Room]map[*Client]struct{}),
		queueSize: queueSize,
		log:       log.With().Str("component", "notification_hub").Logger(),
	}
}

func (h *Hub) Connect() *Client {
	return &Client{
		id:    h.nextID.Add(1),
		send:  make(chan []byte, h.queueSize),
		rooms: make(map[domain.Room]struct{}),
	}
}

func (h *Hub) Join(c *Client, room domain.Room) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}

	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}

	h.log.Debug().Uint64("client", c.id).Str("room", string(room)).Msg("joined room")
	return nil
}

func (h *Hub) Leave(c *Client, room domain.Room) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(c, room)
}

func (h *Hub) leaveLocked(c *Client, room domain.Room) {
	delete(c.rooms, room)
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Disconnect removes every membership of c and closes its outbound queue.
// It is safe to call more than once.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c.closed {
		return
	}
	for room := range c.rooms {
		h.leaveLocked(c, room)
	}
	c.closed = true
	close(c.send)
}

// Publish encodes event and hands it to every member of room.
func (h *Hub) Publish(_ context.Context, room domain.Room, event domain.Event) error {
	frame, err := EncodeFrame(event)
	if err != nil {
		return err
	}
	h.Deliver(room, frame)
	return nil
}

// Deliver enqueues an encoded frame for each member of room and returns how
// many members accepted it. A member whose queue is full misses the frame.
func (h *Hub) Deliver(room domain.Room, frame []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for c := range h.rooms[room] {
		select {
		case c.send <- frame:
			delivered++
		default:
			h.log.Warn().Uint64("client", c.id).Str("room", string(room)).Msg("client queue full, frame dropped")
		}
	}
	return delivered
}

func (h *Hub) Members(room domain.Room) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[room])
}
