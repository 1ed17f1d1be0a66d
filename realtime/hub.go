package realtime

import (
	"log"
	"sync"
)

const clientBufferSize = 16

// Client is one connected subscriber. Events are pushed to its buffered
// channel; a full buffer drops the event for that client.
type Client struct {
	Join  JoinRequest
	rooms []string
	ch    chan Event
}

// Events returns the channel the hub delivers this client's events on.
func (c *Client) Events() <-chan Event {
	return c.ch
}

// Rooms returns the rooms this client was placed in at connect time.
func (c *Client) Rooms() []string {
	return c.rooms
}

// Hub is the room-membership registry for real-time fan-out. It is an
// explicit object passed to handlers; Connect and Disconnect are the only
// mutators. Membership is in-memory only and is lost on disconnect.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]bool
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[*Client]bool),
		clients: make(map[*Client]bool),
	}
}

// RoomsFor derives room membership from a join declaration.
func RoomsFor(j JoinRequest) []string {
	var rooms []string
	switch j.UserType {
	case "admin":
		rooms = append(rooms, "admins")
		if j.RestaurantID != "" {
			rooms = append(rooms, "restaurant_"+j.RestaurantID)
		}
		if j.BranchID != "" {
			rooms = append(rooms, "branch_"+j.BranchID)
		}
	case "customer":
		rooms = append(rooms, "customers")
		if j.TableID != "" {
			rooms = append(rooms, "table_"+j.TableID)
		}
		if j.BranchID != "" {
			rooms = append(rooms, "customer_branch_"+j.BranchID)
		}
	case "pos":
		if j.BranchID != "" {
			// POS also listens on the kitchen room to receive kitchen-origin updates.
			rooms = append(rooms, "pos_branch_"+j.BranchID, "kitchen_branch_"+j.BranchID)
		}
		if j.RestaurantID != "" {
			rooms = append(rooms, "pos_restaurant_"+j.RestaurantID)
		}
	case "kitchen", "chef":
		if j.BranchID != "" {
			// Kitchen also listens on the POS room to receive POS-origin updates.
			rooms = append(rooms, "kitchen_branch_"+j.BranchID, "pos_branch_"+j.BranchID)
		}
		if j.RestaurantID != "" {
			rooms = append(rooms, "kitchen_restaurant_"+j.RestaurantID)
		}
	}
	return rooms
}

// Connect registers a client in the rooms derived from its join request.
func (h *Hub) Connect(j JoinRequest) *Client {
	client := &Client{
		Join:  j,
		rooms: RoomsFor(j),
		ch:    make(chan Event, clientBufferSize),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	for _, room := range client.rooms {
		if h.rooms[room] == nil {
			h.rooms[room] = make(map[*Client]bool)
		}
		h.rooms[room][client] = true
	}
	return client
}

// Disconnect removes the client from every room and closes its channel.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	for _, room := range c.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	close(c.ch)
}

// Broadcast delivers the event to every client in any of the given rooms,
// once per client. Clients with a full buffer are skipped.
func (h *Hub) Broadcast(rooms []string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[*Client]bool)
	for _, room := range rooms {
		for client := range h.rooms[room] {
			if seen[client] {
				continue
			}
			seen[client] = true
			select {
			case client.ch <- ev:
			default:
				log.Printf("realtime: dropping %s event for slow client in %s", ev.Type, room)
			}
		}
	}
}

// targetRooms computes the audience for an event originating from the given
// scope: the complementary role's branch room plus admin rooms.
func targetRooms(origin, branchID, restaurantID string) []string {
	rooms := []string{"admins"}
	if restaurantID != "" {
		rooms = append(rooms, "restaurant_"+restaurantID)
	}
	if branchID != "" {
		rooms = append(rooms, "branch_"+branchID)
		switch origin {
		case "kitchen", "chef":
			rooms = append(rooms, "pos_branch_"+branchID)
		default:
			rooms = append(rooms, "kitchen_branch_"+branchID)
		}
	}
	return rooms
}

// PublishNewOrder relays a newOrder event to the branch kitchen room and
// admin rooms.
func (h *Hub) PublishNewOrder(origin, branchID, restaurantID string, payload interface{}) {
	h.Broadcast(targetRooms(origin, branchID, restaurantID), NewEvent(EventNewOrder, origin, payload))
}

// PublishOrderStatusUpdate relays an order status change. When the order is
// ready and table-bound, the table's customer room is notified as well.
func (h *Hub) PublishOrderStatusUpdate(origin, branchID, restaurantID, tableID, status string, payload interface{}) {
	rooms := targetRooms(origin, branchID, restaurantID)
	if status == "ready" && tableID != "" {
		rooms = append(rooms, "table_"+tableID)
	}
	h.Broadcast(rooms, NewEvent(EventOrderStatusUpdate, origin, payload))
}

// PublishPaymentStatusUpdate relays a payment status change.
func (h *Hub) PublishPaymentStatusUpdate(origin, branchID, restaurantID string, payload interface{}) {
	h.Broadcast(targetRooms(origin, branchID, restaurantID), NewEvent(EventPaymentStatusUpdate, origin, payload))
}

// PublishTableStatusUpdate relays a table status change.
func (h *Hub) PublishTableStatusUpdate(origin, branchID, restaurantID string, payload interface{}) {
	h.Broadcast(targetRooms(origin, branchID, restaurantID), NewEvent(EventTableStatusUpdate, origin, payload))
}
