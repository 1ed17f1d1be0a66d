package realtime

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventNewOrder            EventType = "newOrder"
	EventOrderStatusUpdate   EventType = "orderStatusUpdate"
	EventPaymentStatusUpdate EventType = "paymentStatusUpdate"
	EventTableStatusUpdate   EventType = "tableStatusUpdate"
)

// Event is the wire payload relayed to websocket clients. Delivery is
// fire-and-forget: no acknowledgment, no retry, no persistence.
type Event struct {
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Origin    string          `json:"origin"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent stamps an event with the server timestamp and origin tag.
// Unmarshalable payloads degrade to null rather than dropping the event.
func NewEvent(t EventType, origin string, payload interface{}) Event {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = json.RawMessage("null")
	}
	return Event{
		Type:      t,
		Payload:   raw,
		Origin:    origin,
		Timestamp: time.Now().UTC(),
	}
}

// JoinRequest is the first frame a client sends on the websocket, declaring
// its role and scope. Room membership is derived from it; reconnection
// requires re-declaring it.
type JoinRequest struct {
	UserType     string `json:"userType"`
	BranchID     string `json:"branchId"`
	RestaurantID string `json:"restaurantId"`
	TableID      string `json:"tableId"`
	UserID       string `json:"userId"`
	Role         string `json:"role"`
}
