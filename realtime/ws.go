package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const joinDeadline = 10 * time.Second

// clientFrame is an event emitted by a connected client for relay.
type clientFrame struct {
	Type    EventType       `json:"type"`
	Status  string          `json:"status,omitempty"`
	TableID string          `json:"tableId,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// WSHandler upgrades the connection and bridges it to the hub. The first
// frame must be a join declaration; everything after it is either a relayed
// event (client to hub) or a pushed event (hub to client).
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("realtime: websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(joinDeadline))
		var join JoinRequest
		if err := conn.ReadJSON(&join); err != nil {
			conn.WriteJSON(gin.H{"error": "expected join frame"})
			return
		}
		conn.SetReadDeadline(time.Time{})

		client := hub.Connect(join)
		defer hub.Disconnect(client)

		// Write pump: hub events out to the socket.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for ev := range client.Events() {
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			}
		}()

		// Read pump: client frames relayed through the room topology.
		for {
			var frame clientFrame
			if err := conn.ReadJSON(&frame); err != nil {
				break
			}
			relayFrame(hub, join, frame)
		}

		// Unblock the write pump before returning.
		hub.Disconnect(client)
		<-done
	}
}

func relayFrame(hub *Hub, join JoinRequest, frame clientFrame) {
	origin := join.UserType
	switch frame.Type {
	case EventNewOrder:
		hub.PublishNewOrder(origin, join.BranchID, join.RestaurantID, frame.Payload)
	case EventOrderStatusUpdate:
		tableID := frame.TableID
		if tableID == "" {
			tableID = join.TableID
		}
		hub.PublishOrderStatusUpdate(origin, join.BranchID, join.RestaurantID, tableID, frame.Status, frame.Payload)
	case EventPaymentStatusUpdate:
		hub.PublishPaymentStatusUpdate(origin, join.BranchID, join.RestaurantID, frame.Payload)
	case EventTableStatusUpdate:
		hub.PublishTableStatusUpdate(origin, join.BranchID, join.RestaurantID, frame.Payload)
	default:
		// Unknown frame types are ignored.
	}
}
