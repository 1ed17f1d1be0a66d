package realtime

import (
	"testing"
)

func drain(c *Client) []Event {
	var events []Event
	for {
		select {
		case ev, ok := <-c.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestRoomsForByUserType(t *testing.T) {
	tests := []struct {
		name string
		join JoinRequest
		want []string
	}{
		{
			name: "admin with full scope",
			join: JoinRequest{UserType: "admin", RestaurantID: "r1", BranchID: "b1"},
			want: []string{"admins", "restaurant_r1", "branch_b1"},
		},
		{
			name: "customer at a table",
			join: JoinRequest{UserType: "customer", TableID: "t1", BranchID: "b1"},
			want: []string{"customers", "table_t1", "customer_branch_b1"},
		},
		{
			name: "pos listens on kitchen room too",
			join: JoinRequest{UserType: "pos", BranchID: "b1"},
			want: []string{"pos_branch_b1", "kitchen_branch_b1"},
		},
		{
			name: "kitchen listens on pos room too",
			join: JoinRequest{UserType: "kitchen", BranchID: "b1"},
			want: []string{"kitchen_branch_b1", "pos_branch_b1"},
		},
		{
			name: "unknown user type joins nothing",
			join: JoinRequest{UserType: "spectator", BranchID: "b1"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoomsFor(tt.join)
			if len(got) != len(tt.want) {
				t.Fatalf("expected rooms %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("room %d: expected %s, got %s", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestPublishNewOrderReachesBranchKitchenOnly(t *testing.T) {
	hub := NewHub()
	kitchenB1 := hub.Connect(JoinRequest{UserType: "kitchen", BranchID: "b1"})
	kitchenB2 := hub.Connect(JoinRequest{UserType: "kitchen", BranchID: "b2"})

	hub.PublishNewOrder("pos", "b1", "r1", map[string]string{"order_number": "MAIN-20260828-001"})

	got := drain(kitchenB1)
	if len(got) != 1 {
		t.Fatalf("expected 1 event for branch b1 kitchen, got %d", len(got))
	}
	if got[0].Type != EventNewOrder {
		t.Errorf("expected newOrder, got %s", got[0].Type)
	}
	if got[0].Origin != "pos" {
		t.Errorf("expected pos origin, got %s", got[0].Origin)
	}

	if events := drain(kitchenB2); len(events) != 0 {
		t.Errorf("branch b2 kitchen should receive nothing, got %d events", len(events))
	}
}

func TestKitchenOriginReachesPOS(t *testing.T) {
	hub := NewHub()
	pos := hub.Connect(JoinRequest{UserType: "pos", BranchID: "b1"})

	hub.PublishOrderStatusUpdate("kitchen", "b1", "r1", "", "preparing", nil)

	if got := drain(pos); len(got) != 1 {
		t.Fatalf("expected 1 event for pos, got %d", len(got))
	}
}

func TestReadyStatusNotifiesTableRoom(t *testing.T) {
	hub := NewHub()
	customer := hub.Connect(JoinRequest{UserType: "customer", TableID: "t1", BranchID: "b1"})

	hub.PublishOrderStatusUpdate("kitchen", "b1", "r1", "t1", "preparing", nil)
	if got := drain(customer); len(got) != 0 {
		t.Fatalf("table room should not see intermediate statuses, got %d events", len(got))
	}

	hub.PublishOrderStatusUpdate("kitchen", "b1", "r1", "t1", "ready", nil)
	if got := drain(customer); len(got) != 1 {
		t.Fatalf("expected 1 ready event at the table, got %d", len(got))
	}
}

func TestEventDeliveredOncePerClient(t *testing.T) {
	hub := NewHub()
	// An admin scoped to the branch sits in admins, restaurant_r1 and
	// branch_b1, all of which are broadcast targets.
	admin := hub.Connect(JoinRequest{UserType: "admin", RestaurantID: "r1", BranchID: "b1"})

	hub.PublishTableStatusUpdate("pos", "b1", "r1", nil)

	if got := drain(admin); len(got) != 1 {
		t.Errorf("expected exactly 1 event despite overlapping rooms, got %d", len(got))
	}
}

func TestDisconnectRemovesMembershipAndClosesChannel(t *testing.T) {
	hub := NewHub()
	client := hub.Connect(JoinRequest{UserType: "kitchen", BranchID: "b1"})

	hub.Disconnect(client)
	hub.Disconnect(client) // repeated disconnect is a no-op

	if _, ok := <-client.Events(); ok {
		t.Error("expected channel closed after disconnect")
	}

	// Publishing after disconnect must not panic or deliver.
	hub.PublishNewOrder("pos", "b1", "r1", nil)
}

func TestSlowClientDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub()
	slow := hub.Connect(JoinRequest{UserType: "kitchen", BranchID: "b1"})

	for i := 0; i < clientBufferSize+5; i++ {
		hub.PublishNewOrder("pos", "b1", "r1", nil)
	}

	if got := drain(slow); len(got) != clientBufferSize {
		t.Errorf("expected buffer capped at %d events, got %d", clientBufferSize, len(got))
	}
}
