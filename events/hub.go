package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-pos/models"
)

// Event types pushed to connected terminals.
const (
	EventSPLHUpdate       = "splh_update"
	EventTicketUpdate     = "ticket_update"
	EventHeldOrdersUpdate = "held_orders_update"
	EventMenuUpdate       = "menu_update"
	EventOrderCompleted   = "order_completed"
	EventStaffNotif       = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected terminal client and fans events out to
// them. The UI layer renders what arrives; the engine never waits on a
// client.
type Hub struct {
	clients map[*websocket.Conn]models.Role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]models.Role),
}

// RegisterClient adds a connection with the operator's role.
func RegisterClient(conn *websocket.Conn, role models.Role) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastSPLHUpdate pushes a fresh SPLH figure to manager terminals.
// The figure is a manager-facing metric; cashier terminals never render
// it, so they never receive it.
func BroadcastSPLHUpdate(data interface{}) {
	broadcastTo(Message{Event: EventSPLHUpdate, Data: data}, models.RoleManager)
}

// BroadcastTicketUpdate pushes the active ticket state after a mutation.
func BroadcastTicketUpdate(data interface{}) {
	broadcast(Message{Event: EventTicketUpdate, Data: data})
}

// BroadcastHeldOrdersUpdate signals that the held-order list changed.
func BroadcastHeldOrdersUpdate(employeeID uint) {
	broadcast(Message{Event: EventHeldOrdersUpdate, Data: map[string]uint{"employee_id": employeeID}})
}

// BroadcastMenuUpdate signals an availability change (e.g. sold out).
func BroadcastMenuUpdate(menu models.Menu) {
	broadcast(Message{Event: EventMenuUpdate, Data: menu})
}

// BroadcastOrderCompleted announces a finalized sale.
func BroadcastOrderCompleted(order models.Order) {
	broadcast(Message{Event: EventOrderCompleted, Data: order})
}

// BroadcastStaffNotification sends a plain text notice to all clients.
func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

func broadcast(msg Message) {
	broadcastTo(msg)
}

// broadcastTo writes msg to every connection whose role is in the allow
// list; an empty list means every connection.
func broadcastTo(msg Message, allowed ...models.Role) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("events: marshal %s: %v", msg.Event, err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn, role := range hub.clients {
		if !roleAllowed(role, allowed) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}

func roleAllowed(role models.Role, allowed []models.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
