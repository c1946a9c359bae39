package events

import (
	"encoding/json"
	"sync"

	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/utils"
	"github.com/gorilla/websocket"
)

// Event types pushed to connected staff dashboards.
const (
	EventBookingSnapshot = "booking_snapshot"
	EventBookingCreate   = "booking_create"
	EventBookingCancel   = "booking_cancel"
	EventTableCreate     = "table_create"
	EventTableDelete     = "table_delete"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client.
type Hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]bool),
}

// RegisterClient adds a connection to the broadcast set.
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = true
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastBookingCreated pushes a new booking to all clients.
func BroadcastBookingCreated(booking models.Booking) {
	broadcast(Message{Event: EventBookingCreate, Data: booking})
}

// BroadcastBookingCancelled pushes a cancellation to all clients.
func BroadcastBookingCancelled(booking models.Booking) {
	broadcast(Message{Event: EventBookingCancel, Data: booking})
}

// BroadcastTableCreate pushes a new table to all clients.
func BroadcastTableCreate(table models.Table) {
	broadcast(Message{Event: EventTableCreate, Data: table})
}

// BroadcastTableDelete pushes a table removal to all clients.
func BroadcastTableDelete(table models.Table) {
	broadcast(Message{Event: EventTableDelete, Data: table})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling event: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending event to client: %v", err)
		}
	}
}
