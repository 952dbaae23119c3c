package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"restaurant-pos/models"
)

// Event names pushed to connected clients.
const (
	EventOrderCreated   = "order.created"
	EventOrderUpdated   = "order.updated"
	EventOrderCompleted = "order.completed"
	EventOrderDeleted   = "order.deleted"
	EventTableUpdated   = "table.updated"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every websocket client watching the floor (cashier screens,
// kitchen displays).
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]struct{}),
}

func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = struct{}{}
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

func BroadcastOrder(event string, order models.Order) {
	broadcast(Message{Event: event, Data: order})
}

func BroadcastOrderDeleted(orderID string) {
	broadcast(Message{
		Event: EventOrderDeleted,
		Data:  map[string]string{"order_id": orderID},
	})
}

func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdated, Data: table})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending event to client: %v", err)
		}
	}
}
