package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"restaurant-pos/events"
	"restaurant-pos/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler upgrades the connection and keeps it registered with the
// hub until the client disconnects.
func EventsHandler(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	events.RegisterClient(ws)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	events.UnregisterClient(ws)
}
