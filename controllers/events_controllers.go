package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gezana/restaurant-backend/events"
	"github.com/gezana/restaurant-backend/models"
	"github.com/gezana/restaurant-backend/services"
	"github.com/gezana/restaurant-backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler -> websocket endpoint for staff dashboards
func EventsHandler(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	events.RegisterClient(ws)
	sendBookingSnapshot(ws)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	events.UnregisterClient(ws)
}

// sendBookingSnapshot pushes today's bookings so a freshly connected
// dashboard does not start empty.
func sendBookingSnapshot(ws *websocket.Conn) {
	db := utils.GetDB()
	if db == nil {
		return
	}

	today := time.Now().Format(services.DateLayout)
	bookings := make([]models.Booking, 0)
	if err := db.Preload("Table").Where("date = ?", today).Order("time asc").Find(&bookings).Error; err != nil {
		utils.ErrorLogger.Printf("Error loading booking snapshot: %v", err)
		return
	}

	payload, err := json.Marshal(events.Message{Event: events.EventBookingSnapshot, Data: bookings})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling booking snapshot: %v", err)
		return
	}
	if err := ws.WriteMessage(websocket.TextMessage, payload); err != nil {
		utils.ErrorLogger.Printf("Error sending booking snapshot: %v", err)
	}
}
