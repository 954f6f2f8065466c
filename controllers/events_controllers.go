package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-pos/events"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement happens in the CORS middleware layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type EventsController struct{}

func NewEventsController() *EventsController {
	return &EventsController{}
}

// Stream upgrades the connection and keeps it registered with the hub
// until the terminal disconnects. Browsers cannot set headers on a
// websocket handshake, so the session token rides in the query string.
func (ec *EventsController) Stream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("missing token"))
		return
	}
	claims, err := utils.ValidateToken(token)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	// A token can outlive its employee record; do not register a
	// terminal for an account that no longer exists.
	var employee models.Employee
	if err := utils.GetDB().First(&employee, claims.EmployeeID).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unknown employee"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	events.RegisterClient(conn, claims.Role)
	utils.InfoLogger.Printf("terminal connected for employee %d (%s)", claims.EmployeeID, claims.Role)

	defer func() {
		events.UnregisterClient(conn)
		utils.InfoLogger.Printf("terminal disconnected for employee %d", claims.EmployeeID)
	}()

	// The stream is push-only. Reads here only service pings and detect
	// the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
