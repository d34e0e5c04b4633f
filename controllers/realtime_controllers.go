package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-booking/realtime"
	"github.com/yeremiapane/restaurant-booking/utils"
)

type RealtimeController struct {
	Hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewRealtimeController accepts handshakes from allowedOrigin, or from any origin when it is "*".
func NewRealtimeController(hub *realtime.Hub, allowedOrigin string) *RealtimeController {
	return &RealtimeController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "*" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Subscribe upgrades the connection and keeps it registered until the client goes away.
// Incoming frames are read and discarded.
func (rc *RealtimeController) Subscribe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	ws, err := rc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("websocket upgrade failed")
		return
	}

	rc.Hub.Register(ws, user.Username)
	utils.InfoLogger.WithField("user", user.Username).Info("realtime client connected")

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	rc.Hub.Unregister(ws)
	utils.InfoLogger.WithField("user", user.Username).Info("realtime client disconnected")
}
