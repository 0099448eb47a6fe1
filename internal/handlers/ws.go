package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/monocle-dev/taskmanager/internal/realtime"
	"github.com/monocle-dev/taskmanager/internal/utils"
)

type WebSocketHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *realtime.Hub, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
	}
}

// TaskEvents streams task change events to an authenticated client.
func (h *WebSocketHandler) TaskEvents(c *gin.Context) {
	currentUser, err := utils.GetCurrentUser(c)

	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	log.Printf("WebSocket connection opened for user %d", currentUser.ID)
	h.hub.Serve(conn, currentUser.ID)
}
