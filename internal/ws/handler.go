package ws

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nemesia-app/villaindex-backend/internal/custody"
	pkgws "github.com/nemesia-app/villaindex-backend/internal/pkg/ws"
	"github.com/rs/zerolog/log"
)

type wsHandler struct {
	notificationHub *pkgws.NotificationHub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func RegisterRoutes(rg *gin.RouterGroup) {
	handler := wsHandler{
		notificationHub: pkgws.NewNotificationHub(),
	}

	routes := rg.Group("/ws")
	routes.GET("/custody", handler.serveCustodyFeed)
}

// serveCustodyFeed streams transfer events to the client until it hangs up.
// Inbound frames are drained and ignored; the feed is one-way.
func (wsh *wsHandler) serveCustodyFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Error upgrading custody feed connection")
		return
	}
	defer wsh.notificationHub.UnregisterListener(custody.CustodyFeedTopic, conn)

	wsh.notificationHub.RegisterListener(custody.CustodyFeedTopic, conn)

	for {
		var buffer any
		if err := conn.ReadJSON(&buffer); err != nil {
			return
		}
	}
}
