package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const readLimit = 512

var upgrader = websocket.Upgrader{
	HandshakeTimeout: 10 * time.Second,
	CheckOrigin:      func(r *http.Request) bool { return true },
}

// Handler upgrades dashboard connections and parks them on the hub until
// they disconnect. Clients only receive; inbound frames are discarded.
func Handler(hub *Hub, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("slot feed upgrade failed", zap.Error(err))
			return
		}

		hub.Add(c)
		logger.Debug("slot feed client connected", zap.String("remote", c.RemoteAddr().String()))

		go func() {
			defer func() {
				hub.Remove(c)
				_ = c.Close()
			}()
			c.SetReadLimit(readLimit)
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
