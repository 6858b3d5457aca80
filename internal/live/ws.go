package live

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"elementhub/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Any origin may read the table.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades the request and runs a live session on it.
func WSHandler(hub *Hub, writeTimeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			hub.log.Debugw("websocket upgrade failed", logger.FieldError, err)
			return
		}
		defer ws.Close()
		hub.serve(&wsConn{ws: ws, timeout: writeTimeout}, TransportWebSocket)
	}
}

type wsConn struct {
	ws      *websocket.Conn
	timeout time.Duration
}

func (w *wsConn) ReadMessage() ([]byte, error) {
	_, b, err := w.ws.ReadMessage()
	return b, err
}

func (w *wsConn) WriteMessage(b []byte) error {
	if w.timeout > 0 {
		_ = w.ws.SetWriteDeadline(time.Now().Add(w.timeout))
	}
	return w.ws.WriteMessage(websocket.TextMessage, b)
}

func (w *wsConn) RemoteAddr() string { return w.ws.RemoteAddr().String() }
