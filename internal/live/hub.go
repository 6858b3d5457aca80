package live

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"elementhub/internal/elements"
	"elementhub/pkg/logger"
)

const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

// Hub tracks live sessions for both transports and runs the shared
// read-apply-reply loop. It holds no presentation state itself.
type Hub struct {
	svc *elements.Service
	log *zap.SugaredLogger

	mu       sync.Mutex
	sessions map[string]string // session id -> transport
}

type Stats struct {
	TCPClients int `json:"tcp_clients"`
	WSClients  int `json:"ws_clients"`
}

func NewHub(svc *elements.Service) *Hub {
	return &Hub{
		svc:      svc,
		log:      logger.Component("live"),
		sessions: make(map[string]string),
	}
}

func (h *Hub) add(id, transport string) {
	h.mu.Lock()
	h.sessions[id] = transport
	h.mu.Unlock()
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	var st Stats
	for _, transport := range h.sessions {
		switch transport {
		case TransportTCP:
			st.TCPClients++
		case TransportWebSocket:
			st.WSClients++
		}
	}
	return st
}

// conn is one framed JSON connection: a websocket or a newline-delimited
// TCP stream.
type conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage([]byte) error
	RemoteAddr() string
}

// serve runs a session until the connection fails or the client leaves.
func (h *Hub) serve(c conn, transport string) {
	sess := NewSession(h.svc)
	h.add(sess.ID, transport)
	defer h.remove(sess.ID)

	log := h.log.With(logger.FieldSessionID, sess.ID, logger.FieldAddress, c.RemoteAddr(), logger.FieldTransport, transport)
	log.Infow("session opened", logger.FieldCount, h.Count())
	defer log.Infow("session closed")

	welcome := ServerMessage{Type: TypeWelcome, Session: sess.ID, Transport: transport}
	if err := h.write(c, welcome); err != nil {
		log.Debugw("write welcome", logger.FieldError, err)
		return
	}
	if err := h.write(c, sess.Snapshot()); err != nil {
		log.Debugw("write snapshot", logger.FieldError, err)
		return
	}

	for {
		b, err := c.ReadMessage()
		if err != nil {
			return
		}
		if len(b) == 0 {
			continue
		}
		reply := sess.HandleRaw(b)
		if reply.Type == TypeError {
			log.Debugw("rejected message", logger.FieldError, reply.Error)
		}
		if err := h.write(c, reply); err != nil {
			log.Debugw("write reply", logger.FieldError, err)
			return
		}
	}
}

func (h *Hub) write(c conn, msg ServerMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.WriteMessage(b)
}
