package live

import (
	"bufio"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elementhub/internal/display"
	"elementhub/internal/elements"
	"elementhub/pkg/catalog"
)

func newTestService(t *testing.T) *elements.Service {
	t.Helper()
	svc, err := elements.NewService(catalog.Default(), elements.Options{CacheSize: 8})
	require.NoError(t, err)
	return svc
}

func TestSessionApply(t *testing.T) {
	s := NewSession(newTestService(t))

	snap := s.Snapshot()
	assert.Equal(t, TypeTable, snap.Type)
	assert.Equal(t, "Filters Cleared", snap.Summary.Title)
	assert.Equal(t, 28, snap.Counts.Matched)

	reply := s.Apply(ClientMessage{Type: TypeFilters, Filters: &FilterPayload{Categories: []string{"noble-gas"}}})
	require.Equal(t, TypeTable, reply.Type)
	assert.Equal(t, 3, reply.Counts.Matched)
	assert.Equal(t, 25, reply.Counts.FilteredOut)
	assert.Equal(t, "Showing elements matching 1 selected filter.", reply.Summary.Description)

	reply = s.Apply(ClientMessage{Type: TypeSelect, AtomicNumber: 10})
	assert.Equal(t, 10, reply.Table.Active)
	assert.True(t, reply.Table.Cells[1][17].Active)
	assert.Equal(t, 3, reply.Counts.Matched, "selection keeps filters")

	reply = s.Apply(ClientMessage{Type: TypeClear})
	assert.Equal(t, 0, reply.Table.Active)
	assert.Equal(t, 28, reply.Counts.Matched)
}

func TestSessionRejectsKeepState(t *testing.T) {
	s := NewSession(newTestService(t))
	s.Apply(ClientMessage{Type: TypeFilters, Filters: &FilterPayload{Periods: []string{"1"}}})

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bad json", `{"type":`, "decode message"},
		{"unknown type", `{"type":"zoom"}`, "unknown message type"},
		{"bad period", `{"type":"filters","filters":{"periods":["8"]}}`, "period"},
		{"bad category", `{"type":"filters","filters":{"categories":["plasma"]}}`, "unknown category"},
		{"negative select", `{"type":"select","atomic_number":-3}`, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := s.HandleRaw([]byte(tt.raw))
			assert.Equal(t, TypeError, reply.Type)
			assert.Contains(t, reply.Error, tt.want)
			assert.Equal(t, s.ID, reply.Session)
		})
	}
	assert.Equal(t, 2, s.Snapshot().Counts.Matched)
}

func TestSessionsAreIndependent(t *testing.T) {
	svc := newTestService(t)
	a, b := NewSession(svc), NewSession(svc)
	assert.NotEqual(t, a.ID, b.ID)

	a.Apply(ClientMessage{Type: TypeFilters, Filters: &FilterPayload{States: []string{"gas"}}})
	b.Apply(ClientMessage{Type: TypeSelect, AtomicNumber: 1})

	assert.Equal(t, 8, a.Snapshot().Counts.Matched)
	assert.Equal(t, 0, a.Snapshot().Table.Active)
	assert.Equal(t, 28, b.Snapshot().Counts.Matched)
	assert.Equal(t, 1, b.Snapshot().Table.Active)
}

func readTCP(t *testing.T, r *bufio.Reader) ServerMessage {
	t.Helper()
	line, err := r.ReadBytes('\n')
	require.NoError(t, err)
	var msg ServerMessage
	require.NoError(t, json.Unmarshal(line, &msg))
	return msg
}

func TestTCPServer(t *testing.T) {
	hub := NewHub(newTestService(t))
	srv := NewServer("127.0.0.1:0", hub, time.Second)
	require.NoError(t, srv.Listen())
	done := make(chan error, 1)
	go func() { done <- srv.Run() }()
	t.Cleanup(func() {
		require.NoError(t, srv.Close())
		require.NoError(t, <-done)
	})

	c, err := net.Dial("tcp", srv.ListenAddr())
	require.NoError(t, err)
	defer c.Close()
	r := bufio.NewReaderSize(c, maxLine)

	welcome := readTCP(t, r)
	assert.Equal(t, TypeWelcome, welcome.Type)
	assert.Equal(t, TransportTCP, welcome.Transport)
	require.NotEmpty(t, welcome.Session)

	first := readTCP(t, r)
	assert.Equal(t, TypeTable, first.Type)
	assert.Equal(t, welcome.Session, first.Session)
	assert.Equal(t, 28, first.Counts.Matched)

	_, err = c.Write([]byte(`{"type":"filters","filters":{"blocks":["s"],"periods":["1"]}}` + "\n"))
	require.NoError(t, err)
	reply := readTCP(t, r)
	assert.Equal(t, 2, reply.Counts.Matched)
	assert.Equal(t, display.Matched, reply.Table.Cells[0][0].State)

	_, err = c.Write([]byte("not json\n"))
	require.NoError(t, err)
	assert.Equal(t, TypeError, readTCP(t, r).Type)

	assert.Equal(t, Stats{TCPClients: 1}, hub.Stats())
}

func TestWebSocket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(newTestService(t))
	r := gin.New()
	r.GET("/ws", WSHandler(hub, time.Second))
	ts := httptest.NewServer(r)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	var msg ServerMessage
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, TypeWelcome, msg.Type)
	assert.Equal(t, TransportWebSocket, msg.Transport)

	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, TypeTable, msg.Type)

	require.NoError(t, ws.WriteJSON(ClientMessage{Type: TypeSelect, AtomicNumber: 79}))
	msg = ServerMessage{}
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, 79, msg.Table.Active)
	assert.True(t, msg.Table.Cells[5][10].Active)

	assert.Equal(t, Stats{WSClients: 1}, hub.Stats())
}

func TestTCPServerCloseEndsSessions(t *testing.T) {
	hub := NewHub(newTestService(t))
	srv := NewServer("127.0.0.1:0", hub, time.Second)
	require.NoError(t, srv.Listen())
	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	c, err := net.Dial("tcp", srv.ListenAddr())
	require.NoError(t, err)
	defer c.Close()
	r := bufio.NewReaderSize(c, maxLine)
	readTCP(t, r)
	readTCP(t, r)
	require.Equal(t, 1, hub.Count())

	require.NoError(t, srv.Close())
	require.NoError(t, <-done)
	assert.Equal(t, 0, hub.Count(), "Close waits for session goroutines")

	_ = c.SetReadDeadline(time.Now().Add(time.Second))
	_, err = r.ReadBytes('\n')
	assert.Error(t, err)
}
