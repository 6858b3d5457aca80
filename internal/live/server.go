package live

import (
	"bufio"
	"net"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"elementhub/pkg/logger"
)

const maxLine = 64 * 1024

// Server accepts newline-delimited JSON sessions over plain TCP.
type Server struct {
	Addr         string
	Hub          *Hub
	WriteTimeout time.Duration

	mu    sync.Mutex
	ln    net.Listener
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

func NewServer(addr string, hub *Hub, writeTimeout time.Duration) *Server {
	return &Server{Addr: addr, Hub: hub, WriteTimeout: writeTimeout}
}

// Listen binds the address. Run calls it when no listener is set yet.
func (s *Server) Listen() error {
	_, err := s.listen()
	return err
}

func (s *Server) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s", s.Addr)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	return ln, nil
}

// ListenAddr reports the bound address, useful when Addr ends in ":0".
func (s *Server) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return s.Addr
	}
	return s.ln.Addr().String()
}

// Run accepts connections until Close is called.
func (s *Server) Run() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		var err error
		if ln, err = s.listen(); err != nil {
			return err
		}
	}
	s.Hub.log.Infow("tcp live server listening", logger.FieldAddress, ln.Addr().String())

	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Hub.log.Warnw("accept failed", logger.FieldError, err)
			continue
		}
		if !s.track(c) {
			_ = c.Close()
			return nil
		}
		go func() {
			defer s.untrack(c)
			s.Hub.serve(newLineConn(c, s.WriteTimeout), TransportTCP)
		}()
	}
}

// track registers c unless the server is closing.
func (s *Server) track(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		s.conns = make(map[net.Conn]struct{})
	}
	if s.ln == nil {
		return false
	}
	s.conns[c] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(c net.Conn) {
	_ = c.Close()
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	s.wg.Done()
}

// Close stops accepting, drops open sessions and waits for their
// goroutines to finish.
func (s *Server) Close() error {
	s.mu.Lock()
	var err error
	if s.ln != nil {
		err = s.ln.Close()
		s.ln = nil
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	s.wg.Wait()
	return err
}

type lineConn struct {
	c       net.Conn
	sc      *bufio.Scanner
	timeout time.Duration
}

func newLineConn(c net.Conn, timeout time.Duration) *lineConn {
	sc := bufio.NewScanner(c)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	return &lineConn{c: c, sc: sc, timeout: timeout}
}

func (l *lineConn) ReadMessage() ([]byte, error) {
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("connection closed")
	}
	return l.sc.Bytes(), nil
}

func (l *lineConn) WriteMessage(b []byte) error {
	if l.timeout > 0 {
		_ = l.c.SetWriteDeadline(time.Now().Add(l.timeout))
	}
	_, err := l.c.Write(append(b, '\n'))
	return err
}

func (l *lineConn) RemoteAddr() string { return l.c.RemoteAddr().String() }
