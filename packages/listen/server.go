// Package listen provides a debug listener for probing against: it accepts
// loopback connections, logs the raw bytes received, and replies with a
// canned response.
package listen

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

// DefaultResponse is the canned reply sent to every connection.
const DefaultResponse = "HTTP/1.1 200 OK\r\n" +
	"Content-Type: text/plain\r\n" +
	"Content-Length: 2\r\n" +
	"Connection: close\r\n" +
	"\r\n" +
	"OK"

// readWindow bounds how long a connection may dribble request bytes before
// the canned response is written anyway.
const readWindow = 2 * time.Second

// Server is a single-purpose debug listener
type Server struct {
	addr     string
	response []byte
	verbose  bool

	mu sync.Mutex
	ln net.Listener
}

// Option is a functional option for Server
type Option func(*Server)

// WithAddr sets the listen address
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithResponse replaces the canned response bytes
func WithResponse(response []byte) Option {
	return func(s *Server) {
		buf := make([]byte, len(response))
		copy(buf, response)
		s.response = buf
	}
}

// WithVerbose enables request logging
func WithVerbose(verbose bool) Option {
	return func(s *Server) {
		s.verbose = verbose
	}
}

// NewServer creates a new debug listener
func NewServer(opts ...Option) *Server {
	s := &Server{
		addr:     "127.0.0.1:8100",
		response: []byte(DefaultResponse),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Listen binds the listen address. It must be called before Serve or Addr.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	return nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// Serve accepts connections until Close is called. Each connection gets the
// canned response and is closed; received bytes are logged in verbose mode.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return errors.New("listen: Serve called before Listen")
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		go s.handle(conn)
	}
}

// Close stops the listener. In-flight connections finish on their own.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(readWindow))

	var head bytes.Buffer
	buf := make([]byte, 1024)
	for {
		n, err := conn.Read(buf)
		head.Write(buf[:n])
		if err != nil || bytes.Contains(head.Bytes(), []byte("\r\n\r\n")) {
			break
		}
	}

	if s.verbose {
		log.Printf("listen: %s sent %d bytes:\n%s", conn.RemoteAddr(), head.Len(), head.String())
	}

	if _, err := conn.Write(s.response); err != nil && s.verbose {
		log.Printf("listen: write to %s failed: %v", conn.RemoteAddr(), err)
	}
}
