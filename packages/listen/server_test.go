package listen

import (
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/wireprobe/packages/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, opts ...Option) *Server {
	t.Helper()

	opts = append([]Option{WithAddr("127.0.0.1:0")}, opts...)
	srv := NewServer(opts...)
	require.NoError(t, srv.Listen())
	t.Cleanup(func() { _ = srv.Close() })

	go func() { _ = srv.Serve() }()
	return srv
}

func TestServer_CannedResponse(t *testing.T) {
	srv := startServer(t)

	conn, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultResponse, string(buf[:n]))
}

func TestServer_CustomResponse(t *testing.T) {
	srv := startServer(t, WithResponse([]byte("HTTP/1.1 204 No Content\r\n\r\n")))

	conn, err := net.Dial("tcp", srv.Addr())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("HEAD / HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)

	buf := make([]byte, 256)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 204 No Content\r\n\r\n", string(buf[:n]))
}

func TestServer_ProbeEndToEnd(t *testing.T) {
	srv := startServer(t)

	host, portStr, err := net.SplitHostPort(srv.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	runner := probe.NewRunner(host, port, probe.WithTrigger(strings.NewReader("\n")))
	outcome, err := runner.Run()

	require.NoError(t, err)
	assert.Equal(t, DefaultResponse, outcome.BodyString())
}

func TestServer_ServeBeforeListen(t *testing.T) {
	srv := NewServer()
	assert.Error(t, srv.Serve())
}
