package probe

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startListener accepts a single connection on a loopback port and hands it
// to handle on a separate goroutine.
func startListener(t *testing.T, handle func(conn net.Conn)) (host string, port int) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}()

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err = strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

// readRequest reads from conn until the blank line that terminates the
// request head, or until the deadline.
func readRequest(conn net.Conn, into *bytes.Buffer) {
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 512)
	for {
		n, err := conn.Read(buf)
		into.Write(buf[:n])
		if err != nil || bytes.Contains(into.Bytes(), []byte("\r\n\r\n")) {
			return
		}
	}
}

func TestRun_SendsExactRequestBytes(t *testing.T) {
	var got bytes.Buffer
	done := make(chan struct{})
	host, port := startListener(t, func(conn net.Conn) {
		readRequest(conn, &got)
		_, _ = conn.Write([]byte("HTTP/1.1 200 OK\r\n\r\nOK"))
		close(done)
	})

	runner := NewRunner(host, port, WithTrigger(strings.NewReader("\n")))
	outcome, err := runner.Run()

	require.NoError(t, err)
	<-done
	assert.Equal(t, DefaultTemplate().Bytes(), got.Bytes())
	assert.Equal(t, DefaultTemplate().Len(), outcome.BytesWritten)
}

func TestRun_ShortResponseReturnedExactly(t *testing.T) {
	reply := "HTTP/1.1 200 OK\r\n\r\nOK"
	host, port := startListener(t, func(conn net.Conn) {
		var head bytes.Buffer
		readRequest(conn, &head)
		_, _ = conn.Write([]byte(reply))
	})

	runner := NewRunner(host, port, WithTrigger(strings.NewReader("x")))
	outcome, err := runner.Run()

	require.NoError(t, err)
	assert.Equal(t, reply, outcome.BodyString())
	assert.Len(t, outcome.Body, 21)
}

func TestRun_TruncatesAtReadLimit(t *testing.T) {
	big := bytes.Repeat([]byte("a"), 4*ReadLimit)
	host, port := startListener(t, func(conn net.Conn) {
		var head bytes.Buffer
		readRequest(conn, &head)
		_, _ = conn.Write(big)
	})

	runner := NewRunner(host, port, WithTrigger(strings.NewReader("x")))
	outcome, err := runner.Run()

	require.NoError(t, err)
	assert.Len(t, outcome.Body, ReadLimit)
	assert.Equal(t, big[:ReadLimit], outcome.Body)
}

func TestRun_PeerClosesWithoutData(t *testing.T) {
	host, port := startListener(t, func(conn net.Conn) {
		var head bytes.Buffer
		readRequest(conn, &head)
	})

	runner := NewRunner(host, port, WithTrigger(strings.NewReader("x")))
	outcome, err := runner.Run()

	require.NoError(t, err)
	assert.Empty(t, outcome.Body)
}

func TestRun_NoListenerFailsBeforeTrigger(t *testing.T) {
	// Bind and immediately release a port so nothing is listening on it.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	trigger := &countingReader{r: strings.NewReader("x")}
	runner := NewRunner(host, port, WithTrigger(trigger))
	outcome, err := runner.Run()

	require.Error(t, err)
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Nil(t, outcome)
	assert.Zero(t, trigger.reads, "trigger must not be consumed when the dial fails")
}

func TestRun_ClosedTriggerInput(t *testing.T) {
	gotCh := make(chan []byte, 1)
	host, port := startListener(t, func(conn net.Conn) {
		var got bytes.Buffer
		readRequest(conn, &got)
		gotCh <- got.Bytes()
	})

	runner := NewRunner(host, port, WithTrigger(strings.NewReader("")))
	outcome, err := runner.Run()

	require.Error(t, err)
	var inputErr *InputClosedError
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorIs(t, err, io.EOF)
	assert.Nil(t, outcome)

	// The probe closed the connection without writing; the listener sees EOF.
	assert.Empty(t, <-gotCh, "no request may be written when the gate never opens")
}

func TestRun_InvalidTextResponse(t *testing.T) {
	host, port := startListener(t, func(conn net.Conn) {
		var head bytes.Buffer
		readRequest(conn, &head)
		_, _ = conn.Write([]byte{0xff, 0xfe, 0xfd})
	})

	runner := NewRunner(host, port, WithTrigger(strings.NewReader("x")))
	outcome, err := runner.Run()

	require.Error(t, err)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 3, decodeErr.Size)
	assert.Nil(t, outcome)
}

func TestRun_WithoutTrigger(t *testing.T) {
	reply := "HTTP/1.1 204 No Content\r\n\r\n"
	host, port := startListener(t, func(conn net.Conn) {
		var head bytes.Buffer
		readRequest(conn, &head)
		_, _ = conn.Write([]byte(reply))
	})

	runner := NewRunner(host, port, WithoutTrigger())
	outcome, err := runner.Run()

	require.NoError(t, err)
	assert.Equal(t, reply, outcome.BodyString())
}

func TestRun_CustomTemplate(t *testing.T) {
	custom := NewTemplate([]byte("PING\r\n\r\n"))
	var got bytes.Buffer
	done := make(chan struct{})
	host, port := startListener(t, func(conn net.Conn) {
		readRequest(conn, &got)
		_, _ = conn.Write([]byte("PONG"))
		close(done)
	})

	runner := NewRunner(host, port,
		WithTrigger(strings.NewReader("x")),
		WithTemplate(custom),
	)
	outcome, err := runner.Run()

	require.NoError(t, err)
	<-done
	assert.Equal(t, custom.Bytes(), got.Bytes())
	assert.Equal(t, "PONG", outcome.BodyString())
	assert.NotEmpty(t, outcome.RunID)
}

func TestReceive_KeepsPartialDataOnReadError(t *testing.T) {
	r := &faultyReader{data: []byte("HTTP/1.1 2"), err: errors.New("connection reset by peer")}

	body, err := receive(r)

	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 2", string(body))
}

func TestReceive_ErrorWithNoData(t *testing.T) {
	r := &faultyReader{err: errors.New("connection reset by peer")}

	body, err := receive(r)

	require.Error(t, err)
	assert.Nil(t, body)
}

func TestReceive_CleanCloseIsEmptyBody(t *testing.T) {
	body, err := receive(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, body)
}

// countingReader records how many reads were attempted.
type countingReader struct {
	r     io.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	return c.r.Read(p)
}

// faultyReader returns its data and error from a single read.
type faultyReader struct {
	data []byte
	err  error
}

func (f *faultyReader) Read(p []byte) (int, error) {
	n := copy(p, f.data)
	return n, f.err
}
