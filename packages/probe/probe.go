package probe

import (
	"io"
	"net"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// DefaultHost is the endpoint dialed when none is configured.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the endpoint port dialed when none is configured.
	DefaultPort = 8100
	// ReadLimit is the maximum number of response bytes captured. The probe
	// performs exactly one receive; anything the peer sends beyond this, or
	// in a later packet, is not read.
	ReadLimit = 1024
)

// Outcome holds the result of a successful probe run.
type Outcome struct {
	RunID        string
	Addr         string
	BytesWritten int
	Body         []byte
	Duration     time.Duration
}

// BodyString returns the response body decoded as text.
func (o *Outcome) BodyString() string {
	return string(o.Body)
}

// Runner performs one probe exchange. A Runner is single use in spirit:
// every Run opens and closes its own connection.
type Runner struct {
	host     string
	port     int
	template Template
	trigger  io.Reader
	gated    bool
}

type Option func(*Runner)

// WithTemplate replaces the default request payload.
func WithTemplate(t Template) Option {
	return func(r *Runner) {
		r.template = t
	}
}

// WithTrigger replaces the trigger reader (stdin by default). Run blocks
// until one byte is read from it; the byte's value is ignored.
func WithTrigger(trigger io.Reader) Option {
	return func(r *Runner) {
		r.trigger = trigger
		r.gated = true
	}
}

// WithoutTrigger disables the rendezvous gate: the request is written
// immediately after the connection is established.
func WithoutTrigger() Option {
	return func(r *Runner) {
		r.trigger = nil
		r.gated = false
	}
}

func NewRunner(host string, port int, opts ...Option) *Runner {
	r := &Runner{
		host:     host,
		port:     port,
		template: DefaultTemplate(),
		trigger:  os.Stdin,
		gated:    true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs the five-step probe sequence: connect, wait for the trigger
// byte, send the template, receive at most ReadLimit bytes, decode. Every
// failure is fatal to the run; the connection is released on all paths.
func (r *Runner) Run() (*Outcome, error) {
	addr := net.JoinHostPort(r.host, strconv.Itoa(r.port))

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, &ConnectionError{Addr: addr, Err: err}
	}
	defer conn.Close()

	if r.gated {
		var gate [1]byte
		if _, err := io.ReadFull(r.trigger, gate[:]); err != nil {
			return nil, &InputClosedError{Err: err}
		}
	}

	start := time.Now()

	payload := r.template.Bytes()
	n, err := conn.Write(payload)
	if err != nil {
		return nil, &WriteError{Addr: addr, Written: n, Err: err}
	}
	if n != len(payload) {
		return nil, &WriteError{Addr: addr, Written: n, Err: io.ErrShortWrite}
	}

	body, err := receive(conn)
	if err != nil {
		return nil, &ConnectionError{Addr: addr, Err: err}
	}

	if !utf8.Valid(body) {
		return nil, &DecodeError{Size: len(body)}
	}

	return &Outcome{
		RunID:        uuid.NewString(),
		Addr:         addr,
		BytesWritten: len(payload),
		Body:         body,
		Duration:     time.Since(start),
	}, nil
}

// receive performs the single bounded read. Whatever bytes arrive are
// returned even when the read also reports an error; a clean peer close
// with no data is an empty body, not a failure.
func receive(r io.Reader) ([]byte, error) {
	buf := make([]byte, ReadLimit)
	n, err := r.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}
