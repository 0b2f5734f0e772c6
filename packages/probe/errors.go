package probe

import "fmt"

// ConnectionError reports a failure to establish or use the connection.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// InputClosedError reports that the trigger reader was closed or exhausted
// before the rendezvous byte arrived. The request is never written.
type InputClosedError struct {
	Err error
}

func (e *InputClosedError) Error() string {
	return fmt.Sprintf("trigger input closed before a byte arrived: %v", e.Err)
}

func (e *InputClosedError) Unwrap() error {
	return e.Err
}

// WriteError reports a failed or short send of the request payload.
type WriteError struct {
	Addr    string
	Written int
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write to %s failed after %d bytes: %v", e.Addr, e.Written, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// DecodeError reports that the received bytes are not valid text.
type DecodeError struct {
	Size int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("response is not valid UTF-8 text (%d bytes)", e.Size)
}
