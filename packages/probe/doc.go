// Package probe implements a one-shot raw HTTP request probe.
//
// A probe opens a single TCP connection, blocks until one byte arrives on a
// trigger reader (stdin by default), writes a fixed request payload in one
// send, reads at most one bounded chunk of the reply, and returns it decoded
// as text. There is no pooling, no retry, no timeout and no response
// parsing: the probe exists to observe a server's raw bytes, not to speak
// HTTP properly.
package probe
