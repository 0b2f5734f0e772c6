package probe

// rawDefaultRequest is the exact payload written by default, byte for byte.
// The Host header deliberately names the default endpoint even when the
// probe is pointed elsewhere: the template is fixed, not rebuilt per target.
const rawDefaultRequest = "GET /api/test HTTP/1.1\r\n" +
	"Host: 127.0.0.1:8100\r\n" +
	"User-Agent: curl/7.87.0\r\n" +
	"Accept: */*\r\n" +
	"\r\n"

// Template is an immutable request payload. The zero value is empty; use
// NewTemplate or DefaultTemplate.
type Template struct {
	raw []byte
}

// NewTemplate copies raw into a new template. Later mutation of the caller's
// slice does not affect the template.
func NewTemplate(raw []byte) Template {
	buf := make([]byte, len(raw))
	copy(buf, raw)
	return Template{raw: buf}
}

// DefaultTemplate returns the built-in GET /api/test request.
func DefaultTemplate() Template {
	return Template{raw: []byte(rawDefaultRequest)}
}

// Bytes returns a copy of the payload.
func (t Template) Bytes() []byte {
	buf := make([]byte, len(t.raw))
	copy(buf, t.raw)
	return buf
}

// Len returns the payload size in bytes.
func (t Template) Len() int {
	return len(t.raw)
}

func (t Template) String() string {
	return string(t.raw)
}
