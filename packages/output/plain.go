package output

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/wireprobe/packages/probe"
)

// PlainFormatter reproduces the bare probe contract: the decoded response
// body followed by a single newline on the writer, nothing else.
type PlainFormatter struct {
	writer io.Writer
}

func NewPlainFormatter(w io.Writer) *PlainFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &PlainFormatter{writer: w}
}

func (f *PlainFormatter) FormatOutcome(outcome *probe.Outcome) {
	fmt.Fprintf(f.writer, "%s\n", outcome.BodyString())
}
