package output

import (
	"fmt"
	"io"
	"os"

	"github.com/abdul-hamid-achik/wireprobe/packages/probe"
	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// FormatOutcome writes a summary line followed by the decoded body.
func (f *ConsoleFormatter) FormatOutcome(outcome *probe.Outcome) {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(f.writer, "%s %s %s\n",
		green("✓"),
		bold(outcome.Addr),
		cyan(fmt.Sprintf("(%dms, %d bytes)", outcome.Duration.Milliseconds(), len(outcome.Body))))

	if f.verbose {
		fmt.Fprintf(f.writer, "  run:  %s\n", outcome.RunID)
		fmt.Fprintf(f.writer, "  sent: %d bytes\n", outcome.BytesWritten)
	}

	fmt.Fprintf(f.writer, "\n%s\n", outcome.BodyString())
}

// FormatError writes a diagnostic for a failed run.
func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("x"), err)
}
