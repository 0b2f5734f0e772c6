package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/wireprobe/packages/probe"
)

// JSONReport represents the complete JSON output structure
type JSONReport struct {
	RunID         string  `json:"runId"`
	Addr          string  `json:"addr"`
	RequestBytes  int     `json:"requestBytes"`
	ResponseBytes int     `json:"responseBytes"`
	Duration      float64 `json:"duration"` // milliseconds
	Body          string  `json:"body"`
	Time          string  `json:"time"`
}

// JSONFormatter formats probe outcomes as JSON
type JSONFormatter struct {
	writer io.Writer
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONFormatter{writer: w}
}

func (f *JSONFormatter) FormatOutcome(outcome *probe.Outcome) error {
	report := JSONReport{
		RunID:         outcome.RunID,
		Addr:          outcome.Addr,
		RequestBytes:  outcome.BytesWritten,
		ResponseBytes: len(outcome.Body),
		Duration:      float64(outcome.Duration.Microseconds()) / 1000.0,
		Body:          outcome.BodyString(),
		Time:          time.Now().UTC().Format(time.RFC3339),
	}

	enc := json.NewEncoder(f.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
