package gan

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

// Progress is the periodic training report.
type Progress struct {
	Epoch        int     `json:"epoch"`
	DLoss        float32 `json:"d_loss"`
	DAccuracyPct float32 `json:"d_accuracy_pct"`
	GLoss        float32 `json:"g_loss"`
}

// ProgressSink receives training reports.
type ProgressSink interface {
	Report(p Progress)
}

// LogSink writes each report as one structured log record.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogSink logs at info level to logger, or to slog.Default when nil.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger, level: slog.LevelInfo}
}

// Report implements ProgressSink.
func (s *LogSink) Report(p Progress) {
	s.logger.LogAttrs(context.Background(), s.level, "training progress",
		slog.Int("epoch", p.Epoch),
		slog.Float64("d_loss", float64(p.DLoss)),
		slog.Float64("d_accuracy_pct", float64(p.DAccuracyPct)),
		slog.Float64("g_loss", float64(p.GLoss)),
	)
}

// History keeps every report in memory.
type History struct {
	mu      sync.Mutex
	records []Progress
}

// Report implements ProgressSink.
func (h *History) Report(p Progress) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, p)
}

// Records returns a copy of the reports received so far.
func (h *History) Records() []Progress {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Progress(nil), h.records...)
}

// Last returns the most recent report.
func (h *History) Last() (Progress, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.records) == 0 {
		return Progress{}, false
	}
	return h.records[len(h.records)-1], true
}

// JSONSink writes one JSON object per report.
type JSONSink struct {
	enc *json.Encoder
	err error
}

// NewJSONSink encodes reports to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Report implements ProgressSink. The first write error is kept and later
// reports are dropped.
func (s *JSONSink) Report(p Progress) {
	if s.err != nil {
		return
	}
	s.err = s.enc.Encode(p)
}

// Err returns the first write error.
func (s *JSONSink) Err() error {
	return s.err
}

// MultiSink fans every report out to each sink in order.
type MultiSink []ProgressSink

// Report implements ProgressSink.
func (m MultiSink) Report(p Progress) {
	for _, s := range m {
		if s != nil {
			s.Report(p)
		}
	}
}
