package publishers

import "context"

// Event announces a finished monitoring run to downstream consumers.
type Event struct {
	RunID          string `json:"run_id"`
	GeneratedAt    string `json:"generated_at"`
	TotalCountries int    `json:"total_countries"`
	TotalMentions  int    `json:"total_mentions,omitempty"`
	TopCountry     string `json:"top_country,omitempty"`
	ReportPath     string `json:"report_path"`
	OverviewMode   string `json:"overview_mode"`
}

// Publisher delivers run events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Logger is the minimal logging surface the publishers need; it matches the
// monitor-wide logger interface without importing it.
type Logger interface {
	DebugObj(msg, event string, fields map[string]any)
	InfoObj(msg, event string, fields map[string]any)
	WarnObj(msg, event string, fields map[string]any)
	ErrorObj(msg, event string, fields map[string]any)
}

type nopLogger struct{}

func (nopLogger) DebugObj(string, string, map[string]any) {}
func (nopLogger) InfoObj(string, string, map[string]any)  {}
func (nopLogger) WarnObj(string, string, map[string]any)  {}
func (nopLogger) ErrorObj(string, string, map[string]any) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}
