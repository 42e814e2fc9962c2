package sdpbody

import "log/slog"

// Option configures an Extractor
type Option func(*Extractor)

// WithLogger sets the logger for diagnostics. Without it the extractor logs
// to slog.Default() as it is at call time.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithMetrics enables Prometheus counters
func WithMetrics(m *Metrics) Option {
	return func(e *Extractor) {
		e.metrics = m
	}
}

// WithSDPIPSource sets the source consulted by SDPIP before the SDP itself.
// A source that yields an empty value is ignored.
func WithSDPIPSource(src VarSource) Option {
	return func(e *Extractor) {
		e.sdpIP = src
	}
}
