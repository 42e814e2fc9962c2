package sdpbody

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arzzra/sipbody/pkg/config"
)

// NewExtractorFromConfig builds an extractor from loaded settings.
// A nil logger logs to slog.Default(); a nil reg disables metrics.
func NewExtractorFromConfig(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) *Extractor {
	if cfg == nil {
		cfg = config.Default()
	}

	opts := []Option{WithLogger(logger)}
	if reg != nil {
		opts = append(opts, WithMetrics(NewMetrics(reg, cfg.MetricsNamespace)))
	}

	switch {
	case cfg.CustomSDPIP != "":
		opts = append(opts, WithSDPIPSource(StaticValue(cfg.CustomSDPIP)))
	case cfg.CustomSDPIPHeader != "":
		opts = append(opts, WithSDPIPSource(HeaderValue(cfg.CustomSDPIPHeader)))
	}

	return NewExtractor(opts...)
}
