package sdpbody

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// resultOK метка успешного извлечения
const resultOK = "ok"

// Metrics счётчики Prometheus для извлечения и классификации.
//
// Nil *Metrics допустим: все методы становятся no-op.
type Metrics struct {
	extractions     *prometheus.CounterVec
	classifications *prometheus.CounterVec
}

// NewMetrics создаёт счётчики и регистрирует их в reg.
// При reg == nil счётчики создаются без регистрации.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sdpbody",
			Name:      "extractions_total",
			Help:      "Body extractions by result (ok or error code)",
		}, []string{"result"}),
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sdpbody",
			Name:      "classifications_total",
			Help:      "Content-Type classifications by result",
		}, []string{"type"}),
	}
}

func (m *Metrics) observeExtraction(err error) {
	if m == nil {
		return
	}
	result := resultOK
	if err != nil {
		result = string(CodeOf(err))
	}
	m.extractions.WithLabelValues(result).Inc()
}

func (m *Metrics) observeClassification(ct ContentType) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(ct.String()).Inc()
}
