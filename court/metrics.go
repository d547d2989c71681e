package court

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "court_operations_total",
	Help: "Mutating court operations by operation and result",
}, []string{"operation", "result"})

func observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = Kind(err)
		if result == "" {
			result = "error"
		}
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
}
