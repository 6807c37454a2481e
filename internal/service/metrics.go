package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// dualWriteDivergence counts operations where the primary store succeeded
// but a secondary store did not. A nonzero rate means the stores are
// drifting apart and need reconciliation.
var dualWriteDivergence = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dual_write_divergence_total",
		Help: "Dual-write operations where a secondary store failed",
	},
	[]string{"operation", "store"},
)

func init() {
	prometheus.MustRegister(dualWriteDivergence)
}
