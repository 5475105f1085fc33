package locate

//
// Metrics definitions
//

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// metricResolutionsCount counts completed resolutions.
	metricResolutionsCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geovisit_resolutions_count",
		Help: "Total number of completed location resolutions",
	})

	// metricSourceOutcomes counts per-source outcomes. The source label
	// is one of coordinate, primary_address, secondary_address, and
	// network_address; the outcome label is ok, failed, or skipped.
	metricSourceOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geovisit_source_outcomes_total",
		Help: "Per-source outcomes observed during location resolutions",
	}, []string{"source", "outcome"})
)

// outcomeLabel maps a success flag to the outcome label value.
func outcomeLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}
