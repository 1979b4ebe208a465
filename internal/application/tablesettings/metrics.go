package tablesettings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	writesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "venueadmin",
		Subsystem: "table_settings",
		Name:      "writes_total",
		Help:      "Persisted settings writes by result.",
	}, []string{"result"})

	coalescedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "venueadmin",
		Subsystem: "table_settings",
		Name:      "coalesced_saves_total",
		Help:      "Saves that replaced a pending debounced write.",
	})

	loadFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "venueadmin",
		Subsystem: "table_settings",
		Name:      "load_failures_total",
		Help:      "Settings loads that fell back to empty settings, by reason.",
	}, []string{"reason"})
)
