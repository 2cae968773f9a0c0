package scanner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scanCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chronoflow_scan_cycles_total",
		Help: "Number of due-event scan cycles executed.",
	})

	scanErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chronoflow_scan_errors_total",
		Help: "Number of scan cycles that encountered a store error.",
	})

	eventsTriggered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chronoflow_events_triggered_total",
		Help: "Number of events transitioned to triggered by the scanner.",
	})
)
