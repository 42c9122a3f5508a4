package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// notesAppended counts notes created through the web surface.
	notesAppended = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jot",
		Subsystem: "notes",
		Name:      "appended_total",
		Help:      "Total notes appended",
	})

	// notesDeleted counts successful deletions.
	// Labels: by (index, id)
	notesDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jot",
		Subsystem: "notes",
		Name:      "deleted_total",
		Help:      "Total notes deleted",
	}, []string{"by"})

	// validationFailures counts rejected note submissions.
	validationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jot",
		Subsystem: "notes",
		Name:      "validation_failures_total",
		Help:      "Total note submissions rejected as empty",
	})

	// smsSent counts SMS attempts.
	// Labels: result (sent, invalid, rejected, unreachable)
	smsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jot",
		Subsystem: "sms",
		Name:      "sent_total",
		Help:      "Total SMS send attempts by result",
	}, []string{"result"})
)
