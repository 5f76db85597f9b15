// Package metrics exposes the Prometheus instruments the booking engine
// updates. Collectors are registered on the default registry and served by
// the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsReserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookacourt_bookings_reserved_total",
		Help: "Bookings successfully reserved.",
	})

	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookacourt_booking_conflicts_total",
		Help: "Reservation attempts rejected because the slot was taken.",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookacourt_bookings_cancelled_total",
		Help: "Bookings cancelled by users or staff.",
	})

	RefundsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookacourt_refunds_issued_total",
		Help: "Cancellations that resulted in a non-zero refund.",
	})

	ReserveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookacourt_reserve_duration_seconds",
		Help:    "Wall time of the reserve transaction, lock wait included.",
		Buckets: prometheus.DefBuckets,
	})
)
