package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	FeedEventsReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_events_received_total",
			Help: "Change-feed events received from the remote store",
		},
		[]string{"type"}, // insert|update|delete
	)
	FeedEventsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_events_applied_total",
			Help: "Change-feed events applied to the local store",
		},
		[]string{"type"},
	)
	FeedEventsDiscarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_events_discarded_total",
			Help: "Events dropped because their handle was superseded",
		},
	)
	FeedReconnects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_reconnects_total",
			Help: "Subscription reconnect attempts",
		},
	)
)

var (
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_store_operations_total",
			Help: "Local order store operations",
		},
		[]string{"op"}, // insert|replace|remove|reseed
	)
	StoreSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_store_size",
			Help: "Number of orders currently in the local store",
		},
	)
)

var (
	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_notifications_total",
			Help: "Arrival notifications by outcome",
		},
		[]string{"outcome"}, // emitted|dropped|sound_failed
	)
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_mutations_total",
			Help: "Mutation gateway calls by operation and result",
		},
		[]string{"op", "result"}, // create|update_status|delete, ok|error
	)
)

var registerOnce sync.Once

// MustRegister регистрирует все коллекторы; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(register)
}

func register() {
	prometheus.MustRegister(
		FeedEventsReceived, FeedEventsApplied, FeedEventsDiscarded, FeedReconnects,
		StoreOps, StoreSize,
		Notifications, Mutations,
	)
}
