package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterPostsCreated       prometheus.Counter
	HistRequestDuration       *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("blogposts", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("blogposts", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request",
			Help:      "The total number of incoming requests",
		}, []string{"method", "status"}),
		CounterHandleRequestPanic: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handle_request_panic",
			Help:      "The total number of serve request panics",
		}),
		CounterPostsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "posts_created",
			Help:      "The total number of created posts",
		}),
		HistRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}
