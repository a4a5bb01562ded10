// Package metrics exports request board gauges to Prometheus. The recorder
// subscribes to the request store and refreshes on every commit.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/services"
)

type Recorder struct {
	requests  *prometheus.GaugeVec
	mutations *prometheus.CounterVec

	mu      sync.Mutex
	lastSeq uint64
}

// NewRecorder registers the board collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		requests: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "request_board",
			Name:      "requests",
			Help:      "Number of requests per status.",
		}, []string{"status"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "request_board",
			Name:      "mutations_total",
			Help:      "Committed request store mutations by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(r.requests, r.mutations)
	return r
}

// Observe sets the status gauges from a snapshot.
func (r *Recorder) Observe(snapshot []models.Request) {
	counts := make(map[models.RequestStatus]int, len(models.StatusFlow))
	for _, req := range snapshot {
		counts[req.Status]++
	}
	for _, status := range models.StatusFlow {
		r.requests.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}

// Attach primes the gauges and keeps them current. The returned func detaches.
func (r *Recorder) Attach(store *services.RequestStore) func() {
	r.Observe(store.List())
	return store.Subscribe(r.Apply)
}

// Apply counts the mutation and refreshes the gauges unless a later commit
// has already been applied.
func (r *Recorder) Apply(e services.Event) {
	r.mutations.WithLabelValues(e.Op).Inc()

	r.mu.Lock()
	defer r.mu.Unlock()
	if e.Seq <= r.lastSeq {
		return
	}
	r.lastSeq = e.Seq
	r.Observe(e.Snapshot)
}
