// Package metrics exposes Prometheus collectors for live channels and votes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "livepoll"

// Vote outcomes recorded by ObserveVote.
const (
	VoteAccepted  = "accepted"
	VoteDuplicate = "duplicate"
	VoteRejected  = "rejected"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	liveChannels    prometheus.Gauge
	eventsPublished *prometheus.CounterVec
	sendFailures    prometheus.Counter
	votes           *prometheus.CounterVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		liveChannels: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_channels",
			Help:      "Live update channels currently registered.",
		}),
		eventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Broadcast events published, by type.",
		}, []string{"type"}),
		sendFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_send_failures_total",
			Help:      "Deliveries that failed and caused the channel to be dropped.",
		}),
		votes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Vote attempts, by result.",
		}, []string{"result"}),
	}
}

func (m *Metrics) SetLiveChannels(n int) {
	if m == nil {
		return
	}
	m.liveChannels.Set(float64(n))
}

func (m *Metrics) EventPublished(eventType string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(eventType).Inc()
}

func (m *Metrics) SendFailed() {
	if m == nil {
		return
	}
	m.sendFailures.Inc()
}

func (m *Metrics) ObserveVote(result string) {
	if m == nil {
		return
	}
	m.votes.WithLabelValues(result).Inc()
}
