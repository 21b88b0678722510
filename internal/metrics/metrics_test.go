package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SetLiveChannels(3)
	m.EventPublished("VOTE_CAST")
	m.EventPublished("VOTE_CAST")
	m.SendFailed()
	m.ObserveVote(VoteDuplicate)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.liveChannels))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.eventsPublished.WithLabelValues("VOTE_CAST")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sendFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.votes.WithLabelValues(VoteDuplicate)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SetLiveChannels(1)
		m.EventPublished("X")
		m.SendFailed()
		m.ObserveVote(VoteAccepted)
	})
}
