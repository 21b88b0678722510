package realtime

import (
	"encoding/json"
	"log/slog"

	"livepoll/internal/metrics"
)

// Dispatcher fans messages out to every channel in a Registry.
//
// Delivery is best effort: nothing is acknowledged, retried or kept for
// clients that connect later. A channel that cannot take a message is
// dropped, and its client is expected to reconnect and refetch.
type Dispatcher struct {
	registry *Registry
	metrics  *metrics.Metrics
}

func NewDispatcher(registry *Registry, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{registry: registry, metrics: m}
}

func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Publish sends msg to every registered channel. It never blocks on a slow
// client: sends only enqueue into each channel's outbox.
func (d *Dispatcher) Publish(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to encode live message", "type", msg.Type, "error", err)
		return
	}
	d.metrics.EventPublished(msg.Type)

	for _, e := range d.registry.Snapshot() {
		if err := e.Channel.Send(data); err != nil {
			slog.Warn("dropping live channel", "token", e.Token, "error", err)
			d.metrics.SendFailed()
			d.Detach(e.Token)
		}
	}
}

// Attach registers ch and greets it with a CONNECTED message, which is
// guaranteed to be the first message the channel receives.
func (d *Dispatcher) Attach(ch Channel) (Token, error) {
	data, err := json.Marshal(Connected())
	if err != nil {
		return 0, err
	}
	return d.registry.registerWith(ch, func() error {
		return ch.Send(data)
	})
}

// Detach unregisters and closes the channel for tok. Safe to call more than
// once, and from both the disconnect and the send-failure path.
func (d *Dispatcher) Detach(tok Token) {
	if ch, ok := d.registry.Unregister(tok); ok {
		ch.Close()
	}
}
