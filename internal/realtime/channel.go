package realtime

import (
	"errors"
	"sync"
)

var (
	ErrChannelClosed = errors.New("channel closed")
	ErrChannelFull   = errors.New("channel outbox full")
)

// Channel is one live connection to a client.
//
// Send must not block: it either queues data for the connection's own writer
// or fails. Close must be idempotent.
type Channel interface {
	Send(data []byte) error
	Close()
}

// outbox is the bounded queue between the dispatcher and a connection writer.
type outbox struct {
	mu     sync.Mutex
	queue  chan []byte
	done   chan struct{}
	closed bool
}

func newOutbox(size int) *outbox {
	if size <= 0 {
		size = 1
	}
	return &outbox{
		queue: make(chan []byte, size),
		done:  make(chan struct{}),
	}
}

func (o *outbox) Send(data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrChannelClosed
	}
	select {
	case o.queue <- data:
		return nil
	default:
		return ErrChannelFull
	}
}

func (o *outbox) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.closed {
		o.closed = true
		close(o.done)
	}
}

// Done is closed once the channel is closed.
func (o *outbox) Done() <-chan struct{} {
	return o.done
}

// Messages yields queued payloads in order.
func (o *outbox) Messages() <-chan []byte {
	return o.queue
}
