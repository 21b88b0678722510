package realtime

// SSEChannel is a Channel for a Server-Sent Events stream. The HTTP handler
// owns the response writer and drains Messages until Done is closed.
type SSEChannel struct {
	*outbox
}

func NewSSEChannel(buffer int) *SSEChannel {
	return &SSEChannel{outbox: newOutbox(buffer)}
}
