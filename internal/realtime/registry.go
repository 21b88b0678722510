package realtime

import (
	"sync"

	"livepoll/internal/metrics"
)

// Token identifies a registered channel.
type Token uint64

// Entry is a registered channel and its token.
type Entry struct {
	Token   Token
	Channel Channel
}

// Registry holds the open live channels of this process. It knows nothing
// about users or polls. It is owned by the server and lives as long as it.
type Registry struct {
	mu       sync.RWMutex
	next     Token
	channels map[Token]Channel
	metrics  *metrics.Metrics
}

func NewRegistry(m *metrics.Metrics) *Registry {
	return &Registry{
		channels: make(map[Token]Channel),
		metrics:  m,
	}
}

func (r *Registry) Register(ch Channel) Token {
	tok, _ := r.registerWith(ch, nil)
	return tok
}

// registerWith adds ch and runs onRegister under the registry lock, so no
// broadcast can reach ch before onRegister has queued its data. If
// onRegister fails the channel is removed again.
func (r *Registry) registerWith(ch Channel, onRegister func() error) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	tok := r.next
	r.channels[tok] = ch

	if onRegister != nil {
		if err := onRegister(); err != nil {
			delete(r.channels, tok)
			return 0, err
		}
	}
	r.metrics.SetLiveChannels(len(r.channels))
	return tok, nil
}

// Unregister removes the channel for tok. Removing an absent token is a
// no-op; ok reports whether this call removed it.
func (r *Registry) Unregister(tok Token) (ch Channel, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok = r.channels[tok]
	if !ok {
		return nil, false
	}
	delete(r.channels, tok)
	r.metrics.SetLiveChannels(len(r.channels))
	return ch, true
}

// Snapshot returns the channels registered at the time of the call.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.channels))
	for tok, ch := range r.channels {
		entries = append(entries, Entry{Token: tok, Channel: ch})
	}
	return entries
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// CloseAll unregisters and closes every channel. Used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	channels := r.channels
	r.channels = make(map[Token]Channel)
	r.metrics.SetLiveChannels(0)
	r.mu.Unlock()

	for _, ch := range channels {
		ch.Close()
	}
}
