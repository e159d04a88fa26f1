// Package bus broadcasts filter patches between ledger views. The last patch is
// replayed to late subscribers so a view opened after a click still sees it.
package bus

import (
	"log/slog"
	"sync"

	"github.com/planejamais/planeja_mais/internal/ledger"
)

const subscriberBuffer = 16

// FilterBus is a typed publish/subscribe channel for ledger.FilterPatch.
type FilterBus struct {
	mu     sync.Mutex
	subs   map[int]chan ledger.FilterPatch
	nextID int
	last   ledger.FilterPatch
	closed bool
	logger *slog.Logger
}

// New creates an empty bus. logger may be nil.
func New(logger *slog.Logger) *FilterBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilterBus{
		subs:   make(map[int]chan ledger.FilterPatch),
		logger: logger,
	}
}

// Emit delivers p to every subscriber and remembers it for replay. A subscriber
// whose buffer is full misses the patch rather than blocking the emitter.
func (b *FilterBus) Emit(p ledger.FilterPatch) {
	if p == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.last = p
	for id, ch := range b.subs {
		select {
		case ch <- p:
		default:
			b.logger.Warn("Dropping filter patch for slow subscriber", "subscriber", id)
		}
	}
}

// Last returns the most recent patch, if any.
func (b *FilterBus) Last() (ledger.FilterPatch, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.last != nil
}

// Subscribe returns a receive channel and a func that unsubscribes and closes it.
func (b *FilterBus) Subscribe() (<-chan ledger.FilterPatch, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan ledger.FilterPatch, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	if b.last != nil {
		ch <- b.last
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

// Close closes every subscriber channel. Later emits are ignored.
func (b *FilterBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
