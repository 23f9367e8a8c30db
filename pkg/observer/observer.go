package observer

import (
	"sync"

	"pocket-news/models/entities"
)

// PriceObserver receives the full quote mapping of a polling tick.
// A nil mapping means the tick failed and subscribers should render a
// degraded state.
type PriceObserver interface {
	OnPriceUpdate(prices map[string]entities.PriceQuote)
}

type PriceNotifier interface {
	Register(o PriceObserver) func()
	Notify(prices map[string]entities.PriceQuote)
}

type registration struct {
	observer PriceObserver
}

type Impl struct {
	mu        sync.Mutex
	observers map[*registration]struct{}
}

func New() *Impl {
	return &Impl{observers: map[*registration]struct{}{}}
}

// Register adds an observer and returns its unsubscribe handle. Calling
// the handle more than once is harmless.
func (n *Impl) Register(o PriceObserver) func() {
	reg := &registration{observer: o}

	n.mu.Lock()
	n.observers[reg] = struct{}{}
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.observers, reg)
		n.mu.Unlock()
	}
}

// Notify delivers the tick result to every registered observer exactly
// once. No ordering is guaranteed among observers.
func (n *Impl) Notify(prices map[string]entities.PriceQuote) {
	n.mu.Lock()
	regs := make([]*registration, 0, len(n.observers))
	for reg := range n.observers {
		regs = append(regs, reg)
	}
	n.mu.Unlock()

	for _, reg := range regs {
		reg.observer.OnPriceUpdate(prices)
	}
}
