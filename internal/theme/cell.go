package theme

import (
	"context"
	"sync"
)

// Cell is a shared observable Mode. Subscribers get the current value first
// and then every change in publish order; a slow subscriber only ever holds
// the latest value, so publishers never block.
type Cell struct {
	mu     sync.Mutex
	value  Mode
	subs   map[*subscription]struct{}
	closed bool
}

type subscription struct {
	ch   chan Mode
	stop func() bool
}

func NewCell(initial Mode) *Cell {
	return &Cell{
		value: initial,
		subs:  make(map[*subscription]struct{}),
	}
}

func (c *Cell) Get() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores mode and notifies subscribers. It reports whether the value
// changed; setting the current value publishes nothing.
func (c *Cell) Set(mode Mode) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.value == mode {
		return false
	}
	c.value = mode
	for sub := range c.subs {
		offer(sub.ch, mode)
	}
	return true
}

// Subscribe returns a channel that is closed when ctx is done or the cell is
// closed.
func (c *Cell) Subscribe(ctx context.Context) <-chan Mode {
	ch := make(chan Mode, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		close(ch)
		return ch
	}

	ch <- c.value
	sub := &subscription{ch: ch}
	c.subs[sub] = struct{}{}
	sub.stop = context.AfterFunc(ctx, func() {
		c.unsubscribe(sub)
	})
	return ch
}

// Subscribers reports the number of live subscriptions.
func (c *Cell) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Close ends every subscription. Later Sets are ignored.
func (c *Cell) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for sub := range c.subs {
		sub.stop()
		close(sub.ch)
		delete(c.subs, sub)
	}
}

func (c *Cell) unsubscribe(sub *subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.subs[sub]; !ok {
		return
	}
	delete(c.subs, sub)
	close(sub.ch)
}

// offer replaces any unread value with mode. Callers hold the cell lock, so
// this is the only sender and the send after draining cannot block.
func offer(ch chan Mode, mode Mode) {
	select {
	case ch <- mode:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- mode
}
