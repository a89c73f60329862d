// Package transport wires the room engine to HTTP: request routing,
// bearer-token auth, and the SSE stream each connected player reads
// live events from.
package transport

import (
	"sync"

	"starboard/pkg/protocol"
)

// Connection is a per-player outbound event queue. Unlike the teacher's
// fixed-256-slot channel, Send here never fails for a merely-slow
// reader: the backing queue is an unbounded slice, matching the
// requirement that one wedged browser tab cannot make the room drop
// events for anyone else. It only refuses sends after Close.
type Connection struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []protocol.Event
	closed bool
	out    chan protocol.Event
	done   chan struct{}
}

// NewConnection starts the connection's delivery goroutine and returns
// it ready to accept sends.
func NewConnection() *Connection {
	c := &Connection{
		out:  make(chan protocol.Event),
		done: make(chan struct{}),
	}
	c.cond = sync.NewCond(&c.mu)
	go c.pump()
	return c
}

func (c *Connection) pump() {
	defer close(c.out)
	for {
		c.mu.Lock()
		for len(c.queue) == 0 && !c.closed {
			c.cond.Wait()
		}
		if len(c.queue) == 0 && c.closed {
			c.mu.Unlock()
			return
		}
		evt := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		select {
		case c.out <- evt:
		case <-c.done:
			return
		}
	}
}

// Send enqueues evt for delivery. Reports false once the connection has
// been closed.
func (c *Connection) Send(evt protocol.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.queue = append(c.queue, evt)
	c.cond.Signal()
	return true
}

// Events returns the channel the SSE writer reads delivered events from.
// It closes once the connection is closed; events still queued at that
// point may be dropped rather than delivered.
func (c *Connection) Events() <-chan protocol.Event {
	return c.out
}

// Close stops accepting new events and stops the delivery goroutine
// without waiting for the queue to drain.
func (c *Connection) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.cond.Signal()
	close(c.done)
}
