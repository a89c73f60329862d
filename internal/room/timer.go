package room

import (
	"sync"
	"time"

	"starboard/pkg/protocol"
)

// DefaultMoveDeadline is the per-turn clock used unless overridden.
const DefaultMoveDeadline = 30 * time.Second

// timerHandle is a room's move-deadline timer. start/cancel are always
// called with the owning Room's lock held, so only one can run at a
// time; the handle's own mutex only guards against its own fired
// callback racing a concurrent reset.
type timerHandle struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	seq      uint64
}

// AttachTimer wires a move-deadline timer of duration d onto the room.
// Call once, right after construction; a zero duration disables the
// clock entirely.
func (r *Room) AttachTimer(d time.Duration) {
	if d <= 0 {
		return
	}
	r.tm = &timerHandle{duration: d}
}

// start arms (or re-arms) the move-deadline timer. Must be called with
// r.mu held.
func (h *timerHandle) start(r *Room) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
	}
	h.seq++
	seq := h.seq
	h.timer = time.AfterFunc(h.duration, func() { h.fire(r, seq) })
}

// cancel drops any armed timer without firing it. Must be called with
// r.mu held.
func (h *timerHandle) cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.seq++
}

// fire runs in its own goroutine, independent of whatever holds r.mu at
// the moment the deadline elapses. A superseded timer (reset or
// cancelled since it was armed) is a silent no-op; so is firing against
// a room that has since finished or emptied out.
func (h *timerHandle) fire(r *Room, seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h.mu.Lock()
	current := seq == h.seq
	h.mu.Unlock()
	if !current {
		return
	}
	if !r.GameStarted || r.GameFinished || len(r.Players) == 0 {
		return
	}
	expired := r.Players[r.ActivePlayer]
	r.broadcast(protocol.NewMoveTimer(0, expired.UserID))
	r.ActivePlayer = (r.ActivePlayer + 1) % len(r.Players)
	r.touch()
	r.broadcast(protocol.NewTurnChange(r.Players[r.ActivePlayer].UserID))
	h.start(r)
}
