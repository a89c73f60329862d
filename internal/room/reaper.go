package room

import (
	"time"

	"starboard/pkg/protocol"
)

// reapPlayers is one room's share of a reaper sweep: probe every
// player's queue, evict anyone whose last successful probe is older
// than ttl, clamp the turn cursor, and release a pre-game evictee's
// color and cones. Broadcasts one player_left per eviction.
func (r *Room) reapPlayers(ttl time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, p := range r.Players {
		if p.sender.Send(protocol.Probe{}) {
			p.LastActive = now
		}
	}

	var evicted []*Player
	alive := r.Players[:0:0]
	for _, p := range r.Players {
		if now.Sub(p.LastActive) < ttl {
			alive = append(alive, p)
		} else {
			evicted = append(evicted, p)
		}
	}
	r.Players = alive

	if len(r.Players) > 0 {
		r.ActivePlayer %= len(r.Players)
	} else {
		r.ActivePlayer = 0
	}

	for _, p := range evicted {
		color := r.State.PlayersColors[p.UserID]
		removeCones := !r.GameStarted
		if removeCones {
			r.State.RemoveCones(p.UserID)
		}
		r.touch()
		r.broadcast(protocol.NewPlayerLeft(p.UserID, r.ID, r.ActivePlayer, removeCones, color))
	}
}
