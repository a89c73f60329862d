package room

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"starboard/pkg/gameerr"
	"starboard/pkg/protocol"
)

// DefaultRoomTTL is how long an empty room survives before the reaper
// deletes it.
const DefaultRoomTTL = 60 * time.Second

// DefaultPlayerTTL is how long a player may go without a successful
// liveness probe before the reaper evicts them.
const DefaultPlayerTTL = 40 * time.Second

// Registry is the process-wide room directory: one map guarded by a
// single RWMutex, mirroring the teacher's RoomManager. Lock ordering is
// Registry -> Room; never the reverse.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	moveDeadline time.Duration
	roomTTL      time.Duration
	playerTTL    time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRegistry constructs an empty registry. moveDeadline is wired onto
// every room it creates; pass 0 to disable the per-turn clock.
func NewRegistry(moveDeadline, roomTTL, playerTTL time.Duration) *Registry {
	if roomTTL <= 0 {
		roomTTL = DefaultRoomTTL
	}
	if playerTTL <= 0 {
		playerTTL = DefaultPlayerTTL
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		rooms:        make(map[string]*Room),
		moveDeadline: moveDeadline,
		roomTTL:      roomTTL,
		playerTTL:    playerTTL,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Create adds a new room with the given id and returns it. Fails if the
// id is already in use.
func (reg *Registry) Create(id, name string, createdBy uint64) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.rooms[id]; exists {
		return nil, gameerr.New(gameerr.RoomFull, "room id already in use")
	}
	r := New(id, name)
	r.AttachTimer(reg.moveDeadline)
	reg.rooms[id] = r
	return r, nil
}

// Get returns the room with the given id, if any.
func (reg *Registry) Get(id string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[id]
	return r, ok
}

// List returns every room's description, newest first.
func (reg *Registry) List() []protocol.RoomDesc {
	reg.mu.RLock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		rooms = append(rooms, r)
	}
	reg.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].CreatedTime.After(rooms[j].CreatedTime)
	})
	out := make([]protocol.RoomDesc, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Desc())
	}
	return out
}

// RemoveIfEmptyAndFinished deletes a room immediately when its last
// player has just left a finished game, rather than waiting for the
// reaper's TTL sweep.
func (reg *Registry) RemoveIfEmptyAndFinished(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.rooms[id]
	if !ok {
		return
	}
	if r.Empty() && r.GameFinished {
		delete(reg.rooms, id)
	}
}

// StartReaper launches the periodic sweep in the background. Call
// Shutdown to stop it.
func (reg *Registry) StartReaper() {
	reg.wg.Add(1)
	go reg.reaperLoop()
}

// Shutdown stops the reaper and waits for it to exit.
func (reg *Registry) Shutdown() {
	reg.cancel()
	reg.wg.Wait()
}

func (reg *Registry) reaperLoop() {
	defer reg.wg.Done()
	ticker := time.NewTicker(reg.roomTTL)
	defer ticker.Stop()
	for {
		select {
		case <-reg.ctx.Done():
			return
		case <-ticker.C:
			reg.reap()
		}
	}
}

// reap performs one sweep: drop empty rooms past their TTL, then for
// each survivor, probe liveness, evict stale players, clamp the active
// index, release colors/cones an evicted pre-game player held, and
// broadcast the departures.
func (reg *Registry) reap() {
	reg.mu.Lock()
	for id, r := range reg.rooms {
		if r.StaleFor(reg.roomTTL) {
			log.Printf("room %s: reaped (empty and stale)", id)
			delete(reg.rooms, id)
		}
	}
	survivors := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		survivors = append(survivors, r)
	}
	reg.mu.Unlock()

	for _, r := range survivors {
		r.reapPlayers(reg.playerTTL)
	}
}
