// Package room implements the room state machine: roster management,
// color assignment, turn rotation, move application, and the per-room
// event fan-out clients are pushed over SSE. Each Room holds one mutex
// guarding its roster and board together, the same coarse-lock shape
// the teacher's mutex-per-concern server used.
package room

import (
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"starboard/pkg/board"
	"starboard/pkg/gameerr"
	"starboard/pkg/gamestate"
	"starboard/pkg/protocol"
)

// MaxPlayers is the maximum roster size; the board only has six homes.
const MaxPlayers = 6

// chatRateLimit throttles how often a single player may post a chat
// message, independent of the move clock.
const chatRateLimit = rate.Limit(1) // 1 message/sec sustained
const chatRateBurst = 5

// OutboundSender is the write side of a player's event queue. Send must
// never block the caller: implementations back it with an unbounded
// buffer (see Connection in internal/transport). Send reports false if
// the underlying stream is already closed, which the reaper's liveness
// probe uses to detect a dead connection.
type OutboundSender interface {
	Send(protocol.Event) bool
}

// Player is one seat in a room.
type Player struct {
	UserID      uint64
	DisplayName string
	Ready       bool
	LastActive  time.Time
	sender      OutboundSender
	limiter     *rate.Limiter
}

// Room is a single game instance: roster, turn cursor, lifecycle flags,
// and the board they're playing on. All mutation goes through its
// methods, each of which takes mu for its full duration.
type Room struct {
	ID          string
	Name        string
	CreatedBy   uint64
	CreatedTime time.Time
	LastUpdated time.Time

	GameStarted  bool
	GameFinished bool
	Winner       *uint64

	ActivePlayer int
	Players      []*Player
	State        *gamestate.State

	mu sync.Mutex
	tm *timerHandle
}

// New constructs an empty lobby room.
func New(id, name string) *Room {
	now := time.Now()
	return &Room{
		ID:          id,
		Name:        name,
		CreatedTime: now,
		LastUpdated: now,
		State:       gamestate.New(),
	}
}

func (r *Room) touch() { r.LastUpdated = time.Now() }

func (r *Room) findPlayer(userID uint64) (*Player, int) {
	for i, p := range r.Players {
		if p.UserID == userID {
			return p, i
		}
	}
	return nil, -1
}

// lowestFreeColor returns the smallest color in 1..6 not already
// assigned to a player.
func (r *Room) lowestFreeColor() board.Color {
	taken := make(map[board.Color]bool, len(r.State.PlayersColors))
	for _, c := range r.State.PlayersColors {
		taken[c] = true
	}
	for c := board.Purple; c <= board.Blue; c++ {
		if !taken[c] {
			return c
		}
	}
	return board.Neutral
}

func (r *Room) broadcast(evt protocol.Event) {
	for _, p := range r.Players {
		if !p.sender.Send(evt) {
			log.Printf("room %s: dropped %s for user %d, queue closed", r.ID, evt.EventName(), p.UserID)
		}
	}
}

func (r *Room) desc() protocol.RoomDesc {
	return protocol.RoomDesc{
		ID:              r.ID,
		Name:            r.Name,
		CreatedBy:       r.CreatedBy,
		CreatedTime:     r.CreatedTime.Unix(),
		GameStarted:     r.GameStarted,
		GameFinished:    r.GameFinished,
		Winner:          r.Winner,
		ActivePlayer:    r.ActivePlayer,
		NumberOfPlayers: len(r.Players),
	}
}

// Desc returns a snapshot of the room's public summary.
func (r *Room) Desc() protocol.RoomDesc {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.desc()
}

// PlayerDescs returns a snapshot of every player's public summary.
func (r *Room) PlayerDescs() []protocol.PlayerDesc {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]protocol.PlayerDesc, 0, len(r.Players))
	for _, p := range r.Players {
		color := r.State.PlayersColors[p.UserID]
		out = append(out, protocol.PlayerDesc{Name: p.DisplayName, Color: int(color), UserID: p.UserID})
	}
	return out
}

// GameStateDTO returns a snapshot of the board in wire form.
func (r *Room) GameStateDTO() protocol.GameStateDTO {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gameStateDTOLocked()
}

func (r *Room) gameStateDTOLocked() protocol.GameStateDTO {
	cones := make(map[string]int, len(r.State.Cones))
	for p, c := range r.State.Cones {
		cones[protocol.PointKey(p)] = int(c)
	}
	colors := make(map[uint64]int, len(r.State.PlayersColors))
	for u, c := range r.State.PlayersColors {
		colors[u] = int(c)
	}
	moves := make([]protocol.MoveDTO, 0, len(r.State.Moves()))
	for _, m := range r.State.Moves() {
		moves = append(moves, protocol.MoveDTO{Color: int(m.Color), Path: m.Path})
	}
	return protocol.GameStateDTO{Cones: cones, PlayersColors: colors, Moves: moves}
}

// Join seats userID in the room, assigning a display name, a sender for
// its outbound events, and (if new) the lowest free color. Rejects a
// full room, or a started game the user has no existing color in.
func (r *Room) Join(userID uint64, displayName string, sender OutboundSender) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, _ := r.findPlayer(userID); existing != nil {
		existing.sender = sender
		return nil
	}

	if len(r.Players) >= MaxPlayers {
		return gameerr.New(gameerr.RoomFull, "room is full")
	}
	if _, hasColor := r.State.PlayersColors[userID]; r.GameStarted && !hasColor {
		return gameerr.New(gameerr.NotInLobby, "game already started")
	}

	if len(r.Players) == 0 {
		r.CreatedBy = userID
	}

	color, hadColor := r.State.PlayersColors[userID]
	newlyAssigned := !hadColor
	if newlyAssigned {
		color = r.lowestFreeColor()
		if err := r.State.AddCones(userID, color); err != nil {
			return err
		}
	}

	p := &Player{
		UserID:      userID,
		DisplayName: displayName,
		LastActive:  time.Now(),
		sender:      sender,
		limiter:     rate.NewLimiter(chatRateLimit, chatRateBurst),
	}
	r.Players = append(r.Players, p)
	r.touch()

	cones := r.coneListLocked(userID)
	r.broadcast(protocol.NewPlayerJoined(userID, r.ID, cones, displayName, color, p.Ready))
	return nil
}

func (r *Room) coneListLocked(userID uint64) []board.Point {
	color, ok := r.State.PlayersColors[userID]
	if !ok {
		return nil
	}
	var out []board.Point
	for p, c := range r.State.Cones {
		if c == color {
			out = append(out, p)
		}
	}
	return out
}

// SetColor reassigns userID's color in the lobby. Rejects if the player
// is already ready or the color belongs to someone else.
func (r *Room) SetColor(userID uint64, newColor board.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.GameStarted {
		return gameerr.New(gameerr.NotInLobby, "game already started")
	}
	p, _ := r.findPlayer(userID)
	if p == nil {
		return gameerr.New(gameerr.UserNotFound, "not in room")
	}
	if p.Ready {
		return gameerr.New(gameerr.NotInLobby, "unready before changing color")
	}
	if !newColor.Valid() {
		return gameerr.New(gameerr.OutOfBounds, "invalid color")
	}
	for owner, c := range r.State.PlayersColors {
		if c == newColor && owner != userID {
			return gameerr.New(gameerr.ColorTaken, newColor.String())
		}
	}

	r.State.RemoveCones(userID)
	if err := r.State.AddCones(userID, newColor); err != nil {
		return err
	}
	r.touch()
	r.broadcast(protocol.NewGameStateEvent(r.ID, r.gameStateDTOLocked()))
	return nil
}

// SetReadyAndChat applies an optional ready-state change before building
// the chat broadcast, so the broadcast event reflects the new ready
// state for this request (matches the reference server's ordering).
func (r *Room) SetReadyAndChat(userID uint64, message *string, setReady *bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, _ := r.findPlayer(userID)
	if p == nil {
		return gameerr.New(gameerr.UserNotFound, "not in room")
	}
	if message != nil {
		if !p.limiter.Allow() {
			return gameerr.New(gameerr.Transport, "chat rate limit exceeded")
		}
	}
	if setReady != nil {
		p.Ready = *setReady
	}
	r.touch()
	var readyOut *bool
	if setReady != nil {
		v := p.Ready
		readyOut = &v
	}
	r.broadcast(protocol.NewChatMessage(p.DisplayName, userID, message, readyOut))
	return nil
}

// Start begins the game. Only the room's creator may call it, and every
// player must be ready.
func (r *Room) Start(userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireCreator(userID); err != nil {
		return err
	}
	if r.GameStarted {
		return gameerr.New(gameerr.NotInLobby, "already started")
	}
	if len(r.Players) == 0 {
		return gameerr.New(gameerr.NotInLobby, "no players")
	}
	for _, p := range r.Players {
		if !p.Ready {
			return gameerr.New(gameerr.NotInLobby, "not all players are ready")
		}
	}
	r.GameStarted = true
	r.ActivePlayer = 0
	r.touch()
	r.broadcast(protocol.NewRoomStateUpdate(r.desc()))
	if r.tm != nil {
		r.tm.start(r)
	}
	return nil
}

// Stop returns a started-but-unfinished room to the lobby. Only the
// creator may call it.
func (r *Room) Stop(userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireCreator(userID); err != nil {
		return err
	}
	r.GameStarted = false
	r.touch()
	r.broadcast(protocol.NewRoomStateUpdate(r.desc()))
	if r.tm != nil {
		r.tm.cancel()
	}
	return nil
}

func (r *Room) requireCreator(userID uint64) error {
	if r.CreatedBy != userID {
		return gameerr.New(gameerr.NotYourTurn, "only the creator may do this")
	}
	return nil
}

// MakeMove applies path on behalf of userID. Only the active player may
// move, and only their own cone.
func (r *Room) MakeMove(userID uint64, path []board.Point) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.GameStarted || r.GameFinished {
		return gameerr.New(gameerr.NotInLobby, "game is not in progress")
	}
	if r.ActivePlayer < 0 || r.ActivePlayer >= len(r.Players) {
		return gameerr.New(gameerr.NotYourTurn, "no active player")
	}
	if r.Players[r.ActivePlayer].UserID != userID {
		return gameerr.New(gameerr.NotYourTurn, "not your turn")
	}

	finished, err := r.State.UpdateCones(userID, path)
	if err != nil {
		return err
	}

	r.ActivePlayer = (r.ActivePlayer + 1) % len(r.Players)
	r.touch()

	if finished {
		r.GameFinished = true
		winner := userID
		r.Winner = &winner
		if r.tm != nil {
			r.tm.cancel()
		}
	} else if r.tm != nil {
		r.tm.start(r)
	}

	r.broadcast(protocol.NewMoveMade(userID, path, r.ActivePlayer, finished))
	if finished {
		r.broadcast(protocol.NewRoomStateUpdate(r.desc()))
	} else {
		r.broadcast(protocol.NewTurnChange(r.Players[r.ActivePlayer].UserID))
	}
	return nil
}

// ValidatePath checks path against the current board without applying
// it, for the dry-run /validate endpoint.
func (r *Room) ValidatePath(path []board.Point) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.State.ValidatePath(path)
}

// Leave removes userID from the roster. Pre-game it also frees the
// color and cones; mid-game the cones stay in place for the remaining
// players to jump over.
func (r *Room) Leave(userID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(userID)
}

func (r *Room) leaveLocked(userID uint64) {
	p, idx := r.findPlayer(userID)
	if p == nil {
		return
	}
	color := r.State.PlayersColors[userID]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	removeCones := !r.GameStarted
	if removeCones {
		r.State.RemoveCones(userID)
	}
	if len(r.Players) > 0 {
		r.ActivePlayer %= len(r.Players)
	} else {
		r.ActivePlayer = 0
	}
	r.touch()
	r.broadcast(protocol.NewPlayerLeft(userID, r.ID, r.ActivePlayer, removeCones, color))
}

// Empty reports whether the room currently has no players.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Players) == 0
}

// StaleFor reports whether the room has been empty and idle for longer
// than ttl.
func (r *Room) StaleFor(ttl time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Players) == 0 && time.Since(r.LastUpdated) > ttl
}
