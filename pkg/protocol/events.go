// Package protocol defines the JSON event frames pushed to clients over
// SSE and the wire DTOs returned by the REST endpoints. Every event is
// externally tagged: it carries its own "name" field identifying its
// kind, the same shape the original server's per-kind structs used.
package protocol

import "starboard/pkg/board"

// Event is satisfied by every broadcastable frame; EventName returns the
// wire-level "name" discriminator.
type Event interface {
	EventName() string
}

// PlayerJoined announces a player entering a room, including the cones
// assigned to their (possibly newly chosen) color.
type PlayerJoined struct {
	Name        string        `json:"name"`
	UserID      uint64        `json:"user_id"`
	RoomID      string        `json:"room_id"`
	PlayerCones []board.Point `json:"player_cones"`
	PlayerName  string        `json:"player_name"`
	PlayerColor int           `json:"player_color"`
	PlayerReady bool          `json:"player_ready"`
}

func NewPlayerJoined(userID uint64, roomID string, cones []board.Point, name string, color board.Color, ready bool) PlayerJoined {
	return PlayerJoined{Name: "player_joined", UserID: userID, RoomID: roomID, PlayerCones: cones, PlayerName: name, PlayerColor: int(color), PlayerReady: ready}
}

func (e PlayerJoined) EventName() string { return e.Name }

// PlayerLeft announces a player's departure, and whether their cones
// should be cleared from the board (only true pre-game).
type PlayerLeft struct {
	Name        string `json:"name"`
	UserID      uint64 `json:"user_id"`
	RoomID      string `json:"room_id"`
	NextTurn    int    `json:"next_turn"`
	RemoveCones bool   `json:"remove_cones"`
	PlayerColor int    `json:"player_color"`
}

func NewPlayerLeft(userID uint64, roomID string, nextTurn int, removeCones bool, color board.Color) PlayerLeft {
	return PlayerLeft{Name: "player_left", UserID: userID, RoomID: roomID, NextTurn: nextTurn, RemoveCones: removeCones, PlayerColor: int(color)}
}

func (e PlayerLeft) EventName() string { return e.Name }

// MoveMade announces an applied path and whether it ended the game.
type MoveMade struct {
	Name         string        `json:"name"`
	ByUserID     uint64        `json:"by_user_id"`
	Path         []board.Point `json:"path"`
	NextPlayer   int           `json:"next_player"`
	GameFinished bool          `json:"game_finished"`
}

func NewMoveMade(byUserID uint64, path []board.Point, nextPlayer int, finished bool) MoveMade {
	return MoveMade{Name: "move_made", ByUserID: byUserID, Path: path, NextPlayer: nextPlayer, GameFinished: finished}
}

func (e MoveMade) EventName() string { return e.Name }

// ChatMessage carries a chat line and/or a ready-state change.
type ChatMessage struct {
	Name    string  `json:"name"`
	By      string  `json:"by"`
	UserID  uint64  `json:"user_id"`
	Message *string `json:"message,omitempty"`
	Ready   *bool   `json:"ready,omitempty"`
}

func NewChatMessage(by string, userID uint64, message *string, ready *bool) ChatMessage {
	return ChatMessage{Name: "chat_message", By: by, UserID: userID, Message: message, Ready: ready}
}

func (e ChatMessage) EventName() string { return e.Name }

// RoomStateUpdate carries a refreshed room description, e.g. after
// start/stop/game end.
type RoomStateUpdate struct {
	Name string   `json:"name"`
	Room RoomDesc `json:"room"`
}

func NewRoomStateUpdate(room RoomDesc) RoomStateUpdate {
	return RoomStateUpdate{Name: "room_state_update", Room: room}
}

func (e RoomStateUpdate) EventName() string { return e.Name }

// GameStateEvent carries the full board snapshot.
type GameStateEvent struct {
	Name   string       `json:"name"`
	RoomID string       `json:"room_id"`
	Game   GameStateDTO `json:"game"`
}

func NewGameStateEvent(roomID string, game GameStateDTO) GameStateEvent {
	return GameStateEvent{Name: "game_state", RoomID: roomID, Game: game}
}

func (e GameStateEvent) EventName() string { return e.Name }

// MoveTimer announces the per-turn countdown firing.
type MoveTimer struct {
	Name       string `json:"name"`
	TimerValue int    `json:"timer_value"`
	UserID     uint64 `json:"user_id"`
}

func NewMoveTimer(timerValue int, userID uint64) MoveTimer {
	return MoveTimer{Name: "move_timer", TimerValue: timerValue, UserID: userID}
}

func (e MoveTimer) EventName() string { return e.Name }

// TurnChange announces whose turn it now is.
type TurnChange struct {
	Name       string `json:"name"`
	TurnGoesTo uint64 `json:"turn_goes_to"`
}

func NewTurnChange(turnGoesTo uint64) TurnChange {
	return TurnChange{Name: "turn_change", TurnGoesTo: turnGoesTo}
}

func (e TurnChange) EventName() string { return e.Name }

// Probe is the reaper's internal liveness ping. It carries no data; on
// SSE it is sent as a bare "event: test" frame rather than a "message"
// data event, so it never reaches application code on the client.
type Probe struct{}

func (Probe) EventName() string { return "test" }
